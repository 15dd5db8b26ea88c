package system

import (
	"sync"
	"time"
)

// CircularLogBuffer is a thread-safe circular buffer for log entries
type CircularLogBuffer struct {
	entries []*LogEntry
	head    int
	size    int
	maxSize int
	mu      sync.RWMutex
}

// LogEntry represents a system log entry
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	AppID     string    `json:"app_id,omitempty"`
}

// NewCircularLogBuffer creates a new circular buffer for logs
func NewCircularLogBuffer(maxSize int) *CircularLogBuffer {
	return &CircularLogBuffer{
		entries: make([]*LogEntry, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts a log entry into the circular buffer
func (cb *CircularLogBuffer) Add(entry *LogEntry) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.head] = entry
	cb.head = (cb.head + 1) % cb.maxSize
	if cb.size < cb.maxSize {
		cb.size++
	}
}

// GetRecent retrieves the most recent N entries, optionally filtered by level
func (cb *CircularLogBuffer) GetRecent(limit int, levelFilter string) []LogEntry {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if limit > cb.size {
		limit = cb.size
	}

	result := make([]LogEntry, 0, limit)
	for i := 0; i < cb.size && len(result) < limit; i++ {
		idx := (cb.head - 1 - i + cb.maxSize) % cb.maxSize
		entry := cb.entries[idx]
		if entry != nil && (levelFilter == "" || entry.Level == levelFilter) {
			result = append(result, *entry)
		}
	}
	return result
}
