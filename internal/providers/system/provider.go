// Package system provides host and runtime information tools.
package system

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
)

// Provider implements system information and utilities
type Provider struct {
	startTime time.Time
	workspace *paths.Workspace
	logs      *CircularLogBuffer
}

// NewProvider creates a system provider
func NewProvider(workspace *paths.Workspace) *Provider {
	return &Provider{
		startTime: time.Now(),
		workspace: workspace,
		logs:      NewCircularLogBuffer(1000),
	}
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Host, disk and runtime information",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"info",
			"disks",
			"logging",
		},
		Tools: []types.Tool{
			{
				ID:          "system.info",
				Name:        "System Info",
				Description: "Get system information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.time",
				Name:        "Current Time",
				Description: "Get current server time",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.user_dirs",
				Name:        "User Directories",
				Description: "List the standard workspace directories",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "system.drives",
				Name:        "List Drives",
				Description: "List mounted filesystems",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "system.disk_usage",
				Name:        "Disk Usage",
				Description: "Free and total space for the workspace volume",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.log",
				Name:        "Log Message",
				Description: "Log a message to system logs",
				Parameters: []types.Parameter{
					{Name: "message", Type: "string", Description: "Log message", Required: true},
					{Name: "level", Type: "string", Description: "Log level (info/warn/error)", Required: false},
				},
				Returns: "boolean",
			},
			{
				ID:          "system.getLogs",
				Name:        "Get Logs",
				Description: "Retrieve recent system logs",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Number of logs to retrieve", Required: false},
					{Name: "level", Type: "string", Description: "Filter by log level", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "system.ping",
				Name:        "Ping",
				Description: "Test service availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a system operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.info":
		return s.info()
	case "system.time":
		return s.currentTime()
	case "system.user_dirs":
		return s.userDirs()
	case "system.drives":
		return s.drives()
	case "system.disk_usage":
		return s.diskUsage()
	case "system.log":
		return s.log(params, appCtx)
	case "system.getLogs":
		return s.getLogs(params)
	case "system.ping":
		return s.ping()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Provider) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return success(map[string]interface{}{
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024,      // MB
		"memory_total":   m.TotalAlloc / 1024 / 1024, // MB
		"memory_sys":     m.Sys / 1024 / 1024,        // MB
		"uptime_seconds": time.Since(s.startTime).Seconds(),
		"workspace":      s.workspace.Root,
	})
}

func (s *Provider) currentTime() (*types.Result, error) {
	now := time.Now()
	return success(map[string]interface{}{
		"timestamp": now.Unix(),
		"iso":       now.Format(time.RFC3339),
		"unix_ms":   now.UnixMilli(),
	})
}

func (s *Provider) userDirs() (*types.Result, error) {
	dirs := []interface{}{}
	for _, dir := range s.workspace.StandardDirectories() {
		dirs = append(dirs, dir)
	}
	return success(map[string]interface{}{
		"root":  s.workspace.Root,
		"dirs":  dirs,
		"count": len(dirs),
	})
}

func (s *Provider) drives() (*types.Result, error) {
	mounts, err := listMounts()
	if err != nil {
		return failure(fmt.Sprintf("list drives failed: %v", err))
	}

	out := make([]interface{}, len(mounts))
	for i, m := range mounts {
		out[i] = map[string]interface{}{
			"device":     m.Device,
			"mountpoint": m.Mountpoint,
			"fstype":     m.FSType,
		}
	}
	return success(map[string]interface{}{"drives": out, "count": len(out)})
}

func (s *Provider) diskUsage() (*types.Result, error) {
	usage, err := statDisk(s.workspace.Root)
	if err != nil {
		return failure(fmt.Sprintf("disk usage failed: %v", err))
	}

	return success(map[string]interface{}{
		"path":  s.workspace.Root,
		"total": usage.Total,
		"free":  usage.Free,
		"used":  usage.Total - usage.Free,
	})
}

func (s *Provider) log(params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	message, ok := params["message"].(string)
	if !ok || message == "" {
		return failure("message required")
	}

	level := "info"
	if l, ok := params["level"].(string); ok && l != "" {
		level = l
	}

	entry := &LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
	if ctx != nil && ctx.AppID != nil {
		entry.AppID = *ctx.AppID
	}

	s.logs.Add(entry)

	return success(map[string]interface{}{"logged": true})
}

func (s *Provider) getLogs(params map[string]interface{}) (*types.Result, error) {
	limit := 100
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	levelFilter := ""
	if l, ok := params["level"].(string); ok {
		levelFilter = l
	}

	logs := s.logs.GetRecent(limit, levelFilter)

	return success(map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}

func (s *Provider) ping() (*types.Result, error) {
	return success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
