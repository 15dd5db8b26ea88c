package system

// Mount describes one mounted filesystem.
type Mount struct {
	Device     string
	Mountpoint string
	FSType     string
}

// DiskUsage reports space on a volume in bytes.
type DiskUsage struct {
	Total uint64
	Free  uint64
}
