//go:build !linux && !darwin

package system

import "errors"

var errUnsupported = errors.New("not supported on this platform")

func listMounts() ([]Mount, error) {
	return nil, errUnsupported
}

func statDisk(path string) (DiskUsage, error) {
	return DiskUsage{}, errUnsupported
}
