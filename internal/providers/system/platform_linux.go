//go:build linux

package system

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Pseudo filesystems are noise for a file tool client.
var ignoredFSTypes = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
	"tmpfs": true, "cgroup": true, "cgroup2": true, "securityfs": true,
	"debugfs": true, "tracefs": true, "overlay": true, "squashfs": true,
	"fusectl": true, "configfs": true, "pstore": true, "bpf": true,
	"mqueue": true, "hugetlbfs": true, "autofs": true, "binfmt_misc": true,
}

func listMounts() ([]Mount, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mounts []Mount
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || ignoredFSTypes[fields[2]] {
			continue
		}
		mounts = append(mounts, Mount{
			Device:     fields[0],
			Mountpoint: fields[1],
			FSType:     fields[2],
		})
	}
	return mounts, scanner.Err()
}

func statDisk(path string) (DiskUsage, error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return DiskUsage{}, err
	}
	bsize := uint64(st.Bsize)
	return DiskUsage{
		Total: st.Blocks * bsize,
		Free:  st.Bavail * bsize,
	}, nil
}
