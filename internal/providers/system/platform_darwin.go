//go:build darwin

package system

import "syscall"

func listMounts() ([]Mount, error) {
	n, err := syscall.Getfsstat(nil, 1)
	if err != nil {
		return nil, err
	}
	buf := make([]syscall.Statfs_t, n)
	n, err = syscall.Getfsstat(buf, 1)
	if err != nil {
		return nil, err
	}

	mounts := make([]Mount, 0, n)
	for _, st := range buf[:n] {
		mounts = append(mounts, Mount{
			Device:     cString(st.Mntfromname[:]),
			Mountpoint: cString(st.Mntonname[:]),
			FSType:     cString(st.Fstypename[:]),
		})
	}
	return mounts, nil
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

func cString(b []int8) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c == 0 {
			break
		}
		out = append(out, byte(c))
	}
	return string(out)
}
