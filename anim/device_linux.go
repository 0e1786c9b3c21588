//go:build linux

package anim

import "golang.org/x/sys/unix"

// totalMemory returns total RAM in bytes, or 0 if sysinfo fails.
func totalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
