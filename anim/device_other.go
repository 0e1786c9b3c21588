//go:build !linux

package anim

// totalMemory is unknown outside Linux.
func totalMemory() uint64 { return 0 }
