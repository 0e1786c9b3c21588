package anim

import (
	"os"
	"runtime"
	"strconv"
)

// DefaultMaxPixelRatio caps the backing store density used by
// OptimalPixelRatio when no explicit limit is given.
const DefaultMaxPixelRatio = 2.0

// ReducedMotionEnv names the environment variable holding the user's
// reduced-motion preference. Any value accepted by strconv.ParseBool works.
const ReducedMotionEnv = "LASERFLOW_REDUCED_MOTION"

// DeviceInfo holds the capability signals used to pick a rendering
// quality. A zero field means the signal is absent.
type DeviceInfo struct {
	// MemoryGB is the total physical memory in GiB.
	MemoryGB float64
	// CPUs is the number of logical CPUs.
	CPUs int
	// ReducedMotion is true when the user asked for less animation.
	ReducedMotion bool
	// PixelRatio is the ratio of device pixels to logical pixels.
	PixelRatio float64
}

// ProbeDevice gathers DeviceInfo from the running process. Signals that
// cannot be read are left at zero. PixelRatio is never probed here; hosts
// know it and fill it in.
func ProbeDevice() DeviceInfo {
	d := DeviceInfo{
		CPUs:     runtime.NumCPU(),
		MemoryGB: float64(totalMemory()) / (1 << 30),
	}
	if v, ok := os.LookupEnv(ReducedMotionEnv); ok {
		if reduce, err := strconv.ParseBool(v); err == nil {
			d.ReducedMotion = reduce
		}
	}
	return d
}

// IsLowEndDevice reports whether d looks like a constrained device:
// less than 4 GiB of memory, fewer than 4 CPUs, or a reduced-motion
// preference. This is a heuristic; absent signals never count.
func IsLowEndDevice(d DeviceInfo) bool {
	if d.MemoryGB > 0 && d.MemoryGB < 4 {
		return true
	}
	if d.CPUs > 0 && d.CPUs < 4 {
		return true
	}
	return d.ReducedMotion
}

// OptimalPixelRatio returns min(devicePixelRatio, maxRatio). An unknown
// (non-positive) device ratio counts as 1 and a non-positive maxRatio
// means DefaultMaxPixelRatio.
func OptimalPixelRatio(devicePixelRatio, maxRatio float64) float64 {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	if maxRatio <= 0 {
		maxRatio = DefaultMaxPixelRatio
	}
	if devicePixelRatio < maxRatio {
		return devicePixelRatio
	}
	return maxRatio
}
