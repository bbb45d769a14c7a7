// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// RegisterPlatformProbes exposes CPU count, architecture and cache line size.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOOS + "/" + runtime.GOARCH
	})
	dp.RegisterProbe("platform.cache_line", func() any {
		return int(unsafe.Sizeof(cpu.CacheLinePad{}))
	})
}
