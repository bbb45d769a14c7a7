// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named probes over ring and allocator state, evaluated on demand.

package control

import (
	"fmt"
	"sort"
	"sync"

	"github.com/momentics/hioload-ring/api"
)

// Ensure compile-time compliance.
var (
	_ api.ProbeRegistry = (*DebugProbes)(nil)
	_ api.Debug         = (*DebugProbes)(nil)
)

// DebugProbes maps probe names to functions evaluated on every dump.
// Probes run under a read lock and must not register or unregister probes.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes returns an empty registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]func() any)}
}

// RegisterProbe adds or replaces the probe called name.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	if fn == nil {
		return
	}
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// UnregisterProbe drops the probe called name, if any.
func (dp *DebugProbes) UnregisterProbe(name string) {
	dp.mu.Lock()
	delete(dp.probes, name)
	dp.mu.Unlock()
}

// Names lists registered probes in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	dp.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Probe evaluates a single probe.
func (dp *DebugProbes) Probe(name string) (any, bool) {
	dp.mu.RLock()
	fn, ok := dp.probes[name]
	dp.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return evaluate(fn), true
}

// DumpState evaluates every probe. A probe that panics reports the panic
// value as its state instead of aborting the dump.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for name, fn := range dp.probes {
		out[name] = evaluate(fn)
	}
	return out
}

func evaluate(fn func() any) (v any) {
	defer func() {
		if p := recover(); p != nil {
			v = fmt.Sprintf("probe panic: %v", p)
		}
	}()
	return fn()
}

// RegisterDebug exposes d.DumpState under name.
func RegisterDebug(reg api.ProbeRegistry, name string, d api.Debug) {
	reg.RegisterProbe(name, func() any { return d.DumpState() })
}
