// Package api
// Author: momentics
//
// State introspection contracts shared by rings and the control layer.

package api

// Debug is implemented by containers that can describe their internal layout.
type Debug interface {
	// DumpState returns cursors and a copy of raw storage.
	DumpState() map[string]any
}

// ProbeRegistry accepts named, lazily evaluated state probes.
type ProbeRegistry interface {
	RegisterProbe(name string, fn func() any)
}
