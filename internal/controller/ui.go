// Package controller renders resolved coverage maps for the terminal.
package controller

import (
	m "github.com/mouse-blink/covmap/internal/model"
)

// UI defines the interface for displaying resolution results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayTraceMap shows the grouped-by-file view.
	DisplayTraceMap(tm *m.TraceMap) error
	// DisplayTracerData shows the flat instrumentation view.
	DisplayTracerData(data []m.TracerData) error
}
