// Package model defines the data structures for coverage tracing.
package model

import "sort"

// Path represents a file system path.
type Path string

// LineKind represents the category of a resolved line.
type LineKind string

const (
	// LineTestMain represents the generated test harness main. It must never
	// appear among the final coverable lines.
	LineTestMain LineKind = "test-main"
	// LineTestEntry represents the entry of a function known to be a test.
	LineTestEntry LineKind = "test-entry"
	// LineFunctionEntry represents the entry of a function that may or may
	// not be a test.
	LineFunctionEntry LineKind = "function-entry"
	// LineStatement represents a standard statement.
	LineStatement LineKind = "statement"
	// LineCondition represents a condition.
	LineCondition LineKind = "condition"
	// LineUnknown represents a line with no known classification.
	LineUnknown LineKind = "unknown"
	// LineUnusedGeneric represents a line known to be coverable that was
	// never resolved to an instruction address.
	LineUnusedGeneric LineKind = "unused-generic"
)

// LineType classifies a resolved source line. Offset carries the function
// size for LineTestEntry and LineFunctionEntry and is zero otherwise.
type LineType struct {
	Kind   LineKind
	Offset uint64
}

// SourceLocation identifies a source line. It is the sole identity used for
// map lookups and deduplication; TracerData is a plain payload with no notion
// of equality of its own.
type SourceLocation struct {
	Path Path
	Line uint64
}

// TracerData describes one traceable line: where it lives, the lowest
// instruction address implementing it (nil when no instruction was ever
// generated), its classification and the hit count. Hits is always zero in
// this layer; runtime hit counting happens outside the resolution core.
type TracerData struct {
	Path    Path
	Line    uint64
	Address *uint64
	Type    LineType
	Hits    uint64
}

// Location returns the identity key for the tracer data.
func (td TracerData) Location() SourceLocation {
	return SourceLocation{Path: td.Path, Line: td.Line}
}

// SortTracerData orders entries by path, then by line within equal paths.
// The resolution map itself is unordered; call this whenever a deterministic
// rendering order is needed.
func SortTracerData(data []TracerData) {
	sort.Slice(data, func(i, j int) bool {
		if data[i].Path != data[j].Path {
			return data[i].Path < data[j].Path
		}

		return data[i].Line < data[j].Line
	})
}
