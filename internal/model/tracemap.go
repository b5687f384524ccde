package model

import "sort"

// LineStat is the zero-initialized per-line statistic placeholder handed to
// the reporting aggregator, which fills it in during execution.
type LineStat struct {
	Hits uint64
}

// Trace is the per-file reporting record for one resolved line.
type Trace struct {
	Line    uint64
	Address *uint64
	Length  int
	Stat    LineStat
}

// TraceMap groups traces per source file. Iteration order over files is
// unspecified; Files returns a sorted copy for display purposes.
type TraceMap struct {
	traces map[Path][]Trace
}

// NewTraceMap creates an empty TraceMap.
func NewTraceMap() *TraceMap {
	return &TraceMap{traces: make(map[Path][]Trace)}
}

// AddTrace attaches a trace to the given file. A trace for the same line is
// kept as-is and the new one discarded.
func (tm *TraceMap) AddTrace(path Path, trace Trace) {
	for _, existing := range tm.traces[path] {
		if existing.Line == trace.Line {
			return
		}
	}

	tm.traces[path] = append(tm.traces[path], trace)
}

// Traces returns the traces recorded for a file.
func (tm *TraceMap) Traces(path Path) []Trace {
	return tm.traces[path]
}

// Files returns the recorded file paths in ascending order.
func (tm *TraceMap) Files() []Path {
	files := make([]Path, 0, len(tm.traces))
	for path := range tm.traces {
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files
}

// Len returns the total number of traces across all files.
func (tm *TraceMap) Len() int {
	total := 0
	for _, traces := range tm.traces {
		total += len(traces)
	}

	return total
}

// Merge unions another trace map into this one. Lines already present for a
// file keep their existing trace.
func (tm *TraceMap) Merge(other *TraceMap) {
	if other == nil {
		return
	}

	for path, traces := range other.traces {
		for _, trace := range traces {
			tm.AddTrace(path, trace)
		}
	}
}
