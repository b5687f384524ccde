package model

// LineAnalysis is the static-source-analysis verdict for one file: the lines
// known to be coverable and the lines that are structurally ignorable
// (comments, attributes, non-executable statements).
type LineAnalysis struct {
	Cover  map[uint64]struct{}
	Ignore map[uint64]struct{}
}

// ShouldIgnore reports whether the analysis marked the line as ignorable.
func (la LineAnalysis) ShouldIgnore(line uint64) bool {
	_, ok := la.Ignore[line]
	return ok
}
