package adapter

import (
	m "github.com/mouse-blink/covmap/internal/model"
)

// SourceAnalyzer reports, per source file, which lines are known to be
// coverable and which are structurally ignorable. The concrete analysis is an
// external collaborator; the resolution core only consumes its verdicts.
type SourceAnalyzer interface {
	AnalysisFor(project m.Path, cfg m.Config) (map[m.Path]m.LineAnalysis, error)
}

// NoopSourceAnalyzer reports no coverable and no ignorable lines, leaving the
// debug-info resolution as the only source of truth.
type NoopSourceAnalyzer struct{}

// NewNoopSourceAnalyzer constructs a NoopSourceAnalyzer.
func NewNoopSourceAnalyzer() *NoopSourceAnalyzer {
	return &NoopSourceAnalyzer{}
}

// AnalysisFor returns an empty analysis for every project.
func (a *NoopSourceAnalyzer) AnalysisFor(_ m.Path, _ m.Config) (map[m.Path]m.LineAnalysis, error) {
	return map[m.Path]m.LineAnalysis{}, nil
}
