package domain

import (
	"path/filepath"

	m "github.com/mouse-blink/covmap/internal/model"
)

// Aggregator prunes the working resolution map and unions in the lines the
// static source analysis knows to be coverable.
type Aggregator struct {
	project  m.Path
	analysis map[m.Path]m.LineAnalysis
	cfg      m.Config
}

// NewAggregator constructs an Aggregator over the given analysis verdicts.
func NewAggregator(project m.Path, analysis map[m.Path]m.LineAnalysis, cfg m.Config) *Aggregator {
	return &Aggregator{project: project, analysis: analysis, cfg: cfg}
}

// Aggregate drops harness-generated main lines, entries under the project's
// tests directory when configured, excluded paths and structurally ignorable
// lines, then inserts address-less entries for every known coverable line
// that never resolved to an instruction. Lines that produced zero
// instructions surface as zero coverage instead of being silently absent.
func (ag *Aggregator) Aggregate(working map[m.SourceLocation]m.TracerData) map[m.SourceLocation]m.TracerData {
	result := make(map[m.SourceLocation]m.TracerData, len(working))
	testsDir := filepath.Join(string(ag.project), "tests")

	for loc, td := range working {
		if td.Type.Kind == m.LineTestMain {
			continue
		}

		if ag.cfg.IgnoreTests && hasPathPrefix(string(loc.Path), testsDir) {
			continue
		}

		if ag.cfg.ExcludePath(loc.Path) {
			continue
		}

		if ag.analysis[loc.Path].ShouldIgnore(loc.Line) {
			continue
		}

		result[loc] = td
	}

	for file, la := range ag.analysis {
		if ag.cfg.ExcludePath(file) {
			continue
		}

		for line := range la.Cover {
			loc := m.SourceLocation{Path: file, Line: line}

			if _, ok := result[loc]; ok {
				continue
			}

			if la.ShouldIgnore(line) {
				continue
			}

			result[loc] = m.TracerData{
				Path: file,
				Line: line,
				Type: m.LineType{Kind: m.LineUnusedGeneric},
				Hits: 0,
			}
		}
	}

	return result
}
