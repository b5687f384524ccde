package domain

import (
	"context"
	"debug/dwarf"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/covmap/internal/adapter"
	m "github.com/mouse-blink/covmap/internal/model"
)

// Workflow exposes the public resolution operations. Each call processes one
// test binary end-to-end with a freshly scoped working map, so independent
// invocations are safe to run in parallel.
type Workflow interface {
	// TraceMap resolves the binary into the grouped-by-file reporting view.
	TraceMap(project, binary m.Path, cfg m.Config) (*m.TraceMap, error)
	// TracerData resolves the binary into the flat instrumentation view.
	TracerData(project, binary m.Path, cfg m.Config) ([]m.TracerData, error)
	// TraceMapAll resolves several binaries concurrently and merges the
	// resulting trace maps.
	TraceMapAll(ctx context.Context, project m.Path, binaries []m.Path, cfg m.Config) (*m.TraceMap, error)
}

type workflow struct {
	binaries  adapter.BinaryAdapter
	demangler adapter.Demangler
	analyzer  adapter.SourceAnalyzer
	logger    zerolog.Logger
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(binaries adapter.BinaryAdapter, demangler adapter.Demangler, analyzer adapter.SourceAnalyzer, logger zerolog.Logger) Workflow {
	return &workflow{
		binaries:  binaries,
		demangler: demangler,
		analyzer:  analyzer,
		logger:    logger,
	}
}

// unit couples a compilation unit's root entry with the function descriptors
// found in its subtree.
type unit struct {
	root  *dwarf.Entry
	funcs []FuncDesc
}

// TraceMap resolves the binary and projects the result into the per-file
// reporting structure. It performs no further filtering.
func (w *workflow) TraceMap(project, binary m.Path, cfg m.Config) (*m.TraceMap, error) {
	resolved, err := w.resolve(project, binary, cfg)
	if err != nil {
		return nil, err
	}

	tm := m.NewTraceMap()
	for loc, td := range resolved {
		tm.AddTrace(loc.Path, m.Trace{
			Line:    loc.Line,
			Address: td.Address,
			Length:  1,
			Stat:    m.LineStat{},
		})
	}

	return tm, nil
}

// TracerData resolves the binary and returns the aggregated entries as a
// plain collection for the instrumentation consumer. Order is unspecified.
func (w *workflow) TracerData(project, binary m.Path, cfg m.Config) ([]m.TracerData, error) {
	resolved, err := w.resolve(project, binary, cfg)
	if err != nil {
		return nil, err
	}

	result := make([]m.TracerData, 0, len(resolved))
	for _, td := range resolved {
		result = append(result, td)
	}

	return result, nil
}

// TraceMapAll fans out one resolution per binary and merges the results.
// The pipeline shares no state across invocations, so the fan-out needs no
// synchronization beyond collecting the per-binary maps.
func (w *workflow) TraceMapAll(ctx context.Context, project m.Path, binaries []m.Path, cfg m.Config) (*m.TraceMap, error) {
	maps := make([]*m.TraceMap, len(binaries))
	g, ctx := errgroup.WithContext(ctx)

	for i, binary := range binaries {
		i, binary := i, binary
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tm, err := w.TraceMap(project, binary, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", binary, err)
			}

			maps[i] = tm

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := m.NewTraceMap()
	for _, tm := range maps {
		merged.Merge(tm)
	}

	return merged, nil
}

// resolve runs the full pipeline for one binary: load and map the file,
// extract debug sections, classify functions and replay line programs per
// compilation unit, then aggregate.
func (w *workflow) resolve(project, binary m.Path, cfg m.Config) (map[m.SourceLocation]m.TracerData, error) {
	bin, err := w.binaries.Open(binary)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = bin.Close()
	}()

	analysis, err := w.analyzer.AnalysisFor(project, cfg)
	if err != nil {
		return nil, fmt.Errorf("source analysis: %w", err)
	}

	d, err := bin.DWARF()
	if err != nil {
		return nil, fmt.Errorf("%w: reading debug sections of %s: %v", m.ErrInvalidData, binary, err)
	}

	classifier := NewClassifier(w.demangler)
	interpreter := NewInterpreter(project, w.logger)
	working := make(map[m.SourceLocation]m.TracerData)

	for _, u := range w.collectUnits(d, classifier) {
		points := projectEntryPoints(u.funcs)

		if err := interpreter.Rows(d, u.root, points, working); err != nil {
			// Per-unit failures skip the unit only.
			w.logger.Debug().Err(err).Str("binary", string(binary)).Msg("potential issue reading test addresses")
		}
	}

	return NewAggregator(project, analysis, cfg).Aggregate(working), nil
}

// collectUnits walks the whole entry tree once, starting a new unit at each
// compilation-unit root and attributing every subprogram entry beneath it.
// The root entry itself never yields a descriptor.
func (w *workflow) collectUnits(d *dwarf.Data, classifier *Classifier) []unit {
	var units []unit

	r := d.Reader()

	for {
		entry, err := r.Next()
		if err != nil {
			// A malformed entry stops the walk; units read so far still
			// contribute their rows.
			w.logger.Debug().Err(err).Msg("stopping debug entry walk")
			break
		}

		if entry == nil {
			break
		}

		switch entry.Tag {
		case dwarf.TagCompileUnit:
			units = append(units, unit{root: entry})
		case dwarf.TagSubprogram:
			if len(units) == 0 {
				continue
			}

			current := &units[len(units)-1]
			current.funcs = append(current.funcs, classifier.Describe(entry))
		}
	}

	return units
}
