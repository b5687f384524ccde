package domain

import (
	"debug/dwarf"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	m "github.com/mouse-blink/covmap/internal/model"
)

// buildOutputDir is the build-output directory name checked during path
// containment. Source under it is either autogenerated or derived from the
// project's dependency lock and must never be counted.
const buildOutputDir = "target"

// Interpreter replays per-compilation-unit line-number programs and resolves
// every row into the working trace map.
type Interpreter struct {
	project m.Path
	logger  zerolog.Logger
}

// NewInterpreter constructs an Interpreter for the given project root.
func NewInterpreter(project m.Path, logger zerolog.Logger) *Interpreter {
	return &Interpreter{project: project, logger: logger}
}

// Rows replays the line program referenced by the compilation unit's root
// entry. Units without a line program contribute no rows. Failures mid-way
// leave rows resolved so far in place and are reported to the caller.
func (ip *Interpreter) Rows(d *dwarf.Data, cu *dwarf.Entry, points []entryPoint, result map[m.SourceLocation]m.TracerData) error {
	lr, err := d.LineReader(cu)
	if err != nil {
		return fmt.Errorf("line program: %w", err)
	}

	if lr == nil {
		return nil
	}

	var row dwarf.LineEntry

	for {
		err := lr.Next(&row)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("line program row: %w", err)
		}

		ip.resolveRow(row, points, result)
	}
}

// resolveRow maps one state-machine row to a canonical (path, line) entry and
// upserts it into the working map. Rows outside the project, inside build
// output, without a line number, or referencing files that no longer exist
// are discarded.
func (ip *Interpreter) resolveRow(row dwarf.LineEntry, points []entryPoint, result map[m.SourceLocation]m.TracerData) {
	if row.EndSequence || row.File == nil || row.File.Name == "" {
		return
	}

	dir := filepath.Dir(row.File.Name)
	if canonical, err := filepath.EvalSymlinks(dir); err == nil {
		dir = canonical
	}

	if ip.inBuildOutput(dir) {
		return
	}

	if !hasPathPrefix(dir, string(ip.project)) {
		return
	}

	// Without a line there is no address-to-line mapping to record.
	if row.Line <= 0 {
		return
	}

	path := filepath.Join(dir, filepath.Base(row.File.Name))
	if !isRegularFile(path) {
		// Debug info can reference files that no longer exist.
		return
	}

	loc := m.SourceLocation{Path: m.Path(path), Line: uint64(row.Line)}

	existing, ok := result[loc]
	if ok {
		// Multiple instructions commonly map to one source line; the lowest
		// address is the line's entry instruction and the canonical
		// instrumentation point. Classification of the first-seen entry is
		// left untouched.
		if existing.Address != nil && row.Address < *existing.Address {
			addr := row.Address
			existing.Address = &addr
			result[loc] = existing
		}

		return
	}

	addr := row.Address
	result[loc] = m.TracerData{
		Path:    loc.Path,
		Line:    loc.Line,
		Address: &addr,
		Type:    lookupEntry(points, row.Address),
		Hits:    0,
	}
}

// inBuildOutput reports whether the directory lies inside the build-output
// tree, either as a relative "target" path or under <project-root>/target.
func (ip *Interpreter) inBuildOutput(dir string) bool {
	if !filepath.IsAbs(dir) {
		return hasPathPrefix(dir, buildOutputDir)
	}

	return hasPathPrefix(dir, filepath.Join(string(ip.project), buildOutputDir))
}
