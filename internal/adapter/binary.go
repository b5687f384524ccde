// Package adapter contains infrastructure adapters for the covmap CLI.
package adapter

import (
	"debug/dwarf"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	m "github.com/mouse-blink/covmap/internal/model"
)

// DebugSections holds the four DWARF byte ranges extracted from a binary.
// A section missing from the binary is present here as an empty slice: a
// binary built without debug info still yields an (empty) result instead of
// aborting the analysis.
type DebugSections struct {
	Info   []byte
	Abbrev []byte
	Str    []byte
	Line   []byte

	// ByteOrder is the endianness declared by the container format.
	ByteOrder binary.ByteOrder
}

// DebugBinary is a parsed test executable with its debug sections extracted.
// The underlying memory-mapped view stays valid until Close is called and is
// never mutated.
type DebugBinary struct {
	sections DebugSections
	closer   io.Closer
}

// NewDebugBinary wraps already-extracted debug sections. Used by tests and by
// callers that obtained section bytes elsewhere.
func NewDebugBinary(sections DebugSections) *DebugBinary {
	return &DebugBinary{sections: sections}
}

// Sections returns the extracted debug sections.
func (b *DebugBinary) Sections() DebugSections {
	return b.sections
}

// DWARF builds the debug-info cursor over the extracted sections. The cursor
// adapts to 32- and 64-bit DWARF and either endianness through one code path.
func (b *DebugBinary) DWARF() (*dwarf.Data, error) {
	return dwarf.New(b.sections.Abbrev, nil, nil, b.sections.Info, b.sections.Line, nil, nil, b.sections.Str)
}

// Close releases the memory-mapped view.
func (b *DebugBinary) Close() error {
	if b.closer == nil {
		return nil
	}

	return b.closer.Close()
}

// BinaryAdapter opens compiled test executables and exposes their debug
// sections. Implementations decide the container format they understand.
type BinaryAdapter interface {
	Open(path m.Path) (*DebugBinary, error)
}

// ELFBinaryAdapter reads ELF executables through a read-only memory map.
type ELFBinaryAdapter struct{}

// NewELFBinaryAdapter constructs an ELFBinaryAdapter.
func NewELFBinaryAdapter() *ELFBinaryAdapter {
	return &ELFBinaryAdapter{}
}

// Open memory-maps the executable at path and extracts its debug sections.
// It returns an I/O error when the file cannot be opened or mapped and an
// invalid-data error when the container format is not understood.
func (a *ELFBinaryAdapter) Open(path m.Path) (*DebugBinary, error) {
	r, err := mmap.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("open binary %s: %w", path, err)
	}

	f, err := elf.NewFile(r)
	if err != nil {
		_ = r.Close()

		return nil, fmt.Errorf("%w: unable to parse binary %s: %v", m.ErrInvalidData, path, err)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if f.Data == elf.ELFDATA2MSB {
		order = binary.BigEndian
	}

	sections := DebugSections{
		Info:      sectionData(f, ".debug_info"),
		Abbrev:    sectionData(f, ".debug_abbrev"),
		Str:       sectionData(f, ".debug_str"),
		Line:      sectionData(f, ".debug_line"),
		ByteOrder: order,
	}

	return &DebugBinary{sections: sections, closer: r}, nil
}

// sectionData returns the named section's bytes, or an empty slice when the
// section is absent or unreadable.
func sectionData(f *elf.File, name string) []byte {
	sec := f.Section(name)
	if sec == nil {
		return []byte{}
	}

	data, err := sec.Data()
	if err != nil {
		return []byte{}
	}

	return data
}
