// Package domain implements the debug-information resolution pipeline: it
// classifies functions found in the compilation-unit entry tree, replays the
// line-number programs mapping instruction addresses to source lines, and
// aggregates the rows into one coverable entry per (path, line).
package domain

import (
	"debug/dwarf"
	"strings"

	"github.com/mouse-blink/covmap/internal/adapter"
	m "github.com/mouse-blink/covmap/internal/model"
)

// FunctionKind represents the category of a subprogram entry.
type FunctionKind string

const (
	// FunctionStandard represents ordinary code.
	FunctionStandard FunctionKind = "standard"
	// FunctionTest represents a function living in a tests module.
	FunctionTest FunctionKind = "test"
	// FunctionGenerated represents a synthetic harness entry point.
	FunctionGenerated FunctionKind = "generated"
)

// Test harnesses follow fixed naming conventions in demangled names: user
// tests live in a module literally named "tests" and the generated entry
// point is "__test::main". The substring checks are deliberate and must not
// be tightened; downstream consumers depend on their exact behavior.
const (
	testModuleMarker  = "tests::"
	harnessMainMarker = "__test::main"
)

// FuncDesc describes a function as its entry address, its size offset from
// that address, and its kind. Produced once per function-defining entry,
// scoped to one compilation-unit pass.
type FuncDesc struct {
	Low  uint64
	High uint64
	Kind FunctionKind
}

// Classifier extracts function descriptors from subprogram entries.
type Classifier struct {
	demangler adapter.Demangler
}

// NewClassifier constructs a Classifier backed by the provided demangler.
func NewClassifier(demangler adapter.Demangler) *Classifier {
	return &Classifier{demangler: demangler}
}

// Describe reads the low-pc, high-pc and linkage-name attributes from a
// subprogram entry and classifies the function by the demangled name.
// Attributes that are absent or of an unexpected form default to zero; a
// missing linkage name leaves the kind Standard with no demangling attempted.
func (c *Classifier) Describe(die *dwarf.Entry) FuncDesc {
	desc := FuncDesc{Kind: FunctionStandard}

	// Low is a program counter, so only the address form counts.
	if f := die.AttrField(dwarf.AttrLowpc); f != nil && f.Class == dwarf.ClassAddress {
		if low, ok := f.Val.(uint64); ok {
			desc.Low = low
		}
	}

	// High is an offset from the entry address, so only the constant form counts.
	if f := die.AttrField(dwarf.AttrHighpc); f != nil && f.Class == dwarf.ClassConstant {
		if high, ok := f.Val.(int64); ok {
			desc.High = uint64(high)
		}
	}

	linkage, ok := die.Val(dwarf.AttrLinkageName).(string)
	if !ok {
		return desc
	}

	name := c.demangler.Demangle(linkage)

	switch {
	case strings.Contains(name, testModuleMarker):
		desc.Kind = FunctionTest
	case strings.Contains(name, harnessMainMarker):
		desc.Kind = FunctionGenerated
	}

	return desc
}

// entryPoint pairs a function entry address with the line classification it
// implies.
type entryPoint struct {
	addr     uint64
	lineType m.LineType
}

// projectEntryPoints converts function descriptors into (address, line type)
// pairs for row classification.
func projectEntryPoints(descs []FuncDesc) []entryPoint {
	points := make([]entryPoint, 0, len(descs))

	for _, desc := range descs {
		switch desc.Kind {
		case FunctionTest:
			points = append(points, entryPoint{
				addr:     desc.Low,
				lineType: m.LineType{Kind: m.LineTestEntry, Offset: desc.High},
			})
		case FunctionGenerated:
			points = append(points, entryPoint{
				addr:     desc.Low,
				lineType: m.LineType{Kind: m.LineTestMain},
			})
		default:
			points = append(points, entryPoint{
				addr:     desc.Low,
				lineType: m.LineType{Kind: m.LineFunctionEntry, Offset: desc.High},
			})
		}
	}

	return points
}

// lookupEntry returns the classification recorded for an exact address match,
// or Unknown when no function starts at the address.
func lookupEntry(points []entryPoint, addr uint64) m.LineType {
	for _, point := range points {
		if point.addr == addr {
			return point.lineType
		}
	}

	return m.LineType{Kind: m.LineUnknown}
}
