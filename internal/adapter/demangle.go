package adapter

import "github.com/ianlancetaylor/demangle"

// Demangler recovers a human-readable qualified name from a mangled linkage
// name.
type Demangler interface {
	Demangle(linkage string) string
}

// SymbolDemangler demangles Rust (legacy and v0) and Itanium C++ linkage
// names. Names it does not understand are returned unchanged.
type SymbolDemangler struct{}

// NewSymbolDemangler constructs a SymbolDemangler.
func NewSymbolDemangler() *SymbolDemangler {
	return &SymbolDemangler{}
}

// Demangle returns the human-readable form of linkage.
func (d *SymbolDemangler) Demangle(linkage string) string {
	return demangle.Filter(linkage)
}
