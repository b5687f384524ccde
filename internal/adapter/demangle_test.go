package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolDemangler_RustLegacy(t *testing.T) {
	d := NewSymbolDemangler()

	name := d.Demangle("_ZN7mycrate5tests8it_works17h0123456789abcdefE")

	assert.Contains(t, name, "mycrate")
	assert.Contains(t, name, "tests::")
	assert.Contains(t, name, "it_works")
}

func TestSymbolDemangler_Passthrough(t *testing.T) {
	d := NewSymbolDemangler()

	assert.Equal(t, "main", d.Demangle("main"))
	assert.Equal(t, "", d.Demangle(""))
}
