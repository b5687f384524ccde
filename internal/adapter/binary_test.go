package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covmap/internal/model"
)

func TestELFBinaryAdapter_OpenMissingFile(t *testing.T) {
	a := NewELFBinaryAdapter()

	_, err := a.Open(m.Path(filepath.Join(t.TempDir(), "does-not-exist")))

	require.Error(t, err)
	assert.False(t, errors.Is(err, m.ErrInvalidData), "missing file is an I/O failure, not malformed data")
}

func TestELFBinaryAdapter_OpenGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("this is not an executable"), 0o644))

	a := NewELFBinaryAdapter()

	_, err := a.Open(m.Path(path))

	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrInvalidData)
}

func TestDebugBinary_EmptySections(t *testing.T) {
	bin := NewDebugBinary(DebugSections{})

	d, err := bin.DWARF()
	require.NoError(t, err)

	entry, err := d.Reader().Next()
	require.NoError(t, err)
	assert.Nil(t, entry, "no debug info means no compilation units")

	assert.NoError(t, bin.Close())
}
