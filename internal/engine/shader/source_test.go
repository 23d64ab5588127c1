package shader

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePrefersDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.glsl"), []byte("disk"), 0644))

	s := Source{Dir: dir, Fallback: fstest.MapFS{"a.glsl": {Data: []byte("embedded")}}}

	src, from, err := s.Read("a.glsl")
	require.NoError(t, err)
	assert.Equal(t, "disk", src)
	assert.Equal(t, filepath.Join(dir, "a.glsl"), from)
}

func TestSourceFallsBack(t *testing.T) {
	s := Source{Dir: t.TempDir(), Fallback: fstest.MapFS{"b.glsl": {Data: []byte("embedded")}}}

	src, from, err := s.Read("b.glsl")
	require.NoError(t, err)
	assert.Equal(t, "embedded", src)
	assert.Equal(t, "built-in:b.glsl", from)
}

func TestSourceMissingEverywhere(t *testing.T) {
	_, _, err := Source{Dir: t.TempDir(), Fallback: fstest.MapFS{}}.Read("c.glsl")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = Source{}.Read("c.glsl")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
