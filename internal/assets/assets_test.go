package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedModel(t *testing.T) {
	for _, p := range []string{"a.obj", "dir/b.fbx", "c.dae", "d.3ds", "e.ply", "f.glb", "g.gltf"} {
		assert.True(t, IsSupportedModel(p), p)
	}
	for _, p := range []string{"a.stl", "b.OBJ", "noext", "c.obj.bak", ""} {
		assert.False(t, IsSupportedModel(p), p)
	}
}

func TestResolveModel(t *testing.T) {
	r := NewResolver("")
	assert.Equal(t, "resources/models/cube.obj", r.Model("models/cube.obj"))
	assert.Equal(t, "resources/models/cube.obj", r.Model("resources/models/cube.obj"))
	assert.Equal(t, "resources/resourcesX/a.obj", r.Model("resourcesX/a.obj"))
}

func TestResolveTexture(t *testing.T) {
	r := NewResolver("resources")
	tests := []struct {
		name, tex, dir, want string
	}{
		{"bare name next to model", "wood.png", "resources/models/chair", "resources/models/chair/wood.png"},
		{"bare name, dir without root", "wood.png", "models/chair", "resources/models/chair/wood.png"},
		{"relative to root", "textures/wood.png", "resources/models", "resources/textures/wood.png"},
		{"already rooted", "resources/textures/wood.png", "resources/models", "resources/textures/wood.png"},
		{"windows separators", `textures\wood.png`, "resources/models", "resources/textures/wood.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Texture(tt.tex, tt.dir))
		})
	}
}

func TestValidateModel(t *testing.T) {
	root := filepath.Join(t.TempDir(), "resources")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "cube.obj"), []byte("v 0 0 0\n"), 0644))

	r := NewResolver(root)

	full, err := r.ValidateModel("models/cube.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "models", "cube.obj")), full)

	_, err = r.ValidateModel("models/cube.stl")
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	_, err = r.ValidateModel("models/missing.obj")
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestKeyNormalizesComposition(t *testing.T) {
	decomposed := "textures/cafe\u0301.png"
	composed := "textures/caf\u00e9.png"
	require.NotEqual(t, composed, decomposed)
	assert.Equal(t, Key(composed), Key(decomposed))
	assert.Equal(t, "resources/a.png", Key("resources/./x/../a.png"))
}

func TestManagerCachesAndInvalidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	m := NewManager("")
	data, err := m.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))
	data, err = m.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data), "served from cache")

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Invalidate(path)
	data, err = m.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestManagerMissingFile(t *testing.T) {
	_, err := NewManager("").Load(filepath.Join(t.TempDir(), "gone.obj"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}
