package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/pkg/math"
)

func TestNewDefaults(t *testing.T) {
	m := New("resources/cube.obj")
	assert.Equal(t, "resources/cube.obj", m.Path)
	assert.Equal(t, [3]float32{1, 1, 1}, m.ScaleFactor)
	assert.Equal(t, math.Identity(), m.Matrix())
	assert.NotEqual(t, New("x").ID, m.ID)
}

func TestMatrixComposesTransform(t *testing.T) {
	m := New("a.obj")
	m.Position = [3]float32{1, 2, 3}
	m.ScaleFactor = [3]float32{2, 2, 2}

	got := m.Matrix().TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 3, got.X, 1e-5)
	assert.InDelta(t, 4, got.Y, 1e-5)
	assert.InDelta(t, 5, got.Z, 1e-5)
}

func TestWorldBounds(t *testing.T) {
	m := New("a.obj")
	assert.False(t, m.WorldBounds().Valid(), "no geometry")

	m.Bounds = importer.Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
	m.Position = [3]float32{10, 0, 0}
	m.ScaleFactor = [3]float32{2, 1, 1}

	wb := m.WorldBounds()
	require.True(t, wb.Valid())
	assert.InDeltaSlice(t, []float32{8, -1, -1}, wb.Min[:], 1e-5)
	assert.InDeltaSlice(t, []float32{12, 1, 1}, wb.Max[:], 1e-5)
}

func TestWorldBoundsRotated(t *testing.T) {
	m := New("a.obj")
	m.Bounds = importer.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{2, 1, 1}}
	m.Rotation = [3]float32{0, 0, 90}

	wb := m.WorldBounds()
	assert.InDeltaSlice(t, []float32{-1, 0, 0}, wb.Min[:], 1e-5)
	assert.InDeltaSlice(t, []float32{0, 2, 1}, wb.Max[:], 1e-5)
}

func TestSamplerNames(t *testing.T) {
	tex := []texture.Texture{
		{ID: 1, Type: importer.DiffuseTexture},
		{ID: 2, Type: importer.DiffuseTexture},
		{ID: 3, Type: "texture_specular"},
	}
	assert.Equal(t, []string{"texture_diffuse1", "texture_diffuse2", "texture_specular1"}, samplerNames(tex))
	assert.Empty(t, samplerNames(nil))
}

func TestCountsAndUsesTextures(t *testing.T) {
	m := New("a.obj")
	m.Meshes = []*Mesh{
		{VertexCount: 4, IndexCount: 6},
		{VertexCount: 3, IndexCount: 3, Material: importer.Material{HasTexture: true}},
	}
	assert.Equal(t, 7, m.VertexCount())
	assert.Equal(t, 3, m.TriangleCount())

	assert.False(t, m.Meshes[0].UsesTextures())
	assert.False(t, m.Meshes[1].UsesTextures(), "flag set but nothing loaded")
	m.Meshes[1].Textures = []texture.Texture{{ID: 7, Type: importer.DiffuseTexture}}
	assert.True(t, m.Meshes[1].UsesTextures())
}

func TestDestroyWithoutGPUState(t *testing.T) {
	m := New("a.obj")
	m.Meshes = []*Mesh{{VertexCount: 3}}
	assert.NotPanics(t, m.Destroy)
	assert.Empty(t, m.Meshes)
}
