// Package model holds imported models uploaded to the GPU together with
// their editable transform.
package model

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/shader"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/pkg/math"
)

// Model is a set of meshes loaded from one file plus its transform.
// Rotation is in degrees per axis.
type Model struct {
	ID        uuid.UUID
	Path      string
	Directory string
	Meshes    []*Mesh
	Bounds    importer.Bounds

	Position    [3]float32
	Rotation    [3]float32
	ScaleFactor [3]float32

	textures *texture.Cache
}

// New returns an empty model for path with the identity transform.
func New(path string) *Model {
	return &Model{
		ID:          uuid.New(),
		Path:        path,
		Bounds:      importer.EmptyBounds(),
		ScaleFactor: [3]float32{1, 1, 1},
	}
}

// Matrix returns T(position) * Rx * Ry * Rz * S(scale).
func (m *Model) Matrix() math.Mat4 {
	return math.TRS(math.V3(m.Position), math.V3(m.Rotation), math.V3(m.ScaleFactor))
}

// WorldBounds returns the axis-aligned box around the transformed local
// bounds.
func (m *Model) WorldBounds() importer.Bounds {
	out := importer.EmptyBounds()
	if !m.Bounds.Valid() {
		return out
	}
	mat := m.Matrix()
	lo, hi := m.Bounds.Min, m.Bounds.Max
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: lo[0], Y: lo[1], Z: lo[2]}
		if i&1 != 0 {
			corner.X = hi[0]
		}
		if i&2 != 0 {
			corner.Y = hi[1]
		}
		if i&4 != 0 {
			corner.Z = hi[2]
		}
		out.Extend(mat.TransformPoint(corner).Array())
	}
	return out
}

func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount
	}
	return n
}

func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += int(mesh.IndexCount) / 3
	}
	return n
}

// Draw uploads the model matrix and draws every mesh.
func (m *Model) Draw(p *shader.Program) {
	p.SetMat4("model", m.Matrix())
	for _, mesh := range m.Meshes {
		mesh.Draw(p)
	}
}

// Destroy deletes GPU buffers and textures.
func (m *Model) Destroy() {
	for _, mesh := range m.Meshes {
		mesh.Destroy()
	}
	m.Meshes = nil
	if m.textures != nil {
		m.textures.Release()
		m.textures = nil
	}
}

// Loader imports model files under the resources root and uploads them.
type Loader struct {
	assets *assets.Manager
}

// NewLoader returns a loader reading through a.
func NewLoader(a *assets.Manager) *Loader {
	return &Loader{assets: a}
}

// Load resolves path under the resources root, imports and uploads it.
func (l *Loader) Load(path string) (*Model, error) {
	full := l.assets.Resolver().Model(path)
	res, err := importer.Import(full)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", full, err)
	}

	m := New(full)
	l.build(m, res)
	logger.Info("model loaded",
		zap.String("path", full),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("textures", len(m.textures.Loaded())))
	return m, nil
}

// Reload imports m.Path again and swaps in the new meshes, keeping the ID
// and transform. On error the current meshes stay in place.
func (l *Loader) Reload(m *Model) error {
	res, err := importer.Import(m.Path)
	if err != nil {
		return fmt.Errorf("reloading model %s: %w", m.Path, err)
	}
	for _, t := range m.textureLoaded() {
		l.assets.Invalidate(t.Path)
	}
	m.Destroy()
	l.build(m, res)
	logger.Info("model reloaded", zap.String("path", m.Path), zap.Int("meshes", len(m.Meshes)))
	return nil
}

func (l *Loader) build(m *Model, res *importer.Result) {
	m.Directory = res.Directory
	m.Bounds = res.Bounds
	m.textures = texture.NewCache(l.assets, l.assets.Resolver())
	m.Meshes = make([]*Mesh, 0, len(res.Meshes))
	for i := range res.Meshes {
		md := &res.Meshes[i]
		m.Meshes = append(m.Meshes, NewMesh(md, m.resolveTextures(md)))
	}
}

func (m *Model) resolveTextures(md *importer.MeshData) []texture.Texture {
	var out []texture.Texture
	for _, ref := range md.Textures {
		if t, ok := m.textures.Get(ref, m.Directory); ok {
			out = append(out, t)
		}
	}
	return out
}

// UsesTexture reports whether m has loaded the texture file at path.
func (m *Model) UsesTexture(path string) bool {
	key := assets.Key(path)
	for _, t := range m.textureLoaded() {
		if assets.Key(t.Path) == key {
			return true
		}
	}
	return false
}

func (m *Model) textureLoaded() []texture.Texture {
	if m.textures == nil {
		return nil
	}
	return m.textures.Loaded()
}
