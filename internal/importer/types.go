// Package importer turns model files into flat lists of triangle meshes
// ready for GPU upload. It does not touch OpenGL.
package importer

import "errors"

// DiffuseTexture tags texture references used as the diffuse map.
const DiffuseTexture = "texture_diffuse"

var (
	// ErrUnsupportedExtension is returned for a file with an unknown extension.
	ErrUnsupportedExtension = errors.New("importer: unsupported extension")
	// ErrNoBackend is returned for an accepted extension with no decoder.
	ErrNoBackend = errors.New("importer: no backend for format")
	// ErrEmptyModel is returned when a file decodes to zero triangles.
	ErrEmptyModel = errors.New("importer: model has no meshes")
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material holds the per-mesh shading constants.
type Material struct {
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
	HasTexture    bool
}

// TextureRef points at an image used by a mesh. Path is the reference as
// written in the model file. Data is set instead of a readable path when
// the image is embedded in the model (glb buffers).
type TextureRef struct {
	Path     string
	Type     string
	Data     []byte
	MimeType string
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns an inverted box that any point will grow.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o.
func (b *Bounds) Union(o Bounds) {
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Valid reports whether b contains at least one point.
func (b Bounds) Valid() bool {
	return b.Min[0] <= b.Max[0]
}

// MeshData is one triangle batch with a single material.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
	Textures []TextureRef
	Bounds   Bounds
}

// Result is everything decoded from one model file.
type Result struct {
	Path      string
	Directory string
	Meshes    []MeshData
	Bounds    Bounds
}

// VertexCount sums vertices over all meshes.
func (r *Result) VertexCount() int {
	n := 0
	for i := range r.Meshes {
		n += len(r.Meshes[i].Vertices)
	}
	return n
}

// TriangleCount sums triangles over all meshes.
func (r *Result) TriangleCount() int {
	n := 0
	for i := range r.Meshes {
		n += len(r.Meshes[i].Indices) / 3
	}
	return n
}

func (r *Result) finish() error {
	r.Bounds = EmptyBounds()
	kept := r.Meshes[:0]
	for _, m := range r.Meshes {
		if len(m.Indices) == 0 {
			continue
		}
		if !hasNormals(m.Vertices) {
			generateNormals(&m)
		}
		m.Bounds = EmptyBounds()
		for _, v := range m.Vertices {
			m.Bounds.Extend(v.Position)
		}
		r.Bounds.Union(m.Bounds)
		kept = append(kept, m)
	}
	r.Meshes = kept
	if len(r.Meshes) == 0 {
		return ErrEmptyModel
	}
	return nil
}
