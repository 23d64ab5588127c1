// Package scene holds the editable lists of models and lights and mirrors
// them to JSON scene files.
package scene

import (
	"github.com/jinzhu/copier"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
)

// ModelLoader loads a model file. *model.Loader satisfies it.
type ModelLoader interface {
	Load(path string) (*model.Model, error)
}

// Scene is the in-memory scene graph: two flat, ordered lists.
type Scene struct {
	Models []*model.Model
	Lights []lighting.Light
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddLight appends l unless the scene already holds lighting.MaxLights.
func (s *Scene) AddLight(l lighting.Light) bool {
	if len(s.Lights) >= lighting.MaxLights {
		return false
	}
	s.Lights = append(s.Lights, l)
	return true
}

func (s *Scene) RemoveLight(i int) bool {
	if i < 0 || i >= len(s.Lights) {
		return false
	}
	s.Lights = append(s.Lights[:i], s.Lights[i+1:]...)
	return true
}

// DuplicateLight inserts a copy of light i right after it.
func (s *Scene) DuplicateLight(i int) bool {
	if i < 0 || i >= len(s.Lights) || len(s.Lights) >= lighting.MaxLights {
		return false
	}
	var dup lighting.Light
	if err := copier.Copy(&dup, &s.Lights[i]); err != nil {
		return false
	}
	s.Lights = append(s.Lights, lighting.Light{})
	copy(s.Lights[i+2:], s.Lights[i+1:])
	s.Lights[i+1] = dup
	return true
}

func (s *Scene) AddModel(m *model.Model) {
	s.Models = append(s.Models, m)
}

// RemoveModel destroys model i and drops it from the list.
func (s *Scene) RemoveModel(i int) bool {
	if i < 0 || i >= len(s.Models) {
		return false
	}
	s.Models[i].Destroy()
	s.Models = append(s.Models[:i], s.Models[i+1:]...)
	return true
}

// transform is the copyable part of a model.
type transform struct {
	Position    [3]float32
	Rotation    [3]float32
	ScaleFactor [3]float32
}

// DuplicateModel loads model i's file again and inserts it after i with
// the same transform.
func (s *Scene) DuplicateModel(i int, loader ModelLoader) (*model.Model, error) {
	if i < 0 || i >= len(s.Models) {
		return nil, ErrIndex
	}
	src := s.Models[i]
	dup, err := loader.Load(src.Path)
	if err != nil {
		return nil, err
	}

	var t transform
	if err := copier.Copy(&t, src); err != nil {
		dup.Destroy()
		return nil, err
	}
	if err := copier.Copy(dup, &t); err != nil {
		dup.Destroy()
		return nil, err
	}

	s.Models = append(s.Models, nil)
	copy(s.Models[i+2:], s.Models[i+1:])
	s.Models[i+1] = dup
	return dup, nil
}

// Clear destroys every model and drops every light.
func (s *Scene) Clear() {
	for _, m := range s.Models {
		m.Destroy()
	}
	s.Models = nil
	s.Lights = nil
}

// ModelsWithPath returns the models loaded from path, compared by
// normalized key.
func (s *Scene) ModelsWithPath(path string) []*model.Model {
	key := assets.Key(path)
	var out []*model.Model
	for _, m := range s.Models {
		if assets.Key(m.Path) == key {
			out = append(out, m)
		}
	}
	return out
}

// Index returns the position of m in the model list, or -1.
func (s *Scene) Index(m *model.Model) int {
	for i, other := range s.Models {
		if other == m {
			return i
		}
	}
	return -1
}

// Stats summarises the scene for overlays and the CLI.
type Stats struct {
	Models    int
	Meshes    int
	Vertices  int
	Triangles int
	Lights    int
}

func (s *Scene) Stats() Stats {
	st := Stats{Models: len(s.Models), Lights: len(s.Lights)}
	for _, m := range s.Models {
		st.Meshes += len(m.Meshes)
		st.Vertices += m.VertexCount()
		st.Triangles += m.TriangleCount()
	}
	return st
}
