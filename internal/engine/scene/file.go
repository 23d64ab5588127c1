package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
)

var (
	ErrIndex     = errors.New("scene: index out of range")
	ErrEmptyName = errors.New("scene: empty file name")
)

// ModelRecord is one model entry of a scene file.
type ModelRecord struct {
	Path        string     `json:"path"`
	Position    [3]float32 `json:"position"`
	Rotation    [3]float32 `json:"rotation"`
	ScaleFactor [3]float32 `json:"scaleFactor"`
}

// LightRecord is one light entry of a scene file.
type LightRecord struct {
	Position  [3]float32 `json:"position"`
	Rotation  [3]float32 `json:"rotation"`
	Scale     [3]float32 `json:"scale"`
	Color     [3]float32 `json:"color"`
	Intensity float32    `json:"intensity"`
}

// File is the on-disk scene document.
type File struct {
	Models []ModelRecord `json:"models"`
	Lights []LightRecord `json:"lights"`
}

// Snapshot copies the scene into a File.
func (s *Scene) Snapshot() *File {
	f := &File{
		Models: make([]ModelRecord, 0, len(s.Models)),
		Lights: make([]LightRecord, 0, len(s.Lights)),
	}
	for _, m := range s.Models {
		f.Models = append(f.Models, ModelRecord{
			Path:        m.Path,
			Position:    m.Position,
			Rotation:    m.Rotation,
			ScaleFactor: m.ScaleFactor,
		})
	}
	for _, l := range s.Lights {
		f.Lights = append(f.Lights, LightRecord(l))
	}
	return f
}

// Light converts the record back to a light.
func (r LightRecord) Light() lighting.Light {
	return lighting.Light(r)
}

// Apply copies the record transform onto m.
func (r ModelRecord) Apply(m *model.Model) {
	m.Position = r.Position
	m.Rotation = r.Rotation
	m.ScaleFactor = r.ScaleFactor
}

// ReadFile parses a scene file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	return &f, nil
}

// WriteFile writes f with four space indentation, creating parent
// directories.
func WriteFile(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene %s: %w", path, err)
	}
	return nil
}

// Starter returns a scene document holding only the initial light.
func Starter() *File {
	return &File{
		Models: []ModelRecord{},
		Lights: []LightRecord{LightRecord(lighting.Initial())},
	}
}

// Problem is a model record that Load would skip.
type Problem struct {
	Index int
	Path  string
	Err   error
}

// Validate checks every model record's extension and file without loading
// anything.
func (f *File) Validate(r assets.Resolver) []Problem {
	var out []Problem
	for i, rec := range f.Models {
		if _, err := r.ValidateModel(rec.Path); err != nil {
			out = append(out, Problem{Index: i, Path: rec.Path, Err: err})
		}
	}
	return out
}
