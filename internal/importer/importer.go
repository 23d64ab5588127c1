package importer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Backend decodes one family of model formats.
type Backend interface {
	Import(path string) (*Result, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(path string) (*Result, error)

func (f BackendFunc) Import(path string) (*Result, error) { return f(path) }

var backends = map[string]Backend{}

// accepted lists the extensions the editor lets through validation even
// though no Go decoder exists for them.
var accepted = map[string]bool{".dae": true, ".fbx": true, ".3ds": true, ".ply": true}

func init() {
	Register(BackendFunc(importOBJ), ".obj")
	Register(BackendFunc(importGLTF), ".gltf", ".glb")
}

// Register installs b for the given lowercase extensions, replacing any
// previous backend.
func Register(b Backend, exts ...string) {
	for _, ext := range exts {
		backends[ext] = b
	}
}

// Formats returns the extensions with a registered backend, sorted.
func Formats() []string {
	out := make([]string, 0, len(backends))
	for ext := range backends {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Import decodes the model at path. Faces are triangulated and texture
// coordinates flipped vertically so images upload top row first.
func Import(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	b, ok := backends[ext]
	if !ok {
		if accepted[ext] {
			return nil, fmt.Errorf("%s: %w %s", path, ErrNoBackend, ext)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedExtension)
	}

	res, err := b.Import(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	res.Path = path
	res.Directory = directoryOf(path)
	if err := res.finish(); err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return res, nil
}

// directoryOf returns everything before the last separator, or "." when
// there is none.
func directoryOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return "."
	}
	return path[:i]
}

func flipV(uv [2]float32) [2]float32 {
	return [2]float32{uv[0], 1 - uv[1]}
}
