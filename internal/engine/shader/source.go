package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source finds GLSL files on disk first and falls back to a built-in set,
// so edited shaders are picked up without rebuilding.
type Source struct {
	Dir      string
	Fallback fs.FS
}

// Read returns the contents of the named shader file and where it came from.
func (s Source) Read(name string) (string, string, error) {
	if s.Dir != "" {
		path := filepath.Join(s.Dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("reading shader %s: %w", path, err)
		}
	}
	if s.Fallback == nil {
		return "", "", fmt.Errorf("shader %s: %w", name, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(s.Fallback, name)
	if err != nil {
		return "", "", fmt.Errorf("built-in shader %s: %w", name, err)
	}
	return string(data), "built-in:" + name, nil
}

// Build reads and links a vertex/fragment pair.
func (s Source) Build(vertexName, fragmentName string) (*Program, error) {
	vs, _, err := s.Read(vertexName)
	if err != nil {
		return nil, err
	}
	fsrc, _, err := s.Read(fragmentName)
	if err != nil {
		return nil, err
	}
	p, err := NewProgram(vs, fsrc)
	if err != nil {
		return nil, fmt.Errorf("%s + %s: %w", vertexName, fragmentName, err)
	}
	return p, nil
}
