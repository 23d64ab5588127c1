package scene

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/logger"
)

// DefaultDir is where scene files live unless configured otherwise.
const DefaultDir = "saves"

// Store saves and loads scenes by file name inside one directory.
type Store struct {
	Dir      string
	Resolver assets.Resolver
}

// NewStore returns a store for dir (DefaultDir when empty) validating
// model paths with r.
func NewStore(dir string, r assets.Resolver) Store {
	if dir == "" {
		dir = DefaultDir
	}
	return Store{Dir: dir, Resolver: r}
}

// Path returns the file path for a scene name.
func (st Store) Path(name string) string {
	return filepath.Join(st.Dir, name)
}

// Save writes s to <dir>/<name>. Errors are logged and returned.
func (st Store) Save(s *Scene, name string) error {
	if name == "" {
		logger.Error("scene save failed", zap.Error(ErrEmptyName))
		return ErrEmptyName
	}
	path := st.Path(name)
	if err := WriteFile(path, s.Snapshot()); err != nil {
		logger.Error("scene save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("scene saved", zap.String("path", path),
		zap.Int("models", len(s.Models)), zap.Int("lights", len(s.Lights)))
	return nil
}

// Result reports what a Load kept and skipped.
type Result struct {
	Models  int
	Lights  int
	Skipped []error
}

// Load replaces the contents of s with <dir>/<name>. A file that cannot be
// read or parsed leaves s untouched. Model records that fail validation or
// loading are logged and skipped.
func (st Store) Load(s *Scene, name string, loader ModelLoader) (Result, error) {
	if name == "" {
		logger.Error("scene load failed", zap.Error(ErrEmptyName))
		return Result{}, ErrEmptyName
	}
	path := st.Path(name)
	f, err := ReadFile(path)
	if err != nil {
		logger.Error("scene load failed", zap.String("path", path), zap.Error(err))
		return Result{}, err
	}

	s.Clear()
	var res Result
	for i, rec := range f.Models {
		full, err := st.Resolver.ValidateModel(rec.Path)
		if err == nil {
			err = loadRecord(s, rec, full, loader)
		}
		if err != nil {
			err = fmt.Errorf("model %d: %w", i, err)
			logger.Warn("skipping scene model", zap.String("path", rec.Path), zap.Error(err))
			res.Skipped = append(res.Skipped, err)
			continue
		}
		res.Models++
	}
	for _, rec := range f.Lights {
		s.Lights = append(s.Lights, rec.Light())
	}
	res.Lights = len(s.Lights)

	logger.Info("scene loaded", zap.String("path", path),
		zap.Int("models", res.Models), zap.Int("skipped", len(res.Skipped)), zap.Int("lights", res.Lights))
	return res, nil
}

func loadRecord(s *Scene, rec ModelRecord, path string, loader ModelLoader) error {
	m, err := loader.Load(path)
	if err != nil {
		return err
	}
	rec.Apply(m)
	s.AddModel(m)
	return nil
}
