package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/mini-engine/pkg/encoding"
)

// DefaultRoot is the directory every asset path is resolved under.
const DefaultRoot = "resources"

var (
	ErrUnsupportedExtension = errors.New("unsupported model format")
	ErrMissingFile          = errors.New("file does not exist")
)

// ModelExtensions lists the accepted model file extensions. Matching is
// exact, so ".OBJ" is rejected.
var ModelExtensions = []string{".obj", ".fbx", ".dae", ".3ds", ".ply", ".glb", ".gltf"}

// IsSupportedModel reports whether p ends in one of ModelExtensions.
func IsSupportedModel(p string) bool {
	ext := filepath.Ext(p)
	for _, e := range ModelExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolver maps user and asset-relative paths onto the resources root.
type Resolver struct {
	Root string
}

// NewResolver returns a Resolver for root, or DefaultRoot when root is empty.
func NewResolver(root string) Resolver {
	if root == "" {
		root = DefaultRoot
	}
	return Resolver{Root: filepath.ToSlash(filepath.Clean(root))}
}

func (r Resolver) prefix() string {
	return r.Root + "/"
}

// Model prepends the root to p unless p already starts with it.
func (r Resolver) Model(p string) string {
	p = filepath.ToSlash(p)
	if strings.HasPrefix(p, r.prefix()) {
		return p
	}
	return r.prefix() + p
}

// Texture resolves a texture reference found inside a model file. A bare
// file name is looked up next to the model; anything with a separator is
// taken relative to the root.
func (r Resolver) Texture(name, modelDir string) string {
	if !strings.ContainsAny(name, `/\`) {
		dir := filepath.ToSlash(modelDir)
		if !strings.HasPrefix(dir+"/", r.prefix()) {
			dir = r.prefix() + dir
		}
		return path.Join(dir, name)
	}
	return r.Model(encoding.SlashPath(name))
}

// ValidateModel checks the extension of p and then that the resolved file
// exists. It returns the resolved path.
func (r Resolver) ValidateModel(p string) (string, error) {
	if !IsSupportedModel(p) {
		return "", fmt.Errorf("%s: %w", p, ErrUnsupportedExtension)
	}
	full := r.Model(p)
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", full, ErrMissingFile)
		}
		return "", fmt.Errorf("stat %s: %w", full, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", full, ErrMissingFile)
	}
	return full, nil
}

// Key normalizes p for use as a cache or dedupe key: slash separators,
// cleaned, Unicode NFC.
func Key(p string) string {
	return norm.NFC.String(path.Clean(filepath.ToSlash(p)))
}
