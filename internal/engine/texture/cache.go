package texture

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/internal/logger"
)

// Source reads raw file contents. *assets.Manager satisfies it.
type Source interface {
	Load(path string) ([]byte, error)
}

// Texture is an uploaded image bound to a mesh.
type Texture struct {
	ID   uint32
	Type string
	Path string // resolved path, or a synthetic key for embedded images
}

// Cache deduplicates texture uploads within one model. Keys are the
// normalized resolved paths, so two meshes naming the same file share a
// handle.
type Cache struct {
	src      Source
	resolver assets.Resolver
	upload   func(*Pixels) uint32
	release  func(...uint32)
	loaded   map[string]Texture
	order    []Texture
}

// NewCache returns a cache that reads through src and resolves texture
// names with r.
func NewCache(src Source, r assets.Resolver) *Cache {
	return &Cache{
		src:      src,
		resolver: r,
		upload:   Upload,
		release:  Delete,
		loaded:   make(map[string]Texture),
	}
}

// Get returns the texture for ref, loading it on first use. Failed loads
// are logged, return false and are not remembered, matching a retry on the
// next reference.
func (c *Cache) Get(ref importer.TextureRef, modelDir string) (Texture, bool) {
	path := ref.Path
	if ref.Data == nil {
		path = c.resolver.Texture(ref.Path, modelDir)
	} else {
		path = modelDir + "#" + ref.Path
	}
	key := assets.Key(path)
	if t, ok := c.loaded[key]; ok {
		return t, true
	}

	var (
		p   *Pixels
		err error
	)
	if ref.Data != nil {
		p, err = Decode(ref.Data, ref.Path)
	} else {
		p, err = load(c.src, path)
	}
	if err != nil {
		logger.Warn("texture failed to load", zap.String("path", path), zap.Error(err))
		return Texture{}, false
	}

	id := c.upload(p)
	if id == 0 {
		logger.Warn("texture upload failed", zap.String("path", path))
		return Texture{}, false
	}
	logger.Debug("texture loaded", zap.String("path", path),
		zap.Int("width", p.Width), zap.Int("height", p.Height), zap.Int("channels", p.Channels))

	t := Texture{ID: id, Type: ref.Type, Path: path}
	c.loaded[key] = t
	c.order = append(c.order, t)
	return t, true
}

// Loaded returns every texture uploaded so far, in load order.
func (c *Cache) Loaded() []Texture {
	return c.order
}

// Release deletes all uploaded textures and empties the cache.
func (c *Cache) Release() {
	for _, t := range c.order {
		c.release(t.ID)
	}
	c.loaded = make(map[string]Texture)
	c.order = nil
}

func load(src Source, path string) (*Pixels, error) {
	data, err := src.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	if p.Width == 0 || p.Height == 0 {
		return nil, fmt.Errorf("%s: empty image", path)
	}
	return p, nil
}
