// Package watch reports debounced changes to model, texture and shader
// files so the editor can reload them.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/logger"
)

// DefaultDebounce groups the burst of writes editors and exporters emit.
const DefaultDebounce = 250 * time.Millisecond

// Kind tells the editor what to reload.
type Kind int

const (
	Model Kind = iota
	Material
	Texture
	Shader
)

func (k Kind) String() string {
	switch k {
	case Model:
		return "model"
	case Material:
		return "material"
	case Texture:
		return "texture"
	case Shader:
		return "shader"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one settled change.
type Event struct {
	Path string
	Kind Kind
}

var textureExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tga": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true, ".gif": true,
}

// Classify maps a file name to the kind of reload it needs.
func Classify(path string) (Kind, bool) {
	if assets.IsSupportedModel(path) {
		return Model, true
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".mtl" || ext == ".bin":
		return Material, true
	case ext == ".glsl" || ext == ".vert" || ext == ".frag":
		return Shader, true
	case textureExts[ext]:
		return Texture, true
	}
	return 0, false
}

// Watcher wraps fsnotify with recursive directory registration and
// per-path debouncing.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan Event

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a watcher. A zero debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fw,
		debounce: debounce,
		events:   make(chan Event, 64),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Events delivers settled changes. The channel is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// AddRecursive watches dir and every directory below it. A missing dir is
// not an error.
func (w *Watcher) AddRecursive(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("watch: directory missing", zap.String("dir", dir))
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Start runs the event loop in a goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", zap.Error(err))
			}
		}
	}()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.AddRecursive(ev.Name); err != nil {
				logger.Warn("watch: adding directory failed", zap.String("dir", ev.Name), zap.Error(err))
			}
			return
		}
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return
	}
	kind, ok := Classify(ev.Name)
	if !ok {
		return
	}
	w.schedule(Event{Path: filepath.ToSlash(ev.Name), Kind: kind})
}

func (w *Watcher) schedule(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.timers[ev.Path]; ok {
		t.Stop()
	}
	w.timers[ev.Path] = time.AfterFunc(w.debounce, func() { w.emit(ev) })
}

func (w *Watcher) emit(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	delete(w.timers, ev.Path)
	select {
	case w.events <- ev:
		logger.Debug("file changed", zap.String("path", ev.Path), zap.Stringer("kind", ev.Kind))
	default:
		logger.Warn("watch: event dropped, queue full", zap.String("path", ev.Path))
	}
}

// Close stops the loop, cancels pending timers and closes Events.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	close(w.events)
	return err
}
