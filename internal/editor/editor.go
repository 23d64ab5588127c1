package editor

import (
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/camera"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
	"github.com/Faultbox/mini-engine/internal/engine/picking"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/internal/watch"
	"github.com/Faultbox/mini-engine/pkg/math"
)

// Loader loads and reloads models. *model.Loader satisfies it.
type Loader interface {
	scene.ModelLoader
	Reload(m *model.Model) error
}

// Options wires an Editor to its services. Invalidate and ReloadShaders
// may be nil.
type Options struct {
	Loader        Loader
	Store         scene.Store
	SceneName     string
	Invalidate    func(path string)
	ReloadShaders func() error
}

// Editor owns the scene being edited and every action the panels can
// trigger. It holds no GL or ImGui state.
type Editor struct {
	Scene  *scene.Scene
	Camera *camera.FlyCamera
	Cursor *Cursor

	ImportPath string
	SceneName  string
	Selected   *model.Model

	// openSelected asks the model list to expand the selected node once.
	openSelected bool

	loader        Loader
	store         scene.Store
	invalidate    func(string)
	reloadShaders func() error
}

// New returns an editor with the starting light and a camera at (0, 0, 3).
func New(opts Options) *Editor {
	e := &Editor{
		Scene:         scene.New(),
		Camera:        camera.NewFlyCamera(math.Vec3{Z: 3}),
		Cursor:        NewCursor(),
		SceneName:     opts.SceneName,
		loader:        opts.Loader,
		store:         opts.Store,
		invalidate:    opts.Invalidate,
		reloadShaders: opts.ReloadShaders,
	}
	e.Scene.AddLight(lighting.Initial())
	return e
}

// AddLight appends a default light. It does nothing at the light cap.
func (e *Editor) AddLight() bool {
	if !e.Scene.AddLight(lighting.Default()) {
		logger.Warn("light limit reached", zap.Int("max", lighting.MaxLights))
		return false
	}
	return true
}

func (e *Editor) DuplicateLight(i int) bool {
	if !e.Scene.DuplicateLight(i) {
		logger.Warn("light not duplicated", zap.Int("index", i), zap.Int("count", len(e.Scene.Lights)))
		return false
	}
	return true
}

func (e *Editor) DeleteLight(i int) bool {
	return e.Scene.RemoveLight(i)
}

// ImportModel validates and loads the path in the import field. An empty
// field does nothing. The field is cleared on success; failures are logged
// and leave it as typed.
func (e *Editor) ImportModel() error {
	p := strings.TrimSpace(e.ImportPath)
	if p == "" {
		return nil
	}
	full, err := e.store.Resolver.ValidateModel(p)
	if err != nil {
		logger.Error("model import failed", zap.String("path", p), zap.Error(err))
		return err
	}
	m, err := e.loader.Load(full)
	if err != nil {
		logger.Error("model import failed", zap.String("path", full), zap.Error(err))
		return err
	}
	e.Scene.AddModel(m)
	e.ImportPath = ""
	return nil
}

// SetImportPath fills the import field from a dialog selection. Files
// outside the resources root are refused since scene records are
// root-relative.
func (e *Editor) SetImportPath(selected string) bool {
	rel, ok := RelativeToRoot(selected, e.store.Resolver.Root)
	if !ok {
		logger.Warn("model must live under the resources directory",
			zap.String("path", selected), zap.String("root", e.store.Resolver.Root))
		return false
	}
	e.ImportPath = rel
	return true
}

// SetSceneFile fills the scene name from a dialog selection inside the
// saves directory.
func (e *Editor) SetSceneFile(selected string) bool {
	rel, ok := RelativeToRoot(selected, e.store.Dir)
	if !ok {
		logger.Warn("scene file must live under the saves directory",
			zap.String("path", selected), zap.String("dir", e.store.Dir))
		return false
	}
	e.SceneName = rel
	return true
}

// SavesDir is the directory scene names are relative to.
func (e *Editor) SavesDir() string {
	return e.store.Dir
}

// ResourcesDir is the directory model paths are relative to.
func (e *Editor) ResourcesDir() string {
	return e.store.Resolver.Root
}

// RelativeToRoot returns p relative to root with slash separators, or false
// when p is not inside root.
func RelativeToRoot(p, root string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absP)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (e *Editor) DuplicateModel(i int) error {
	if _, err := e.Scene.DuplicateModel(i, e.loader); err != nil {
		logger.Error("model duplicate failed", zap.Int("index", i), zap.Error(err))
		return err
	}
	return nil
}

// DeleteModel destroys model i. Deleting the selected model clears the
// selection.
func (e *Editor) DeleteModel(i int) bool {
	if i >= 0 && i < len(e.Scene.Models) && e.Scene.Models[i] == e.Selected {
		e.Selected = nil
	}
	return e.Scene.RemoveModel(i)
}

func (e *Editor) SaveScene() error {
	return e.store.Save(e.Scene, strings.TrimSpace(e.SceneName))
}

// LoadScene replaces the scene from the named file. The selection is
// dropped once the file has been read.
func (e *Editor) LoadScene() (scene.Result, error) {
	prev := e.Selected
	e.Selected = nil
	res, err := e.store.Load(e.Scene, strings.TrimSpace(e.SceneName), e.loader)
	if err != nil && e.Scene.Index(prev) >= 0 {
		e.Selected = prev
	}
	return res, err
}

// Select marks model i as selected and asks the list to open its node.
// A negative index clears the selection.
func (e *Editor) Select(i int) {
	if i < 0 || i >= len(e.Scene.Models) {
		e.Selected = nil
		return
	}
	e.Selected = e.Scene.Models[i]
	e.openSelected = true
}

// PickAt selects the model under a viewport pixel. It returns the index
// picked, or -1.
func (e *Editor) PickAt(x, y, width, height float32) int {
	ray := picking.ScreenToRay(x, y, width, height,
		e.Camera.ViewMatrix(), e.Camera.Projection(width, height))

	boxes := make([]importer.Bounds, len(e.Scene.Models))
	for i, m := range e.Scene.Models {
		boxes[i] = m.WorldBounds()
	}
	i := picking.Nearest(ray, boxes)
	e.Select(i)
	if i >= 0 {
		logger.Debug("model selected", zap.Int("index", i), zap.String("path", e.Scene.Models[i].Path))
	}
	return i
}

// TakeOpenRequest reports whether m's node should be forced open this
// frame, consuming the request.
func (e *Editor) TakeOpenRequest(m *model.Model) bool {
	if e.openSelected && m == e.Selected {
		e.openSelected = false
		return true
	}
	return false
}

// MoveKeys is the WASD state for one frame.
type MoveKeys struct {
	Forward, Backward, Left, Right bool
}

// Move applies keyboard movement in camera mode.
func (e *Editor) Move(k MoveKeys, dt float32) {
	if !e.Cursor.Captured() {
		return
	}
	if k.Forward {
		e.Camera.ProcessKeyboard(camera.Forward, dt)
	}
	if k.Backward {
		e.Camera.ProcessKeyboard(camera.Backward, dt)
	}
	if k.Left {
		e.Camera.ProcessKeyboard(camera.Left, dt)
	}
	if k.Right {
		e.Camera.ProcessKeyboard(camera.Right, dt)
	}
}

// Look feeds an absolute cursor position to the camera in camera mode.
func (e *Editor) Look(x, y float32) {
	if dx, dy, ok := e.Cursor.MouseOffset(x, y); ok {
		e.Camera.ProcessMouseMovement(dx, dy, true)
	}
}

// HandleChange reacts to a file watcher event.
func (e *Editor) HandleChange(ev watch.Event) {
	switch ev.Kind {
	case watch.Shader:
		if e.reloadShaders == nil {
			return
		}
		if err := e.reloadShaders(); err != nil {
			logger.Error("shader reload failed", zap.String("path", ev.Path), zap.Error(err))
			return
		}
		logger.Info("shaders reloaded", zap.String("path", ev.Path))

	case watch.Model:
		e.invalidatePath(ev.Path)
		e.reload(e.Scene.ModelsWithPath(ev.Path), ev)

	case watch.Material:
		e.invalidatePath(ev.Path)
		e.reload(e.modelsIn(filepath.Dir(ev.Path), ""), ev)

	case watch.Texture:
		e.invalidatePath(ev.Path)
		e.reload(e.modelsIn(filepath.Dir(ev.Path), ev.Path), ev)
	}
}

func (e *Editor) invalidatePath(p string) {
	if e.invalidate != nil {
		e.invalidate(p)
	}
}

// modelsIn returns the models loaded from dir, plus those that use the
// texture file when one is given.
func (e *Editor) modelsIn(dir, texture string) []*model.Model {
	key := assets.Key(dir)
	var out []*model.Model
	for _, m := range e.Scene.Models {
		if assets.Key(m.Directory) == key || (texture != "" && m.UsesTexture(texture)) {
			out = append(out, m)
		}
	}
	return out
}

func (e *Editor) reload(models []*model.Model, ev watch.Event) {
	var errs []error
	for _, m := range models {
		if err := e.loader.Reload(m); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("hot reload failed", zap.String("path", ev.Path), zap.Stringer("kind", ev.Kind), zap.Error(err))
		return
	}
	if len(models) > 0 {
		logger.Info("hot reloaded", zap.String("path", ev.Path), zap.Stringer("kind", ev.Kind), zap.Int("models", len(models)))
	}
}
