package editor

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/internal/watch"
)

type fakeLoader struct {
	loaded   []string
	reloaded []string
	fail     error
}

func (f *fakeLoader) Load(p string) (*model.Model, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.loaded = append(f.loaded, p)
	m := model.New(p)
	m.Directory = path.Dir(p)
	m.Bounds = importer.Bounds{Min: [3]float32{-0.5, -0.5, -0.5}, Max: [3]float32{0.5, 0.5, 0.5}}
	return m, nil
}

func (f *fakeLoader) Reload(m *model.Model) error {
	f.reloaded = append(f.reloaded, m.Path)
	return nil
}

type fixture struct {
	editor      *Editor
	loader      *fakeLoader
	root        string
	invalidated []string
	shaders     int
}

func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "resources")
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("v 0 0 0\n"), 0644))
	}

	fx := &fixture{loader: &fakeLoader{}, root: filepath.ToSlash(root)}
	fx.editor = New(Options{
		Loader:        fx.loader,
		Store:         scene.NewStore(filepath.Join(dir, "saves"), assets.NewResolver(root)),
		SceneName:     "test.json",
		Invalidate:    func(p string) { fx.invalidated = append(fx.invalidated, p) },
		ReloadShaders: func() error { fx.shaders++; return nil },
	})
	return fx
}

func TestNewEditorStartsWithInitialLight(t *testing.T) {
	fx := newFixture(t)
	require.Len(t, fx.editor.Scene.Lights, 1)
	assert.Equal(t, lighting.Initial(), fx.editor.Scene.Lights[0])
	assert.True(t, fx.editor.Cursor.Captured())
}

func TestLightActions(t *testing.T) {
	e := newFixture(t).editor

	for len(e.Scene.Lights) < lighting.MaxLights {
		require.True(t, e.AddLight())
	}
	assert.False(t, e.AddLight(), "add is a no-op at the cap")
	assert.False(t, e.DuplicateLight(0), "duplicate respects the cap")

	require.True(t, e.DeleteLight(0))
	assert.Len(t, e.Scene.Lights, lighting.MaxLights-1)
	assert.False(t, e.DeleteLight(42))

	e.Scene.Lights[1].Intensity = 7
	require.True(t, e.DuplicateLight(1))
	assert.Equal(t, float32(7), e.Scene.Lights[2].Intensity)
}

func TestImportModel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "cube.obj", nil},
		{"root prefixed", "", nil},
		{"bad extension", "notes.txt", assets.ErrUnsupportedExtension},
		{"upper case extension", "CUBE.OBJ", assets.ErrUnsupportedExtension},
		{"missing file", "ghost.obj", assets.ErrMissingFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, "cube.obj")
			input := tt.input
			if input == "" {
				input = fx.root + "/cube.obj"
			}
			fx.editor.ImportPath = input

			err := fx.editor.ImportModel()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, input, fx.editor.ImportPath, "field kept on failure")
				assert.Empty(t, fx.editor.Scene.Models)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, fx.editor.ImportPath, "field cleared on success")
			require.Len(t, fx.editor.Scene.Models, 1)
			assert.Equal(t, []string{fx.root + "/cube.obj"}, fx.loader.loaded)
		})
	}
}

func TestImportModelEmptyFieldDoesNothing(t *testing.T) {
	require.NoError(t, logger.InitWithOptions(logger.Options{Level: "debug", ConsoleLines: 8}))

	for _, input := range []string{"", "   "} {
		fx := newFixture(t, "cube.obj")
		fx.editor.ImportPath = input
		seq := logger.Console.Seq()

		assert.NoError(t, fx.editor.ImportModel())
		assert.Empty(t, fx.loader.loaded)
		assert.Empty(t, fx.editor.Scene.Models)
		assert.Equal(t, seq, logger.Console.Seq(), "nothing logged for %q", input)
	}
}

func TestImportModelLoaderFailure(t *testing.T) {
	fx := newFixture(t, "cube.obj")
	fx.loader.fail = errors.New("corrupt")
	fx.editor.ImportPath = "cube.obj"

	assert.Error(t, fx.editor.ImportModel())
	assert.Equal(t, "cube.obj", fx.editor.ImportPath)
	assert.Empty(t, fx.editor.Scene.Models)
}

func TestRelativeToRoot(t *testing.T) {
	root := t.TempDir()

	rel, ok := RelativeToRoot(filepath.Join(root, "props", "chair.obj"), root)
	assert.True(t, ok)
	assert.Equal(t, "props/chair.obj", rel)

	_, ok = RelativeToRoot(filepath.Join(filepath.Dir(root), "elsewhere.obj"), root)
	assert.False(t, ok)

	_, ok = RelativeToRoot(root, root)
	assert.False(t, ok)
}

func TestSetImportPath(t *testing.T) {
	fx := newFixture(t)
	assert.True(t, fx.editor.SetImportPath(fx.root+"/a/b.gltf"))
	assert.Equal(t, "a/b.gltf", fx.editor.ImportPath)

	assert.False(t, fx.editor.SetImportPath("/definitely/elsewhere.obj"))
	assert.Equal(t, "a/b.gltf", fx.editor.ImportPath)
}

func TestModelActions(t *testing.T) {
	fx := newFixture(t, "cube.obj")
	e := fx.editor
	e.ImportPath = "cube.obj"
	require.NoError(t, e.ImportModel())
	e.Scene.Models[0].Position = [3]float32{1, 2, 3}

	require.NoError(t, e.DuplicateModel(0))
	require.Len(t, e.Scene.Models, 2)
	assert.Equal(t, [3]float32{1, 2, 3}, e.Scene.Models[1].Position)
	assert.NotEqual(t, e.Scene.Models[0].ID, e.Scene.Models[1].ID)

	assert.Error(t, e.DuplicateModel(9))

	e.Select(1)
	require.True(t, e.DeleteModel(1))
	assert.Nil(t, e.Selected, "deleting the selected model clears selection")
	assert.Len(t, e.Scene.Models, 1)
}

func TestSaveAndLoadScene(t *testing.T) {
	fx := newFixture(t, "cube.obj")
	e := fx.editor
	e.ImportPath = "cube.obj"
	require.NoError(t, e.ImportModel())
	e.Scene.Models[0].ScaleFactor = [3]float32{2, 2, 2}
	e.AddLight()

	require.NoError(t, e.SaveScene())

	e.Select(0)
	e.Scene.Clear()
	res, err := e.LoadScene()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Models)
	assert.Equal(t, 2, res.Lights)
	assert.Nil(t, e.Selected)
	assert.Equal(t, [3]float32{2, 2, 2}, e.Scene.Models[0].ScaleFactor)
}

func TestLoadMissingSceneKeepsState(t *testing.T) {
	fx := newFixture(t, "cube.obj")
	e := fx.editor
	e.ImportPath = "cube.obj"
	require.NoError(t, e.ImportModel())
	e.Select(0)

	e.SceneName = "nope.json"
	_, err := e.LoadScene()
	assert.Error(t, err)
	assert.Len(t, e.Scene.Models, 1)
	assert.Same(t, e.Scene.Models[0], e.Selected)
}

func TestSaveSceneEmptyName(t *testing.T) {
	e := newFixture(t).editor
	e.SceneName = "  "
	assert.ErrorIs(t, e.SaveScene(), scene.ErrEmptyName)
}

func TestPickAt(t *testing.T) {
	fx := newFixture(t, "a.obj", "b.obj")
	e := fx.editor
	for _, p := range []string{"a.obj", "b.obj"} {
		e.ImportPath = p
		require.NoError(t, e.ImportModel())
	}
	e.Scene.Models[0].Position = [3]float32{0, 0, -5}

	// camera at z=3 looking down -Z; b sits in front of a
	assert.Equal(t, 1, e.PickAt(400, 300, 800, 600))
	assert.Same(t, e.Scene.Models[1], e.Selected)

	assert.True(t, e.TakeOpenRequest(e.Scene.Models[1]))
	assert.False(t, e.TakeOpenRequest(e.Scene.Models[1]), "open request is one-shot")

	assert.Equal(t, -1, e.PickAt(0, 0, 800, 600))
	assert.Nil(t, e.Selected)
}

func TestMoveOnlyInCameraMode(t *testing.T) {
	e := newFixture(t).editor
	start := e.Camera.Position

	e.Move(MoveKeys{Forward: true}, 1)
	assert.Less(t, e.Camera.Position.Z, start.Z)

	e.Cursor.Toggle()
	moved := e.Camera.Position
	e.Move(MoveKeys{Right: true}, 1)
	assert.Equal(t, moved, e.Camera.Position)
}

func TestLookIgnoresFirstSample(t *testing.T) {
	e := newFixture(t).editor
	yaw := e.Camera.Yaw

	e.Look(500, 500)
	assert.Equal(t, yaw, e.Camera.Yaw)

	e.Look(510, 500)
	assert.InDelta(t, yaw+1, e.Camera.Yaw, 1e-4)
}

func TestHandleChange(t *testing.T) {
	fx := newFixture(t, "cube.obj", "props/chair.obj")
	e := fx.editor
	for _, p := range []string{"cube.obj", "props/chair.obj", "cube.obj"} {
		e.ImportPath = p
		require.NoError(t, e.ImportModel())
	}

	e.HandleChange(watch.Event{Path: fx.root + "/cube.obj", Kind: watch.Model})
	assert.Equal(t, []string{fx.root + "/cube.obj", fx.root + "/cube.obj"}, fx.loader.reloaded)
	assert.Equal(t, []string{fx.root + "/cube.obj"}, fx.invalidated)

	fx.loader.reloaded = nil
	e.HandleChange(watch.Event{Path: fx.root + "/props/wood.png", Kind: watch.Texture})
	assert.Equal(t, []string{fx.root + "/props/chair.obj"}, fx.loader.reloaded)

	fx.loader.reloaded = nil
	e.HandleChange(watch.Event{Path: fx.root + "/props/chair.mtl", Kind: watch.Material})
	assert.Equal(t, []string{fx.root + "/props/chair.obj"}, fx.loader.reloaded)

	e.HandleChange(watch.Event{Path: "shaders/fragment_shader.glsl", Kind: watch.Shader})
	assert.Equal(t, 1, fx.shaders)
}

func TestSetSceneFile(t *testing.T) {
	e := newFixture(t).editor
	assert.True(t, e.SetSceneFile(filepath.Join(e.SavesDir(), "levels", "one.json")))
	assert.Equal(t, "levels/one.json", e.SceneName)

	assert.False(t, e.SetSceneFile(filepath.Join(e.ResourcesDir(), "one.json")))
	assert.Equal(t, "levels/one.json", e.SceneName)
}
