package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
)

type fakeLoader struct {
	loaded []string
	fail   map[string]error
}

func (f *fakeLoader) Load(path string) (*model.Model, error) {
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	f.loaded = append(f.loaded, path)
	return model.New(path), nil
}

// fixture creates a resources root with the given empty files and a store
// writing into a sibling saves directory.
func fixture(t *testing.T, files ...string) Store {
	t.Helper()
	root := t.TempDir()
	res := filepath.Join(root, "resources")
	for _, f := range files {
		p := filepath.Join(res, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("v 0 0 0\n"), 0644))
	}
	return NewStore(filepath.Join(root, "saves"), assets.NewResolver(res))
}

func TestAddLightCap(t *testing.T) {
	s := New()
	for i := 0; i < lighting.MaxLights; i++ {
		require.True(t, s.AddLight(lighting.Default()))
	}
	assert.False(t, s.AddLight(lighting.Default()))
	assert.Len(t, s.Lights, lighting.MaxLights)
}

func TestRemoveLight(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		l := lighting.Default()
		l.Intensity = float32(i)
		s.AddLight(l)
	}
	assert.True(t, s.RemoveLight(1))
	assert.Equal(t, []float32{0, 2}, []float32{s.Lights[0].Intensity, s.Lights[1].Intensity})
	assert.False(t, s.RemoveLight(5))
	assert.False(t, s.RemoveLight(-1))
}

func TestDuplicateLight(t *testing.T) {
	s := New()
	a := lighting.Initial()
	a.Color = [3]float32{1, 0, 0}
	s.AddLight(a)
	s.AddLight(lighting.Default())

	require.True(t, s.DuplicateLight(0))
	require.Len(t, s.Lights, 3)
	assert.Equal(t, a, s.Lights[1], "copy goes right after the source")
	assert.Equal(t, lighting.Default(), s.Lights[2])

	s.Lights[1].Position[0] = 99
	assert.NotEqual(t, s.Lights[0].Position, s.Lights[1].Position, "copies are independent")
}

func TestDuplicateLightRespectsCap(t *testing.T) {
	s := New()
	for i := 0; i < lighting.MaxLights; i++ {
		s.AddLight(lighting.Default())
	}
	assert.False(t, s.DuplicateLight(0))
	assert.False(t, New().DuplicateLight(0))
}

func TestModelList(t *testing.T) {
	s := New()
	a, b := model.New("resources/a.obj"), model.New("resources/b.obj")
	s.AddModel(a)
	s.AddModel(b)

	assert.Equal(t, 1, s.Index(b))
	assert.Equal(t, []*model.Model{a}, s.ModelsWithPath("resources/./a.obj"))

	assert.True(t, s.RemoveModel(0))
	assert.Equal(t, []*model.Model{b}, s.Models)
	assert.Equal(t, -1, s.Index(a))
	assert.False(t, s.RemoveModel(3))
}

func TestDuplicateModel(t *testing.T) {
	s := New()
	src := model.New("resources/a.obj")
	src.Position = [3]float32{1, 2, 3}
	src.Rotation = [3]float32{0, 90, 0}
	src.ScaleFactor = [3]float32{2, 2, 2}
	s.AddModel(src)
	s.AddModel(model.New("resources/b.obj"))

	loader := &fakeLoader{}
	dup, err := s.DuplicateModel(0, loader)
	require.NoError(t, err)
	require.Len(t, s.Models, 3)
	assert.Same(t, dup, s.Models[1])
	assert.Equal(t, src.Position, dup.Position)
	assert.Equal(t, src.Rotation, dup.Rotation)
	assert.Equal(t, src.ScaleFactor, dup.ScaleFactor)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, []string{"resources/a.obj"}, loader.loaded)

	_, err = s.DuplicateModel(9, loader)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestClearAndStats(t *testing.T) {
	s := New()
	s.AddModel(model.New("a.obj"))
	s.AddLight(lighting.Default())
	assert.Equal(t, Stats{Models: 1, Lights: 1}, s.Stats())

	s.Clear()
	assert.Empty(t, s.Models)
	assert.Empty(t, s.Lights)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := fixture(t, "cube.obj", "models/ship.glb")

	s := New()
	cube := model.New(st.Resolver.Model("cube.obj"))
	cube.Position = [3]float32{0.1, -2.5, 3.333}
	cube.Rotation = [3]float32{10, 20, 30}
	cube.ScaleFactor = [3]float32{0.5, 1, 7.25}
	ship := model.New(st.Resolver.Model("models/ship.glb"))
	s.AddModel(cube)
	s.AddModel(ship)

	warm := lighting.Initial()
	warm.Color = [3]float32{1, 0.8, 0.6}
	warm.Intensity = 3.7
	s.AddLight(warm)
	s.AddLight(lighting.Default())

	require.NoError(t, st.Save(s, "round.json"))

	loaded := New()
	loader := &fakeLoader{}
	res, err := st.Load(loaded, "round.json", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Models)
	assert.Equal(t, 2, res.Lights)
	assert.Empty(t, res.Skipped)

	require.Len(t, loaded.Models, 2)
	for i, want := range s.Models {
		got := loaded.Models[i]
		assert.Equal(t, want.Position, got.Position)
		assert.Equal(t, want.Rotation, got.Rotation)
		assert.Equal(t, want.ScaleFactor, got.ScaleFactor)
	}
	assert.Equal(t, s.Lights, loaded.Lights)
	assert.Equal(t, s.Snapshot(), loaded.Snapshot())
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	st := fixture(t)
	s := New()
	s.AddLight(lighting.Initial())
	require.NoError(t, st.Save(s, "indent.json"))

	data, err := os.ReadFile(st.Path("indent.json"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "\n    \"models\": []")
	assert.Contains(t, text, "\n    \"lights\": [")
	assert.Contains(t, text, "\"intensity\": 1")
	assert.True(t, strings.HasPrefix(text, "{\n"))
}

func TestSaveEmptyName(t *testing.T) {
	st := fixture(t)
	assert.ErrorIs(t, st.Save(New(), ""), ErrEmptyName)
}

func TestLoadSkipsBadModels(t *testing.T) {
	st := fixture(t, "good.obj", "broken.obj")
	f := &File{
		Models: []ModelRecord{
			{Path: "good.obj", ScaleFactor: [3]float32{1, 1, 1}},
			{Path: "missing.obj"},
			{Path: "notes.txt"},
			{Path: "good.OBJ"},
			{Path: "broken.obj"},
		},
		Lights: make([]LightRecord, 12),
	}
	require.NoError(t, WriteFile(st.Path("mixed.json"), f))

	broken := st.Resolver.Model("broken.obj")
	loader := &fakeLoader{fail: map[string]error{broken: errors.New("importer exploded")}}
	s := New()
	res, err := st.Load(s, "mixed.json", loader)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Models)
	assert.Len(t, res.Skipped, 4)
	assert.ErrorIs(t, res.Skipped[0], assets.ErrMissingFile)
	assert.ErrorIs(t, res.Skipped[1], assets.ErrUnsupportedExtension)
	assert.ErrorIs(t, res.Skipped[2], assets.ErrUnsupportedExtension)
	assert.Contains(t, res.Skipped[3].Error(), "importer exploded")

	require.Len(t, s.Models, 1)
	assert.Equal(t, st.Resolver.Model("good.obj"), s.Models[0].Path)
	assert.Len(t, s.Lights, 12, "all lights restored")
}

func TestLoadFailureKeepsScene(t *testing.T) {
	st := fixture(t)
	require.NoError(t, os.MkdirAll(st.Dir, 0755))
	require.NoError(t, os.WriteFile(st.Path("bad.json"), []byte("{not json"), 0644))

	s := New()
	s.AddLight(lighting.Initial())
	s.AddModel(model.New("resources/a.obj"))

	_, err := st.Load(s, "bad.json", &fakeLoader{})
	assert.Error(t, err)
	_, err = st.Load(s, "absent.json", &fakeLoader{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Len(t, s.Lights, 1)
	assert.Len(t, s.Models, 1)
}

func TestValidate(t *testing.T) {
	st := fixture(t, "a.obj")
	f := &File{Models: []ModelRecord{{Path: "a.obj"}, {Path: "b.obj"}, {Path: "c.stl"}}}

	problems := f.Validate(st.Resolver)
	require.Len(t, problems, 2)
	assert.Equal(t, 1, problems[0].Index)
	assert.ErrorIs(t, problems[0].Err, assets.ErrMissingFile)
	assert.Equal(t, "c.stl", problems[1].Path)
	assert.ErrorIs(t, problems[1].Err, assets.ErrUnsupportedExtension)
}

func TestStarter(t *testing.T) {
	f := Starter()
	assert.Empty(t, f.Models)
	require.Len(t, f.Lights, 1)
	assert.Equal(t, lighting.Initial(), f.Lights[0].Light())
}

func TestNewStoreDefaultDir(t *testing.T) {
	st := NewStore("", assets.NewResolver(""))
	assert.Equal(t, filepath.Join("saves", "test.json"), st.Path("test.json"))
}
