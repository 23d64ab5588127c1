package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"resources/cube.obj", Model, true},
		{"resources/ship.glb", Model, true},
		{"resources/ship.gltf", Model, true},
		{"resources/cube.mtl", Material, true},
		{"resources/ship.bin", Material, true},
		{"resources/wood.PNG", Texture, true},
		{"resources/wood.tga", Texture, true},
		{"shaders/fragment_shader.glsl", Shader, true},
		{"resources/readme.txt", 0, false},
		{"resources/cube.OBJ", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := Classify(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "shader", Shader.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(30 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.AddRecursive(dir))
	w.Start()
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func next(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no watch event")
	}
	return Event{}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "cube.obj")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0644))
	}

	ev := next(t, w)
	assert.Equal(t, filepath.ToSlash(path), ev.Path)
	assert.Equal(t, Model, ev.Kind)

	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected second event %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lit.glsl"), []byte("x"), 0644))

	ev := next(t, w)
	assert.Equal(t, Shader, ev.Kind)
	assert.Equal(t, "lit.glsl", filepath.Base(ev.Path))
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	sub := filepath.Join(dir, "textures")
	require.NoError(t, os.Mkdir(sub, 0755))
	// the directory is registered asynchronously
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(sub, "wood.png"), []byte("x"), 0644)
		select {
		case ev := <-w.Events():
			return ev.Kind == Texture
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
}

func TestAddRecursiveMissingDir(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	defer w.Close()
	assert.NoError(t, w.AddRecursive(filepath.Join(t.TempDir(), "absent")))
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := New(time.Millisecond)
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, open := <-w.Events()
	assert.False(t, open)
}
