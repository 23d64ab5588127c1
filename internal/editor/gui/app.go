// Package gui drives the editor window: the frame loop, the ImGui panels
// and native file dialogs.
package gui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/editor"
	"github.com/Faultbox/mini-engine/internal/engine/debug"
	"github.com/Faultbox/mini-engine/internal/engine/framebuffer"
	"github.com/Faultbox/mini-engine/internal/engine/renderer"
	"github.com/Faultbox/mini-engine/internal/engine/ui"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/internal/watch"
)

const noticeDuration = 2 * time.Second

// WindowTitle is the base title; the scene name is appended after a save
// or load.
const WindowTitle = "Mini Engine"

type notice struct {
	text  string
	since time.Time
}

func (n *notice) show(text string) {
	n.text = text
	n.since = time.Now()
}

func (n *notice) visible() bool {
	return n.text != "" && time.Since(n.since) < noticeDuration
}

// Options configures an App.
type Options struct {
	Backend     *ui.Backend
	Editor      *editor.Editor
	Renderer    *renderer.Renderer
	Screenshots *debug.Screenshots
	// Watcher is nil when hot reload is off.
	Watcher   *watch.Watcher
	ShowStats bool
}

// App owns the per-frame work of the editor window.
type App struct {
	backend     *ui.Backend
	editor      *editor.Editor
	renderer    *renderer.Renderer
	target      *framebuffer.Framebuffer
	screenshots *debug.Screenshots
	watcher     *watch.Watcher

	models *picker
	scenes *picker

	lastFrame           time.Time
	screenshotRequested bool
	showStats           bool
	notice              notice

	consoleFollow bool
	consoleSeq    uint64
}

// New creates the scene render target. The GL context must be current.
func New(opts Options) (*App, error) {
	w, h := opts.Backend.FramebufferSize()
	target, err := framebuffer.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("scene render target: %w", err)
	}
	return &App{
		backend:       opts.Backend,
		editor:        opts.Editor,
		renderer:      opts.Renderer,
		target:        target,
		screenshots:   opts.Screenshots,
		watcher:       opts.Watcher,
		models:        modelPicker(),
		scenes:        scenePicker(),
		showStats:     opts.ShowStats,
		consoleFollow: true,
	}, nil
}

// Run blocks until the window closes.
func (a *App) Run() {
	a.lastFrame = time.Now()
	a.backend.Run(a.frame)
}

// Close releases GL resources owned by the app.
func (a *App) Close() {
	a.target.Destroy()
}

func (a *App) frame() {
	now := time.Now()
	dt := float32(now.Sub(a.lastFrame).Seconds())
	a.lastFrame = now

	a.drainPending()
	if a.handleInput(dt) {
		a.backend.Close()
		return
	}

	w, h := a.backend.FramebufferSize()
	a.target.Resize(w, h)
	a.target.Bind()
	a.renderer.Selected = a.editor.Selected
	a.renderer.RenderFrame(a.editor.Scene, a.editor.Camera, int(w), int(h))
	if a.screenshotRequested {
		a.screenshotRequested = false
		a.captureScreenshot()
	}
	a.target.Unbind()

	size := imgui.CurrentIO().DisplaySize()
	ui.DrawBackground(a.target.ColorTexture(), size.X, size.Y)

	a.drawLights()
	a.drawModelImporter()
	a.drawScene()
	a.drawConsole()
	a.drawStats(size.X)
	a.drawNotice(size.X)
}

// drainPending applies dialog selections and file watcher events on the
// render thread.
func (a *App) drainPending() {
	if path, ok := a.models.Poll(); ok {
		a.editor.SetImportPath(path)
	}
	if path, ok := a.scenes.Poll(); ok {
		a.editor.SetSceneFile(path)
	}
	if a.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-a.watcher.Events():
			if !ok {
				a.watcher = nil
				return
			}
			a.editor.HandleChange(ev)
		default:
			return
		}
	}
}

// handleInput returns true when the user asked to quit.
func (a *App) handleInput(dt float32) bool {
	e := a.editor
	typing := ui.TextInputActive()

	quit := e.Cursor.Update(editor.KeyInput{
		SpaceDown:      ui.IsKeyDown(imgui.KeySpace),
		EscapePressed:  ui.IsKeyPressed(imgui.KeyEscape),
		TextFieldFocus: typing,
	})
	if quit {
		return true
	}

	if !typing && ui.IsKeyPressed(imgui.KeyF12) {
		a.screenshotRequested = true
	}

	io := imgui.CurrentIO()
	mouse := imgui.MousePos()
	overUI := ui.PointerOverUI()

	if e.Cursor.Captured() {
		imgui.SetMouseCursor(imgui.MouseCursorNone)
		if !typing {
			e.Move(editor.MoveKeys{
				Forward:  ui.IsKeyDown(imgui.KeyW),
				Backward: ui.IsKeyDown(imgui.KeyS),
				Left:     ui.IsKeyDown(imgui.KeyA),
				Right:    ui.IsKeyDown(imgui.KeyD),
			}, dt)
		}
		e.Look(mouse.X, mouse.Y)
	} else if !overUI && imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		size := io.DisplaySize()
		e.PickAt(mouse.X, mouse.Y, size.X, size.Y)
	}

	if wheel := io.MouseWheel(); wheel != 0 && !overUI {
		e.Camera.ProcessMouseScroll(wheel)
	}
	return false
}

func (a *App) captureScreenshot() {
	if a.screenshots == nil {
		return
	}
	path, err := a.screenshots.Save(a.target.Snapshot())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		a.notice.show("Screenshot failed: " + err.Error())
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	a.notice.show("Saved " + filepath.Base(path))
}
