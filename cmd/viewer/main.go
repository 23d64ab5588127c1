// Package main is a standalone scene viewer: it loads one scene file and
// flies around it with true mouse capture.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/config"
	"github.com/Faultbox/mini-engine/internal/editor"
	"github.com/Faultbox/mini-engine/internal/engine/camera"
	"github.com/Faultbox/mini-engine/internal/engine/debug"
	"github.com/Faultbox/mini-engine/internal/engine/framebuffer"
	"github.com/Faultbox/mini-engine/internal/engine/input"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
	"github.com/Faultbox/mini-engine/internal/engine/renderer"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
	"github.com/Faultbox/mini-engine/internal/engine/skybox"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/engine/window"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mini Engine Viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Mini Engine Viewer - " + cfg.Editor.DefaultScene,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	manager := assets.NewManager(cfg.Paths.Resources)
	defer manager.Close()
	resolver := manager.Resolver()

	r, err := renderer.New(renderer.Config{
		ShaderDir:   cfg.Paths.Shaders,
		SkyboxFaces: texture.SkyboxFaces(resolver.Model(skybox.Dir)),
	}, manager)
	if err != nil {
		return err
	}
	defer r.Close()
	r.LightMarkers = cfg.Editor.LightMarkers

	s := scene.New()
	defer s.Clear()
	store := scene.NewStore(cfg.Paths.Saves, resolver)
	if _, err := store.Load(s, cfg.Editor.DefaultScene, model.NewLoader(manager)); err != nil {
		logger.Warn("starting with an empty scene", zap.String("scene", cfg.Editor.DefaultScene))
		s.AddLight(lighting.Initial())
	}

	cam := camera.NewFlyCamera(math.Vec3{Z: 3})
	cam.MovementSpeed = cfg.Editor.CameraSpeed
	cam.MouseSensitivity = cfg.Editor.MouseSensitivity
	cam.Zoom = cfg.Graphics.FOV

	v := &viewer{
		window:   win,
		renderer: r,
		scene:    s,
		camera:   cam,
		cursor:   editor.NewCursor(),
		input:    input.New(),
		shots:    debug.NewScreenshots(cfg.Paths.Screenshots, "viewer"),
	}
	v.loop()
	return nil
}

type viewer struct {
	window   *window.Window
	renderer *renderer.Renderer
	scene    *scene.Scene
	camera   *camera.FlyCamera
	cursor   *editor.Cursor
	input    *input.Input
	shots    *debug.Screenshots
}

func (v *viewer) loop() {
	captured := v.cursor.Captured()
	window.SetMouseCaptured(captured)
	v.window.SetTitleSuffix(v.cursor.Mode().String())

	last := time.Now()
	for {
		if v.input.Update() {
			return
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		quit := v.cursor.Update(editor.KeyInput{
			SpaceDown:     input.IsKeyDown(sdl.SCANCODE_SPACE),
			EscapePressed: v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE),
		})
		if quit {
			return
		}
		if c := v.cursor.Captured(); c != captured {
			captured = c
			window.SetMouseCaptured(c)
			v.window.SetTitleSuffix(v.cursor.Mode().String())
		}

		if captured {
			v.move(dt)
			v.camera.ProcessMouseMovement(v.input.MouseDX, -v.input.MouseDY, true)
		}
		if v.input.ScrollY != 0 {
			v.camera.ProcessMouseScroll(v.input.ScrollY)
		}

		w, h := v.window.DrawableSize()
		if v.input.Resized {
			logger.Debug("viewport resized", zap.Int32("width", w), zap.Int32("height", h))
		}
		v.renderer.RenderFrame(v.scene, v.camera, int(w), int(h))
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot(w, h)
		}
		v.window.SwapBuffers()
	}
}

func (v *viewer) move(dt float32) {
	keys := []struct {
		code sdl.Scancode
		dir  camera.Direction
	}{
		{sdl.SCANCODE_W, camera.Forward},
		{sdl.SCANCODE_S, camera.Backward},
		{sdl.SCANCODE_A, camera.Left},
		{sdl.SCANCODE_D, camera.Right},
	}
	for _, k := range keys {
		if input.IsKeyDown(k.code) {
			v.camera.ProcessKeyboard(k.dir, dt)
		}
	}
}

func (v *viewer) screenshot(w, h int32) {
	path, err := v.shots.Save(framebuffer.CaptureDefault(w, h))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
