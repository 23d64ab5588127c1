// Package main is the entry point for the scene editor.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/config"
	"github.com/Faultbox/mini-engine/internal/editor"
	"github.com/Faultbox/mini-engine/internal/editor/gui"
	"github.com/Faultbox/mini-engine/internal/engine/debug"
	"github.com/Faultbox/mini-engine/internal/engine/model"
	"github.com/Faultbox/mini-engine/internal/engine/renderer"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
	"github.com/Faultbox/mini-engine/internal/engine/skybox"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/engine/ui"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/internal/watch"
)

func main() {
	runtime.LockOSThread()

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

	logger.Info("=== Mini Engine Editor ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("editor failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("editor closed normally")
}

func run(cfg *config.Config) error {
	backend, err := ui.NewBackend(gui.WindowTitle, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return err
	}

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

	ed := editor.New(editor.Options{
		Loader:        model.NewLoader(manager),
		Store:         scene.NewStore(cfg.Paths.Saves, resolver),
		SceneName:     cfg.Editor.DefaultScene,
		Invalidate:    manager.Invalidate,
		ReloadShaders: r.ReloadShaders,
	})
	ed.Camera.MovementSpeed = cfg.Editor.CameraSpeed
	ed.Camera.MouseSensitivity = cfg.Editor.MouseSensitivity
	ed.Camera.Zoom = cfg.Graphics.FOV
	defer ed.Scene.Clear()

	var watcher *watch.Watcher
	if cfg.Editor.HotReload {
		watcher, err = startWatcher(cfg.Paths.Resources, cfg.Paths.Shaders)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	app, err := gui.New(gui.Options{
		Backend:     backend,
		Editor:      ed,
		Renderer:    r,
		Screenshots: debug.NewScreenshots(cfg.Paths.Screenshots, "editor"),
		Watcher:     watcher,
		ShowStats:   cfg.Editor.ShowStats,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	logger.Info("editor ready",
		zap.String("resources", resolver.Root),
		zap.String("saves", filepath.Clean(cfg.Paths.Saves)),
		zap.Bool("hot_reload", watcher != nil))
	app.Run()
	return nil
}

func startWatcher(dirs ...string) (*watch.Watcher, error) {
	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.AddRecursive(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	w.Start()
	return w, nil
}
