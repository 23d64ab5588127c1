// Package renderer draws a scene with the fixed forward pipeline: lit
// models, then the skybox, then editor overlays.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/engine/camera"
	"github.com/Faultbox/mini-engine/internal/engine/debug"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/model"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
	"github.com/Faultbox/mini-engine/internal/engine/shader"
	"github.com/Faultbox/mini-engine/internal/engine/skybox"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/shaders"
)

// ClearColor is the background behind the skybox.
var ClearColor = [4]float32{0.1, 0.1, 0.1, 1}

// Config holds renderer configuration.
type Config struct {
	// ShaderDir is searched before the built-in shaders.
	ShaderDir string
	// SkyboxFaces are resolved face image paths.
	SkyboxFaces texture.CubemapFaces
}

// Renderer owns the shader programs and the skybox.
type Renderer struct {
	source  shader.Source
	scene   *shader.Program
	sky     *shader.Program
	skybox  *skybox.Skybox
	outline *debug.Outline

	// Selected gets a wireframe box when non-nil.
	Selected *model.Model
	// LightMarkers draws a small box at every light position.
	LightMarkers bool
}

// New initializes GL function pointers, sets the fixed GL state and
// builds the programs. Must be called with a current GL context.
func New(cfg Config, textures texture.Source) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{source: shader.Source{Dir: cfg.ShaderDir, Fallback: shaders.Files}}
	var err error
	if r.scene, r.sky, err = r.buildPrograms(); err != nil {
		return nil, err
	}
	r.outline, err = debug.NewOutline(r.source, shaders.OutlineVertex, shaders.OutlineFragment)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("outline shader: %w", err)
	}
	r.skybox = skybox.New(textures, cfg.SkyboxFaces)
	return r, nil
}

func (r *Renderer) buildPrograms() (*shader.Program, *shader.Program, error) {
	sceneProg, err := r.source.Build(shaders.SceneVertex, shaders.SceneFragment)
	if err != nil {
		return nil, nil, fmt.Errorf("scene shader: %w", err)
	}
	skyProg, err := r.source.Build(shaders.SkyboxVertex, shaders.SkyboxFragment)
	if err != nil {
		sceneProg.Delete()
		return nil, nil, fmt.Errorf("skybox shader: %w", err)
	}
	return sceneProg, skyProg, nil
}

// ReloadShaders rebuilds both programs from disk. On failure the current
// programs stay active and the error is logged and returned.
func (r *Renderer) ReloadShaders() error {
	sceneProg, skyProg, err := r.buildPrograms()
	if err != nil {
		logger.Error("shader reload failed", zap.Error(err))
		return err
	}
	r.scene.Delete()
	r.sky.Delete()
	r.scene, r.sky = sceneProg, skyProg
	logger.Info("shaders reloaded")
	return nil
}

// RenderFrame draws s as seen by cam into the bound framebuffer.
func (r *Renderer) RenderFrame(s *scene.Scene, cam *camera.FlyCamera, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projection := cam.Projection(float32(width), float32(height))
	view := cam.ViewMatrix()

	r.scene.Use()
	r.scene.SetMat4("projection", projection)
	r.scene.SetMat4("view", view)
	r.scene.SetVec3("viewPos", cam.Position.Array())
	lighting.Upload(r.scene, s.Lights)

	for _, m := range s.Models {
		m.Draw(r.scene)
	}

	r.skybox.Draw(r.sky, view, projection)

	if r.Selected != nil {
		r.outline.Box(r.Selected.WorldBounds(), 0.02, [3]float32{1, 0.85, 0.2}, view, projection)
	}
	if r.LightMarkers {
		for _, l := range s.Lights {
			r.outline.Box(debug.Marker(l.Position, 0.1), 0, l.Color, view, projection)
		}
	}
}

// Close releases programs and the skybox.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.skybox != nil {
		r.skybox.Destroy()
	}
	if r.outline != nil {
		r.outline.Destroy()
	}
	if r.scene != nil {
		r.scene.Delete()
	}
	if r.sky != nil {
		r.sky.Delete()
	}
}
