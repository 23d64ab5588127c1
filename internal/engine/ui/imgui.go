// Package ui wraps the ImGui SDL backend the editor draws into.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/logger"
)

// latinGlyphRanges covers Basic Latin, Latin-1 and Latin Extended-A so
// accented asset names render. Pairs of [start, end] terminated by 0.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0x0100, 0x017F,
	0,
}

// FontPaths are tried in order for the UI font; the ImGui default font is
// kept when none exists.
var FontPaths = []string{
	"resources/fonts/ui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

const fontSize = 15.0

// Backend wraps the ImGui SDL backend for the editor window.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window and ImGui context. GL function loading is
// left to the renderer.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont()
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.1, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))
	return b, nil
}

func (b *Backend) loadFont() {
	var fontPath string
	for _, path := range FontPaths {
		if _, err := os.Stat(path); err == nil {
			fontPath = path
			break
		}
	}
	if fontPath == "" {
		logger.Debug("no UI font found, using the built-in font")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(fontPath, fontSize, fontCfg, &latinGlyphRanges[0])
	logger.Debug("UI font loaded", zap.String("path", fontPath))
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the render loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// FramebufferSize returns the drawable size in pixels.
func (b *Backend) FramebufferSize() (int32, int32) {
	io := imgui.CurrentIO()
	size, scale := io.DisplaySize(), io.DisplayFramebufferScale()
	w, h := int32(size.X*scale.X), int32(size.Y*scale.Y)
	if w <= 0 || h <= 0 {
		return b.width, b.height
	}
	return w, h
}

// DrawBackground shows a GL texture across the display behind every other
// window. The window takes no input so clicks reach the scene.
func DrawBackground(textureID uint32, width, height float32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(width, height),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// PointerOverUI reports whether the mouse is over a real UI window.
func PointerOverUI() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// TextInputActive reports whether a text field has keyboard focus.
func TextInputActive() bool {
	return imgui.CurrentIO().WantTextInput()
}
