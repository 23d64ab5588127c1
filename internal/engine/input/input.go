// Package input polls SDL2 events for the viewer.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Input collects the key presses and mouse motion of one frame.
type Input struct {
	pressed []sdl.Scancode

	// MouseDX and MouseDY sum relative motion; positive DY is downwards.
	MouseDX, MouseDY float32
	// ScrollY sums vertical wheel motion.
	ScrollY float32
	// Resized is set when the window size changed this frame.
	Resized bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		pressed: make([]sdl.Scancode, 0, 8),
	}
}

// Update polls SDL events for this frame. It returns true when the window
// was asked to close.
func (i *Input) Update() bool {
	i.pressed = i.pressed[:0]
	i.MouseDX, i.MouseDY, i.ScrollY = 0, 0, 0
	i.Resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
				i.Resized = true
			}

		case *sdl.KeyboardEvent:
			// held keys are read from the keyboard state, not repeats
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.pressed = append(i.pressed, e.Keysym.Scancode)
			}

		case *sdl.MouseMotionEvent:
			i.MouseDX += float32(e.XRel)
			i.MouseDY += float32(e.YRel)

		case *sdl.MouseWheelEvent:
			i.ScrollY += float32(e.Y)
		}
	}

	return false
}

// IsKeyPressed reports whether a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, k := range i.pressed {
		if k == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is held right now.
func IsKeyDown(scancode sdl.Scancode) bool {
	state := sdl.GetKeyboardState()
	return int(scancode) < len(state) && state[scancode] != 0
}
