// Package editor implements the interactive scene editor: cursor and
// camera handling, list actions and the ImGui panels.
package editor

// Mode is who owns the mouse.
type Mode int

const (
	// CameraMode hides the cursor and turns mouse motion into look input.
	CameraMode Mode = iota
	// UIMode shows the cursor and lets the panels take mouse input.
	UIMode
)

func (m Mode) String() string {
	if m == CameraMode {
		return "camera"
	}
	return "ui"
}

// KeyInput is the per-frame key state the cursor cares about.
type KeyInput struct {
	SpaceDown      bool
	EscapePressed  bool
	TextFieldFocus bool
}

// Cursor is the camera/UI mode state machine. It starts in camera mode.
type Cursor struct {
	mode      Mode
	spaceHeld bool

	firstMouse   bool
	lastX, lastY float32
}

func NewCursor() *Cursor {
	return &Cursor{mode: CameraMode, firstMouse: true}
}

func (c *Cursor) Mode() Mode {
	return c.mode
}

// Captured reports whether the camera owns the mouse.
func (c *Cursor) Captured() bool {
	return c.mode == CameraMode
}

// Update applies one frame of key input. Space toggles the mode on its
// rising edge only; entering camera mode resets the mouse reference so the
// view does not jump. It returns true when Escape asks to quit. Keys are
// ignored while a text field has focus.
func (c *Cursor) Update(in KeyInput) (quit bool) {
	if in.TextFieldFocus {
		c.spaceHeld = in.SpaceDown
		return false
	}
	if in.EscapePressed {
		return true
	}

	if in.SpaceDown && !c.spaceHeld {
		c.Toggle()
	}
	c.spaceHeld = in.SpaceDown
	return false
}

// Toggle flips the mode.
func (c *Cursor) Toggle() {
	if c.mode == CameraMode {
		c.mode = UIMode
		return
	}
	c.mode = CameraMode
	c.firstMouse = true
}

// MouseOffset turns an absolute cursor position into a look delta. The
// first sample after entering camera mode only sets the reference. dy is
// positive when the mouse moves up.
func (c *Cursor) MouseOffset(x, y float32) (dx, dy float32, ok bool) {
	if c.mode != CameraMode {
		return 0, 0, false
	}
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return 0, 0, false
	}
	dx, dy = x-c.lastX, c.lastY-y
	c.lastX, c.lastY = x, y
	return dx, dy, true
}
