// Package camera provides the editor's free-flying camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mini-engine/pkg/math"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Defaults for a new FlyCamera.
const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MinZoom  float32 = 1
	MaxZoom  float32 = 45
	MaxPitch float32 = 89

	NearPlane float32 = 0.1
	FarPlane  float32 = 100
)

// FlyCamera moves freely with WASD and looks around with the mouse. Angles
// are in degrees.
type FlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3
	WorldUp  math.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

// NewFlyCamera returns a camera at position looking down -Z.
func NewFlyCamera(position math.Vec3) *FlyCamera {
	c := &FlyCamera{
		Position:         position,
		WorldUp:          math.Vec3{Y: 1},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective projection for a viewport of the
// given size. A zero height is treated as one pixel.
func (c *FlyCamera) Projection(width, height float32) math.Mat4 {
	if height <= 0 {
		height = 1
	}
	return math.Perspective(math.Radians(c.Zoom), width/height, NearPlane, FarPlane)
}

// ProcessKeyboard moves the camera along its own axes.
func (c *FlyCamera) ProcessKeyboard(dir Direction, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera by a mouse delta. Positive dy
// looks up.
func (c *FlyCamera) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	if constrainPitch {
		c.Pitch = math.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *FlyCamera) ProcessMouseScroll(dy float32) {
	c.Zoom = math.Clamp(c.Zoom-dy, MinZoom, MaxZoom)
}

// Focus moves the camera back along its view direction until a sphere of
// radius around center fills roughly the field of view. Orientation is kept.
func (c *FlyCamera) Focus(center math.Vec3, radius float32) {
	if radius <= 0 {
		radius = 1
	}
	dist := radius / math32.Tan(math.Radians(c.Zoom)/2)
	c.Position = center.Sub(c.Front.Scale(dist))
}

func (c *FlyCamera) updateVectors() {
	yaw, pitch := math.Radians(c.Yaw), math.Radians(c.Pitch)
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)

	c.Front = math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
