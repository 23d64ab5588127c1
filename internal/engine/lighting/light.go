// Package lighting holds the editable point lights and their shader upload.
package lighting

import "fmt"

// MaxLights is the size of the lights array in the scene shader.
const MaxLights = 10

// Light is a point light. Rotation and Scale are kept for editing and
// persistence; the shading only reads Position, Color and Intensity.
type Light struct {
	Position  [3]float32
	Rotation  [3]float32
	Scale     [3]float32
	Color     [3]float32
	Intensity float32
}

// Default returns a white light at the origin with unit intensity.
func Default() Light {
	return Light{
		Scale:     [3]float32{1, 1, 1},
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
	}
}

// Initial returns the light an empty editor session starts with.
func Initial() Light {
	l := Default()
	l.Position = [3]float32{1.2, 1.0, 2.0}
	return l
}

// Uniforms is the subset of a shader program the upload needs.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v [3]float32)
}

// Count returns how many of n lights reach the shader.
func Count(n int) int {
	if n > MaxLights {
		return MaxLights
	}
	return n
}

// Upload writes numLights and the first MaxLights entries of lights.
func Upload(u Uniforms, lights []Light) {
	n := Count(len(lights))
	u.SetInt("numLights", int32(n))
	for i := 0; i < n; i++ {
		l := &lights[i]
		u.SetVec3(uniformName(i, "position"), l.Position)
		u.SetVec3(uniformName(i, "rotation"), l.Rotation)
		u.SetVec3(uniformName(i, "scale"), l.Scale)
		u.SetVec3(uniformName(i, "color"), l.Color)
		u.SetFloat(uniformName(i, "intensity"), l.Intensity)
	}
}

func uniformName(i int, field string) string {
	return fmt.Sprintf("lights[%d].%s", i, field)
}
