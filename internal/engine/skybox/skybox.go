// Package skybox draws a cube-mapped background around the camera.
package skybox

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mini-engine/internal/engine/shader"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/pkg/math"
)

// Dir is the default face directory under the resources root.
const Dir = "textures/skybox"

// cubeVertices is a unit cube as 36 positions, wound to be seen from inside.
var cubeVertices = [...]float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// VertexCount is the number of vertices in the cube.
const VertexCount = len(cubeVertices) / 3

// Skybox owns the cube geometry and the cube map texture.
type Skybox struct {
	vao     uint32
	vbo     uint32
	texture uint32
}

// New uploads the cube and loads the six faces through src.
func New(src texture.Source, faces texture.CubemapFaces) *Skybox {
	s := &Skybox{}

	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(&cubeVertices[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)

	s.texture = texture.LoadCubemap(src, faces)
	return s
}

// Draw renders the box behind everything else. The depth function is set
// to LEQUAL for the draw and restored to LESS.
func (s *Skybox) Draw(p *shader.Program, view, projection math.Mat4) {
	gl.DepthFunc(gl.LEQUAL)

	p.Use()
	p.SetMat4("view", view.WithoutTranslation())
	p.SetMat4("projection", projection)
	p.SetInt("skybox", 0)

	gl.BindVertexArray(s.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.texture)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(VertexCount))
	gl.BindVertexArray(0)

	gl.DepthFunc(gl.LESS)
}

// Destroy releases the cube and its texture.
func (s *Skybox) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		gl.DeleteBuffers(1, &s.vbo)
		s.vao, s.vbo = 0, 0
	}
	texture.Delete(s.texture)
	s.texture = 0
}
