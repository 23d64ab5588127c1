package debug

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mini-engine/internal/engine/shader"
	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/pkg/math"
)

// BoxVertexCount is the number of line endpoints in a box wireframe.
const BoxVertexCount = 24

// BoxLines returns the 12 edges of b grown by padding, as xyz line pairs.
func BoxLines(b importer.Bounds, padding float32) []float32 {
	x0, y0, z0 := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	x1, y1, z1 := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding
	return []float32{
		// bottom
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y0, z1,
		x1, y0, z1, x0, y0, z1,
		x0, y0, z1, x0, y0, z0,
		// top
		x0, y1, z0, x1, y1, z0,
		x1, y1, z0, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y1, z0,
		// verticals
		x0, y0, z0, x0, y1, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y0, z1, x1, y1, z1,
		x0, y0, z1, x0, y1, z1,
	}
}

// Marker returns a cube of half size around p.
func Marker(p [3]float32, half float32) importer.Bounds {
	return importer.Bounds{
		Min: [3]float32{p[0] - half, p[1] - half, p[2] - half},
		Max: [3]float32{p[0] + half, p[1] + half, p[2] + half},
	}
}

// Outline draws coloured wireframe boxes in world space.
type Outline struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
}

// NewOutline builds the line program and a streaming vertex buffer.
func NewOutline(src shader.Source, vertexName, fragmentName string) (*Outline, error) {
	p, err := src.Build(vertexName, fragmentName)
	if err != nil {
		return nil, err
	}
	o := &Outline{program: p}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, BoxVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)

	return o, nil
}

// Box draws one wireframe box in colour.
func (o *Outline) Box(b importer.Bounds, padding float32, color [3]float32, view, projection math.Mat4) {
	if !b.Valid() {
		return
	}
	lines := BoxLines(b, padding)

	o.program.Use()
	o.program.SetMat4("view", view)
	o.program.SetMat4("projection", projection)
	o.program.SetVec3("color", color)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, unsafe.Pointer(&lines[0]))
	gl.DrawArrays(gl.LINES, 0, BoxVertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases GL objects.
func (o *Outline) Destroy() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
		gl.DeleteBuffers(1, &o.vbo)
		o.vao, o.vbo = 0, 0
	}
	o.program.Delete()
}
