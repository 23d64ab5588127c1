package model

import (
	"strconv"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mini-engine/internal/engine/shader"
	"github.com/Faultbox/mini-engine/internal/engine/texture"
	"github.com/Faultbox/mini-engine/internal/importer"
)

const vertexSize = int(unsafe.Sizeof(importer.Vertex{}))

// Mesh is one uploaded triangle batch with a single material.
type Mesh struct {
	Name     string
	Material importer.Material
	Textures []texture.Texture
	Bounds   importer.Bounds

	VertexCount int
	IndexCount  int32

	vao, vbo, ebo uint32
}

// NewMesh uploads md to the GPU. Layout: location 0 position, 1 normal,
// 2 texcoord, interleaved with a 32 byte stride.
func NewMesh(md *importer.MeshData, textures []texture.Texture) *Mesh {
	m := &Mesh{
		Name:        md.Name,
		Material:    md.Material,
		Textures:    textures,
		Bounds:      md.Bounds,
		VertexCount: len(md.Vertices),
		IndexCount:  int32(len(md.Indices)),
	}
	if len(md.Vertices) == 0 || len(md.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(md.Vertices)*vertexSize, unsafe.Pointer(&md.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(md.Indices)*4, unsafe.Pointer(&md.Indices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)

	gl.BindVertexArray(0)
	return m
}

// UsesTextures reports whether the mesh samples its diffuse map instead of
// the flat material colour.
func (m *Mesh) UsesTextures() bool {
	return m.Material.HasTexture && len(m.Textures) > 0
}

// Draw sets the material uniforms, binds textures and issues the indexed
// draw.
func (m *Mesh) Draw(p *shader.Program) {
	if m.vao == 0 {
		return
	}

	p.SetBool("useTextures", m.UsesTextures())
	p.SetVec3("materialColor", m.Material.DiffuseColor)
	p.SetVec3("materialSpecular", m.Material.SpecularColor)
	p.SetFloat("materialShininess", m.Material.Shininess)

	for i, name := range samplerNames(m.Textures) {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		p.SetInt(name, int32(i))
		gl.BindTexture(gl.TEXTURE_2D, m.Textures[i].ID)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Destroy releases the vertex array and buffers. Textures belong to the
// owning model.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		m.vao, m.vbo, m.ebo = 0, 0, 0
	}
}

// samplerNames numbers textures per type starting at 1, so the first
// diffuse map binds to texture_diffuse1.
func samplerNames(textures []texture.Texture) []string {
	counts := make(map[string]int)
	names := make([]string, len(textures))
	for i, t := range textures {
		counts[t.Type]++
		names[i] = t.Type + strconv.Itoa(counts[t.Type])
	}
	return names
}
