package importer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/mini-engine/pkg/encoding"
)

// defaultMaterial mirrors the light gray the OBJ decoder falls back to.
var defaultMaterial = Material{
	DiffuseColor:  [3]float32{0.627, 0.627, 0.627},
	SpecularColor: [3]float32{0.5, 0.5, 0.5},
	Shininess:     30,
}

type objCorner struct {
	v, vt, vn int
}

// importOBJ decodes a Wavefront file and its material library. Every
// object is split into one mesh per material, in file order. Polygons are
// fan-triangulated.
func importOBJ(path string) (*Result, error) {
	dec, err := obj.Decode(path, materialLibrary(path))
	if err != nil {
		return nil, fmt.Errorf("decoding obj: %w", err)
	}

	res := &Result{}
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]

		byMaterial := map[string]int{}
		var meshes []*objMesh
		for fi := range ob.Faces {
			face := &ob.Faces[fi]
			if len(face.Vertices) < 3 {
				continue
			}
			mi, ok := byMaterial[face.Material]
			if !ok {
				mi = len(meshes)
				byMaterial[face.Material] = mi
				meshes = append(meshes, newOBJMesh(ob.Name, dec, face.Material))
			}
			meshes[mi].addFace(dec, face)
		}
		for _, m := range meshes {
			res.Meshes = append(res.Meshes, m.data)
		}
	}
	return res, nil
}

type objMesh struct {
	data  MeshData
	index map[objCorner]uint32
}

func newOBJMesh(name string, dec *obj.Decoder, material string) *objMesh {
	m := &objMesh{
		data:  MeshData{Name: name, Material: defaultMaterial},
		index: map[objCorner]uint32{},
	}
	if mat, ok := dec.Materials[material]; ok && mat != nil {
		m.data.Material = Material{
			DiffuseColor:  [3]float32{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B},
			SpecularColor: [3]float32{mat.Specular.R, mat.Specular.G, mat.Specular.B},
			Shininess:     mat.Shininess,
			HasTexture:    mat.MapKd != "",
		}
		if mat.MapKd != "" {
			m.data.Textures = []TextureRef{{Path: encoding.NameToUTF8(mat.MapKd), Type: DiffuseTexture}}
		}
	}
	return m
}

func (m *objMesh) addFace(dec *obj.Decoder, face *obj.Face) {
	corners := make([]uint32, 0, len(face.Vertices))
	for i := range face.Vertices {
		c := objCorner{v: face.Vertices[i], vt: -1, vn: -1}
		if i < len(face.Uvs) {
			c.vt = face.Uvs[i]
		}
		if i < len(face.Normals) {
			c.vn = face.Normals[i]
		}
		idx, ok := m.vertex(dec, c)
		if !ok {
			return
		}
		corners = append(corners, idx)
	}
	for i := 1; i+1 < len(corners); i++ {
		m.data.Indices = append(m.data.Indices, corners[0], corners[i], corners[i+1])
	}
}

// vertex returns the index of corner c, adding it on first use. Out of
// range position indices reject the face; out of range normal and uv
// indices fall back to zero.
func (m *objMesh) vertex(dec *obj.Decoder, c objCorner) (uint32, bool) {
	if idx, ok := m.index[c]; ok {
		return idx, true
	}
	pos := dec.Vertices
	if c.v < 0 || 3*c.v+2 >= len(pos) {
		return 0, false
	}

	var v Vertex
	v.Position = [3]float32{pos[3*c.v], pos[3*c.v+1], pos[3*c.v+2]}
	if n := dec.Normals; c.vn >= 0 && 3*c.vn+2 < len(n) {
		v.Normal = [3]float32{n[3*c.vn], n[3*c.vn+1], n[3*c.vn+2]}
	}
	if uv := dec.Uvs; c.vt >= 0 && 2*c.vt+1 < len(uv) {
		v.TexCoord = flipV([2]float32{uv[2*c.vt], uv[2*c.vt+1]})
	}

	idx := uint32(len(m.data.Vertices))
	m.data.Vertices = append(m.data.Vertices, v)
	m.index[c] = idx
	return idx, true
}

// materialLibrary returns the first mtllib named by the OBJ file, resolved
// next to it, or "" when there is none on disk. The decoder then falls back
// to its default material.
func materialLibrary(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "mtllib") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, "mtllib"))
		if name == "" {
			continue
		}
		mtl := filepath.Join(filepath.Dir(path), name)
		if _, err := os.Stat(mtl); err == nil {
			return mtl
		}
		return ""
	}
	return ""
}
