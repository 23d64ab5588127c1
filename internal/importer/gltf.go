package importer

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// importGLTF decodes a .gltf or .glb file. Meshes are collected from the
// default scene depth-first, a node's own mesh before its children. Node
// transforms are not baked into the vertices.
func importGLTF(path string) (*Result, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gltf: %w", err)
	}

	res := &Result{}
	g := gltfReader{doc: doc, res: res}

	roots, ok := g.sceneRoots()
	if !ok {
		for mi := range doc.Meshes {
			if err := g.addMesh(mi); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	visited := make(map[int]bool, len(doc.Nodes))
	for _, n := range roots {
		if err := g.walk(n, visited); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type gltfReader struct {
	doc *gltf.Document
	res *Result
}

func (g *gltfReader) sceneRoots() ([]int, bool) {
	if len(g.doc.Scenes) == 0 {
		return nil, false
	}
	si := 0
	if g.doc.Scene != nil && *g.doc.Scene < len(g.doc.Scenes) {
		si = *g.doc.Scene
	}
	return g.doc.Scenes[si].Nodes, true
}

func (g *gltfReader) walk(ni int, visited map[int]bool) error {
	if ni < 0 || ni >= len(g.doc.Nodes) || visited[ni] {
		return nil
	}
	visited[ni] = true

	node := g.doc.Nodes[ni]
	if node.Mesh != nil {
		if err := g.addMesh(*node.Mesh); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := g.walk(c, visited); err != nil {
			return err
		}
	}
	return nil
}

// addMesh appends one MeshData per triangle primitive.
func (g *gltfReader) addMesh(mi int) error {
	if mi < 0 || mi >= len(g.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", mi)
	}
	mesh := g.doc.Meshes[mi]
	for pi, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		md, err := g.primitive(prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, err)
		}
		md.Name = mesh.Name
		g.res.Meshes = append(g.res.Meshes, md)
	}
	return nil
}

func (g *gltfReader) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(g.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return g.doc.Accessors[i], nil
}

func (g *gltfReader) primitive(prim *gltf.Primitive) (MeshData, error) {
	var md MeshData

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return md, fmt.Errorf("missing POSITION attribute")
	}
	acr, err := g.accessor(posIdx)
	if err != nil {
		return md, err
	}
	positions, err := modeler.ReadPosition(g.doc, acr, nil)
	if err != nil {
		return md, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if i, ok := prim.Attributes["NORMAL"]; ok {
		if acr, err := g.accessor(i); err == nil {
			normals, err = modeler.ReadNormal(g.doc, acr, nil)
			if err != nil {
				return md, fmt.Errorf("reading normals: %w", err)
			}
		}
	}

	var uvs [][2]float32
	if i, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acr, err := g.accessor(i); err == nil {
			uvs, err = modeler.ReadTextureCoord(g.doc, acr, nil)
			if err != nil {
				return md, fmt.Errorf("reading texcoords: %w", err)
			}
		}
	}

	md.Vertices = make([]Vertex, len(positions))
	for i, p := range positions {
		md.Vertices[i].Position = p
		if i < len(normals) {
			md.Vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			// glTF already stores V with a top-left origin
			md.Vertices[i].TexCoord = uvs[i]
		}
	}

	if prim.Indices != nil {
		acr, err := g.accessor(*prim.Indices)
		if err != nil {
			return md, err
		}
		md.Indices, err = modeler.ReadIndices(g.doc, acr, nil)
		if err != nil {
			return md, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		md.Indices = make([]uint32, len(positions))
		for i := range md.Indices {
			md.Indices[i] = uint32(i)
		}
	}
	md.Indices = md.Indices[:len(md.Indices)-len(md.Indices)%3]
	for _, idx := range md.Indices {
		if int(idx) >= len(md.Vertices) {
			return md, fmt.Errorf("index %d out of range (%d vertices)", idx, len(md.Vertices))
		}
	}

	md.Material = defaultMaterial
	if prim.Material != nil && *prim.Material < len(g.doc.Materials) {
		md.Material, md.Textures = g.material(g.doc.Materials[*prim.Material])
	}
	return md, nil
}

// material maps the metallic-roughness model onto diffuse, specular and
// shininess.
func (g *gltfReader) material(m *gltf.Material) (Material, []TextureRef) {
	out := Material{
		DiffuseColor:  [3]float32{1, 1, 1},
		SpecularColor: [3]float32{0.5, 0.5, 0.5},
		Shininess:     32,
	}
	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return out, nil
	}

	base := pbr.BaseColorFactorOrDefault()
	out.DiffuseColor = [3]float32{float32(base[0]), float32(base[1]), float32(base[2])}
	rough := float32(pbr.RoughnessFactorOrDefault())
	out.Shininess = 2 + (1-rough)*(1-rough)*126

	if pbr.BaseColorTexture == nil {
		return out, nil
	}
	ref, ok := g.textureRef(pbr.BaseColorTexture.Index)
	if !ok {
		return out, nil
	}
	out.HasTexture = true
	return out, []TextureRef{ref}
}

func (g *gltfReader) textureRef(ti int) (TextureRef, bool) {
	if ti < 0 || ti >= len(g.doc.Textures) {
		return TextureRef{}, false
	}
	src := g.doc.Textures[ti].Source
	if src == nil || *src >= len(g.doc.Images) {
		return TextureRef{}, false
	}
	img := g.doc.Images[*src]
	ref := TextureRef{Type: DiffuseTexture, MimeType: img.MimeType}

	switch {
	case img.BufferView != nil:
		data, ok := g.bufferView(*img.BufferView)
		if !ok {
			return TextureRef{}, false
		}
		ref.Path = fmt.Sprintf("%s#image%d", img.Name, *src)
		ref.Data = data
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return TextureRef{}, false
		}
		ref.Path = fmt.Sprintf("%s#image%d", img.Name, *src)
		ref.Data = data
	default:
		ref.Path = img.URI
	}
	return ref, true
}

func (g *gltfReader) bufferView(i int) ([]byte, bool) {
	if i < 0 || i >= len(g.doc.BufferViews) {
		return nil, false
	}
	bv := g.doc.BufferViews[i]
	if bv.Buffer < 0 || bv.Buffer >= len(g.doc.Buffers) {
		return nil, false
	}
	data := g.doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(data) {
		return nil, false
	}
	return data[bv.ByteOffset:end], true
}
