package importer

import "github.com/Faultbox/mini-engine/pkg/math"

// hasNormals reports whether any vertex carries a non-zero normal.
func hasNormals(vertices []Vertex) bool {
	for _, v := range vertices {
		if v.Normal != [3]float32{} {
			return true
		}
	}
	return false
}

// generateNormals fills vertex normals for meshes exported without them.
// Face normals are area weighted and then averaged across vertices that
// share a position, so split seams do not show.
func generateNormals(md *MeshData) {
	acc := make([]math.Vec3, len(md.Vertices))
	for i := 0; i+2 < len(md.Indices); i += 3 {
		a, b, c := md.Indices[i], md.Indices[i+1], md.Indices[i+2]
		p0 := math.V3(md.Vertices[a].Position)
		p1 := math.V3(md.Vertices[b].Position)
		p2 := math.V3(md.Vertices[c].Position)
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	const epsilon float32 = 0.001
	shared := make(map[[3]int32][]int)
	for i := range md.Vertices {
		p := md.Vertices[i].Position
		key := [3]int32{int32(p[0] / epsilon), int32(p[1] / epsilon), int32(p[2] / epsilon)}
		shared[key] = append(shared[key], i)
	}

	for _, idxs := range shared {
		var sum math.Vec3
		for _, i := range idxs {
			sum = sum.Add(acc[i])
		}
		n := sum.Normalize().Array()
		for _, i := range idxs {
			md.Vertices[i].Normal = n
		}
	}
}
