package skybox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubeGeometry(t *testing.T) {
	assert.Equal(t, 36, VertexCount)
	for _, v := range cubeVertices {
		assert.True(t, v == 1 || v == -1)
	}
}

func TestCubeFacesCoverEveryAxis(t *testing.T) {
	// each of the six faces is two triangles sharing one fixed coordinate
	seen := make(map[[2]int]int)
	for tri := 0; tri < VertexCount/3; tri++ {
		base := tri * 9
		for axis := 0; axis < 3; axis++ {
			a := cubeVertices[base+axis]
			if a == cubeVertices[base+3+axis] && a == cubeVertices[base+6+axis] {
				seen[[2]int{axis, int(a)}]++
			}
		}
	}
	assert.Len(t, seen, 6)
	for face, n := range seen {
		assert.Equal(t, 2, n, "face %v", face)
	}
}
