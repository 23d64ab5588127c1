// Package picking turns cursor positions into world rays and tests them
// against model bounds.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mini-engine/internal/importer"
	"github.com/Faultbox/mini-engine/pkg/math"
)

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts a pixel position (origin top left) into a world-space
// ray through the near and far planes.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, view, projection math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	inv := projection.Mul(view).Inverse()
	near := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectBounds runs the slab test against b. It returns the distance to
// the entry point, or to the exit point when the origin is inside.
func (r Ray) IntersectBounds(b importer.Bounds) (float32, bool) {
	if !b.Valid() {
		return 0, false
	}
	origin := r.Origin.Array()
	dir := r.Direction.Array()

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[axis] - origin[axis]) / dir[axis]
		t2 := (b.Max[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box hit by r, or -1.
func Nearest(r Ray, boxes []importer.Bounds) int {
	best := -1
	bestT := float32(math32.MaxFloat32)
	for i, b := range boxes {
		if t, ok := r.IntersectBounds(b); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
