// Package geom implements the scalar geometry primitives the acceleration
// structures are built over: rays, axis-aligned boxes, triangles and the
// mesh container that groups them with their per-vertex attributes.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxT stands in for the spec's MAX_S: the largest representable t value,
// used both as "no hit yet" and as the sentinel extent of an empty Aabb.
const MaxT = math.MaxFloat32

// Ray is a ray in whatever space it currently lives in (world or model),
// carrying the reciprocal direction the slab test needs and the current
// best hit distance. Direction need not be unit length; t is always in
// units of direction.
type Ray struct {
	Origin         mgl32.Vec3
	Direction      mgl32.Vec3
	RecipDirection mgl32.Vec3
	T              float32
}

// NewRay builds a ray with no prior hit (T = MaxT).
func NewRay(origin, direction mgl32.Vec3) Ray {
	return NewRayT(origin, direction, MaxT)
}

// NewRayT builds a ray with an existing best-hit distance, e.g. when
// carrying a world-space ray's t budget into model space.
func NewRayT(origin, direction mgl32.Vec3, t float32) Ray {
	return Ray{
		Origin:         origin,
		Direction:      direction,
		RecipDirection: reciprocal(direction),
		T:              t,
	}
}

func reciprocal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{1 / v.X(), 1 / v.Y(), 1 / v.Z()}
}
