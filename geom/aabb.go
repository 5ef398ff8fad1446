package geom

import "github.com/go-gl/mathgl/mgl32"

// Aabb is an axis-aligned bounding box. An empty box has Min = (+MaxT,...)
// and Max = (-MaxT,...); Union treats that sentinel specially (a no-op
// when other is empty), while Grow's plain min/max absorbs it naturally.
type Aabb struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAabb returns the canonical empty box.
func EmptyAabb() Aabb {
	return Aabb{
		Min: mgl32.Vec3{MaxT, MaxT, MaxT},
		Max: mgl32.Vec3{-MaxT, -MaxT, -MaxT},
	}
}

func vmin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		min32(a.X(), b.X()),
		min32(a.Y(), b.Y()),
		min32(a.Z(), b.Z()),
	}
}

func vmax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		max32(a.X(), b.X()),
		max32(a.Y(), b.Y()),
		max32(a.Z(), b.Z()),
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Grow expands the box to contain p.
func (a *Aabb) Grow(p mgl32.Vec3) {
	a.Min = vmin(a.Min, p)
	a.Max = vmax(a.Max, p)
}

// IsEmpty reports whether the box is still the sentinel empty box.
func (a Aabb) IsEmpty() bool {
	return a.Min.X() > a.Max.X()
}

// Union grows a to also contain other. A no-op if other is empty.
func (a *Aabb) Union(other Aabb) {
	if other.IsEmpty() {
		return
	}
	a.Grow(other.Min)
	a.Grow(other.Max)
}

// Extent returns Max - Min.
func (a Aabb) Extent() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Area is the SAH surface-area proxy (half the true surface area; scale
// invariant for cost comparisons). Callers must not feed an empty box
// into SAH cost calculations -- Extent() goes negative and the result is
// meaningless, not merely imprecise.
func (a Aabb) Area() float32 {
	e := a.Extent()
	return e.X()*e.Y() + e.Y()*e.Z() + e.Z()*e.X()
}

// Intersect performs the slab test against ray, using its reciprocal
// direction for correct +-Inf handling on axis-aligned rays. It returns
// the near distance and true iff the box is hit within (0, ray.T).
func (a Aabb) Intersect(ray *Ray) (float32, bool) {
	tx1 := (a.Min.X() - ray.Origin.X()) * ray.RecipDirection.X()
	tx2 := (a.Max.X() - ray.Origin.X()) * ray.RecipDirection.X()
	tNear := min32(tx1, tx2)
	tFar := max32(tx1, tx2)

	ty1 := (a.Min.Y() - ray.Origin.Y()) * ray.RecipDirection.Y()
	ty2 := (a.Max.Y() - ray.Origin.Y()) * ray.RecipDirection.Y()
	tNear = max32(tNear, min32(ty1, ty2))
	tFar = min32(tFar, max32(ty1, ty2))

	tz1 := (a.Min.Z() - ray.Origin.Z()) * ray.RecipDirection.Z()
	tz2 := (a.Max.Z() - ray.Origin.Z()) * ray.RecipDirection.Z()
	tNear = max32(tNear, min32(tz1, tz2))
	tFar = min32(tFar, max32(tz1, tz2))

	if tFar >= tNear && tNear < ray.T && tFar > 0 {
		return tNear, true
	}
	return 0, false
}

// Corners returns the eight corners of the box in a fixed order, used by
// SceneObject to compute a conservative world-space AABB under an affine
// transform.
func (a Aabb) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		x := a.Min.X()
		if i&1 != 0 {
			x = a.Max.X()
		}
		y := a.Min.Y()
		if i&2 != 0 {
			y = a.Max.Y()
		}
		z := a.Min.Z()
		if i&4 != 0 {
			z = a.Max.Z()
		}
		c[i] = mgl32.Vec3{x, y, z}
	}
	return c
}
