package geom

import "github.com/go-gl/mathgl/mgl32"

// triangleEpsilon is the Moeller-Trumbore degeneracy/self-intersection
// threshold recommended by the spec.
const triangleEpsilon = 1e-4

// Triangle is a single primitive: three world- or model-space vertices.
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
}

// Centroid is used by BVH partitioning only.
func (t Triangle) Centroid() mgl32.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}

// Intersect runs Moeller-Trumbore against ray. A degenerate triangle
// (ray parallel to its plane) or a miss is reported as ok == false; this
// is a routine outcome, not an error. On a hit, ray.T is not mutated by
// this call -- callers compare and commit the new best themselves, since
// traversal needs to decide whether to accept the hit before clipping
// further search.
func (t Triangle) Intersect(ray *Ray) (SurfaceInteraction, bool) {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return SurfaceInteraction{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return SurfaceInteraction{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return SurfaceInteraction{}, false
	}

	hitT := f * edge2.Dot(q)
	if hitT <= triangleEpsilon {
		return SurfaceInteraction{}, false
	}

	return SurfaceInteraction{T: min32(ray.T, hitT), U: u, V: v}, true
}
