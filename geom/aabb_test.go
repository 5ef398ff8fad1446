package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAabbUnitCubeAxisRays(t *testing.T) {
	box := Aabb{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	cases := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
	}{
		{"+x", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{-1, 0, 0}},
		{"-x", mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"+y", mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}},
		{"-y", mgl32.Vec3{0, -5, 0}, mgl32.Vec3{0, 1, 0}},
		{"+z", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}},
		{"-z", mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ray := NewRay(c.origin, c.dir)
			near, ok := box.Intersect(&ray)
			if !ok {
				t.Fatalf("expected hit from %v", c.origin)
			}
			if near < 3.9 || near > 4.1 {
				t.Errorf("expected t=4, got %f", near)
			}
		})
	}
}

func TestAabbMissesBehindBoxTClip(t *testing.T) {
	box := Aabb{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	ray := NewRayT(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{-1, 0, 0}, 2.0)
	if _, ok := box.Intersect(&ray); ok {
		t.Errorf("expected miss: box entry t=4 is beyond the ray's current best t=2")
	}
}

func TestAabbEmptyUnion(t *testing.T) {
	a := EmptyAabb()
	a.Union(EmptyAabb())
	if !a.IsEmpty() {
		t.Errorf("union of two empty boxes should stay empty")
	}

	b := Aabb{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	a.Union(b)
	if a.Min != b.Min || a.Max != b.Max {
		t.Errorf("union with empty should equal the non-empty operand, got %+v", a)
	}
}

func TestAabbAxisAlignedRayUsesInfiniteReciprocal(t *testing.T) {
	box := Aabb{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	ray := NewRay(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1})
	near, ok := box.Intersect(&ray)
	if !ok || near < 3.9 || near > 4.1 {
		t.Fatalf("expected hit at t=4, got ok=%v t=%f", ok, near)
	}
}
