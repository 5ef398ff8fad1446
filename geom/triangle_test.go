package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func sampleTriangle() Triangle {
	return Triangle{
		V0: mgl32.Vec3{0, 0.5, 0},
		V1: mgl32.Vec3{-1.0 / float32(math.Sqrt(3)), -0.5, 0},
		V2: mgl32.Vec3{1.0 / float32(math.Sqrt(3)), -0.5, 0},
	}
}

func TestTriangleAxisRayHit(t *testing.T) {
	tri := sampleTriangle()
	ray := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})

	hit, ok := tri.Intersect(&ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(hit.T-5)) > 1e-3 {
		t.Errorf("expected t=5, got %f", hit.T)
	}
}

func TestTriangleVertexHit(t *testing.T) {
	tri := sampleTriangle()
	origin := mgl32.Vec3{0, 0, 5}
	target := mgl32.Vec3{0, 0.5, 0}
	dir := target.Sub(origin)
	ray := NewRay(origin, dir)

	hit, ok := tri.Intersect(&ray)
	if !ok {
		t.Fatal("expected a hit at the vertex")
	}
	sum := hit.U + hit.V
	if math.Abs(float64(sum)) > 1e-3 && math.Abs(float64(sum-1)) > 1e-3 {
		t.Errorf("expected u+v in {0,1} at a vertex corner, got u=%f v=%f", hit.U, hit.V)
	}
}

func TestTriangleMissJustOutsideVertex(t *testing.T) {
	tri := sampleTriangle()
	origin := mgl32.Vec3{0, 0, 5}
	target := mgl32.Vec3{0, 1, 0}
	dir := target.Sub(origin)
	ray := NewRay(origin, dir)

	if _, ok := tri.Intersect(&ray); ok {
		t.Error("expected a miss just beyond the top vertex")
	}
}

func TestTriangleBarycentricsWithinBounds(t *testing.T) {
	tri := sampleTriangle()
	ray := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	hit, ok := tri.Intersect(&ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.U < 0 || hit.V < 0 || hit.U+hit.V > 1+1e-5 {
		t.Errorf("barycentrics out of range: u=%f v=%f", hit.U, hit.V)
	}
}

func TestTriangleDegenerateMisses(t *testing.T) {
	tri := Triangle{V0: mgl32.Vec3{0, 0, 0}, V1: mgl32.Vec3{1, 0, 0}, V2: mgl32.Vec3{2, 0, 0}}
	ray := NewRay(mgl32.Vec3{0.5, 5, 0}, mgl32.Vec3{0, -1, 0})
	if _, ok := tri.Intersect(&ray); ok {
		t.Error("a zero-area (collinear) triangle must never report a hit")
	}
}

func TestInstancePrimitiveIndexRoundTrip(t *testing.T) {
	cases := []struct{ instance, primitive uint32 }{
		{0, 0},
		{4095, 1048575},
		{1, 2},
		{2048, 524288},
	}
	for _, c := range cases {
		id, err := NewInstancePrimitiveIndex(c.instance, c.primitive)
		if err != nil {
			t.Fatalf("unexpected error packing (%d,%d): %v", c.instance, c.primitive, err)
		}
		if id.Instance() != c.instance || id.Primitive() != c.primitive {
			t.Errorf("round trip mismatch: got (%d,%d), want (%d,%d)", id.Instance(), id.Primitive(), c.instance, c.primitive)
		}
	}
}

func TestInstancePrimitiveIndexOverflow(t *testing.T) {
	if _, err := NewInstancePrimitiveIndex(4096, 0); err == nil {
		t.Error("expected overflow error for instance index 4096")
	}
	if _, err := NewInstancePrimitiveIndex(0, 1048576); err == nil {
		t.Error("expected overflow error for primitive index 2^20")
	}
}
