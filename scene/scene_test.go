package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/model"
)

func TestSceneIntersectFindsClosestObject(t *testing.T) {
	s := New()

	near := model.New(buildUnitCube(t), nil)
	far := model.New(buildUnitCube(t), nil)

	// nearObj's top face sits at y=21 (t=79 from the eye at y=100);
	// farObj's sits at y=11 (t=89) -- nearObj must win.
	nearObj := NewSceneObject(model.NewInstance(near))
	if err := nearObj.SetTransform(mgl32.Translate3D(0, 20, 0)); err != nil {
		t.Fatal(err)
	}
	farObj := NewSceneObject(model.NewInstance(far))
	if err := farObj.SetTransform(mgl32.Translate3D(0, 10, 0)); err != nil {
		t.Fatal(err)
	}

	if err := s.AddObject(farObj); err != nil {
		t.Fatal(err)
	}
	if err := s.AddObject(nearObj); err != nil {
		t.Fatal(err)
	}
	s.Rebuild()

	ray := geom.NewRay(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{0, -1, 0})
	intersection, objectIdx, ok := s.Intersect(&ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if s.Objects[objectIdx] != nearObj {
		t.Errorf("expected the nearer object to win, got object %d", objectIdx)
	}
	if math.Abs(float64(intersection.Interaction.T-79)) > 1e-2 {
		t.Errorf("expected t=79 (eye at y=100, near top face at y=21), got %f", intersection.Interaction.T)
	}
}

func TestSceneIntersectEmptyMisses(t *testing.T) {
	s := New()
	s.Rebuild()
	ray := geom.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	if _, _, ok := s.Intersect(&ray); ok {
		t.Error("an empty scene should never report a hit")
	}
}

func TestSceneRemoveObject(t *testing.T) {
	s := New()
	m := model.New(buildUnitCube(t), nil)
	obj1 := NewSceneObject(model.NewInstance(m))
	obj2 := NewSceneObject(model.NewInstance(m))
	if err := s.AddObject(obj1); err != nil {
		t.Fatal(err)
	}
	if err := s.AddObject(obj2); err != nil {
		t.Fatal(err)
	}

	s.RemoveObject(0)
	if len(s.Objects) != 1 {
		t.Fatalf("expected 1 object remaining, got %d", len(s.Objects))
	}
	if s.Objects[0] != obj2 {
		t.Errorf("expected obj2 to remain after removing index 0")
	}
}

func TestSceneRunRebuildsTlasAfterPhysics(t *testing.T) {
	s := New()
	m := model.New(buildUnitCube(t), nil)
	obj := NewSceneObject(model.NewInstance(m))
	if err := s.AddObject(obj); err != nil {
		t.Fatal(err)
	}
	s.Run(1.0 / 60.0)

	ray := geom.NewRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0})
	if _, _, ok := s.Intersect(&ray); !ok {
		t.Error("expected Run to rebuild the TLAS so the object is queryable")
	}
}

func TestCameraRayForPixelPointsForwardAtCenter(t *testing.T) {
	cam := NewCamera(90, 1.0)
	ray := cam.RayForPixel(50, 50, 100, 100)
	// The center pixel of a forward-facing camera should point close to -Z.
	if ray.Direction.Normalize().Z() >= 0 {
		t.Errorf("expected the center ray to point in -Z, got %v", ray.Direction)
	}
}
