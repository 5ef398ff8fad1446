package scene

import (
	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/physics"
	"github.com/gekko3d/raytracer/tlas"
)

// Scene aggregates the placed objects, the TLAS built over their world
// bounds, and the active camera. Invariant: after Rebuild, the TLAS
// exactly covers every object's WorldBounds, and every TLAS leaf's
// instance index is valid into Objects.
type Scene struct {
	Objects      []*SceneObject
	ActiveCamera *Camera
	Tlas         *tlas.Tlas
	PhysicsWorld *physics.World
}

// New returns an empty scene with an empty TLAS.
func New() *Scene {
	return &Scene{Tlas: tlas.Build(nil)}
}

// AddObject appends obj to the scene, enforcing the packed instance-index
// budget (geom.InstancePrimitiveIndex addresses at most 4096 instances) at
// the point the scene actually grows past it, per the fatal,
// construction-time precondition this index packing places on the scene.
// Callers must call Rebuild before the next Intersect to keep the TLAS in
// sync.
func (s *Scene) AddObject(obj *SceneObject) error {
	if _, err := geom.NewInstancePrimitiveIndex(uint32(len(s.Objects)), 0); err != nil {
		return err
	}
	s.Objects = append(s.Objects, obj)
	return nil
}

// RemoveObject removes the object at index i (order of the remaining
// objects is not preserved). Callers must call Rebuild afterwards.
func (s *Scene) RemoveObject(i int) {
	last := len(s.Objects) - 1
	s.Objects[i] = s.Objects[last]
	s.Objects = s.Objects[:last]
}

func (s *Scene) instances() []tlas.Instance {
	out := make([]tlas.Instance, len(s.Objects))
	for i, obj := range s.Objects {
		out[i] = obj
	}
	return out
}

// Rebuild reclusters the TLAS over the scene's current object bounds.
// Never a refit: topology is discarded and rebuilt from scratch, per the
// spec's explicit non-goal of dynamic TLAS refit.
func (s *Scene) Rebuild() {
	s.Tlas = tlas.Build(s.instances())
}

// Intersect finds the globally closest hit among every object, tagging
// the result with the winning object's index and the instance/primitive
// id that produced it within that object's model.
func (s *Scene) Intersect(rayWorld *geom.Ray) (geom.Intersection, uint32, bool) {
	interaction, objectIdx, primitiveIdx, ok := s.Tlas.Intersect(s.instances(), rayWorld)
	if !ok {
		return geom.Intersection{}, 0, false
	}

	// AddObject enforces the instance budget and MeshBuilder.Build enforces
	// the primitive budget, so this can never overflow here: per the
	// fatal/construction-time split, queries themselves are total.
	packed, _ := geom.NewInstancePrimitiveIndex(objectIdx, primitiveIdx)

	intersection := geom.Intersection{
		Ray:               geom.NewRayT(rayWorld.Origin, rayWorld.Direction, interaction.T),
		Interaction:       interaction,
		InstancePrimitive: packed,
	}
	return intersection, objectIdx, true
}

// Run optionally advances the physics world (an external collaborator
// that writes transforms back into Objects) and then rebuilds the TLAS,
// matching the spec's per-frame discipline: mutate, refit/rebuild BVHs,
// rebuild TLAS, then query.
func (s *Scene) Run(dt float32) {
	if s.PhysicsWorld != nil {
		s.PhysicsWorld.Step(dt)
	}
	s.Rebuild()
}
