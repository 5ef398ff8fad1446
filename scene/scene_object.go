// Package scene implements the scene graph this engine queries against:
// SceneObject (a transformed model instance), Scene (the object list plus
// its TLAS and active camera) and Camera (the external collaborator that
// turns pixels into world-space rays).
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/model"
)

// degenerateDeterminant is the threshold below which a transform's linear
// part is treated as singular.
const degenerateDeterminant = 1e-8

// SceneObject is one placed model instance: a shared Model handle plus
// the affine transform that places it in world space. world_bounds is
// cached and only recomputed when the transform changes.
type SceneObject struct {
	Model model.Instance

	transform    mgl32.Mat4
	transformInv mgl32.Mat4
	worldBounds  geom.Aabb
}

// NewSceneObject places inst at the identity transform.
func NewSceneObject(inst model.Instance) *SceneObject {
	o := &SceneObject{Model: inst}
	_ = o.SetTransform(mgl32.Ident4())
	return o
}

// Transform returns the object's current world transform.
func (o *SceneObject) Transform() mgl32.Mat4 {
	return o.transform
}

// SetTransform places the object at t, recomputing transform_inv and
// world_bounds. Returns ErrDegenerateTransform if t's linear part is
// singular, in which case the object's prior transform is left intact.
func (o *SceneObject) SetTransform(t mgl32.Mat4) error {
	if det := t.Det(); det > -degenerateDeterminant && det < degenerateDeterminant {
		return ErrDegenerateTransform
	}

	o.transform = t
	o.transformInv = t.Inv()
	o.worldBounds = o.computeWorldBounds()
	return nil
}

func (o *SceneObject) computeWorldBounds() geom.Aabb {
	box := geom.EmptyAabb()
	for _, corner := range o.Model.Bounds().Corners() {
		world := o.transform.Mul4x1(corner.Vec4(1.0)).Vec3()
		box.Grow(world)
	}
	return box
}

// WorldBounds returns the cached conservative world-space AABB, the union
// of the eight transformed corners of the model's root BLAS bounds.
func (o *SceneObject) WorldBounds() geom.Aabb {
	return o.worldBounds
}

// Intersect transforms ray_world into model space (origin as a point,
// direction as a vector, without renormalizing -- t stays measured in
// the transformed direction's units throughout the BLAS) and delegates
// to the underlying model.
func (o *SceneObject) Intersect(ray *geom.Ray) (geom.SurfaceInteraction, uint32, bool) {
	originModel := o.transformInv.Mul4x1(ray.Origin.Vec4(1.0)).Vec3()
	dirModel := o.transformInv.Mul4x1(ray.Direction.Vec4(0.0)).Vec3()
	rayModel := geom.NewRayT(originModel, dirModel, ray.T)
	return o.Model.Intersect(&rayModel)
}

func (o *SceneObject) String() string {
	return fmt.Sprintf("SceneObject{model=%s, bounds=%+v}", o.Model.Model().ID(), o.worldBounds)
}
