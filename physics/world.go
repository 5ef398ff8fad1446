package physics

import "github.com/go-gl/mathgl/mgl32"

// Transformable is anything a World can drive with a RigidBody's
// resulting transform. scene.SceneObject satisfies this structurally,
// so physics never imports scene -- avoiding the import cycle scene
// would otherwise create (scene already imports physics).
type Transformable interface {
	SetTransform(mgl32.Mat4) error
}

type binding struct {
	body   *RigidBody
	target Transformable
}

// World steps a set of registered rigid bodies and writes their
// resulting transforms back into their bound targets every frame,
// mirroring the original's World::run_physics (apply forces, then
// integrate) followed by the teacher's pattern of syncing a
// physics-owned transform back onto the scene object it drives.
type World struct {
	bindings []binding
	Gravity  mgl32.Vec3
}

// NewWorld returns an empty world with Earth-like downward gravity.
func NewWorld() *World {
	return &World{Gravity: mgl32.Vec3{0, -9.81, 0}}
}

// Register binds body to target: every Step, body's resulting
// transform is written into target via SetTransform.
func (w *World) Register(body *RigidBody, target Transformable) {
	w.bindings = append(w.bindings, binding{body: body, target: target})
}

// Step applies gravity to every awake, finite-mass body, integrates
// all bodies by dt, and writes the resulting transforms into their
// bound targets. A target's degenerate-transform error is silently
// skipped: the body's own state is authoritative and a sync failure
// should not panic a render frame.
func (w *World) Step(dt float32) {
	for _, b := range w.bindings {
		if b.body.IsAwake() && b.body.InverseMass > 0 {
			b.body.ApplyForce(w.Gravity.Mul(1 / b.body.InverseMass))
		}
	}
	for _, b := range w.bindings {
		b.body.Integrate(dt)
		_ = b.target.SetTransform(b.body.Transform())
	}
}
