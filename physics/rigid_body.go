// Package physics implements minimal rigid-body integration used to
// drive scene.SceneObject transforms frame to frame. It is an external
// collaborator per the spec: the acceleration core only ever consumes
// the resulting transform, never physics state itself.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// sleepEpsilon is the kinetic-energy threshold below which a body is put
// to sleep, mirroring the teacher's/original's Cyclone-style integrator.
const sleepEpsilon = 0.3

// RigidBody is a single Newton-Euler rigid body: linear and angular
// state plus a force/torque accumulator cleared every Integrate call.
type RigidBody struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat

	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3

	InverseMass           float32
	LinearDamping         float32
	AngularDamping        float32
	InverseInertiaTensor  mgl32.Mat3

	forceAccum  mgl32.Vec3
	torqueAccum mgl32.Vec3

	isAwake  bool
	canSleep bool
	motion   float32
}

// NewRigidBody returns a body with unit mass, no damping, and the
// identity orientation, awake and able to sleep.
func NewRigidBody() *RigidBody {
	return &RigidBody{
		Orientation:          mgl32.QuatIdent(),
		InverseMass:          1,
		LinearDamping:        1,
		AngularDamping:       1,
		InverseInertiaTensor: mgl32.Ident3(),
		isAwake:              true,
		canSleep:             true,
	}
}

// ApplyForce adds force to the accumulator, applied at the center of
// mass (no resulting torque), and wakes the body.
func (b *RigidBody) ApplyForce(force mgl32.Vec3) {
	b.forceAccum = b.forceAccum.Add(force)
	b.isAwake = true
}

// ApplyForceAtPoint adds force applied at a world-space point, which may
// also produce a torque, and wakes the body.
func (b *RigidBody) ApplyForceAtPoint(force, point mgl32.Vec3) {
	relative := point.Sub(b.Position)
	b.forceAccum = b.forceAccum.Add(force)
	b.torqueAccum = b.torqueAccum.Add(relative.Cross(force))
	b.isAwake = true
}

// ApplyTorque adds torque to the accumulator and wakes the body.
func (b *RigidBody) ApplyTorque(torque mgl32.Vec3) {
	b.torqueAccum = b.torqueAccum.Add(torque)
	b.isAwake = true
}

// SetAwake toggles the body's sleep state. Putting a body to sleep
// zeroes its velocities, matching the original's set_awake(false).
func (b *RigidBody) SetAwake(awake bool) {
	if awake {
		b.isAwake = true
		b.motion = sleepEpsilon * 2
		return
	}
	b.isAwake = false
	b.LinearVelocity = mgl32.Vec3{}
	b.AngularVelocity = mgl32.Vec3{}
}

// IsAwake reports the body's current sleep state.
func (b *RigidBody) IsAwake() bool {
	return b.isAwake
}

// SetCanSleep toggles whether the body is allowed to fall asleep on its
// own from low kinetic energy; disabling it wakes the body.
func (b *RigidBody) SetCanSleep(canSleep bool) {
	b.canSleep = canSleep
	if !canSleep && !b.isAwake {
		b.SetAwake(true)
	}
}

// Transform returns the body's current position/orientation as a Mat4,
// the form SceneObject.SetTransform expects.
func (b *RigidBody) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).Mul4(b.Orientation.Mat4())
}

// Integrate advances the body by dt using semi-implicit Euler on
// velocity followed by position/orientation, applies damping, clears
// the force/torque accumulators, and updates the sleep state if the
// body is allowed to sleep. A sleeping body is left untouched.
func (b *RigidBody) Integrate(dt float32) {
	if !b.isAwake || dt <= 0 {
		return
	}

	linearAcceleration := b.forceAccum.Mul(b.InverseMass)
	angularAcceleration := b.InverseInertiaTensor.Mul3x1(b.torqueAccum)

	b.LinearVelocity = b.LinearVelocity.Add(linearAcceleration.Mul(dt))
	b.AngularVelocity = b.AngularVelocity.Add(angularAcceleration.Mul(dt))

	b.LinearVelocity = b.LinearVelocity.Mul(float32Pow(b.LinearDamping, dt))
	b.AngularVelocity = b.AngularVelocity.Mul(float32Pow(b.AngularDamping, dt))

	b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))

	spin := mgl32.Quat{W: 0, V: b.AngularVelocity.Mul(dt)}
	deltaOrientation := spin.Mul(b.Orientation)
	b.Orientation = mgl32.Quat{
		W: b.Orientation.W + deltaOrientation.W*0.5,
		V: b.Orientation.V.Add(deltaOrientation.V.Mul(0.5)),
	}.Normalize()

	b.clearAccumulators()

	if b.canSleep {
		currentMotion := b.LinearVelocity.Dot(b.LinearVelocity) + b.AngularVelocity.Dot(b.AngularVelocity)
		bias := float32Pow(0.5, dt)
		b.motion = bias*b.motion + (1-bias)*currentMotion
		if b.motion < sleepEpsilon {
			b.SetAwake(false)
		} else if b.motion > 10*sleepEpsilon {
			b.motion = 10 * sleepEpsilon
		}
	}
}

func (b *RigidBody) clearAccumulators() {
	b.forceAccum = mgl32.Vec3{}
	b.torqueAccum = mgl32.Vec3{}
}

func float32Pow(base, exp float32) float32 {
	if base == 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}
