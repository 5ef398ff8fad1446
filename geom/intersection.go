package geom

import "fmt"

// SurfaceInteraction is the barycentric hit record: u,v are the
// Moeller-Trumbore barycentrics of V1,V2; the third weight is 1-u-v.
type SurfaceInteraction struct {
	T, U, V float32
}

const (
	instanceBits   = 12
	primitiveBits  = 20
	maxInstances   = 1 << instanceBits
	maxPrimitives  = 1 << primitiveBits
	primitiveMask  = maxPrimitives - 1
	instanceShift  = primitiveBits
)

// InstancePrimitiveIndex packs an instance index (upper 12 bits) and a
// primitive index (lower 20 bits) into a single uint32, keeping an
// Intersection at 16 bytes (three float32 plus this id). Limits: at most
// 4096 instances and 1,048,576 primitives per mesh; NewInstancePrimitiveIndex
// reports ErrIndexOverflow if either is exceeded.
type InstancePrimitiveIndex uint32

// NewInstancePrimitiveIndex packs instance and primitive, or reports
// ErrIndexOverflow if either exceeds its field width.
func NewInstancePrimitiveIndex(instance, primitive uint32) (InstancePrimitiveIndex, error) {
	if instance >= maxInstances {
		return 0, fmt.Errorf("instance index %d exceeds %d-instance limit: %w", instance, maxInstances, ErrIndexOverflow)
	}
	if primitive >= maxPrimitives {
		return 0, fmt.Errorf("primitive index %d exceeds %d-primitive limit: %w", primitive, maxPrimitives, ErrIndexOverflow)
	}
	return InstancePrimitiveIndex(instance<<instanceShift | primitive), nil
}

// Instance unpacks the instance index.
func (id InstancePrimitiveIndex) Instance() uint32 {
	return uint32(id) >> instanceShift
}

// Primitive unpacks the primitive index.
func (id InstancePrimitiveIndex) Primitive() uint32 {
	return uint32(id) & primitiveMask
}

// Intersection is the closest-hit record returned by Scene.Intersect: the
// ray (carrying the t at which the hit was recorded), the barycentric
// interaction, and the packed (instance, primitive) id that produced it.
type Intersection struct {
	Ray               Ray
	Interaction       SurfaceInteraction
	InstancePrimitive InstancePrimitiveIndex
}
