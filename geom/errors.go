package geom

import "errors"

// ErrIndexOverflow is a construction-time precondition violation: the
// scene exceeds the 4096-instance or 2^20-primitive budget the packed
// InstancePrimitiveIndex can address. Fatal, never recovered internally.
var ErrIndexOverflow = errors.New("instance/primitive index overflow")

// ErrPrimitiveCountMismatch is returned by MeshBuilder.Build when the
// primitives, tex-coords and normals accumulated so far are not the same
// length -- a builder invariant, not a runtime condition.
var ErrPrimitiveCountMismatch = errors.New("mesh parallel arrays have mismatched lengths")
