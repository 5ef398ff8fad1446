package raytracer

// This module's construction-time sentinel errors live next to where
// they are raised rather than at the root: geom.ErrIndexOverflow and
// geom.ErrPrimitiveCountMismatch in geom/errors.go, and
// scene.ErrDegenerateTransform in scene/errors.go. A model or mesh with
// zero primitives is total, not an error -- bvh.Build and model.New both
// accept it, and a BVH built over it never reports a hit -- so no
// separate ErrEmptyMesh sentinel exists.
