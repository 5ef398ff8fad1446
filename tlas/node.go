// Package tlas implements the top-level acceleration structure (TLAS)
// over a scene's model instances: agglomerative-clustering build and
// nearest-child stack traversal. It depends only on geom, so that any
// caller-defined instance type can sit underneath it without an import
// cycle back into the caller's own package.
package tlas

import "github.com/gekko3d/raytracer/geom"

// node is a TLAS node. It is a leaf iff LeftRight == 0, in which case
// Blas is the index of the instance passed to Build. Otherwise LeftRight
// packs the two child node indices, left in the upper 16 bits and right
// in the lower 16 bits.
type node struct {
	Bounds    geom.Aabb
	LeftRight uint32
	Blas      uint32
}

func (n node) isLeaf() bool {
	return n.LeftRight == 0
}

func packLeftRight(left, right uint32) uint32 {
	return left<<16 | right&0xffff
}

func (n node) left() uint32 {
	return n.LeftRight >> 16
}

func (n node) right() uint32 {
	return n.LeftRight & 0xffff
}
