package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is three parallel, equal-length arrays indexed by primitive id:
// the triangle itself, its per-vertex UVs and its per-vertex normals.
// The arrays are rebound together on any primitive-index permutation --
// in practice bvh.Bvh never permutes them, it permutes an indirection
// array instead (see spec's canonical discipline), so Mesh itself stays
// simple and passive.
type Mesh struct {
	primitives []Triangle
	texCoords  [][3]mgl32.Vec2
	normals    [][3]mgl32.Vec3
}

// Len returns the primitive count.
func (m *Mesh) Len() int {
	return len(m.primitives)
}

// Primitives returns read access to the triangle array.
func (m *Mesh) Primitives() []Triangle {
	return m.primitives
}

// PrimitivesMut returns mutable access, needed for animation/refit: a
// caller may displace vertices in place and then call Bvh.Refit.
func (m *Mesh) PrimitivesMut() []Triangle {
	return m.primitives
}

// TexCoords returns the per-vertex UVs of triangle i.
func (m *Mesh) TexCoords(i int) [3]mgl32.Vec2 {
	return m.texCoords[i]
}

// Normals returns the per-vertex normals of triangle i.
func (m *Mesh) Normals(i int) [3]mgl32.Vec3 {
	return m.normals[i]
}

// MeshBuilder accumulates primitives one at a time with their UVs and
// normals, enforcing array-length equality at Build time.
type MeshBuilder struct {
	primitives []Triangle
	texCoords  [][3]mgl32.Vec2
	normals    [][3]mgl32.Vec3
}

// NewMeshBuilder returns an empty builder.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

// AddTriangle appends one primitive with its UVs and normals.
func (b *MeshBuilder) AddTriangle(tri Triangle, uv [3]mgl32.Vec2, normal [3]mgl32.Vec3) *MeshBuilder {
	b.primitives = append(b.primitives, tri)
	b.texCoords = append(b.texCoords, uv)
	b.normals = append(b.normals, normal)
	return b
}

// Build validates the parallel arrays and returns the Mesh. Enforces the
// packed InstancePrimitiveIndex's 2^20-primitive budget here, at
// construction time, rather than leaving it to be discovered later by a
// query that packs an id against this mesh's primitives.
func (b *MeshBuilder) Build() (*Mesh, error) {
	if len(b.primitives) != len(b.texCoords) || len(b.primitives) != len(b.normals) {
		return nil, ErrPrimitiveCountMismatch
	}
	if len(b.primitives) > maxPrimitives {
		return nil, fmt.Errorf("mesh has %d primitives, exceeds %d-primitive limit: %w", len(b.primitives), maxPrimitives, ErrIndexOverflow)
	}
	return &Mesh{
		primitives: b.primitives,
		texCoords:  b.texCoords,
		normals:    b.normals,
	}, nil
}
