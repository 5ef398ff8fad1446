// Package model implements the shared, interior-mutable Model handle:
// the owner of a mesh, its BLAS and its texture, and Instance, the thin
// handle multiple scene objects can hold onto the same Model.
package model

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gekko3d/raytracer/bvh"
	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/texture"
)

// ID is a uuid-backed model identity, used for asset-table lookups and
// diagnostics; it plays no role in the acceleration structures themselves.
type ID string

// NewID mints a fresh model identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Model owns a mesh, the BLAS built over it, and an optional texture.
// All three are guarded by mu: Refit and vertex edits are observed by
// every Instance pointing at this Model, per the spec's shared
// resources discipline (mutate, then refit, then rebuild the TLAS,
// then query).
type Model struct {
	mu sync.RWMutex

	id      ID
	mesh    *geom.Mesh
	bvh     *bvh.Bvh
	texture *texture.Buffer
}

// New builds a Model from a mesh, constructing its BLAS immediately.
// tex may be nil for untextured models.
func New(mesh *geom.Mesh, tex *texture.Buffer) *Model {
	return &Model{
		id:      NewID(),
		mesh:    mesh,
		bvh:     bvh.Build(mesh),
		texture: tex,
	}
}

// ID returns the model's identity.
func (m *Model) ID() ID {
	return m.id
}

// Bounds returns the current BLAS root bounds (model space).
func (m *Model) Bounds() geom.Aabb {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bvh.Bounds()
}

// Texture returns the model's texture buffer, or nil if untextured.
func (m *Model) Texture() *texture.Buffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture
}

// SetTexture replaces the model's texture.
func (m *Model) SetTexture(tex *texture.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texture = tex
}

// EditVertices runs fn with exclusive access to the mesh's mutable
// primitive array, for in-place vertex displacement (skinning,
// procedural deformation). Callers must follow up with Refit.
func (m *Model) EditVertices(fn func(primitives []geom.Triangle)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.mesh.PrimitivesMut())
}

// Refit recomputes BLAS node bounds from the mesh's current vertex
// positions without rebuilding topology. Intended for small per-frame
// deformation; large deformation should rebuild the Model instead.
func (m *Model) Refit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bvh.Refit(m.mesh)
}

// Intersect delegates a model-space ray to the BLAS. Callers (normally
// a SceneObject) are responsible for transforming ray into model space
// first.
func (m *Model) Intersect(ray *geom.Ray) (geom.SurfaceInteraction, uint32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bvh.Intersect(m.mesh, ray)
}

// Instance is a thin, copyable handle to a shared Model: the role the
// spec gives ModelInstance (many SceneObjects may point at the same
// Model; a refit or vertex edit on the Model is visible through every
// Instance simultaneously, since they all share the same *Model).
type Instance struct {
	model *Model
}

// NewInstance wraps model in a handle.
func NewInstance(model *Model) Instance {
	return Instance{model: model}
}

// Model returns the underlying shared Model.
func (i Instance) Model() *Model {
	return i.model
}

// Bounds returns the current model-space BLAS bounds.
func (i Instance) Bounds() geom.Aabb {
	return i.model.Bounds()
}

// Intersect delegates to the underlying Model.
func (i Instance) Intersect(ray *geom.Ray) (geom.SurfaceInteraction, uint32, bool) {
	return i.model.Intersect(ray)
}
