package bvh

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gekko3d/raytracer/geom"
)

func randomTriangleSoup(seed int64, n int) *geom.Mesh {
	r := rand.New(rand.NewSource(seed))
	b := geom.NewMeshBuilder()
	for i := 0; i < n; i++ {
		center := mgl32.Vec3{
			(r.Float32() - 0.5) * 20,
			(r.Float32() - 0.5) * 20,
			(r.Float32() - 0.5) * 20,
		}
		jitter := func() mgl32.Vec3 {
			return mgl32.Vec3{r.Float32() - 0.5, r.Float32() - 0.5, r.Float32() - 0.5}
		}
		tri := geom.Triangle{
			V0: center.Add(jitter()),
			V1: center.Add(jitter()),
			V2: center.Add(jitter()),
		}
		b.AddTriangle(tri, [3]mgl32.Vec2{}, [3]mgl32.Vec3{})
	}
	mesh, err := b.Build()
	if err != nil {
		panic(err)
	}
	return mesh
}

func bruteForceIntersect(mesh *geom.Mesh, ray *geom.Ray) (geom.SurfaceInteraction, uint32, bool) {
	best := ray.T
	var bestInteraction geom.SurfaceInteraction
	var bestIdx uint32
	hit := false
	for i, tri := range mesh.Primitives() {
		probe := geom.NewRayT(ray.Origin, ray.Direction, best)
		interaction, ok := tri.Intersect(&probe)
		if ok && interaction.T < best {
			best = interaction.T
			bestInteraction = interaction
			bestIdx = uint32(i)
			hit = true
		}
	}
	return bestInteraction, bestIdx, hit
}

func TestBuildIsPermutationOfPrimitiveIndices(t *testing.T) {
	mesh := randomTriangleSoup(1, 64)
	b := Build(mesh)

	seen := make(map[uint32]bool, mesh.Len())
	for _, idx := range b.primitiveIndirection {
		if seen[idx] {
			t.Fatalf("index %d appears more than once in the indirection array", idx)
		}
		seen[idx] = true
	}
	if len(seen) != mesh.Len() {
		t.Fatalf("expected %d distinct indices, saw %d", mesh.Len(), len(seen))
	}
}

func TestBuildNodeOrderingInvariants(t *testing.T) {
	mesh := randomTriangleSoup(2, 128)
	b := Build(mesh)

	for i := 0; i < int(b.nodesUsed); i++ {
		if i == 1 {
			continue
		}
		n := b.nodes[i]
		if n.isLeaf() {
			continue
		}
		left := n.leftChildIndex()
		right := n.rightChildIndex()
		if right != left+1 {
			t.Errorf("node %d: right child %d is not left+1 (left=%d)", i, right, left)
		}
		if left <= uint32(i) {
			t.Errorf("node %d: left child %d must be greater than its parent", i, left)
		}
	}
}

func TestBuildEmptyMesh(t *testing.T) {
	mesh := randomTriangleSoup(3, 0)
	b := Build(mesh)
	if !b.Bounds().IsEmpty() {
		t.Errorf("an empty mesh should produce an empty root bounds")
	}
	ray := geom.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	if _, _, ok := b.Intersect(mesh, &ray); ok {
		t.Errorf("intersecting an empty BVH should never hit")
	}
}

func TestBuildContainsAllPrimitives(t *testing.T) {
	mesh := randomTriangleSoup(4, 100)
	b := Build(mesh)

	box := b.Bounds()
	for _, tri := range mesh.Primitives() {
		for _, v := range [3]mgl32.Vec3{tri.V0, tri.V1, tri.V2} {
			if v.X() < box.Min.X()-1e-3 || v.X() > box.Max.X()+1e-3 ||
				v.Y() < box.Min.Y()-1e-3 || v.Y() > box.Max.Y()+1e-3 ||
				v.Z() < box.Min.Z()-1e-3 || v.Z() > box.Max.Z()+1e-3 {
				t.Fatalf("vertex %v escapes the root bounds %+v", v, box)
			}
		}
	}
}

func TestIntersectMatchesBruteForce(t *testing.T) {
	mesh := randomTriangleSoup(5, 200)
	b := Build(mesh)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		origin := mgl32.Vec3{
			(r.Float32() - 0.5) * 40,
			(r.Float32() - 0.5) * 40,
			(r.Float32() - 0.5) * 40,
		}
		dir := mgl32.Vec3{r.Float32() - 0.5, r.Float32() - 0.5, r.Float32() - 0.5}.Normalize()
		ray := geom.NewRay(origin, dir)
		bvhHitInteraction, bvhIdx, bvhHit := b.Intersect(mesh, &ray)

		bfRay := geom.NewRay(origin, dir)
		bfInteraction, bfIdx, bfHit := bruteForceIntersect(mesh, &bfRay)

		if bvhHit != bfHit {
			t.Fatalf("case %d: hit mismatch, bvh=%v brute=%v", i, bvhHit, bfHit)
		}
		if !bvhHit {
			continue
		}
		if bvhIdx != bfIdx {
			t.Errorf("case %d: primitive mismatch, bvh=%d brute=%d", i, bvhIdx, bfIdx)
		}
		if diff := bvhHitInteraction.T - bfInteraction.T; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("case %d: t mismatch, bvh=%f brute=%f", i, bvhHitInteraction.T, bfInteraction.T)
		}
	}
}

func TestRefitIsNoOpWhenVerticesUnchanged(t *testing.T) {
	mesh := randomTriangleSoup(6, 150)
	b := Build(mesh)

	before := make([]geom.Aabb, b.nodesUsed)
	for i := range before {
		before[i] = b.nodes[i].Bounds
	}

	b.Refit(mesh)

	for i := 0; i < int(b.nodesUsed); i++ {
		if i == 1 {
			continue
		}
		got := b.nodes[i].Bounds
		want := before[i]
		if got.Min != want.Min || got.Max != want.Max {
			t.Errorf("node %d bounds changed on a no-op refit: got %+v want %+v", i, got, want)
		}
	}
}

func TestRefitTracksDisplacedVertices(t *testing.T) {
	mesh := randomTriangleSoup(7, 80)
	b := Build(mesh)

	shift := mgl32.Vec3{100, 0, 0}
	prims := mesh.PrimitivesMut()
	for i := range prims {
		prims[i].V0 = prims[i].V0.Add(shift)
		prims[i].V1 = prims[i].V1.Add(shift)
		prims[i].V2 = prims[i].V2.Add(shift)
	}
	b.Refit(mesh)

	box := b.Bounds()
	if box.Max.X() < 90 {
		t.Errorf("expected refit root bounds to track the +100 x shift, got %+v", box)
	}
}
