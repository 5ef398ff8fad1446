package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMeshBuilderBuildsParallelArrays(t *testing.T) {
	b := NewMeshBuilder()
	tri := sampleTriangle()
	uv := [3]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}}
	normal := [3]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	b.AddTriangle(tri, uv, normal)

	mesh, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.Len() != 1 {
		t.Fatalf("expected 1 primitive, got %d", mesh.Len())
	}
	if mesh.Primitives()[0] != tri {
		t.Errorf("triangle round trip mismatch")
	}
	if mesh.TexCoords(0) != uv {
		t.Errorf("uv round trip mismatch")
	}
	if mesh.Normals(0) != normal {
		t.Errorf("normal round trip mismatch")
	}
}

func TestMeshBuilderEmptyBuildsEmptyMesh(t *testing.T) {
	mesh, err := NewMeshBuilder().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.Len() != 0 {
		t.Errorf("expected an empty mesh, got %d primitives", mesh.Len())
	}
}

func TestMeshPrimitivesMutEditsInPlace(t *testing.T) {
	b := NewMeshBuilder()
	b.AddTriangle(sampleTriangle(), [3]mgl32.Vec2{}, [3]mgl32.Vec3{})
	mesh, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tris := mesh.PrimitivesMut()
	tris[0].V0 = tris[0].V0.Add(mgl32.Vec3{10, 0, 0})

	if mesh.Primitives()[0].V0.X() != sampleTriangle().V0.X()+10 {
		t.Errorf("expected PrimitivesMut to edit the mesh's backing array in place")
	}
}
