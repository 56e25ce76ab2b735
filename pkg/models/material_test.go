package models

import (
	"math"
	"testing"

	"github.com/taigrr/pfmray/pkg/math3d"
)

func testMesh() *Mesh {
	mesh := NewMesh("test")
	mesh.Vertices = []math3d.Vec3f{
		math3d.V3f(2, 2, 2), math3d.V3f(6, 2, 2), math3d.V3f(2, 4, 3),
	}
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 0.5}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 2, 1}, Material: 1},
		{V: [3]int{1, 2, 0}, Material: -1},
	}
	mesh.CalculateBounds()
	return mesh
}

// TestFaceMaterialIndex verifies per-face material assignment.
func TestFaceMaterialIndex(t *testing.T) {
	mesh := testMesh()

	tests := []struct {
		face int
		want [3]float32
	}{
		{0, [3]float32{1, 0, 0}},
		{1, [3]float32{0, 1, 0}},
		{2, DefaultColor},
	}
	for _, tt := range tests {
		if _, got := mesh.Triangle(tt.face); got != tt.want {
			t.Errorf("face %d color = %v, want %v", tt.face, got, tt.want)
		}
	}

	if mesh.GetMaterial(-1) != nil || mesh.GetMaterial(99) != nil {
		t.Error("out-of-range material lookups should return nil")
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := testMesh()
	if mesh.BoundsMin != math3d.V3f(2, 2, 2) || mesh.BoundsMax != math3d.V3f(6, 4, 3) {
		t.Fatalf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
	if c := mesh.Center(); c != math3d.V3(4, 3, 2.5) {
		t.Errorf("center = %v", c)
	}
	if b := mesh.Bounds(); b.Size != math3d.V3(4, 2, 1) {
		t.Errorf("box = %+v", b)
	}
}

func TestMeshFit(t *testing.T) {
	mesh := testMesh()
	mesh.Fit(1)

	size := mesh.Size()
	if math.Abs(size.X-1) > 1e-6 || math.Abs(size.Y-0.5) > 1e-6 {
		t.Errorf("fitted size = %v, want (1, 0.5, 0.25)", size)
	}
	if c := mesh.Center(); c.Len() > 1e-6 {
		t.Errorf("fitted center = %v, want origin", c)
	}
	if tris := mesh.Triangles(); len(tris) != 3 || tris[0].A != mesh.Vertices[0] {
		t.Error("Triangles should reflect the transformed vertices")
	}
}

func TestMeshFitEmpty(t *testing.T) {
	mesh := NewMesh("empty")
	mesh.Fit(1)
	if mesh.VertexCount() != 0 || mesh.Size() != math3d.Zero3() {
		t.Error("empty mesh should be left alone")
	}
}

// TestMeshClonePreservesMaterials verifies Clone copies materials.
func TestMeshClonePreservesMaterials(t *testing.T) {
	mesh := testMesh()
	clone := mesh.Clone()

	if clone.MaterialCount() != mesh.MaterialCount() {
		t.Errorf("Clone should have %d materials, got %d", mesh.MaterialCount(), clone.MaterialCount())
	}

	clone.Materials[0].Name = "modified"
	clone.Vertices[0] = math3d.V3f(9, 9, 9)
	if mesh.Materials[0].Name == "modified" || mesh.Vertices[0] == clone.Vertices[0] {
		t.Errorf("Clone should not share storage with the original")
	}
}
