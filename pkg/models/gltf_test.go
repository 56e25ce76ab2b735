package models

import (
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/pfmray/pkg/math3d"
)

// quadDocument builds a two-triangle unit quad in the z=0 plane with
// uint16 indices and one red material.
func quadDocument() *gltf.Document {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	var buf []byte
	for _, p := range positions {
		for _, c := range p {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
	}
	posLen := len(buf)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(buf) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Count: len(positions), Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(1), Count: len(indices), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Materials: []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
	}
}

func TestFromDocument(t *testing.T) {
	mesh, err := FromDocument(quadDocument())
	if err != nil {
		t.Fatal(err)
	}

	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
	if mesh.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("second face = %v", mesh.Faces[1].V)
	}
	if mesh.BoundsMax != math3d.V3f(1, 1, 0) {
		t.Errorf("bounds max = %v", mesh.BoundsMax)
	}

	tri, color := mesh.Triangle(0)
	if tri.C != math3d.V3f(1, 1, 0) {
		t.Errorf("triangle 0 = %+v", tri)
	}
	if color != [3]float32{1, 0, 0} {
		t.Errorf("color = %v, want material red", color)
	}
}

func TestFromDocumentUnindexed(t *testing.T) {
	doc := quadDocument()
	doc.Meshes[0].Primitives[0].Indices = nil
	doc.Meshes[0].Primitives[0].Material = nil

	mesh, err := FromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	// Four sequential vertices only make one whole triangle.
	if mesh.TriangleCount() != 1 {
		t.Errorf("triangles = %d, want 1", mesh.TriangleCount())
	}
	if _, color := mesh.Triangle(0); color != DefaultColor {
		t.Errorf("color = %v, want default", color)
	}
}

func TestFromDocumentSkipsNonTriangles(t *testing.T) {
	doc := quadDocument()
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines

	mesh, err := FromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.TriangleCount() != 0 {
		t.Errorf("line primitive produced %d triangles", mesh.TriangleCount())
	}
}

func TestFromDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
	}{
		{"integer positions", func(d *gltf.Document) {
			d.Accessors[0].ComponentType = gltf.ComponentUint
		}},
		{"float indices", func(d *gltf.Document) {
			d.Accessors[1].ComponentType = gltf.ComponentFloat
		}},
		{"missing buffer view", func(d *gltf.Document) {
			d.Accessors[0].BufferView = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := quadDocument()
			tt.mutate(doc)
			if _, err := FromDocument(doc); !errors.Is(err, ErrUnsupported) {
				t.Errorf("err = %v, want ErrUnsupported", err)
			}
		})
	}

	t.Run("overrun", func(t *testing.T) {
		doc := quadDocument()
		doc.Accessors[0].Count = 100
		if _, err := FromDocument(doc); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		doc := quadDocument()
		binary.LittleEndian.PutUint16(doc.Buffers[0].Data[48:], 9)
		if _, err := FromDocument(doc); err == nil {
			t.Error("expected error")
		}
	})
}

func TestLoadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(quadDocument(), path); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Name != "quad.glb" || mesh.TriangleCount() != 2 {
		t.Errorf("loaded %q with %d triangles", mesh.Name, mesh.TriangleCount())
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
