// Package models loads triangle meshes that pfmray can place in its scene.
package models

import (
	"github.com/taigrr/pfmray/pkg/intersect"
	"github.com/taigrr/pfmray/pkg/math3d"
	"github.com/taigrr/pfmray/pkg/render"
)

// DefaultColor is used for faces without a material.
var DefaultColor = render.RGB{0.8, 0.8, 0.8}

// Mesh is an indexed triangle mesh with single-precision vertices.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3f
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3f
	BoundsMax math3d.Vec3f
}

// Face is a triangle referencing three vertices and a material.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material holds the flat color of a glTF material.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// Color drops alpha and narrows to the render color type.
func (m Material) Color() render.RGB {
	return render.RGB{float32(m.BaseColor[0]), float32(m.BaseColor[1]), float32(m.BaseColor[2])}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3f{}, math3d.Vec3f{}
		return
	}

	lo, hi := m.Vertices[0].Vec3(), m.Vertices[0].Vec3()
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v.Vec3())
		hi = hi.Max(v.Vec3())
	}
	m.BoundsMin, m.BoundsMax = lo.Vec3f(), hi.Vec3f()
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Vec3().Add(m.BoundsMax.Vec3()).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Vec3().Sub(m.BoundsMin.Vec3())
}

// Bounds returns the bounding box as a ray-testable box.
func (m *Mesh) Bounds() intersect.Box {
	return intersect.Box{Corner: m.BoundsMin.Vec3(), Size: m.Size()}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns face i and its color.
func (m *Mesh) Triangle(i int) (intersect.Triangle32, render.RGB) {
	f := m.Faces[i]
	tri := intersect.Triangle32{
		A: m.Vertices[f.V[0]],
		B: m.Vertices[f.V[1]],
		C: m.Vertices[f.V[2]],
	}
	if mat := m.GetMaterial(f.Material); mat != nil {
		return tri, mat.Color()
	}
	return tri, DefaultColor
}

// Triangles returns every face as a triangle.
func (m *Mesh) Triangles() []intersect.Triangle32 {
	out := make([]intersect.Triangle32, len(m.Faces))
	for i := range m.Faces {
		out[i], _ = m.Triangle(i)
	}
	return out
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v.Vec3()).Vec3f()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// largest extent equals size. Empty or flat-to-a-point meshes are left alone.
func (m *Mesh) Fit(size float64) {
	ext := m.Size()
	largest := max(ext.X, ext.Y, ext.Z)
	if len(m.Vertices) == 0 || largest == 0 {
		return
	}

	c := m.Center()
	fit := math3d.ScaleUniform(size / largest).Mul(math3d.Translate(c.Negate()))
	m.Transform(fit)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3f, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}
