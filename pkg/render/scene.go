package render

import (
	"math"

	"github.com/taigrr/pfmray/pkg/intersect"
	"github.com/taigrr/pfmray/pkg/math3d"
)

// RGB is a linear float radiance triple.
type RGB = [3]float32

// Scene colors
var (
	BoxColor    = RGB{0.0, 0.2, 0.2}
	GroundColor = RGB{0.3, 0.25, 0.2}
	ProbeColor  = RGB{1.0, 0.1, 0.1}
)

// TriangleSource is implemented by meshes that contribute an extra layer of
// single-precision triangles to the scene (see models.Mesh).
type TriangleSource interface {
	TriangleCount() int
	Triangle(i int) (tri intersect.Triangle32, color RGB)
}

// Scene is the fixed demo scene: a bounding box, a ground rectangle made of
// two triangles, an optional mesh and a foreground triangle.
//
// Layers are tested in that order and a later hit overwrites an earlier one,
// regardless of depth.
type Scene struct {
	Box        intersect.Box
	Ground     [2]intersect.Triangle32
	Mesh       TriangleSource // may be nil
	Foreground intersect.Triangle
}

// NewDemoScene lays out the demo scene for a width x height image, scaled to
// the smaller half-extent of the screen window.
func NewDemoScene(width, height int) *Scene {
	inner := math.Min(1, float64(height)/float64(width))

	floor := -inner * 0.6
	g := inner * 1.5
	g0 := math3d.V3(-g, floor, -g).Vec3f()
	g1 := math3d.V3(g, floor, -g).Vec3f()
	g2 := math3d.V3(g, floor, g).Vec3f()
	g3 := math3d.V3(-g, floor, g).Vec3f()

	return &Scene{
		Box: intersect.Box{
			Corner: math3d.V3(-inner*0.6, -inner*0.6, -inner*0.6),
			Size:   math3d.V3(inner*1.2, inner*1.2, inner*1.2),
		},
		Ground: [2]intersect.Triangle32{
			{A: g0, B: g1, C: g2},
			{A: g0, B: g2, C: g3},
		},
		Foreground: intersect.Triangle{
			A: math3d.V3(inner*-0.4, 0, 0),
			B: math3d.V3(inner*0.3, inner*-0.3, 0),
			C: math3d.V3(inner*0.1, inner*0.3, 0),
		},
	}
}

// Layer identifies which scene layer produced a pixel's color.
type Layer int

const (
	LayerNone Layer = iota
	LayerBox
	LayerGround
	LayerMesh
	LayerForeground
)

// Shade evaluates the scene along one ray. dirInv must be dir.Recip().
// It reports the winning layer, LayerNone if nothing was hit.
func (s *Scene) Shade(origin, dir, dirInv math3d.Vec3) (RGB, Layer) {
	var color RGB
	layer := LayerNone

	// 1. bounding box
	if _, ok := s.Box.IntersectInv(origin, dirInv); ok {
		color, layer = BoxColor, LayerBox
	}

	// 2. ground
	for _, tri := range s.Ground {
		if tri.Intersect(origin, dir).Hit() {
			color, layer = GroundColor, LayerGround
			break
		}
	}

	// 3. mesh, nearest forward hit
	if s.Mesh != nil {
		nearest := math.Inf(1)
		for i := range s.Mesh.TriangleCount() {
			tri, c := s.Mesh.Triangle(i)
			hit := tri.Intersect(origin, dir)
			if hit.Hit() && hit.T >= 0 && hit.T < nearest {
				nearest = hit.T
				color, layer = c, LayerMesh
			}
		}
	}

	// 4. foreground triangle, colored by its barycentrics
	if hit := s.Foreground.Intersect(origin, dir); hit.Hit() {
		w := hit.Weights()
		color, layer = RGB{float32(w.X), float32(w.Y), float32(w.Z)}, LayerForeground
	}

	return color, layer
}
