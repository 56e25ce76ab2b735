package intersect

import (
	"math"

	"github.com/taigrr/pfmray/pkg/math3d"
)

// TriangleHit is the result of a ray/triangle test.
// On a miss T is -Inf and UV is (0, 0).
type TriangleHit struct {
	T  float64     // Ray parameter of the hit, in multiples of the direction
	UV math3d.Vec2 // Barycentric (u, v): point = (1-u-v)*a + u*b + v*c
}

// miss is the sentinel result for no intersection.
var miss = TriangleHit{T: math.Inf(-1)}

// Hit reports whether the ray intersected the triangle.
func (h TriangleHit) Hit() bool {
	return !math.IsInf(h.T, -1)
}

// Point returns origin + T*dir, the hit position on the ray.
func (h TriangleHit) Point(origin, dir math3d.Vec3) math3d.Vec3 {
	return origin.Add(dir.Scale(h.T))
}

// Weights returns the barycentric weights (1-u-v, u, v) of vertices a, b, c.
func (h TriangleHit) Weights() math3d.Vec3 {
	return math3d.V3(1-h.UV.X-h.UV.Y, h.UV.X, h.UV.Y)
}

// Triangle is a triangle with double-precision vertices.
type Triangle struct {
	A, B, C math3d.Vec3
}

// Intersect is RayTriangle against t.
func (t Triangle) Intersect(origin, dir math3d.Vec3) TriangleHit {
	return RayTriangle(origin, dir, t.A, t.B, t.C)
}

// Triangle32 is a triangle with single-precision vertices.
type Triangle32 struct {
	A, B, C math3d.Vec3f
}

// Intersect is RayTriangle32 against t.
func (t Triangle32) Intersect(origin, dir math3d.Vec3) TriangleHit {
	return RayTriangle32(origin, dir, t.A, t.B, t.C)
}

// RayTriangle intersects the ray (origin, dir) with triangle (a, b, c)
// using the Möller–Trumbore algorithm:
//
//	origin + t*dir = (1-u-v)*a + u*b + v*c
//
// Both windings are accepted. A zero determinant (ray parallel to the
// plane, or a degenerate triangle) is a miss, so no division by zero occurs.
func RayTriangle(origin, dir, a, b, c math3d.Vec3) TriangleHit {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if IsZero(det) {
		return miss
	}

	detInv := 1 / det
	tvec := origin.Sub(a)
	u := tvec.Dot(pvec) * detInv
	if u < 0 || u > 1 {
		return miss
	}

	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * detInv
	if v < 0 || u+v > 1 {
		return miss
	}

	return TriangleHit{
		T:  detInv * e2.Dot(qvec),
		UV: math3d.V2(u, v),
	}
}

// RayTriangle32 is RayTriangle for single-precision vertices.
// The vertices are promoted to float64 before any arithmetic.
func RayTriangle32(origin, dir math3d.Vec3, a, b, c math3d.Vec3f) TriangleHit {
	return RayTriangle(origin, dir, a.Vec3(), b.Vec3(), c.Vec3())
}
