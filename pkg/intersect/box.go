// Package intersect implements the ray/primitive tests used by the renderer:
// the slab test against axis-aligned boxes and the Möller–Trumbore test
// against triangles.
//
// A ray is an (origin, direction) pair passed as two vectors. The direction
// need not be normalized; every returned parameter t is measured in multiples
// of the direction as given. None of the tests clip to t >= 0, callers
// wanting forward hits only must check the sign themselves.
package intersect

import (
	"math"

	"github.com/taigrr/pfmray/pkg/math3d"
)

// IsZero reports whether a is zero within the tightest possible tolerance
// (the smallest positive float64), i.e. effectively only exact zero.
func IsZero(a float64) bool {
	return a <= math.SmallestNonzeroFloat64 && a >= -math.SmallestNonzeroFloat64
}

// Box is an axis-aligned box given by its minimum corner and its size.
// Size components are expected to be non-negative; a negative size is not
// corrected and yields meaningless intersections (see Valid).
type Box struct {
	Corner math3d.Vec3
	Size   math3d.Vec3
}

// Max returns the corner opposite to Corner.
func (b Box) Max() math3d.Vec3 {
	return b.Corner.Add(b.Size)
}

// Valid reports whether all size components are non-negative.
func (b Box) Valid() bool {
	return b.Size.X >= 0 && b.Size.Y >= 0 && b.Size.Z >= 0
}

// Intersect is RayBox against b.
func (b Box) Intersect(origin, dir math3d.Vec3) (math3d.Vec2, bool) {
	return RayBox(origin, dir, b.Corner, b.Size)
}

// IntersectInv is RayBoxInv against b.
func (b Box) IntersectInv(origin, dirInv math3d.Vec3) (math3d.Vec2, bool) {
	return RayBoxInv(origin, dirInv, b.Corner, b.Size)
}

// slab narrows [tMin, tMax] by one axis. inv is the reciprocal of the
// direction component; it must be finite.
func slab(tMin, tMax, origin, inv, corner, size float64) (float64, float64) {
	t1 := (corner - origin) * inv
	t2 := t1 + size*inv

	if inv > 0 {
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	} else {
		if t2 > tMin {
			tMin = t2
		}
		if t1 < tMax {
			tMax = t1
		}
	}
	return tMin, tMax
}

// inSlab reports whether an axis-parallel ray lies inside the closed slab.
func inSlab(origin, corner, size float64) bool {
	return origin >= corner && origin <= corner+size
}

// RayBox intersects the ray (origin, dir) with the box [corner, corner+size]
// using the slab method over X, Y and Z, in that order.
//
// On a hit it returns the parameter interval [tMin, tMax] (X = tMin,
// Y = tMax) of the ray inside the box. A zero direction component means the
// ray is parallel to that slab and hits only if the origin already lies
// within it.
func RayBox(origin, dir, corner, size math3d.Vec3) (math3d.Vec2, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	if IsZero(dir.X) {
		if !inSlab(origin.X, corner.X, size.X) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.X, 1/dir.X, corner.X, size.X)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	if IsZero(dir.Y) {
		if !inSlab(origin.Y, corner.Y, size.Y) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.Y, 1/dir.Y, corner.Y, size.Y)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	if IsZero(dir.Z) {
		if !inSlab(origin.Z, corner.Z, size.Z) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.Z, 1/dir.Z, corner.Z, size.Z)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	return math3d.V2(tMin, tMax), true
}

// RayBoxInv is RayBox with a precomputed reciprocal direction
// (see math3d.Vec3.Recip), for many rays sharing one direction.
// An infinite reciprocal component marks an axis-parallel ray.
func RayBoxInv(origin, dirInv, corner, size math3d.Vec3) (math3d.Vec2, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	if math.IsInf(dirInv.X, 0) {
		if !inSlab(origin.X, corner.X, size.X) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.X, dirInv.X, corner.X, size.X)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	if math.IsInf(dirInv.Y, 0) {
		if !inSlab(origin.Y, corner.Y, size.Y) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.Y, dirInv.Y, corner.Y, size.Y)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	if math.IsInf(dirInv.Z, 0) {
		if !inSlab(origin.Z, corner.Z, size.Z) {
			return math3d.Vec2{}, false
		}
	} else {
		tMin, tMax = slab(tMin, tMax, origin.Z, dirInv.Z, corner.Z, size.Z)
		if tMin > tMax {
			return math3d.Vec2{}, false
		}
	}

	return math3d.V2(tMin, tMax), true
}
