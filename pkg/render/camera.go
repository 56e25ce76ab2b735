package render

import (
	"github.com/taigrr/pfmray/pkg/math3d"
)

// screenZ is the depth of the canonical screen window.
const screenZ = -5.0

// OrthoCamera is a parallel-projection camera. Pixel (x, y) maps to the ray
// origin P00 + x*DX + y*DY, and every ray shares the direction Dir.
type OrthoCamera struct {
	P00 math3d.Vec3 // Ray origin of pixel (0, 0), the top-left corner
	DX  math3d.Vec3 // Origin step per pixel to the right
	DY  math3d.Vec3 // Origin step per pixel downwards
	Dir math3d.Vec3 // Shared ray direction

	// Orientation (Euler angles in degrees)
	Pitch float64 // Rotation around X
	Yaw   float64 // Rotation around Y

	base   [4]math3d.Vec3 // Unrotated P00, DX, DY, Dir
	dirInv math3d.Vec3
}

// NewOrthoCamera builds the canonical unrotated camera for a width x height
// image: the window spans x in [-1, 1] and y in [-aspect, aspect]
// (aspect = height/width) at z = -5, looking along +Z.
func NewOrthoCamera(width, height int) *OrthoCamera {
	xMin, xMax := -1.0, 1.0
	yMax := float64(height) / float64(width)
	yMin := -yMax

	c := &OrthoCamera{
		P00: math3d.V3(xMin, yMax, screenZ),
		DX:  math3d.V3((xMax-xMin)/float64(width), 0, 0),
		DY:  math3d.V3(0, (yMin-yMax)/float64(height), 0),
		Dir: math3d.V3(0, 0, 1),
	}
	c.base = [4]math3d.Vec3{c.P00, c.DX, c.DY, c.Dir}
	c.dirInv = c.Dir.Recip()
	return c
}

// Rotation returns the camera transform for the current angles: pitch about
// X first, then yaw about Y by the negated yaw angle.
func (c *OrthoCamera) Rotation() math3d.Mat4 {
	return math3d.RotateY(math3d.Radians(-c.Yaw)).Mul(math3d.RotateX(math3d.Radians(c.Pitch)))
}

// Rotate orients the unrotated camera by pitch and yaw (degrees), replacing
// any earlier rotation. P00 is a point and gets the full transform; DX, DY
// and Dir are free vectors and get only the linear part.
func (c *OrthoCamera) Rotate(pitch, yaw float64) {
	c.Pitch = pitch
	c.Yaw = yaw

	m := c.Rotation()
	c.P00 = m.MulVec3(c.base[0])
	c.DX = m.MulVec3Dir(c.base[1])
	c.DY = m.MulVec3Dir(c.base[2])
	c.Dir = m.MulVec3Dir(c.base[3])
	c.dirInv = c.Dir.Recip()
}

// Ray returns the origin and direction of the ray through pixel (x, y).
func (c *OrthoCamera) Ray(x, y int) (origin, dir math3d.Vec3) {
	origin = c.P00.Add(c.DX.Scale(float64(x))).Add(c.DY.Scale(float64(y)))
	return origin, c.Dir
}

// DirInv returns the cached reciprocal of the ray direction.
func (c *OrthoCamera) DirInv() math3d.Vec3 {
	return c.dirInv
}
