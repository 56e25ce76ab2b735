package render

import (
	"math"
	"testing"

	"github.com/taigrr/pfmray/pkg/math3d"
)

func TestOrthoCameraWindow(t *testing.T) {
	cam := NewOrthoCamera(4, 3)

	if cam.P00 != math3d.V3(-1, 0.75, -5) {
		t.Errorf("P00 = %v", cam.P00)
	}
	if cam.DX != math3d.V3(0.5, 0, 0) || cam.DY != math3d.V3(0, -0.5, 0) {
		t.Errorf("DX = %v, DY = %v", cam.DX, cam.DY)
	}

	origin, dir := cam.Ray(2, 1)
	if !origin.ApproxEqual(math3d.V3(0, 0.25, -5), 1e-15) {
		t.Errorf("Ray(2, 1) origin = %v", origin)
	}
	if dir != math3d.V3(0, 0, 1) {
		t.Errorf("direction = %v", dir)
	}

	inv := cam.DirInv()
	if !math.IsInf(inv.X, 1) || !math.IsInf(inv.Y, 1) || inv.Z != 1 {
		t.Errorf("DirInv() = %v", inv)
	}
}

func TestOrthoCameraYaw(t *testing.T) {
	cam := NewOrthoCamera(4, 3)
	cam.Rotate(0, 90)

	// Yaw rotates by the negated angle: the camera moves to +X and looks along -X.
	if !cam.Dir.ApproxEqual(math3d.V3(-1, 0, 0), 1e-12) {
		t.Errorf("Dir = %v", cam.Dir)
	}
	if !cam.P00.ApproxEqual(math3d.V3(5, 0.75, -1), 1e-12) {
		t.Errorf("P00 = %v", cam.P00)
	}
}

func TestOrthoCameraPitch(t *testing.T) {
	cam := NewOrthoCamera(4, 3)
	cam.Rotate(90, 0)

	if !cam.Dir.ApproxEqual(math3d.V3(0, -1, 0), 1e-12) {
		t.Errorf("pitched Dir = %v, want (0,-1,0)", cam.Dir)
	}
}

func TestOrthoCameraRotateKeepsBasis(t *testing.T) {
	cam := NewOrthoCamera(8, 6)
	cam.Rotate(25, -40)

	if math.Abs(cam.Dir.Len()-1) > 1e-12 {
		t.Errorf("|Dir| = %v", cam.Dir.Len())
	}
	if math.Abs(cam.DX.Len()-0.25) > 1e-12 || math.Abs(cam.DY.Len()-0.25) > 1e-12 {
		t.Errorf("pixel steps changed length: %v %v", cam.DX.Len(), cam.DY.Len())
	}
	if math.Abs(cam.DX.Dot(cam.Dir)) > 1e-12 || math.Abs(cam.DY.Dot(cam.Dir)) > 1e-12 {
		t.Error("screen axes must stay perpendicular to the view direction")
	}
	if inv := cam.DirInv(); !inv.ApproxEqual(cam.Dir.Recip(), 0) {
		t.Errorf("cached reciprocal is stale: %v", inv)
	}
}

func TestOrthoCameraRotateReplaces(t *testing.T) {
	a := NewOrthoCamera(8, 6)
	a.Rotate(10, 10)
	a.Rotate(30, -20)

	b := NewOrthoCamera(8, 6)
	b.Rotate(30, -20)

	if a.P00 != b.P00 || a.Dir != b.Dir || a.DX != b.DX || a.DY != b.DY {
		t.Error("Rotate should start from the unrotated camera")
	}
	if a.Pitch != 30 || a.Yaw != -20 {
		t.Errorf("angles = %v, %v", a.Pitch, a.Yaw)
	}
}
