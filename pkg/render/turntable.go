package render

import (
	"github.com/charmbracelet/harmonica"
)

// Turntable produces camera angles for an animated sequence. Yaw is eased
// from zero towards the target with a critically damped spring, so the
// camera accelerates away from the start and settles without overshoot.
type Turntable struct {
	Pitch     float64 // Constant pitch (degrees)
	TargetYaw float64 // Yaw the animation settles at (degrees)

	spring harmonica.Spring
	yaw    float64
	vel    float64
}

// NewTurntable creates a turntable stepping at fps frames per second.
func NewTurntable(fps int, pitch, targetYaw float64) *Turntable {
	if fps <= 0 {
		fps = 24
	}
	return &Turntable{
		Pitch:     pitch,
		TargetYaw: targetYaw,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Next advances one frame and returns that frame's pitch and yaw.
func (t *Turntable) Next() (pitch, yaw float64) {
	t.yaw, t.vel = t.spring.Update(t.yaw, t.vel, t.TargetYaw)
	return t.Pitch, t.yaw
}

// Frames returns the angles of n consecutive frames.
func (t *Turntable) Frames(n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		p, y := t.Next()
		out[i] = [2]float64{p, y}
	}
	return out
}
