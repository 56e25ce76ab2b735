package render

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// RenderStats counts how many pixels each layer won.
type RenderStats struct {
	Box        int
	Ground     int
	Mesh       int
	Foreground int
}

// Hits returns the number of non-black pixels.
func (s RenderStats) Hits() int {
	return s.Box + s.Ground + s.Mesh + s.Foreground
}

// Renderer casts one orthographic ray per pixel through a Scene.
type Renderer struct {
	Scene  *Scene
	Camera *OrthoCamera

	// Workers bounds the number of rows rendered concurrently.
	// Zero means GOMAXPROCS.
	Workers int
}

// NewRenderer creates a renderer for the scene seen through cam.
func NewRenderer(scene *Scene, cam *OrthoCamera) *Renderer {
	return &Renderer{Scene: scene, Camera: cam}
}

// Render fills img. Pixels where no layer is hit are left untouched, so a
// fresh image keeps them black. img must have 3 channels.
//
// Rows are rendered in parallel; each row writes only its own pixels, so the
// result is identical to a sequential pass.
func (r *Renderer) Render(img *FloatImage) (RenderStats, error) {
	if img.Channels != 3 {
		return RenderStats{}, fmt.Errorf("%w: renderer writes RGB, image has %d channels", ErrChannelMismatch, img.Channels)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var counts [LayerForeground + 1]atomic.Int64
	dirInv := r.Camera.DirInv()

	var g errgroup.Group
	g.SetLimit(workers)
	for y := range img.Height {
		g.Go(func() error {
			var row [LayerForeground + 1]int64
			for x := range img.Width {
				origin, dir := r.Camera.Ray(x, y)
				color, layer := r.Scene.Shade(origin, dir, dirInv)
				if layer == LayerNone {
					continue
				}
				if err := img.PutPixel(x, y, color[:]); err != nil {
					return fmt.Errorf("row %d: %w", y, err)
				}
				row[layer]++
			}
			for l, n := range row {
				counts[l].Add(n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}

	return RenderStats{
		Box:        int(counts[LayerBox].Load()),
		Ground:     int(counts[LayerGround].Load()),
		Mesh:       int(counts[LayerMesh].Load()),
		Foreground: int(counts[LayerForeground].Load()),
	}, nil
}

// RenderProbe writes the single probe pixel used when no camera angles are
// given: ProbeColor at (1, 1), near the top-left corner.
func RenderProbe(img *FloatImage) error {
	c := ProbeColor
	if err := img.PutPixel(1, 1, c[:]); err != nil {
		return fmt.Errorf("probe pixel: %w", err)
	}
	return nil
}
