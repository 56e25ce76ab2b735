package main

import (
	"context"
	"fmt"
	"time"

	"github.com/taigrr/pfmray/internal/config"
	"github.com/taigrr/pfmray/internal/console"
	"github.com/taigrr/pfmray/internal/publish"
	"github.com/taigrr/pfmray/pkg/models"
	"github.com/taigrr/pfmray/pkg/render"
)

// meshFill is the share of the bounding box a loaded mesh is scaled to.
const meshFill = 0.8

func run(ctx context.Context, log *console.Logger, cfg *config.Config) error {
	log.Infof("Width: %d, Height: %d, Output: %s", cfg.Width, cfg.Height, cfg.Output)
	start := time.Now()

	var (
		written []string
		last    *render.FloatImage
		err     error
	)
	if cfg.HasRotation() {
		written, last, err = renderScene(ctx, log, cfg)
	} else {
		written, last, err = renderProbe(cfg)
	}
	if err != nil {
		return err
	}

	if cfg.Preview {
		log.Println(render.PreviewString(last, cfg.PreviewWidth, 1))
	}

	if cfg.Upload != "" {
		if err := upload(ctx, log, cfg, written); err != nil {
			return err
		}
	}

	log.Debugf("Rendered %d file(s) in %v", len(written), time.Since(start).Round(time.Millisecond))
	log.Infof("HDR image '%s' is finished.", cfg.Output)
	return nil
}

func renderProbe(cfg *config.Config) ([]string, *render.FloatImage, error) {
	img, err := render.NewFloatImage(cfg.Width, cfg.Height, 3)
	if err != nil {
		return nil, nil, err
	}
	if err := render.RenderProbe(img); err != nil {
		return nil, nil, err
	}
	if err := img.Save(cfg.Output); err != nil {
		return nil, nil, err
	}
	return []string{cfg.Output}, img, nil
}

func renderScene(ctx context.Context, log *console.Logger, cfg *config.Config) ([]string, *render.FloatImage, error) {
	scene := render.NewDemoScene(cfg.Width, cfg.Height)
	if cfg.Mesh != "" {
		mesh, err := models.LoadGLB(cfg.Mesh)
		if err != nil {
			return nil, nil, fmt.Errorf("load mesh: %w", err)
		}
		mesh.Fit(scene.Box.Size.X * meshFill)
		scene.Mesh = mesh
		log.Debugf("Mesh %s: %d triangles", mesh.Name, mesh.TriangleCount())
	}

	pitch, yaw := cfg.Angles()
	angles := [][2]float64{{pitch, yaw}}
	if cfg.Frames > 1 {
		angles = render.NewTurntable(cfg.FPS, pitch, yaw).Frames(cfg.Frames)
	}

	cam := render.NewOrthoCamera(cfg.Width, cfg.Height)
	r := render.NewRenderer(scene, cam)

	written := make([]string, 0, len(angles))
	var img *render.FloatImage
	for i, a := range angles {
		if err := ctx.Err(); err != nil {
			return written, nil, err
		}

		var err error
		img, err = render.NewFloatImage(cfg.Width, cfg.Height, 3)
		if err != nil {
			return written, nil, err
		}

		cam.Rotate(a[0], a[1])
		stats, err := r.Render(img)
		if err != nil {
			return written, nil, err
		}

		path := cfg.FramePath(i)
		if err := img.Save(path); err != nil {
			return written, nil, err
		}
		written = append(written, path)
		log.Debugf("Frame %d: pitch %.2f yaw %.2f, %+v -> %s", i, a[0], a[1], stats, path)
	}
	return written, img, nil
}

func upload(ctx context.Context, log *console.Logger, cfg *config.Config, files []string) error {
	target, err := publish.ParseTarget(cfg.Upload)
	if err != nil {
		return err
	}
	u, err := publish.NewS3Uploader(cfg.S3, target)
	if err != nil {
		return err
	}

	for _, file := range files {
		key, err := u.Upload(ctx, file)
		if err != nil {
			return err
		}
		log.Infof("Uploaded %s to s3://%s/%s", file, u.Bucket, key)
	}
	return nil
}
