// pfmray - offline orthographic ray caster
// Renders the demo scene (box, ground, optional glTF mesh, foreground
// triangle) into a float image and writes it as PFM or PNG.
//
// Usage:
//
//	pfmray                    - probe image (one red pixel), no rotation
//	pfmray 30                 - scene with the camera yawed by 30 degrees
//	pfmray --angle-x 20 -o spin.pfm --frames 48
//	                          - turntable animation spin_0000.pfm ...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/pfmray/internal/config"
	"github.com/taigrr/pfmray/internal/console"
)

type flags struct {
	configPath   string
	width        int
	height       int
	output       string
	angleX       float64
	angleY       float64
	frames       int
	fps          int
	mesh         string
	preview      bool
	previewWidth int
	upload       string
	envDir       string
	verbose      bool
	noColor      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(console.New())); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(log *console.Logger) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "pfmray [angleY]",
		Short: "Ray cast a demo scene into a PFM image",
		Long: "pfmray casts one orthographic ray per pixel through a fixed scene and\n" +
			"saves the float image. Without any angle it writes a probe image.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Verbose, log.NoColor = f.verbose, f.noColor

			cfg, err := resolveConfig(cmd, &f, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), log, cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "JSON config file")
	fl.IntVar(&f.width, "width", config.DefaultWidth, "image width in pixels")
	fl.IntVar(&f.height, "height", config.DefaultHeight, "image height in pixels")
	fl.StringVarP(&f.output, "output", "o", config.DefaultOutput, "output file (.pfm, .png, .hdr)")
	fl.Float64Var(&f.angleX, "angle-x", 0, "camera pitch in degrees")
	fl.Float64Var(&f.angleY, "angle-y", 0, "camera yaw in degrees")
	fl.IntVar(&f.frames, "frames", config.DefaultFrames, "number of turntable frames")
	fl.IntVar(&f.fps, "fps", config.DefaultFPS, "turntable frame rate")
	fl.StringVar(&f.mesh, "mesh", "", "glTF/GLB model placed in the scene")
	fl.BoolVar(&f.preview, "preview", false, "print a half-block preview to the terminal")
	fl.IntVar(&f.previewWidth, "preview-width", config.DefaultPreviewWidth, "preview width in columns")
	fl.StringVar(&f.upload, "upload", "", "upload results to s3://bucket/prefix")
	fl.StringVar(&f.envDir, "env-dir", ".", "directory holding the .env file")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "print debug output")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	return cmd
}

// resolveConfig layers defaults, the config file, the .env file and the
// flags the user actually set.
func resolveConfig(cmd *cobra.Command, f *flags, args []string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(f.envDir); err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Height = f.height
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("angle-x") {
		cfg.AngleX = &f.angleX
	}
	if fl.Changed("angle-y") {
		cfg.AngleY = &f.angleY
	}
	if fl.Changed("frames") {
		cfg.Frames = f.frames
	}
	if fl.Changed("fps") {
		cfg.FPS = f.fps
	}
	if fl.Changed("mesh") {
		cfg.Mesh = f.mesh
	}
	if fl.Changed("preview") {
		cfg.Preview = f.preview
	}
	if fl.Changed("preview-width") {
		cfg.PreviewWidth = f.previewWidth
	}
	if fl.Changed("upload") {
		cfg.Upload = f.upload
	}

	if len(args) == 1 && !fl.Changed("angle-y") {
		yaw, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: angle %q is not a number", config.ErrInvalid, args[0])
		}
		cfg.AngleY = &yaw
	}

	return cfg, cfg.Validate()
}
