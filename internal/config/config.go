// Package config holds pfmray's run settings: defaults, an optional JSON
// file, a .env file for upload credentials, and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultWidth        = 600
	DefaultHeight       = 450
	DefaultOutput       = "demo.pfm"
	DefaultFrames       = 1
	DefaultFPS          = 24
	DefaultPreviewWidth = 80
)

// Environment variables read by LoadEnv.
const (
	EnvBucket    = "PFMRAY_S3_BUCKET"
	EnvRegion    = "PFMRAY_S3_REGION"
	EnvEndpoint  = "PFMRAY_S3_ENDPOINT"
	EnvAccessKey = "PFMRAY_S3_ACCESS_KEY"
	EnvSecretKey = "PFMRAY_S3_SECRET_KEY"
)

// ErrInvalid marks a configuration that cannot be rendered.
var ErrInvalid = errors.New("invalid config")

// Config is one render run.
//
// AngleX and AngleY are nil when no rotation was requested; a run without
// angles renders the probe image instead of the scene.
type Config struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Output       string   `json:"outputFile"`
	AngleX       *float64 `json:"angleX,omitempty"`
	AngleY       *float64 `json:"angleY,omitempty"`
	Frames       int      `json:"frames"`
	FPS          int      `json:"fps"`
	Mesh         string   `json:"mesh,omitempty"`
	Preview      bool     `json:"preview,omitempty"`
	PreviewWidth int      `json:"previewWidth,omitempty"`
	Upload       string   `json:"upload,omitempty"` // s3://bucket/prefix

	S3 S3Config `json:"-"`
}

// S3Config holds upload credentials. It is only read from the environment.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Output:       DefaultOutput,
		Frames:       DefaultFrames,
		FPS:          DefaultFPS,
		PreviewWidth: DefaultPreviewWidth,
	}
}

// Load reads a JSON config file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads dir/.env, if present, then fills S3 from the environment.
// Variables already set in the environment win over the .env file.
func (c *Config) LoadEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	c.S3 = S3Config{
		Bucket:    os.Getenv(EnvBucket),
		Region:    os.Getenv(EnvRegion),
		Endpoint:  os.Getenv(EnvEndpoint),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}
	return nil
}

// HasRotation reports whether any camera angle was supplied.
func (c *Config) HasRotation() bool {
	return c.AngleX != nil || c.AngleY != nil
}

// Angles returns the requested pitch and yaw, zero where unset.
func (c *Config) Angles() (pitch, yaw float64) {
	if c.AngleX != nil {
		pitch = *c.AngleX
	}
	if c.AngleY != nil {
		yaw = *c.AngleY
	}
	return pitch, yaw
}

// Validate checks the settings before any image is allocated.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: empty output file", ErrInvalid)
	}
	if c.Frames < 1 {
		return fmt.Errorf("%w: frames must be at least 1, got %d", ErrInvalid, c.Frames)
	}
	if c.Frames > 1 && c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.PreviewWidth < 0 {
		return fmt.Errorf("%w: preview width %d", ErrInvalid, c.PreviewWidth)
	}
	return nil
}

// FramePath returns the output path of animation frame i. Single-frame
// runs write to Output unchanged.
func (c *Config) FramePath(i int) string {
	if c.Frames <= 1 {
		return c.Output
	}
	ext := filepath.Ext(c.Output)
	base := c.Output[:len(c.Output)-len(ext)]
	return fmt.Sprintf("%s_%04d%s", base, i, ext)
}
