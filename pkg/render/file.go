package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the image to path, choosing the format by extension:
// ".hdr" (not implemented), ".png" (tone-mapped 8-bit), anything else PFM.
func (img *FloatImage) Save(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr":
		return img.SaveHDR(path)
	case ".png":
		return img.SavePNG(path, 1)
	default:
		return img.SavePFM(path)
	}
}

// SaveHDR is reserved for a high dynamic range format whose byte layout is
// not defined yet. It always fails with ErrNotImplemented and creates nothing.
func (img *FloatImage) SaveHDR(path string) error {
	return fmt.Errorf("save %s: hdr export: %w", path, ErrNotImplemented)
}

// writeFileAtomic writes through a temporary file in the target directory,
// syncs it and renames it over path. The temporary is removed on any failure.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrIO, path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", ErrIO, path, err)
	}
	return nil
}
