// Package render provides the floating-point framebuffer, its exporters and
// the orthographic ray-casting loop that fills it.
package render

import "fmt"

// FloatImage is a fixed-size multi-channel float32 pixel buffer.
//
// Samples are stored row-major, pixel-major, channel-minor: the channel is the
// fastest varying index, so pixel (x, y) occupies
// Pix[(y*Width+x)*Channels : (y*Width+x+1)*Channels].
//
// Distinct pixels never share storage, so PutPixel may be called from several
// goroutines as long as each writes its own pixels.
type FloatImage struct {
	Width    int
	Height   int
	Channels int
	pix      []float32
}

// NewFloatImage allocates a zeroed (black) image. All dimensions must be positive.
func NewFloatImage(width, height, channels int) (*FloatImage, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with %d channels", ErrInvalidDimensions, width, height, channels)
	}
	return &FloatImage{
		Width:    width,
		Height:   height,
		Channels: channels,
		pix:      make([]float32, width*height*channels),
	}, nil
}

func (img *FloatImage) offset(x, y int) (int, error) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, img.Width, img.Height)
	}
	return (y*img.Width + x) * img.Channels, nil
}

// PutPixel overwrites the samples of pixel (x, y) with color.
// len(color) must equal Channels.
func (img *FloatImage) PutPixel(x, y int, color []float32) error {
	if len(color) != img.Channels {
		return fmt.Errorf("%w: got %d values for %d channels", ErrChannelMismatch, len(color), img.Channels)
	}
	i, err := img.offset(x, y)
	if err != nil {
		return err
	}
	copy(img.pix[i:i+img.Channels], color)
	return nil
}

// Pixel returns a copy of the samples of pixel (x, y).
func (img *FloatImage) Pixel(x, y int) ([]float32, error) {
	i, err := img.offset(x, y)
	if err != nil {
		return nil, err
	}
	out := make([]float32, img.Channels)
	copy(out, img.pix[i:i+img.Channels])
	return out, nil
}

// Data returns the whole sample buffer in storage order.
// The slice aliases the image; callers must not modify it.
func (img *FloatImage) Data() []float32 {
	return img.pix
}

// Len returns the number of samples (Width * Height * Channels).
func (img *FloatImage) Len() int {
	return len(img.pix)
}
