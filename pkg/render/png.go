package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// displayGamma is the encoding gamma used when quantizing to 8 bits.
const displayGamma = 2.2

// toByte maps a linear radiance sample to an 8-bit display value.
func toByte(v float32, exposure float64) uint8 {
	x := float64(v) * exposure
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(math.Round(math.Pow(x, 1/displayGamma) * 255))
}

// ToImage tone-maps the buffer into a standard Go image: samples are scaled
// by exposure, clamped to [0, 1] and gamma encoded. One channel becomes
// gray, three or more map to R, G, B; a fourth channel is taken as linear alpha.
func (img *FloatImage) ToImage(exposure float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			i := (y*img.Width + x) * img.Channels
			px := img.pix[i : i+img.Channels]

			c := color.RGBA{A: 255}
			switch {
			case img.Channels == 1:
				g := toByte(px[0], exposure)
				c.R, c.G, c.B = g, g, g
			case img.Channels == 2:
				c.R, c.G = toByte(px[0], exposure), toByte(px[1], exposure)
			default:
				c.R = toByte(px[0], exposure)
				c.G = toByte(px[1], exposure)
				c.B = toByte(px[2], exposure)
			}
			if img.Channels >= 4 {
				c.A = uint8(math.Round(math.Max(0, math.Min(1, float64(px[3]))) * 255))
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out
}

// WritePNG encodes the tone-mapped image as PNG.
func (img *FloatImage) WritePNG(w io.Writer, exposure float64) error {
	return png.Encode(w, img.ToImage(exposure))
}

// SavePNG writes a tone-mapped PNG to path with the same no-partial-file
// guarantee as SavePFM.
func (img *FloatImage) SavePNG(path string, exposure float64) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return img.WritePNG(w, exposure)
	})
}
