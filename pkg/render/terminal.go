package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/nfnt/resize"
)

// PreviewImage tone-maps img and scales it down to at most cols pixels wide,
// keeping the aspect ratio. cols <= 0 keeps the native width.
func PreviewImage(img *FloatImage, cols int, exposure float64) image.Image {
	src := img.ToImage(exposure)
	if cols <= 0 || cols >= img.Width {
		return src
	}
	return resize.Resize(uint(cols), 0, src, resize.Bilinear)
}

// DrawPreview draws src onto the screen using half-block characters.
// Each terminal row shows two image rows: ▀ with fg = top, bg = bottom.
func DrawPreview(scr uv.Screen, area uv.Rectangle, src image.Image) {
	b := src.Bounds()

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := b.Min.Y + (row-area.Min.Y)*2
		botY := topY + 1
		if topY >= b.Max.Y {
			break
		}

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < b.Dx(); col++ {
			x := b.Min.X + col - area.Min.X
			top := color.RGBAModel.Convert(src.At(x, topY)).(color.RGBA)
			var bot color.RGBA
			if botY < b.Max.Y {
				bot = color.RGBAModel.Convert(src.At(x, botY)).(color.RGBA)
			}

			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(top),
					Bg: rgbaToColor(bot),
				},
			})
		}
	}
}

// PreviewString renders img as styled half-block text, cols cells wide.
func PreviewString(img *FloatImage, cols int, exposure float64) string {
	src := PreviewImage(img, cols, exposure)
	b := src.Bounds()

	scr := uv.NewScreenBuffer(b.Dx(), (b.Dy()+1)/2)
	DrawPreview(scr, scr.Bounds(), src)
	return scr.Render()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
