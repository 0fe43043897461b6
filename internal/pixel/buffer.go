package pixel

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Buffer is a canonical pixel buffer: premultiplied RGBA, row-major, origin at
// (0,0). A Buffer must not be modified after Normalize returns it.
type Buffer struct {
	Width  int
	Height int

	// Pixels holds Width*Height entries, row by row.
	Pixels []color.RGBA
}

// Normalize converts a decoder-native image into a canonical Buffer.
//
// The source bounds may start anywhere; the result always starts at (0,0).
// Normalize never fails for a non-nil image.
func Normalize(img image.Image) *Buffer {
	// imaging.Clone copies any image type into an origin-aligned NRGBA.
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	buf := &Buffer{
		Width:  w,
		Height: h,
		Pixels: make([]color.RGBA, w*h),
	}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			c := color.NRGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}
			buf.Pixels[y*w+x] = color.RGBAModel.Convert(c).(color.RGBA)
		}
	}
	return buf
}

// Bounds returns the buffer rectangle, always anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At returns the straight-alpha color at (x, y). Out of range coordinates
// return Transparent.
func (b *Buffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Transparent
	}
	return ColorFromRGBA(b.Pixels[y*b.Width+x])
}

// Image returns a copy of the buffer as an *image.RGBA at the origin, the form
// the compositing code draws from.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for i, p := range b.Pixels {
		j := i * 4
		img.Pix[j] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = p.A
	}
	return img
}
