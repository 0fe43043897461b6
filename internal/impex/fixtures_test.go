package impex

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"iter"
	"os"
	"path/filepath"
	"testing"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueGreen = color.NRGBA{G: 255, A: 255}
	opaqueBlue  = color.NRGBA{B: 255, A: 255}
	halfWhite   = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
)

// quadrantImage returns a size x size image split into red, green, blue and
// translucent white quadrants (top-left, top-right, bottom-left, bottom-right).
func quadrantImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case x < half && y < half:
				img.SetNRGBA(x, y, opaqueRed)
			case x >= half && y < half:
				img.SetNRGBA(x, y, opaqueGreen)
			case x < half:
				img.SetNRGBA(x, y, opaqueBlue)
			default:
				img.SetNRGBA(x, y, halfWhite)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// writeTemp writes data to a file named name inside a test temp dir.
func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

var gifPalette = color.Palette{
	color.RGBA{},
	color.RGBA{R: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{B: 255, A: 255},
}

// gifFrameSpec describes one solid frame of a test animation.
type gifFrameSpec struct {
	rect  image.Rectangle
	index uint8 // palette index filling the frame
}

func encodeGIF(t *testing.T, width, height int, frames []gifFrameSpec) []byte {
	t.Helper()
	anim := &gif.GIF{
		Config: image.Config{ColorModel: gifPalette, Width: width, Height: height},
	}
	for _, f := range frames {
		img := image.NewPaletted(f.rect, gifPalette)
		for i := range img.Pix {
			img.Pix[i] = f.index
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
	return buf.Bytes()
}

type fakeFrame struct {
	left, top int
	img       image.Image
	err       error
	decoded   *int
}

func (f fakeFrame) Left() int { return f.left }
func (f fakeFrame) Top() int  { return f.top }
func (f fakeFrame) Image() (image.Image, error) {
	if f.decoded != nil {
		*f.decoded++
	}
	return f.img, f.err
}

// fakeAnimation is an AnimationDecoder over in-memory frames. If yieldErrAt is
// non-negative the sequence yields an error instead of that frame.
type fakeAnimation struct {
	width, height uint32
	dimErr        error
	frames        []fakeFrame
	yieldErrAt    int
	yieldErr      error
}

func (a *fakeAnimation) Dimensions() (uint32, uint32, error) {
	return a.width, a.height, a.dimErr
}

func (a *fakeAnimation) Frames() iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for i, f := range a.frames {
			if i == a.yieldErrAt {
				yield(nil, a.yieldErr)
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

type fakeStill struct {
	img image.Image
	err error
}

func (s fakeStill) Decode() (image.Image, error) { return s.img, s.err }

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
