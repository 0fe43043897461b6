package impex

import (
	"image"
	"io"
	"iter"

	"github.com/disintegration/imaging"

	// Formats beyond the standard library's PNG, JPEG and GIF.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// StillDecoder decodes one still image.
type StillDecoder interface {
	Decode() (image.Image, error)
}

// AnimationDecoder exposes the logical screen size of an animation and its
// frames in encoded order.
type AnimationDecoder interface {
	Dimensions() (width, height uint32, err error)

	// Frames yields each frame in turn. A non-nil error ends the sequence.
	Frames() iter.Seq2[Frame, error]
}

// FrameCounter is implemented by animation decoders that can count their
// frames without decoding them. ImportAnimation uses it to reject documents
// over MaxDocumentPixels before allocating any layer.
type FrameCounter interface {
	FrameCount() (int, error)
}

// Frame is one image of an animation, placed at (Left, Top) on the canvas.
type Frame interface {
	Left() int
	Top() int
	Image() (image.Image, error)
}

type stillDecoder struct {
	r io.Reader
}

// OpenStill returns a StillDecoder reading from r. Any format registered with
// the image package can be decoded, which includes BMP, TIFF and WebP through
// golang.org/x/image. EXIF orientation is not applied.
func OpenStill(r io.Reader) StillDecoder {
	return stillDecoder{r: r}
}

func (d stillDecoder) Decode() (image.Image, error) {
	img, err := imaging.Decode(d.r)
	if err != nil {
		return nil, asDecodeError(err)
	}
	return img, nil
}
