package impex

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/layer-import-mcp/internal/compose"
	"github.com/ironsheep/layer-import-mcp/internal/layerstack"
	"github.com/ironsheep/layer-import-mcp/internal/pixel"
)

// MaxDocumentPixels bounds canvas pixels times layers for one import. At four
// bytes per pixel this is 512 MiB of layer surfaces.
const MaxDocumentPixels = 1 << 27

// ImportStillImage decodes a still image from r and returns a document with a
// single layer holding it.
func ImportStillImage(r io.Reader) (*layerstack.Stack, error) {
	return ImportStill(OpenStill(r))
}

// ImportStillImageFile is ImportStillImage for a file on disk.
func ImportStillImageFile(path string) (*layerstack.Stack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImportError{Op: OpOpen, Frame: -1, Err: asDecodeError(err)}
	}
	defer f.Close()

	return ImportStillImage(f)
}

// ImportStill builds a one-layer document from dec.
//
// The document has the image's size. Layer BaseLayerID, titled "Layer 1",
// receives the whole image at the origin.
func ImportStill(dec StillDecoder) (*layerstack.Stack, error) {
	return importStill(dec, MaxDocumentPixels)
}

func importStill(dec StillDecoder, budget int64) (*layerstack.Stack, error) {
	img, err := dec.Decode()
	if err != nil {
		return nil, &ImportError{Op: OpDecode, Frame: -1, Err: asDecodeError(err)}
	}
	b := img.Bounds()
	if err := checkBudget(b.Dx(), b.Dy(), 1, budget); err != nil {
		return nil, &ImportError{Op: OpDimensions, Frame: -1, Err: err}
	}
	buf := pixel.Normalize(img)

	ls := layerstack.New(uint32(buf.Width), uint32(buf.Height))
	Logger().Debug("importing still image", "width", buf.Width, "height", buf.Height)

	if err := placeFrame(ls, 0, buf, buf.Bounds()); err != nil {
		return nil, &ImportError{Op: OpLayer, Frame: -1, Err: err}
	}
	return ls, nil
}

// ImportAnimatedImage decodes a GIF from r and returns a document with one
// layer per frame.
func ImportAnimatedImage(r io.Reader) (*layerstack.Stack, error) {
	dec, err := OpenGIF(r)
	if err != nil {
		return nil, &ImportError{Op: OpOpen, Frame: -1, Err: err}
	}
	return ImportAnimation(dec)
}

// ImportAnimatedImageFile is ImportAnimatedImage for a file on disk.
func ImportAnimatedImageFile(path string) (*layerstack.Stack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImportError{Op: OpOpen, Frame: -1, Err: asDecodeError(err)}
	}
	defer f.Close()

	return ImportAnimatedImage(f)
}

// ImportAnimation builds a document sized to the animation's logical screen,
// adding one layer per frame in frame order, each above the previous one.
//
// Frame i is painted onto layer LayerIDFor(i) at (Left, Top) with the frame's
// own size; the rest of that layer stays transparent. A frame that fails to
// decode aborts the whole import.
func ImportAnimation(dec AnimationDecoder) (*layerstack.Stack, error) {
	return importAnimation(dec, MaxDocumentPixels)
}

func importAnimation(dec AnimationDecoder, budget int64) (*layerstack.Stack, error) {
	w, h, err := dec.Dimensions()
	if err != nil {
		return nil, &ImportError{Op: OpDimensions, Frame: -1, Err: asDecodeError(err)}
	}
	if err := checkBudget(int(w), int(h), 1, budget); err != nil {
		return nil, &ImportError{Op: OpDimensions, Frame: -1, Err: err}
	}
	// A count error is left for the frame loop, which reports it at its index.
	if fc, ok := dec.(FrameCounter); ok {
		if n, err := fc.FrameCount(); err == nil {
			if err := checkBudget(int(w), int(h), n, budget); err != nil {
				return nil, &ImportError{Op: OpDimensions, Frame: -1, Err: err}
			}
		}
	}
	ls := layerstack.New(w, h)
	Logger().Debug("importing animation", "width", w, "height", h)

	i := 0
	for frame, err := range dec.Frames() {
		if err != nil {
			return nil, &ImportError{Op: OpFrame, Frame: i, Err: asDecodeError(err)}
		}
		if err := checkBudget(int(w), int(h), i+1, budget); err != nil {
			return nil, &ImportError{Op: OpDimensions, Frame: i, Err: err}
		}
		img, err := frame.Image()
		if err != nil {
			return nil, &ImportError{Op: OpFrame, Frame: i, Err: asDecodeError(err)}
		}
		buf := pixel.Normalize(img)

		rect := image.Rect(frame.Left(), frame.Top(), frame.Left()+buf.Width, frame.Top()+buf.Height)
		if err := placeFrame(ls, i, buf, rect); err != nil {
			return nil, &ImportError{Op: OpLayer, Frame: i, Err: err}
		}
		i++
	}

	Logger().Debug("animation imported", "frames", i)
	return ls, nil
}

// ImportFile imports path as an animation if it has a .gif extension and as a
// still image otherwise.
func ImportFile(path string) (*layerstack.Stack, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return ImportAnimatedImageFile(path)
	}
	return ImportStillImageFile(path)
}

// checkBudget reports ErrTooLarge when layers canvas-sized surfaces exceed
// budget pixels.
func checkBudget(width, height, layers int, budget int64) error {
	if int64(width)*int64(height)*int64(layers) > budget {
		return fmt.Errorf("%w: %dx%d canvas with %d layers exceeds %d pixels", ErrTooLarge, width, height, layers, budget)
	}
	return nil
}

// placeFrame adds the layer for frame i on top of ls and paints buf into rect.
func placeFrame(ls *layerstack.Stack, i int, buf *pixel.Buffer, rect image.Rectangle) error {
	layer, err := ls.AddLayer(LayerIDFor(i), layerstack.TransparentFill, layerstack.InsertTop)
	if err != nil {
		return err
	}
	layer.Title = LayerTitleFor(i)

	Logger().Debug("placing frame", "frame", i, "layer", uint16(layer.ID), "rect", rect.String())
	compose.Draw(layer.Surface(), 1, buf.Image(), rect, compose.BlendReplace)
	return nil
}
