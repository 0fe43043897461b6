package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"iter"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/layer-import-mcp/internal/impex"
)

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width and Height are the image size, or the logical screen size for GIF.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the name the decoder registered: "png", "jpeg", "gif", "bmp",
	// "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the decoded pixel type can carry transparency.
	HasAlpha bool `json:"has_alpha"`

	// Frames is the number of frames; 1 for everything but GIF.
	Frames int `json:"frames"`

	// Animated is true for a GIF with more than one frame.
	Animated bool `json:"animated"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo decodes the file at path and reports its metadata.
//
// # Color Depth Detection
//
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
//
// Paletted images (GIF, some PNGs) report HasAlpha when any palette entry is
// not fully opaque.
func LoadImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	info := &ImageInfo{
		Format:        format,
		ColorDepth:    "8-bit",
		Frames:        1,
		FileSizeBytes: stat.Size(),
	}

	var img image.Image
	if format == "gif" {
		img, err = gifInfo(f, info)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
	} else {
		img, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		b := img.Bounds()
		info.Width, info.Height = b.Dx(), b.Dy()
	}

	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				info.HasAlpha = true
				break
			}
		}
	}

	return info, nil
}

// gifInfo fills in the screen size and frame count of a GIF without decoding
// any frame but the first, which it returns.
func gifInfo(r io.Reader, info *ImageInfo) (image.Image, error) {
	dec, err := impex.OpenGIF(r)
	if err != nil {
		return nil, err
	}
	w, h, err := dec.Dimensions()
	if err != nil {
		return nil, err
	}
	info.Width, info.Height = int(w), int(h)

	if fc, ok := dec.(impex.FrameCounter); ok {
		if info.Frames, err = fc.FrameCount(); err != nil {
			return nil, err
		}
	}
	info.Animated = info.Frames > 1

	next, stop := iter.Pull2(dec.Frames())
	defer stop()
	frame, err, ok := next()
	if !ok {
		return nil, fmt.Errorf("gif has no frames")
	}
	if err != nil {
		return nil, err
	}
	return frame.Image()
}
