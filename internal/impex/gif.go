package impex

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"io"
	"iter"
)

// GIF block introducers and flags.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B

	eGraphicControl = 0xF9

	fColorTable         = 0x80
	fColorTableBitsMask = 0x07
)

// gifDecoder walks the blocks of a GIF and decodes one frame at a time. Only
// the compressed file is held; a frame's pixels exist only while it is being
// imported.
type gifDecoder struct {
	data   []byte
	width  int
	height int
	body   int // offset of the first block after the global color table
}

// gifImage locates one image in the file.
type gifImage struct {
	rect image.Rectangle
	gce  []byte // graphic control extension preceding the image, if any
	desc []byte // image descriptor through the data block terminator
}

type gifFrame struct {
	left, top int
	raw       []byte // standalone single-frame GIF
}

func (f gifFrame) Left() int { return f.left }
func (f gifFrame) Top() int  { return f.top }

func (f gifFrame) Image() (image.Image, error) {
	img, err := gif.Decode(bytes.NewReader(f.raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// OpenGIF reads a GIF, animated or not, from r.
//
// Only the header is validated here. Frames are located and decoded as the
// sequence returned by Frames is consumed, so a corrupt frame is reported at
// its own index.
func OpenGIF(r io.Reader) (AnimationDecoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(data) < 13 {
		return nil, fmt.Errorf("%w: gif: reading header: %w", ErrDecode, io.ErrUnexpectedEOF)
	}
	if vers := string(data[:6]); vers != "GIF87a" && vers != "GIF89a" {
		return nil, fmt.Errorf("%w: gif: can't recognize format %q", ErrDecode, vers)
	}

	d := &gifDecoder{
		data:   data,
		width:  int(data[6]) | int(data[7])<<8,
		height: int(data[8]) | int(data[9])<<8,
		body:   13,
	}
	if flags := data[10]; flags&fColorTable != 0 {
		d.body += colorTableSize(flags)
	}
	if d.body > len(data) {
		return nil, fmt.Errorf("%w: gif: reading color table: %w", ErrDecode, io.ErrUnexpectedEOF)
	}
	return d, nil
}

// Dimensions returns the logical screen size. Some encoders leave it at 0x0,
// in which case the union of the frame bounds is used.
func (d *gifDecoder) Dimensions() (uint32, uint32, error) {
	w, h := d.width, d.height
	if w == 0 || h == 0 {
		var r image.Rectangle
		for img, err := range d.images() {
			if err != nil {
				return 0, 0, err
			}
			r = r.Union(img.rect)
		}
		w, h = r.Max.X, r.Max.Y
	}
	return uint32(w), uint32(h), nil
}

// FrameCount walks the file without decoding any pixels.
func (d *gifDecoder) FrameCount() (int, error) {
	n := 0
	for _, err := range d.images() {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (d *gifDecoder) Frames() iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for img, err := range d.images() {
			if err != nil {
				yield(nil, err)
				return
			}
			f := gifFrame{left: img.rect.Min.X, top: img.rect.Min.Y, raw: d.standalone(img)}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// images yields the images in file order and stops at the trailer or at the
// first malformed block.
func (d *gifDecoder) images() iter.Seq2[gifImage, error] {
	return func(yield func(gifImage, error) bool) {
		off := d.body
		for {
			img, end, ok, err := d.next(off)
			if err != nil {
				yield(gifImage{}, err)
				return
			}
			if !ok || !yield(img, nil) {
				return
			}
			off = end
		}
	}
}

// next locates the first image at or after off and returns the offset just
// past it. ok is false once the trailer is reached.
func (d *gifDecoder) next(off int) (img gifImage, end int, ok bool, err error) {
	var gce []byte
	for {
		if off >= len(d.data) {
			return gifImage{}, off, false, fmt.Errorf("%w: gif: reading frames: %w", ErrDecode, io.ErrUnexpectedEOF)
		}

		switch c := d.data[off]; c {
		case sExtension:
			if off+2 > len(d.data) {
				return gifImage{}, off, false, fmt.Errorf("%w: gif: reading extension: %w", ErrDecode, io.ErrUnexpectedEOF)
			}
			end, err := skipSubBlocks(d.data, off+2)
			if err != nil {
				return gifImage{}, off, false, err
			}
			if d.data[off+1] == eGraphicControl {
				gce = d.data[off:end]
			}
			off = end

		case sImageDescriptor:
			if off+10 > len(d.data) {
				return gifImage{}, off, false, fmt.Errorf("%w: gif: reading image descriptor: %w", ErrDecode, io.ErrUnexpectedEOF)
			}
			left := int(d.data[off+1]) | int(d.data[off+2])<<8
			top := int(d.data[off+3]) | int(d.data[off+4])<<8
			width := int(d.data[off+5]) | int(d.data[off+6])<<8
			height := int(d.data[off+7]) | int(d.data[off+8])<<8

			p := off + 10
			if flags := d.data[off+9]; flags&fColorTable != 0 {
				p += colorTableSize(flags)
			}
			p++ // LZW minimum code size
			if p > len(d.data) {
				return gifImage{}, off, false, fmt.Errorf("%w: gif: reading image data: %w", ErrDecode, io.ErrUnexpectedEOF)
			}
			end, err := skipSubBlocks(d.data, p)
			if err != nil {
				return gifImage{}, off, false, err
			}
			img := gifImage{
				rect: image.Rect(left, top, left+width, top+height),
				gce:  gce,
				desc: d.data[off:end],
			}
			return img, end, true, nil

		case sTrailer:
			return gifImage{}, off, false, nil

		default:
			return gifImage{}, off, false, fmt.Errorf("%w: gif: unknown block type: 0x%.2x", ErrDecode, c)
		}
	}
}

// standalone builds a single-frame GIF for img that the standard decoder
// accepts: the original header and global color table, the frame's graphic
// control extension and its image block. The screen is widened to cover the
// frame, since frames hanging past it are clipped by the importer instead.
func (d *gifDecoder) standalone(img gifImage) []byte {
	raw := make([]byte, 0, d.body+len(img.gce)+len(img.desc)+1)
	raw = append(raw, d.data[:d.body]...)

	w := min(max(d.width, img.rect.Max.X), 0xffff)
	h := min(max(d.height, img.rect.Max.Y), 0xffff)
	raw[6], raw[7] = byte(w), byte(w>>8)
	raw[8], raw[9] = byte(h), byte(h>>8)

	raw = append(raw, img.gce...)
	raw = append(raw, img.desc...)
	return append(raw, sTrailer)
}

// skipSubBlocks returns the offset just past the data sub-blocks starting at
// off, including the zero-length terminator.
func skipSubBlocks(data []byte, off int) (int, error) {
	for {
		if off >= len(data) {
			return off, fmt.Errorf("%w: gif: reading sub-blocks: %w", ErrDecode, io.ErrUnexpectedEOF)
		}
		n := int(data[off])
		off++
		if n == 0 {
			return off, nil
		}
		off += n
	}
}

func colorTableSize(flags byte) int {
	return 3 * (1 << (1 + int(flags&fColorTableBitsMask)))
}
