package layerstack

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ironsheep/layer-import-mcp/internal/compose"
	"github.com/ironsheep/layer-import-mcp/internal/pixel"
)

// LayerID identifies a layer within a Stack.
type LayerID uint16

// BaseLayerID is the id given to the first layer of an imported document.
const BaseLayerID LayerID = 0x0101

// Fill is the initial content of a new layer.
type Fill struct {
	Color pixel.Color
}

// TransparentFill leaves a new layer fully transparent.
var TransparentFill = Fill{Color: pixel.Transparent}

// Solid returns a fill of a single color.
func Solid(c pixel.Color) Fill {
	return Fill{Color: c}
}

// Layer is a canvas-sized pixel surface with an id and display properties.
type Layer struct {
	ID      LayerID
	Title   string
	Opacity float32
	Hidden  bool
	Blend   compose.BlendMode

	surface *image.RGBA
}

func newLayer(id LayerID, width, height int, fill Fill) *Layer {
	l := &Layer{
		ID:      id,
		Opacity: 1,
		Blend:   compose.BlendNormal,
		surface: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if fill.Color.A > 0 {
		draw.Draw(l.surface, l.surface.Bounds(), image.NewUniform(fill.Color.NRGBA()), image.Point{}, draw.Src)
	}
	return l
}

// Surface returns the layer's pixels. Callers draw into it with compose.Draw.
func (l *Layer) Surface() *image.RGBA {
	return l.surface
}

// Bounds returns the canvas rectangle the layer covers.
func (l *Layer) Bounds() image.Rectangle {
	return l.surface.Bounds()
}

// SampleColor returns the straight-alpha color at (x, y).
func (l *Layer) SampleColor(x, y int) (pixel.Color, error) {
	if !(image.Point{X: x, Y: y}).In(l.surface.Bounds()) {
		return pixel.Transparent, fmt.Errorf("layer 0x%04x: (%d,%d): %w", uint16(l.ID), x, y, ErrOutOfBounds)
	}
	return pixel.ColorFromRGBA(l.surface.RGBAAt(x, y)), nil
}

// IsBlank reports whether every pixel of the layer is fully transparent.
func (l *Layer) IsBlank() bool {
	for i := 3; i < len(l.surface.Pix); i += 4 {
		if l.surface.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// PaintedBounds returns the smallest rectangle containing every non-transparent
// pixel, or an empty rectangle for a blank layer.
func (l *Layer) PaintedBounds() image.Rectangle {
	var r image.Rectangle
	b := l.surface.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if l.surface.Pix[l.surface.PixOffset(x, y)+3] != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}
