package layerstack

import (
	"fmt"
	"image"

	"github.com/ironsheep/layer-import-mcp/internal/compose"
)

// Insertion chooses where AddLayer places a new layer.
type Insertion struct {
	kind  insertKind
	above LayerID
}

type insertKind int

const (
	insertTop insertKind = iota
	insertBottom
	insertAbove
)

var (
	// InsertTop places the new layer above every existing layer.
	InsertTop = Insertion{kind: insertTop}
	// InsertBottom places the new layer below every existing layer.
	InsertBottom = Insertion{kind: insertBottom}
)

// InsertAbove places the new layer directly above the layer with the given id.
func InsertAbove(id LayerID) Insertion {
	return Insertion{kind: insertAbove, above: id}
}

// Stack is a layered document with a fixed canvas size.
type Stack struct {
	width  int
	height int
	layers []*Layer // bottom to top
}

// New creates an empty stack with the given canvas size.
func New(width, height uint32) *Stack {
	return &Stack{
		width:  int(width),
		height: int(height),
	}
}

// Width returns the canvas width.
func (s *Stack) Width() uint32 { return uint32(s.width) }

// Height returns the canvas height.
func (s *Stack) Height() uint32 { return uint32(s.height) }

// Bounds returns the canvas rectangle.
func (s *Stack) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Len returns the number of layers.
func (s *Stack) Len() int { return len(s.layers) }

// Layers returns the layers bottom to top. The slice is a copy; the layers are
// shared with the stack.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Layer returns the layer with the given id.
func (s *Stack) Layer(id LayerID) (*Layer, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.layers[i], true
}

func (s *Stack) index(id LayerID) int {
	for i, l := range s.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// AddLayer creates a canvas-sized layer with the given id and fill and inserts
// it according to ins.
//
// It fails with ErrDuplicateID if the id is taken, and with ErrLayerNotFound if
// ins refers to a layer that does not exist. The stack is unchanged on error.
func (s *Stack) AddLayer(id LayerID, fill Fill, ins Insertion) (*Layer, error) {
	if s.index(id) >= 0 {
		return nil, fmt.Errorf("add layer 0x%04x: %w", uint16(id), ErrDuplicateID)
	}

	pos := len(s.layers)
	switch ins.kind {
	case insertBottom:
		pos = 0
	case insertAbove:
		i := s.index(ins.above)
		if i < 0 {
			return nil, fmt.Errorf("add layer 0x%04x above 0x%04x: %w", uint16(id), uint16(ins.above), ErrLayerNotFound)
		}
		pos = i + 1
	}

	l := newLayer(id, s.width, s.height, fill)
	s.layers = append(s.layers, nil)
	copy(s.layers[pos+1:], s.layers[pos:])
	s.layers[pos] = l
	return l, nil
}

// RemoveLayer deletes the layer with the given id.
func (s *Stack) RemoveLayer(id LayerID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove layer 0x%04x: %w", uint16(id), ErrLayerNotFound)
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	return nil
}

// Flatten composites the visible layers bottom to top onto a transparent
// canvas using each layer's blend mode and opacity.
func (s *Stack) Flatten() *image.RGBA {
	out := image.NewRGBA(s.Bounds())
	for _, l := range s.layers {
		if l.Hidden {
			continue
		}
		mode := l.Blend
		if mode == compose.BlendReplace {
			// Layers never replace what is beneath them when flattened.
			mode = compose.BlendNormal
		}
		compose.Draw(out, l.Opacity, l.surface, out.Bounds(), mode)
	}
	return out
}
