package impex

import (
	"errors"
	"fmt"
)

// ErrDecode marks failures to open, read or decode image data.
var ErrDecode = errors.New("decode failed")

// ErrTooLarge marks imports whose layers would exceed MaxDocumentPixels.
var ErrTooLarge = errors.New("document too large")

// Import stages reported in ImportError.Op.
const (
	OpOpen       = "open"
	OpDimensions = "dimensions"
	OpDecode     = "decode"
	OpFrame      = "frame"
	OpLayer      = "layer"
)

// ImportError reports which stage of an import failed.
type ImportError struct {
	Op    string
	Frame int // zero-based frame index, -1 when not inside the frame loop
	Err   error
}

func (e *ImportError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("import %s %d: %v", e.Op, e.Frame, e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.Op, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// asDecodeError makes sure a decoder failure matches ErrDecode.
func asDecodeError(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDecode, err)
}
