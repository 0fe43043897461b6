package layerstack

import "errors"

var (
	ErrDuplicateID   = errors.New("layer id already in use")
	ErrLayerNotFound = errors.New("layer not found")
	ErrOutOfBounds   = errors.New("coordinates outside canvas")
)
