// Package impex imports decoded raster images into layered documents.
//
// # Import Paths
//
// ImportStillImage turns one still image into a document with a single layer
// the size of the image. ImportAnimatedImage turns an animation into a
// document the size of the animation's logical screen with one layer per
// frame; each frame is painted at its own offset onto its own otherwise
// transparent layer. Frames are not accumulated onto each other.
//
// Both paths paint with compose.BlendReplace at full opacity.
//
// # Layer Identity
//
// The layer created for the frame at zero-based index i has id
// layerstack.BaseLayerID+i and title "Layer <i+1>". A still image is frame 0.
//
// # Errors
//
// Imports are all or nothing. Any failure returns a nil document and an
// *ImportError naming the stage that failed. Decoder failures also match
// ErrDecode with errors.Is; id collisions match layerstack.ErrDuplicateID.
//
// # Limits
//
// Every layer is a dense canvas-sized RGBA surface. An import whose canvas
// pixels times layer count exceeds MaxDocumentPixels fails at the dimensions
// stage with ErrTooLarge, before the layers past the limit are allocated.
//
// # Concurrency
//
// Imports keep no shared state. Concurrent imports of independent sources need
// no synchronization.
package impex
