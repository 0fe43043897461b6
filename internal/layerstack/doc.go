// Package layerstack holds the layered document produced by the importers: a
// fixed canvas size and an ordered stack of layers, each addressed by a
// numeric LayerID.
//
// # Invariants
//
// Every layer surface has exactly the stack's canvas size, regardless of how
// much of it has been painted. Layer ids are unique within a stack.
//
// # Ordering
//
// Layers() returns layers bottom to top. InsertTop places a new layer above
// all existing ones, which is how the importers add frames.
//
// # Thread Safety
//
// A Stack is not safe for concurrent mutation. The importers build a stack on
// one goroutine and hand it to the caller, who owns it from then on.
package layerstack
