// Package imaging inspects source image files and encodes document pixels for
// output.
//
// LoadImageInfo reports what an import would see before running it: the
// detected format, size, bit depth, alpha and (for GIF) the frame count.
// Format detection sniffs file contents, not the extension.
//
// The output helpers crop and scale an image and return it as base64 PNG,
// which is how layer surfaces and flattened documents leave the server.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
package imaging
