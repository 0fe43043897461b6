// Package pixel defines the canonical pixel buffer consumed by the compositing
// and import code, and the color value used when sampling layers.
//
// # Canonical Form
//
// A Buffer holds premultiplied 8-bit RGBA pixels in row-major order with its
// origin at (0,0). Decoders produce many native representations (paletted GIF
// frames, YCbCr JPEG data, 16-bit PNG data, images with offset bounds);
// Normalize turns all of them into this single form.
//
// # Sampling
//
// Color holds straight (non-premultiplied) channels in the range 0-1. It is
// what Buffer.At and layer sampling return, so that a translucent pixel reports
// its real color alongside its alpha.
package pixel
