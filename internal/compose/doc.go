// Package compose paints a source image onto a destination surface inside a
// placement rectangle under a blend mode and opacity.
//
// BlendReplace overwrites destination pixels unconditionally and is what the
// importers use. BlendNormal is source-over. The remaining modes are separable
// blends evaluated with github.com/anthonynsimon/bild/blend.
package compose
