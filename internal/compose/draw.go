package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
)

// Draw paints src onto dst inside rect using the given opacity and blend mode.
//
// The source origin is placed at rect.Min. Only the part of rect that lies
// inside both dst and the source extent is written; an empty or fully clipped
// rectangle is a no-op. Opacity is clamped to 0-1 and an opacity of 0 is a
// no-op.
func Draw(dst *image.RGBA, opacity float32, src image.Image, rect image.Rectangle, mode BlendMode) {
	if opacity <= 0 || rect.Empty() {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	// Restrict to the source extent as placed at rect.Min.
	sb := src.Bounds()
	rect = rect.Intersect(image.Rectangle{Min: rect.Min, Max: rect.Min.Add(sb.Size())})
	clipped := rect.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}
	sp := sb.Min.Add(clipped.Min.Sub(rect.Min))

	switch mode {
	case BlendReplace:
		draw.DrawMask(dst, clipped, src, sp, opacityMask(opacity), image.Point{}, draw.Src)
	case BlendNormal:
		draw.DrawMask(dst, clipped, src, sp, opacityMask(opacity), image.Point{}, draw.Over)
	default:
		drawSeparable(dst, clipped, src, sp, opacity, mode)
	}
}

func opacityMask(opacity float32) image.Image {
	if opacity >= 1 {
		return nil
	}
	return image.NewUniform(color.Alpha16{A: uint16(opacity*0xffff + 0.5)})
}

// drawSeparable blends the clipped region with bild, then writes the result
// back over the destination region.
func drawSeparable(dst *image.RGBA, r image.Rectangle, src image.Image, sp image.Point, opacity float32, mode BlendMode) {
	bg := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(bg, bg.Bounds(), dst, r.Min, draw.Src)
	fg := image.NewRGBA(bg.Bounds())
	draw.Draw(fg, fg.Bounds(), src, sp, draw.Src)

	var out *image.RGBA
	switch mode {
	case BlendMultiply:
		out = blend.Multiply(bg, fg)
	case BlendScreen:
		out = blend.Screen(bg, fg)
	case BlendOverlay:
		out = blend.Overlay(bg, fg)
	case BlendDarken:
		out = blend.Darken(bg, fg)
	case BlendLighten:
		out = blend.Lighten(bg, fg)
	case BlendAdd:
		out = blend.Add(bg, fg)
	case BlendDifference:
		out = blend.Difference(bg, fg)
	default:
		out = blend.Normal(bg, fg)
	}
	if opacity < 1 {
		out = blend.Opacity(bg, out, float64(opacity))
	}

	draw.Draw(dst, r, out, image.Point{}, draw.Src)
}
