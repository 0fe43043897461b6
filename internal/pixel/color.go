package pixel

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha color with channels in the range 0-1.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// Transparent is fully transparent black.
var Transparent = Color{}

// ColorFromRGBA converts any color.Color into a straight-alpha Color.
func ColorFromRGBA(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return Transparent
	}
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// NRGBA returns the color rounded to 8-bit straight-alpha channels.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Equal reports whether two colors are the same within tol on every channel.
func (c Color) Equal(o Color, tol float32) bool {
	return abs32(c.R-o.R) <= tol && abs32(c.G-o.G) <= tol &&
		abs32(c.B-o.B) <= tol && abs32(c.A-o.A) <= tol
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor is an 8-bit RGB triple with straight alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes a sampled color in several representations.
type ColorResult struct {
	Hex   string    `json:"hex"` // "#rrggbb", alpha excluded
	RGB   RGBColor  `json:"rgb"`
	RGBA  RGBAColor `json:"rgba"`
	HSL   HSLColor  `json:"hsl"`
	Float Color     `json:"float"`
	Alpha string    `json:"alpha"` // alpha rounded to three decimals
}

// Describe renders c as a ColorResult. Hex and HSL are computed by go-colorful
// from the straight color channels, so a translucent pixel reports the color
// it would have at full opacity.
func Describe(c Color) ColorResult {
	n := c.NRGBA()
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, s, l := cf.Hsl()

	return ColorResult{
		Hex:   cf.Hex(),
		RGB:   RGBColor{R: n.R, G: n.G, B: n.B},
		RGBA:  RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A},
		HSL:   HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Float: c,
		Alpha: fmt.Sprintf("%.3f", c.A),
	}
}
