package pixel

import (
	"image/color"
	"testing"
)

func TestColorFromRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"opaque red", color.RGBA{R: 255, A: 255}, Color{R: 1, A: 1}},
		{"transparent", color.RGBA{}, Transparent},
		{"premultiplied half white", color.RGBA{R: 128, G: 128, B: 128, A: 128}, Color{R: 1, G: 1, B: 1, A: 128.0 / 255}},
		{"straight blue", color.NRGBA{B: 255, A: 255}, Color{B: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFromRGBA(tt.in); !got.Equal(tt.want, 0.0001) {
				t.Errorf("ColorFromRGBA(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_NRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: -0.2, A: 1.5}
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got := c.NRGBA(); got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		in      Color
		hex     string
		hsl     HSLColor
		alpha   string
		rgbaOut RGBAColor
	}{
		{"red", Color{R: 1, A: 1}, "#ff0000", HSLColor{H: 0, S: 100, L: 50}, "1.000", RGBAColor{R: 255, A: 255}},
		{"green", Color{G: 1, A: 1}, "#00ff00", HSLColor{H: 120, S: 100, L: 50}, "1.000", RGBAColor{G: 255, A: 255}},
		{"blue", Color{B: 1, A: 1}, "#0000ff", HSLColor{H: 240, S: 100, L: 50}, "1.000", RGBAColor{B: 255, A: 255}},
		{"translucent white", Color{R: 1, G: 1, B: 1, A: 128.0 / 255}, "#ffffff", HSLColor{H: 0, S: 0, L: 100}, "0.502", RGBAColor{R: 255, G: 255, B: 255, A: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.in)
			if got.Hex != tt.hex {
				t.Errorf("Hex = %s, want %s", got.Hex, tt.hex)
			}
			if got.HSL != tt.hsl {
				t.Errorf("HSL = %+v, want %+v", got.HSL, tt.hsl)
			}
			if got.Alpha != tt.alpha {
				t.Errorf("Alpha = %s, want %s", got.Alpha, tt.alpha)
			}
			if got.RGBA != tt.rgbaOut {
				t.Errorf("RGBA = %+v, want %+v", got.RGBA, tt.rgbaOut)
			}
		})
	}
}
