package compose

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestDraw_ReplaceOverwrites(t *testing.T) {
	dst := filled(4, 4, color.RGBA{R: 255, A: 255})
	src := filled(2, 2, color.RGBA{G: 64, A: 64})

	Draw(dst, 1, src, image.Rect(1, 1, 3, 3), BlendReplace)

	// Inside the rectangle the translucent source wins outright.
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{G: 64, A: 64}) {
		t.Errorf("inside rect: got %v, want source pixel", got)
	}
	if got := dst.RGBAAt(2, 2); got != (color.RGBA{G: 64, A: 64}) {
		t.Errorf("inside rect: got %v, want source pixel", got)
	}
	// Outside stays untouched.
	for _, p := range []image.Point{{0, 0}, {3, 3}, {0, 2}, {3, 1}} {
		if got := dst.RGBAAt(p.X, p.Y); got != (color.RGBA{R: 255, A: 255}) {
			t.Errorf("outside rect at %v: got %v, want red", p, got)
		}
	}
}

func TestDraw_ReplaceTransparentClears(t *testing.T) {
	dst := filled(2, 2, color.RGBA{B: 255, A: 255})
	Draw(dst, 1, image.NewRGBA(image.Rect(0, 0, 2, 2)), dst.Bounds(), BlendReplace)
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("got %v, want transparent", got)
	}
}

func TestDraw_NoOps(t *testing.T) {
	tests := []struct {
		name    string
		opacity float32
		rect    image.Rectangle
	}{
		{"empty rect", 1, image.Rect(1, 1, 1, 3)},
		{"zero height", 1, image.Rect(0, 2, 2, 2)},
		{"zero opacity", 0, image.Rect(0, 0, 2, 2)},
		{"outside canvas", 1, image.Rect(10, 10, 12, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
			Draw(dst, tt.opacity, filled(2, 2, color.White), tt.rect, BlendReplace)
			for i, v := range dst.Pix {
				if v != 0 {
					t.Fatalf("byte %d modified: %d", i, v)
				}
			}
		})
	}
}

func TestDraw_ClipsToCanvasAndSource(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src := filled(2, 2, color.White)

	// Rect is larger than the source and hangs off the canvas.
	Draw(dst, 1, src, image.Rect(3, 3, 8, 8), BlendReplace)

	if got := dst.RGBAAt(3, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("(3,3) = %v, want white", got)
	}
	if got := dst.RGBAAt(2, 3); got != (color.RGBA{}) {
		t.Errorf("(2,3) = %v, want transparent", got)
	}

	// Source smaller than rect: only the overlap is painted.
	dst = image.NewRGBA(image.Rect(0, 0, 4, 4))
	Draw(dst, 1, src, image.Rect(0, 0, 4, 4), BlendReplace)
	if got := dst.RGBAAt(1, 1); got.A != 255 {
		t.Errorf("(1,1) = %v, want painted", got)
	}
	if got := dst.RGBAAt(2, 2); got.A != 0 {
		t.Errorf("(2,2) = %v, want unpainted", got)
	}
}

func TestDraw_SourceWithOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 255, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))

	Draw(dst, 1, src, image.Rect(1, 1, 3, 3), BlendReplace)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("(1,1) = %v, want source top-left pixel", got)
	}
}

func TestDraw_ReplaceWithOpacity(t *testing.T) {
	dst := filled(1, 1, color.RGBA{B: 255, A: 255})
	Draw(dst, 0.5, filled(1, 1, color.RGBA{R: 255, A: 255}), dst.Bounds(), BlendReplace)
	got := dst.RGBAAt(0, 0)
	if got.B != 0 {
		t.Errorf("replace kept destination blue: %v", got)
	}
	if got.A < 126 || got.A > 129 {
		t.Errorf("alpha = %d, want about half", got.A)
	}
}

func TestDraw_Normal(t *testing.T) {
	dst := filled(1, 1, color.RGBA{B: 255, A: 255})
	Draw(dst, 1, filled(1, 1, color.RGBA{R: 128, A: 128}), dst.Bounds(), BlendNormal)
	got := dst.RGBAAt(0, 0)
	if got.A != 255 || got.R != 128 || got.B < 126 || got.B > 128 {
		t.Errorf("source-over = %v, want half red over blue", got)
	}
}

func TestDraw_Multiply(t *testing.T) {
	dst := filled(2, 2, color.White)
	Draw(dst, 1, filled(2, 2, color.RGBA{R: 255, A: 255}), dst.Bounds(), BlendMultiply)
	got := dst.RGBAAt(1, 1)
	if got.R < 254 || got.G > 1 || got.B > 1 || got.A < 254 {
		t.Errorf("multiply white*red = %v, want red", got)
	}
}

func TestParseBlendMode(t *testing.T) {
	for _, name := range BlendModeNames() {
		m, err := ParseBlendMode(name)
		if err != nil {
			t.Fatalf("ParseBlendMode(%q): %v", name, err)
		}
		if m.String() != name {
			t.Errorf("round trip %q -> %q", name, m.String())
		}
	}
	if m, err := ParseBlendMode(" Replace "); err != nil || m != BlendReplace {
		t.Errorf("ParseBlendMode(\" Replace \") = %v, %v", m, err)
	}
	if _, err := ParseBlendMode("dissolve"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if got := BlendMode(99).String(); got != "BlendMode(99)" {
		t.Errorf("String() = %q", got)
	}
}
