package imaging

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// writeImage encodes img with enc into a temp file named name and returns its path.
func writeImage(t *testing.T, name string, enc func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := enc(f); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

func TestLoadImageInfo(t *testing.T) {
	rgba := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	gray16 := image.NewGray16(image.Rect(0, 0, 20, 10))
	opaque := image.NewGray(image.Rect(0, 0, 30, 20))

	tests := []struct {
		name       string
		file       string
		enc        func(f *os.File) error
		format     string
		width      int
		height     int
		colorDepth string
		hasAlpha   bool
	}{
		{"png nrgba", "a.png", func(f *os.File) error { return png.Encode(f, rgba) }, "png", 200, 150, "8-bit", true},
		{"png gray16", "b.png", func(f *os.File) error { return png.Encode(f, gray16) }, "png", 20, 10, "16-bit", false},
		{"jpeg", "c.jpg", func(f *os.File) error { return jpeg.Encode(f, opaque, nil) }, "jpeg", 30, 20, "8-bit", false},
		{"bmp", "d.bmp", func(f *os.File) error { return bmp.Encode(f, rgba) }, "bmp", 200, 150, "8-bit", true},
		// Contents decide the format, not the extension.
		{"png named xyz", "e.xyz", func(f *os.File) error { return png.Encode(f, opaque) }, "png", 30, 20, "8-bit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.enc)
			info, err := LoadImageInfo(path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
			if info.Width != tt.width || info.Height != tt.height {
				t.Errorf("size: got %dx%d, want %dx%d", info.Width, info.Height, tt.width, tt.height)
			}
			if info.ColorDepth != tt.colorDepth {
				t.Errorf("ColorDepth: got %s, want %s", info.ColorDepth, tt.colorDepth)
			}
			if info.HasAlpha != tt.hasAlpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.hasAlpha)
			}
			if info.Frames != 1 || info.Animated {
				t.Errorf("still image reported %d frames, animated=%v", info.Frames, info.Animated)
			}
			if info.FileSizeBytes <= 0 {
				t.Error("FileSizeBytes should be positive")
			}
		})
	}
}

func TestLoadImageInfo_AnimatedGIF(t *testing.T) {
	pal := color.Palette{color.RGBA{}, color.RGBA{R: 255, A: 255}}
	anim := &gif.GIF{
		Config: image.Config{ColorModel: pal, Width: 12, Height: 9},
		Image: []*image.Paletted{
			image.NewPaletted(image.Rect(0, 0, 12, 9), pal),
			image.NewPaletted(image.Rect(2, 2, 5, 5), pal),
			image.NewPaletted(image.Rect(0, 0, 4, 4), pal),
		},
		Delay: []int{5, 5, 5},
	}
	path := writeImage(t, "anim.gif", func(f *os.File) error { return gif.EncodeAll(f, anim) })

	info, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "gif" {
		t.Errorf("Format: got %s, want gif", info.Format)
	}
	if info.Width != 12 || info.Height != 9 {
		t.Errorf("size: got %dx%d, want 12x9", info.Width, info.Height)
	}
	if info.Frames != 3 || !info.Animated {
		t.Errorf("frames: got %d animated=%v, want 3 animated", info.Frames, info.Animated)
	}
	if !info.HasAlpha {
		t.Error("palette with a transparent entry should report alpha")
	}
}

func TestLoadImageInfo_Errors(t *testing.T) {
	if _, err := LoadImageInfo("/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}

	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImageInfo(path); err == nil {
		t.Error("LoadImageInfo should fail for invalid image data")
	}
}
