package tutorial

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(4, 8)
	if img.Bounds() != image.Rect(0, 0, 32, 32) {
		t.Fatalf("bounds = %v, want 32x32", img.Bounds())
	}
	a, b := img.RGBAAt(0, 0), img.RGBAAt(8, 0)
	if a == b {
		t.Error("adjacent cells should differ")
	}
	if img.RGBAAt(7, 7) != a || img.RGBAAt(8, 8) != a {
		t.Error("diagonal cells should match")
	}
	if a.A != 0xFF || b.A != 0xFF {
		t.Error("checkerboard should be opaque")
	}
}

func TestCheckerboardClamp(t *testing.T) {
	if b := Checkerboard(0, 0).Bounds(); b != image.Rect(0, 0, 1, 1) {
		t.Errorf("Checkerboard(0, 0) bounds = %v, want 1x1", b)
	}
}

func TestEncodeFormats(t *testing.T) {
	img := Checkerboard(2, 2)
	tests := []struct {
		ext    string
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{".png", func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{".PNG", func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{".bmp", func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }},
		{".tif", func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) }},
		{".tiff", func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) }},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tt.ext, img); err != nil {
				t.Fatalf("Encode(%s) error = %v", tt.ext, err)
			}
			got, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if got.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
			}
			r0, g0, b0, _ := got.At(2, 0).RGBA()
			r1, g1, b1, _ := img.At(2, 0).RGBA()
			if r0 != r1 || g0 != g1 || b0 != b1 {
				t.Errorf("pixel (2,0) changed after round trip")
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".jpg", Checkerboard(1, 1)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(.jpg) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := SaveImage(filepath.Join(t.TempDir(), "out.gif"), Checkerboard(1, 1)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveImage(.gif) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	for _, name := range []string{"tex.png", "tex.bmp", "tex.tiff"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, src); err != nil {
			t.Fatalf("SaveImage(%s) error = %v", name, err)
		}
		img, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s) error = %v", name, err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Errorf("%s: bounds = %v, want 3x2", name, img.Bounds())
		}
		r, g, b, _ := img.At(1, 1).RGBA()
		if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
			t.Errorf("%s: pixel (1,1) = %d,%d,%d, want 200,100,50", name, r>>8, g>>8, b>>8)
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}
