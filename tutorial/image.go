package tutorial

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned by Encode for unknown file extensions.
var ErrUnsupportedFormat = errors.New("tutorial: unsupported image format")

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	slogger().Debug("tutorial: texture loaded", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// Checkerboard returns an n x n board of cell x cell pixel squares
// alternating between a light and a dark tone.
func Checkerboard(n, cell int) *image.RGBA {
	if n < 1 {
		n = 1
	}
	if cell < 1 {
		cell = 1
	}
	light := color.RGBA{R: 0xE8, G: 0xD8, B: 0xF0, A: 0xFF}
	dark := color.RGBA{R: 0x50, G: 0x20, B: 0x60, A: 0xFF}

	size := n * cell
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Encode writes img to w in the format named by ext (".png", ".bmp",
// ".tif" or ".tiff").
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// SaveImage writes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) (err error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, ext, img)
}
