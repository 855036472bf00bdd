package learn

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/gogpu/gputypes"
)

// DefaultClearColor is the background every chapter clears to unless
// configured otherwise.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// TriangleColor is the solid fill of the triangle fragment shader.
var TriangleColor = gputypes.Color{R: 0.3, G: 0.2, B: 0.1, A: 1.0}

// ErrInvalidColor is returned by ParseColor for malformed hex strings.
var ErrInvalidColor = errors.New("learn: invalid hex color")

// ParseColor parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without a
// leading '#'.
func ParseColor(hex string) (gputypes.Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var digits int
	switch len(s) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	comps := [4]float64{1, 1, 1, 1}
	for i := 0; i*digits < len(s); i++ {
		v, err := strconv.ParseUint(s[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
		if digits == 1 {
			v *= 17
		}
		comps[i] = float64(v) / 255
	}
	return gputypes.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

// NRGBA converts a clear color to an 8-bit image color.
func NRGBA(c gputypes.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x + 0.5
}
