package learn

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want gputypes.Color
	}{
		{"short", "#fff", gputypes.Color{R: 1, G: 1, B: 1, A: 1}},
		{"short alpha", "f008", gputypes.Color{R: 1, G: 0, B: 0, A: 136.0 / 255}},
		{"long", "#000000", gputypes.Color{R: 0, G: 0, B: 0, A: 1}},
		{"long alpha", "00ff0080", gputypes.Color{R: 0, G: 1, B: 0, A: 128.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "12", "12345", "#gggggg", "1234567"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestNRGBA(t *testing.T) {
	tests := []struct {
		in   gputypes.Color
		want color.NRGBA
	}{
		{gputypes.Color{R: 0, G: 0, B: 0, A: 1}, color.NRGBA{0, 0, 0, 255}},
		{gputypes.Color{R: 1, G: 1, B: 1, A: 1}, color.NRGBA{255, 255, 255, 255}},
		{gputypes.Color{R: 2, G: -1, B: 0.5, A: 0}, color.NRGBA{255, 0, 128, 0}},
	}
	for _, tt := range tests {
		if got := NRGBA(tt.in); got != tt.want {
			t.Errorf("NRGBA(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
