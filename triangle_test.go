package learn

import (
	"errors"
	"testing"
)

func TestVertexPosition(t *testing.T) {
	tests := []struct {
		index uint32
		want  [4]float32
	}{
		{0, [4]float32{0.0, 0.5, 0.0, 1.0}},
		{1, [4]float32{-0.5, -0.5, 0.0, 1.0}},
		{2, [4]float32{0.5, -0.5, 0.0, 1.0}},
	}
	for _, tt := range tests {
		got, err := VertexPosition(tt.index)
		if err != nil {
			t.Fatalf("VertexPosition(%d) error = %v", tt.index, err)
		}
		if got != tt.want {
			t.Errorf("VertexPosition(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestVertexPositionOutOfRange(t *testing.T) {
	for _, idx := range []uint32{3, 4, 1 << 31} {
		if _, err := VertexPosition(idx); !errors.Is(err, ErrVertexIndex) {
			t.Errorf("VertexPosition(%d) error = %v, want ErrVertexIndex", idx, err)
		}
	}
}

func TestTriangleTableMatchesDrawCount(t *testing.T) {
	if len(TrianglePositions) != TriangleVertexCount {
		t.Fatalf("len(TrianglePositions) = %d, want %d", len(TrianglePositions), TriangleVertexCount)
	}
	if got := len(ClipPositions()); got != TriangleVertexCount {
		t.Errorf("len(ClipPositions()) = %d, want %d", got, TriangleVertexCount)
	}
}

func TestClipPositionsHomogeneous(t *testing.T) {
	for i, p := range ClipPositions() {
		if p[2] != 0 || p[3] != 1 {
			t.Errorf("vertex %d: z,w = %v,%v, want 0,1", i, p[2], p[3])
		}
	}
}

func TestTriangleCounterClockwise(t *testing.T) {
	// The pipeline culls back faces with a CCW front face, so the signed
	// area of the triangle must be positive.
	a, b, c := TrianglePositions[0], TrianglePositions[1], TrianglePositions[2]
	area := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
	if area <= 0 {
		t.Errorf("signed area = %v, want > 0 (counter-clockwise)", area)
	}
}
