package learn

import (
	"errors"
	"fmt"
)

// TriangleVertexCount is the number of vertices issued by the triangle draw
// call. It always equals len(TrianglePositions).
const TriangleVertexCount = 3

// TrianglePositions are the NDC positions baked into the triangle vertex
// shader (shaders/triangle.wgsl), in counter-clockwise order: top,
// bottom left, bottom right.
var TrianglePositions = [TriangleVertexCount][2]float32{
	{0.0, 0.5},
	{-0.5, -0.5},
	{0.5, -0.5},
}

// ErrVertexIndex is returned by VertexPosition for indices outside the
// triangle draw range.
var ErrVertexIndex = errors.New("learn: vertex index out of range")

// VertexPosition returns the clip-space position the triangle vertex shader
// emits for the built-in vertex index: the looked-up position with z=0, w=1.
func VertexPosition(index uint32) ([4]float32, error) {
	if index >= TriangleVertexCount {
		return [4]float32{}, fmt.Errorf("%w: %d (draw count %d)", ErrVertexIndex, index, TriangleVertexCount)
	}
	p := TrianglePositions[index]
	return [4]float32{p[0], p[1], 0.0, 1.0}, nil
}

// ClipPositions returns the clip-space output of every vertex of one
// triangle draw, in vertex index order.
func ClipPositions() [][4]float32 {
	out := make([][4]float32, 0, TriangleVertexCount)
	for i := uint32(0); i < TriangleVertexCount; i++ {
		p, _ := VertexPosition(i)
		out = append(out, p)
	}
	return out
}
