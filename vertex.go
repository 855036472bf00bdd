package learn

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the byte stride of Vertex in a vertex buffer.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
const VertexStride = 24

// TexturedVertexStride is the byte stride of TexturedVertex.
// Layout per vertex:
//
//	position   (vec3<f32>) = 12 bytes (location 0)
//	tex_coords (vec2<f32>) = 8 bytes  (location 1)
const TexturedVertexStride = 20

// copyBufferAlignment is the size granularity of buffer writes.
const copyBufferAlignment = 4

// Vertex is a colored vertex as consumed by shaders/buffer.wgsl.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// TexturedVertex is a vertex with texture coordinates as consumed by
// shaders/texture.wgsl. Texture coordinates have their origin at the top
// left of the image.
type TexturedVertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

// VertexLayout returns the vertex buffer layout for Vertex.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}

// TexturedVertexLayout returns the vertex buffer layout for TexturedVertex.
func TexturedVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: TexturedVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // tex_coords
			},
		},
	}
}

var purple = [3]float32{0.5, 0.0, 0.5}

// PentagonVertices are the five corners A..E of the buffers chapter
// pentagon, counter-clockwise.
var PentagonVertices = []Vertex{
	{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, Color: purple},   // A
	{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, Color: purple},  // B
	{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, Color: purple}, // C
	{Position: [3]float32{0.35966998, -0.3473291, 0.0}, Color: purple},   // D
	{Position: [3]float32{0.44147372, 0.2347359, 0.0}, Color: purple},    // E
}

// PentagonIndices triangulate PentagonVertices as a fan around E.
var PentagonIndices = []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4}

// TexturedPentagonVertices is the pentagon with texture coordinates instead
// of colors.
var TexturedPentagonVertices = []TexturedVertex{
	{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, TexCoords: [2]float32{0.4131759, 0.00759614}},
	{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, TexCoords: [2]float32{0.0048659444, 0.43041354}},
	{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, TexCoords: [2]float32{0.28081453, 0.949397}},
	{Position: [3]float32{0.35966998, -0.3473291, 0.0}, TexCoords: [2]float32{0.85967, 0.84732914}},
	{Position: [3]float32{0.44147372, 0.2347359, 0.0}, TexCoords: [2]float32{0.9414737, 0.2652641}},
}

// Star geometry: a five-pointed star as a fan of ten triangles around the
// center vertex (index 0).
var (
	StarVertices = starVertices(5, 0.5, 0.2)
	StarIndices  = fanIndices(len(StarVertices) - 1)
)

func starVertices(points int, outer, inner float64) []Vertex {
	rim := points * 2
	verts := make([]Vertex, 0, rim+1)
	verts = append(verts, Vertex{Color: [3]float32{1, 1, 1}})
	for i := 0; i < rim; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := math.Pi/2 + float64(i)*math.Pi/float64(points)
		t := float32(i) / float32(rim)
		verts = append(verts, Vertex{
			Position: [3]float32{float32(r * math.Cos(angle)), float32(r * math.Sin(angle)), 0},
			Color:    [3]float32{1 - t, 0.3, t},
		})
	}
	return verts
}

// fanIndices returns counter-clockwise triangles (0, i, i+1) closing the
// rim back onto vertex 1.
func fanIndices(rim int) []uint16 {
	idx := make([]uint16, 0, rim*3)
	for i := 1; i <= rim; i++ {
		next := i + 1
		if next > rim {
			next = 1
		}
		idx = append(idx, 0, uint16(i), uint16(next)) //nolint:gosec // rim is small
	}
	return idx
}

// EncodeVertices serializes vertices into a little-endian byte slice
// matching VertexLayout.
func EncodeVertices(verts []Vertex) []byte {
	buf := make([]byte, len(verts)*VertexStride)
	off := 0
	for i := range verts {
		off = putFloats(buf, off, verts[i].Position[:])
		off = putFloats(buf, off, verts[i].Color[:])
	}
	return buf
}

// EncodeTexturedVertices serializes vertices into a little-endian byte
// slice matching TexturedVertexLayout.
func EncodeTexturedVertices(verts []TexturedVertex) []byte {
	buf := make([]byte, len(verts)*TexturedVertexStride)
	off := 0
	for i := range verts {
		off = putFloats(buf, off, verts[i].Position[:])
		off = putFloats(buf, off, verts[i].TexCoords[:])
	}
	return buf
}

// EncodeIndices serializes uint16 indices, zero-padding the result to a
// multiple of 4 bytes as required for buffer writes.
func EncodeIndices(indices []uint16) []byte {
	n := len(indices) * 2
	n = (n + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)
	buf := make([]byte, n)
	for i, v := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func putFloats(buf []byte, off int, vals []float32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return off
}
