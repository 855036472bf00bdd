package gpu

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// ErrEmptyMesh is returned when a mesh would draw nothing.
var ErrEmptyMesh = errors.New("gpu: mesh has no vertices")

// MeshData is the CPU side of a mesh.
//
// With Vertices nil the mesh draws VertexCount vertices with no vertex
// buffer bound; the shader derives each position from the vertex index.
// With Indices set the mesh is drawn indexed.
type MeshData struct {
	Label       string
	Vertices    []byte
	VertexCount uint32
	Indices     []byte
	IndexCount  uint32
}

// Mesh owns the vertex and index buffers of one drawable.
type Mesh struct {
	device *wgpu.Device

	vertBuf     *wgpu.Buffer
	idxBuf      *wgpu.Buffer
	vertexCount uint32
	indexCount  uint32
}

// NewMesh uploads the mesh buffers. Index data must be 16-bit indices
// padded to a multiple of four bytes.
func NewMesh(d *Device, data MeshData) (*Mesh, error) {
	if data.VertexCount == 0 {
		return nil, ErrEmptyMesh
	}
	label := data.Label
	if label == "" {
		label = "mesh"
	}

	m := &Mesh{device: d.WGPU(), vertexCount: data.VertexCount, indexCount: data.IndexCount}
	if len(data.Vertices) > 0 {
		buf, err := d.createAndUploadBuffer(label+"_vertices", data.Vertices,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		m.vertBuf = buf
	}
	if len(data.Indices) > 0 && data.IndexCount > 0 {
		buf, err := d.createAndUploadBuffer(label+"_indices", data.Indices,
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			m.Destroy()
			return nil, err
		}
		m.idxBuf = buf
	} else {
		m.indexCount = 0
	}
	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() uint32 { return m.vertexCount }

// IndexCount returns the number of indices, zero for non-indexed meshes.
func (m *Mesh) IndexCount() uint32 { return m.indexCount }

// Indexed reports whether the mesh is drawn with an index buffer.
func (m *Mesh) Indexed() bool { return m.idxBuf != nil }

// Record binds the mesh buffers and issues one draw call.
func (m *Mesh) Record(rp *wgpu.RenderPassEncoder) {
	if m.vertBuf != nil {
		rp.SetVertexBuffer(0, m.vertBuf, 0)
	}
	if m.idxBuf != nil {
		rp.SetIndexBuffer(m.idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(m.indexCount, 1, 0, 0, 0)
		return
	}
	rp.Draw(m.vertexCount, 1, 0, 0)
}

// Destroy releases the mesh buffers. Safe to call multiple times.
func (m *Mesh) Destroy() {
	if m.device == nil {
		return
	}
	if m.idxBuf != nil {
		m.idxBuf.Release()
		m.idxBuf = nil
	}
	if m.vertBuf != nil {
		m.vertBuf.Release()
		m.vertBuf = nil
	}
}
