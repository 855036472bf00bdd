package tutorial

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn"
	"github.com/gogpu/learn/internal/gpu"
	"github.com/gogpu/learn/internal/shader"
	"github.com/gogpu/wgpu"
)

// clearScene draws nothing; the render pass clear is the whole frame.
// With more than one color, Space steps through them.
type clearScene struct {
	colors []gputypes.Color
	index  int
}

// clearPalette is cycled by the swap chain challenge.
var clearPalette = []gputypes.Color{
	learn.DefaultClearColor,
	{R: 0.3, G: 0.1, B: 0.2, A: 1},
	{R: 0.1, G: 0.3, B: 0.1, A: 1},
	{R: 0.9, G: 0.6, B: 0.2, A: 1},
}

func newClearScene(colors ...gputypes.Color) *clearScene {
	return &clearScene{colors: colors}
}

func (s *clearScene) Init(*gpu.Device, *gpu.Renderer) error { return nil }

func (s *clearScene) ClearColor() gputypes.Color { return s.colors[s.index] }

func (s *clearScene) Draw(*wgpu.RenderPassEncoder) {}

func (s *clearScene) HandleKey(key gpucontext.Key) bool {
	if len(s.colors) < 2 || key != gpucontext.KeySpace {
		return false
	}
	s.index = (s.index + 1) % len(s.colors)
	return true
}

func (s *clearScene) Destroy() {}

// triangleScene draws the hard-coded triangle: one draw of three
// vertices with no vertex buffer. The challenge variant keeps a second
// pipeline whose fragment color follows the position.
type triangleScene struct {
	toggle

	solid   *gpu.Pipeline
	colored *gpu.Pipeline
	mesh    *gpu.Mesh
}

func newTriangleScene(challenge bool) *triangleScene {
	return &triangleScene{toggle: toggle{enabled: challenge}}
}

func (s *triangleScene) Init(d *gpu.Device, _ *gpu.Renderer) error {
	var err error
	if s.solid, err = gpu.NewPipeline(d, gpu.PipelineConfig{Label: "render", Shader: shader.Triangle}); err != nil {
		return err
	}
	if s.enabled {
		if s.colored, err = gpu.NewPipeline(d, gpu.PipelineConfig{Label: "challenge", Shader: shader.TriangleColor}); err != nil {
			return err
		}
	}
	s.mesh, err = gpu.NewMesh(d, gpu.MeshData{Label: "triangle", VertexCount: learn.TriangleVertexCount})
	return err
}

func (s *triangleScene) ClearColor() gputypes.Color { return learn.DefaultClearColor }

func (s *triangleScene) pipeline() *gpu.Pipeline {
	if s.on && s.colored != nil {
		return s.colored
	}
	return s.solid
}

func (s *triangleScene) Draw(rp *wgpu.RenderPassEncoder) {
	s.pipeline().Bind(rp)
	s.mesh.Record(rp)
}

func (s *triangleScene) HandleKey(key gpucontext.Key) bool { return s.handleKey(key) }

func (s *triangleScene) Destroy() {
	if s.mesh != nil {
		s.mesh.Destroy()
	}
	if s.colored != nil {
		s.colored.Destroy()
	}
	if s.solid != nil {
		s.solid.Destroy()
	}
}

// bufferScene draws indexed meshes from vertex and index buffers. The
// challenge variant switches between the pentagon and the star.
type bufferScene struct {
	toggle

	pipeline *gpu.Pipeline
	pentagon *gpu.Mesh
	star     *gpu.Mesh
}

func newBufferScene(challenge bool) *bufferScene {
	return &bufferScene{toggle: toggle{enabled: challenge}}
}

func (s *bufferScene) Init(d *gpu.Device, _ *gpu.Renderer) error {
	var err error
	s.pipeline, err = gpu.NewPipeline(d, gpu.PipelineConfig{
		Label:   "buffer",
		Shader:  shader.Buffer,
		Buffers: learn.VertexLayout(),
	})
	if err != nil {
		return err
	}
	if s.pentagon, err = newIndexedMesh(d, "pentagon", learn.PentagonVertices, learn.PentagonIndices); err != nil {
		return err
	}
	if s.enabled {
		if s.star, err = newIndexedMesh(d, "star", learn.StarVertices, learn.StarIndices); err != nil {
			return err
		}
	}
	return nil
}

func newIndexedMesh(d *gpu.Device, label string, verts []learn.Vertex, indices []uint16) (*gpu.Mesh, error) {
	return gpu.NewMesh(d, gpu.MeshData{
		Label:       label,
		Vertices:    learn.EncodeVertices(verts),
		VertexCount: uint32(len(verts)),   //nolint:gosec // small fixed meshes
		Indices:     learn.EncodeIndices(indices),
		IndexCount:  uint32(len(indices)), //nolint:gosec // small fixed meshes
	})
}

func (s *bufferScene) ClearColor() gputypes.Color { return learn.DefaultClearColor }

func (s *bufferScene) mesh() *gpu.Mesh {
	if s.on && s.star != nil {
		return s.star
	}
	return s.pentagon
}

func (s *bufferScene) Draw(rp *wgpu.RenderPassEncoder) {
	s.pipeline.Bind(rp)
	s.mesh().Record(rp)
}

func (s *bufferScene) HandleKey(key gpucontext.Key) bool { return s.handleKey(key) }

func (s *bufferScene) Destroy() {
	if s.star != nil {
		s.star.Destroy()
	}
	if s.pentagon != nil {
		s.pentagon.Destroy()
	}
	if s.pipeline != nil {
		s.pipeline.Destroy()
	}
}

// textureScene draws the textured pentagon. The challenge variant holds
// a second texture and bind group and switches with Space.
type textureScene struct {
	toggle

	images []image.Image

	pipeline   *gpu.Pipeline
	mesh       *gpu.Mesh
	textures   []*gpu.Texture
	bindGroups []*wgpu.BindGroup
}

// newTextureScene creates a texture scene for one image, or for two
// images in the challenge variant.
func newTextureScene(images ...image.Image) *textureScene {
	return &textureScene{toggle: toggle{enabled: len(images) > 1}, images: images}
}

func (s *textureScene) Init(d *gpu.Device, _ *gpu.Renderer) error {
	var err error
	s.pipeline, err = gpu.NewPipeline(d, gpu.PipelineConfig{
		Label:            "texture",
		Shader:           shader.Texture,
		Buffers:          learn.TexturedVertexLayout(),
		BindGroupLayouts: [][]gputypes.BindGroupLayoutEntry{gpu.TextureBindGroupLayout()},
	})
	if err != nil {
		return err
	}

	s.mesh, err = gpu.NewMesh(d, gpu.MeshData{
		Label:       "textured_pentagon",
		Vertices:    learn.EncodeTexturedVertices(learn.TexturedPentagonVertices),
		VertexCount: uint32(len(learn.TexturedPentagonVertices)),
		Indices:     learn.EncodeIndices(learn.PentagonIndices),
		IndexCount:  uint32(len(learn.PentagonIndices)),
	})
	if err != nil {
		return err
	}

	for i, img := range s.images {
		tex, err := gpu.TextureFromImage(d, img, fmt.Sprintf("diffuse%d", i))
		if err != nil {
			return err
		}
		s.textures = append(s.textures, tex)

		bg, err := tex.BindGroup(s.pipeline.BindGroupLayout(0))
		if err != nil {
			return err
		}
		s.bindGroups = append(s.bindGroups, bg)
	}
	return nil
}

func (s *textureScene) ClearColor() gputypes.Color { return learn.DefaultClearColor }

func (s *textureScene) current() int {
	if s.on && len(s.bindGroups) > 1 {
		return 1
	}
	return 0
}

func (s *textureScene) Draw(rp *wgpu.RenderPassEncoder) {
	s.pipeline.Bind(rp)
	rp.SetBindGroup(0, s.bindGroups[s.current()], nil)
	s.mesh.Record(rp)
}

func (s *textureScene) HandleKey(key gpucontext.Key) bool { return s.handleKey(key) }

func (s *textureScene) Destroy() {
	for _, bg := range s.bindGroups {
		bg.Release()
	}
	s.bindGroups = nil
	for _, tex := range s.textures {
		tex.Destroy()
	}
	s.textures = nil
	if s.mesh != nil {
		s.mesh.Destroy()
		s.mesh = nil
	}
	if s.pipeline != nil {
		s.pipeline.Destroy()
		s.pipeline = nil
	}
}
