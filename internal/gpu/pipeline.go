package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/learn/internal/shader"
	"github.com/gogpu/wgpu"
)

// ErrNoShader is returned when a PipelineConfig names no shader.
var ErrNoShader = errors.New("gpu: pipeline config has no shader")

// PipelineConfig describes a render pipeline with one color target.
//
// The zero value of Format selects the device's surface format. Back
// faces are culled unless NoCull is set.
type PipelineConfig struct {
	Label  string
	Shader string

	// Buffers lists the vertex buffer layouts. Empty for shaders that
	// derive positions from the vertex index.
	Buffers []gputypes.VertexBufferLayout

	// BindGroupLayouts holds the entries of each bind group, in group order.
	BindGroupLayouts [][]gputypes.BindGroupLayoutEntry

	Format gputypes.TextureFormat

	// NoCull disables face culling.
	NoCull bool
}

func (c *PipelineConfig) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Shader
}

func (c *PipelineConfig) format(fallback gputypes.TextureFormat) gputypes.TextureFormat {
	if c.Format != gputypes.TextureFormatUndefined {
		return c.Format
	}
	if fallback != gputypes.TextureFormatUndefined {
		return fallback
	}
	return gputypes.TextureFormatBGRA8Unorm
}

func (c *PipelineConfig) cullMode() gputypes.CullMode {
	if c.NoCull {
		return gputypes.CullModeNone
	}
	return gputypes.CullModeBack
}

// Pipeline holds a render pipeline and the objects it was built from:
// the shader module, its bind group layouts and the pipeline layout.
type Pipeline struct {
	device *wgpu.Device
	label  string
	format gputypes.TextureFormat

	shader       *wgpu.ShaderModule
	groupLayouts []*wgpu.BindGroupLayout
	pipeLayout   *wgpu.PipelineLayout
	pipeline     *wgpu.RenderPipeline
}

// NewPipeline compiles the configured shader and creates the render
// pipeline. On error every object created so far is released.
func NewPipeline(d *Device, cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Shader == "" {
		return nil, ErrNoShader
	}
	p := &Pipeline{device: d.WGPU(), label: cfg.label(), format: cfg.format(d.SurfaceFormat())}
	if err := p.create(d.ShaderFormat(), &cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: pipeline created", "label", p.label, "shader", cfg.Shader, "format", p.format)
	return p, nil
}

func (p *Pipeline) create(format shader.Format, cfg *PipelineConfig) error {
	module, err := shader.CreateModule(p.device, cfg.Shader, format)
	if err != nil {
		return err
	}
	p.shader = module

	for i, entries := range cfg.BindGroupLayouts {
		layout, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_group%d_layout", p.label, i),
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("create %s bind group layout %d: %w", p.label, i, err)
		}
		p.groupLayouts = append(p.groupLayouts, layout)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.label + "_pipe_layout",
		BindGroupLayouts: p.groupLayouts,
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", p.label, err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: wgpu.VertexState{
			Module:     p.shader,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    cfg.Buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.shader,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  cfg.cullMode(),
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create %s render pipeline: %w", p.label, err)
	}
	p.pipeline = pipeline
	return nil
}

// Label returns the pipeline label.
func (p *Pipeline) Label() string { return p.label }

// Format returns the color target format the pipeline renders to.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// BindGroupLayout returns the layout of bind group i, or nil if the
// pipeline has no such group.
func (p *Pipeline) BindGroupLayout(i int) *wgpu.BindGroupLayout {
	if i < 0 || i >= len(p.groupLayouts) {
		return nil
	}
	return p.groupLayouts[i]
}

// Bind sets the pipeline on the render pass.
func (p *Pipeline) Bind(rp *wgpu.RenderPassEncoder) {
	rp.SetPipeline(p.pipeline)
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.pipeLayout.Release()
		p.pipeLayout = nil
	}
	for i := len(p.groupLayouts) - 1; i >= 0; i-- {
		p.groupLayouts[i].Release()
	}
	p.groupLayouts = nil
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
}
