package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned when a texture source has no pixels.
var ErrEmptyImage = errors.New("gpu: image is empty")

// TextureBindGroupLayout returns the group 0 layout used by textured
// pipelines: a filterable 2D texture at binding 0 and a filtering sampler
// at binding 1, both visible to the fragment stage.
func TextureBindGroupLayout() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// Texture is a sampled RGBA8 texture with its view and sampler.
type Texture struct {
	device *wgpu.Device
	label  string

	tex     *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler

	width, height uint32
}

// TextureFromImage uploads img as an RGBA8Unorm texture. Images that are
// not *image.RGBA are converted first.
func TextureFromImage(d *Device, img image.Image, label string) (*Texture, error) {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	if label == "" {
		label = "texture"
	}
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // image bounds are non-negative

	t := &Texture{device: d.WGPU(), label: label, width: w, height: h}
	if err := t.create(); err != nil {
		t.Destroy()
		return nil, err
	}

	err := d.Queue().WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
		},
		rgba.Pix,
		&wgpu.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("upload %s texture: %w", label, err)
	}
	slogger().Debug("gpu: texture uploaded", "label", label, "width", w, "height", h)
	return t, nil
}

func (t *Texture) create() error {
	tex, err := t.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         t.label,
		Size:          wgpu.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s texture: %w", t.label, err)
	}
	t.tex = tex

	view, err := t.device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label:         t.label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create %s texture view: %w", t.label, err)
	}
	t.view = view

	// Linear magnification, nearest minification.
	sampler, err := t.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        t.label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create %s sampler: %w", t.label, err)
	}
	t.sampler = sampler
	return nil
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height uint32) { return t.width, t.height }

// BindGroup creates a bind group for layout (see TextureBindGroupLayout)
// referencing the texture view and sampler. The caller releases it before
// destroying the texture.
func (t *Texture) BindGroup(layout *wgpu.BindGroupLayout) (*wgpu.BindGroup, error) {
	bg, err := t.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  t.label + "_bind",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", t.label, err)
	}
	return bg, nil
}

// Destroy releases the sampler, view and texture. Safe to call multiple
// times.
func (t *Texture) Destroy() {
	if t.device == nil {
		return
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// toRGBA returns img as a tightly packed *image.RGBA with origin (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
