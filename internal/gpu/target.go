package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// ErrInvalidTargetSize is returned for zero-sized offscreen targets.
var ErrInvalidTargetSize = errors.New("gpu: target size must be positive")

// Target is an offscreen BGRA8Unorm color texture that can be rendered
// into and copied back to the CPU. It stands in for the swapchain image
// in headless runs.
type Target struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView

	width, height uint32
}

// ensure creates or recreates the texture at the given size. If the size
// matches and the texture exists this is a no-op.
func (t *Target) ensure(device *wgpu.Device, w, h uint32, labelPrefix string) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, w, h)
	}
	if t.width == w && t.height == h && t.tex != nil {
		return nil
	}
	t.destroy()

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         labelPrefix + "_color",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	t.tex = tex

	view, err := device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label: labelPrefix + "_color_view",
	})
	if err != nil {
		t.destroy()
		return fmt.Errorf("create target view: %w", err)
	}
	t.view = view

	t.width = w
	t.height = h
	return nil
}

// Size returns the current target dimensions.
func (t *Target) Size() (width, height uint32) { return t.width, t.height }

// destroy releases the view and texture.
func (t *Target) destroy() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}
