package gpu

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// frameTimeout bounds the wait for an offscreen frame to be mapped back.
const frameTimeout = 5 * time.Second

// ErrNilView is returned by RenderToView when no surface view is given.
var ErrNilView = errors.New("gpu: nil target view")

// Drawer records the draw commands of one frame into an open render pass.
type Drawer interface {
	Draw(rp *wgpu.RenderPassEncoder)
}

// DrawFunc adapts a function to the Drawer interface.
type DrawFunc func(rp *wgpu.RenderPassEncoder)

// Draw calls f(rp).
func (f DrawFunc) Draw(rp *wgpu.RenderPassEncoder) { f(rp) }

// Renderer encodes and submits frames: one render pass that clears the
// color target and lets a Drawer record its commands.
//
// Frames go either to a caller-provided view (the window surface) or to
// an offscreen target that is read back as an image.
type Renderer struct {
	mu sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue

	target Target
	frames uint64
}

// NewRenderer creates a renderer on d.
func NewRenderer(d *Device) *Renderer {
	return &Renderer{device: d.WGPU(), queue: d.Queue()}
}

// Frames returns the number of frames submitted so far.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// RenderToView clears view to clear, records d and submits the frame
// without waiting for it. The caller presents the surface after this
// returns.
func (r *Renderer) RenderToView(view *wgpu.TextureView, clear gputypes.Color, d Drawer) error {
	if view == nil {
		return ErrNilView
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	encoder, err := r.beginFrame("surface")
	if err != nil {
		return err
	}
	encoderConsumed := false
	defer func() {
		if !encoderConsumed {
			encoder.DiscardEncoding()
		}
	}()

	if err := recordPass(encoder, "surface", view, clear, d); err != nil {
		return err
	}

	cmdBuf, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	encoderConsumed = true
	return r.submit("surface", cmdBuf)
}

// RenderOffscreen renders one frame into an offscreen target of the given
// size and returns its pixels as RGBA. It blocks until the frame has been
// copied back from the GPU.
func (r *Renderer) RenderOffscreen(width, height uint32, clear gputypes.Color, d Drawer) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.target.ensure(r.device, width, height, "offscreen"); err != nil {
		return nil, err
	}

	encoder, err := r.beginFrame("offscreen")
	if err != nil {
		return nil, err
	}
	encoderConsumed := false
	defer func() {
		if !encoderConsumed {
			encoder.DiscardEncoding()
		}
	}()

	if err := recordPass(encoder, "offscreen", r.target.view, clear, d); err != nil {
		return nil, err
	}

	encoder.TransitionTextures([]wgpu.TextureBarrier{{
		Texture: r.target.tex,
		Usage: wgpu.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	stride := alignedBytesPerRow(width)
	stagingSize := uint64(stride) * uint64(height)
	stagingBuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer stagingBuf.Release()

	encoder.CopyTextureToBuffer(r.target.tex, stagingBuf, []wgpu.BufferTextureCopy{{
		BufferLayout: wgpu.ImageDataLayout{Offset: 0, BytesPerRow: stride, RowsPerImage: height},
		TextureBase:  wgpu.ImageCopyTexture{Texture: r.target.tex, MipLevel: 0},
		Size:         wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	}})

	// Back to RenderAttachment for the next frame's pass.
	encoder.TransitionTextures([]wgpu.TextureBarrier{{
		Texture: r.target.tex,
		Usage: wgpu.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	encoderConsumed = true

	if err := r.submit("offscreen", cmdBuf); err != nil {
		return nil, err
	}

	readback, err := readStaging(stagingBuf, stagingSize)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	convertBGRAToRGBA(unpackRows(readback, width, height, stride), img.Pix, int(width)*int(height))
	return img, nil
}

// readStaging maps buf for reading and copies out its first size bytes.
// Map waits for the submission that wrote buf to complete.
func readStaging(buf *wgpu.Buffer, size uint64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	if err := buf.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("map staging: %w", err)
	}
	rng, err := buf.MappedRange(0, size)
	if err != nil {
		if err := buf.Unmap(); err != nil {
			slogger().Warn("gpu: unmap failed", "err", err)
		}
		return nil, fmt.Errorf("mapped range: %w", err)
	}
	readback := make([]byte, size)
	copy(readback, rng.Bytes())
	if err := buf.Unmap(); err != nil {
		slogger().Warn("gpu: unmap failed", "err", err)
	}
	return readback, nil
}

func (r *Renderer) beginFrame(label string) (*wgpu.CommandEncoder, error) {
	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	return encoder, nil
}

func recordPass(encoder *wgpu.CommandEncoder, label string, view *wgpu.TextureView, clear gputypes.Color, d Drawer) error {
	rp, err := encoder.BeginRenderPass(passDescriptor(label, view, clear))
	if err != nil {
		return fmt.Errorf("begin %s pass: %w", label, err)
	}
	if d != nil {
		d.Draw(rp)
	}
	if err := rp.End(); err != nil {
		return fmt.Errorf("end %s pass: %w", label, err)
	}
	return nil
}

// passDescriptor describes a render pass with a single color attachment
// that is cleared to clear and stored.
func passDescriptor(label string, view *wgpu.TextureView, clear gputypes.Color) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	}
}

// submit hands cmdBuf to the queue. A rejected command buffer is released.
func (r *Renderer) submit(label string, cmdBuf *wgpu.CommandBuffer) error {
	index, err := r.queue.Submit(cmdBuf)
	if err != nil {
		cmdBuf.Release()
		return fmt.Errorf("submit: %w", err)
	}
	r.frames++
	slogger().Debug("gpu: frame submitted", "target", label, "submission", index)
	return nil
}

// Destroy releases the offscreen target. Safe to call multiple times.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return
	}
	r.target.destroy()
}
