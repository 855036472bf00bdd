package tutorial

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn/internal/gpu"
)

// Capture renders one frame of the chapter headless and returns it. The
// device is opened on cfg.Backend and closed before returning. Keys are
// delivered to the scene in order before the frame is drawn, so a
// challenge chapter can be captured in its toggled state.
func Capture(ctx context.Context, ch Chapter, cfg Config, keys ...gpucontext.Key) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := openDevice(cfg.Backend)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return capture(d, ch, cfg, keys...)
}

// capture renders one frame of the chapter on an open device.
func capture(d *gpu.Device, ch Chapter, cfg Config, keys ...gpucontext.Key) (*image.RGBA, error) {
	scene, err := ch.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: %w", ch.ID, err)
	}
	defer scene.Destroy()

	r := gpu.NewRenderer(d)
	defer r.Destroy()

	if err := scene.Init(d, r); err != nil {
		return nil, fmt.Errorf("chapter %s: init: %w", ch.ID, err)
	}
	for _, k := range keys {
		scene.HandleKey(k)
	}

	w, h := cfg.size()
	img, err := r.RenderOffscreen(w, h, cfg.clearColor(scene), scene)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: render: %w", ch.ID, err)
	}
	slogger().Info("tutorial: frame captured", "chapter", ch.ID, "adapter", d.AdapterName(), "width", w, "height", h)
	return img, nil
}

// openDevice opens an owned device for b.
func openDevice(b Backend) (*gpu.Device, error) {
	switch b {
	case BackendNoop:
		return gpu.OpenNoop()
	case BackendVulkan:
		return gpu.Open(gputypes.BackendVulkan)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, b)
	}
}
