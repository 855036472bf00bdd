package tutorial

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn/internal/gpu"
	"github.com/gogpu/wgpu"
)

// Scene is the GPU state of one chapter.
//
// Init is called once with a ready device before the first frame. Draw
// records the chapter's commands into a render pass that has already been
// cleared to ClearColor. Destroy releases everything Init created and is
// safe to call after a failed Init.
type Scene interface {
	Init(d *gpu.Device, r *gpu.Renderer) error
	ClearColor() gputypes.Color
	Draw(rp *wgpu.RenderPassEncoder)

	// HandleKey reacts to a key press and reports whether the scene
	// changed.
	HandleKey(key gpucontext.Key) bool

	Destroy()
}

// toggle is the Space-key switch shared by the challenge chapters.
type toggle struct {
	enabled bool
	on      bool
}

func (t *toggle) handleKey(key gpucontext.Key) bool {
	if !t.enabled || key != gpucontext.KeySpace {
		return false
	}
	t.on = !t.on
	return true
}
