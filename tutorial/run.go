package tutorial

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn/internal/gpu"
)

// Run opens a window and renders the chapter on every frame until the
// window is closed, Escape is pressed or ctx is cancelled.
//
// The chapter shares the window's device; its scene is created on the
// first frame, once the device exists. Pipelines target the window's
// surface format.
func Run(ctx context.Context, ch Chapter, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	scene, err := ch.New(cfg)
	if err != nil {
		return fmt.Errorf("chapter %s: %w", ch.ID, err)
	}

	title := cfg.Title
	if title == "" || title == DefaultConfig().Title {
		title = ch.DisplayTitle()
	}
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(title).
		WithSize(cfg.Width, cfg.Height))

	var (
		device   *gpu.Device
		renderer *gpu.Renderer
		runErr   error
	)
	fail := func(err error) {
		if runErr == nil {
			runErr = err
		}
		app.Quit()
	}

	app.OnDraw(func(dc *gogpu.Context) {
		if runErr != nil {
			return
		}
		if device == nil {
			d, err := gpu.FromProvider(app.GPUContextProvider())
			if err != nil {
				fail(fmt.Errorf("chapter %s: %w", ch.ID, err))
				return
			}
			r := gpu.NewRenderer(d)
			if err := scene.Init(d, r); err != nil {
				r.Destroy()
				fail(fmt.Errorf("chapter %s: init: %w", ch.ID, err))
				return
			}
			device, renderer = d, r
			slogger().Info("tutorial: chapter started", "chapter", ch.ID, "backend", dc.Backend(), "format", d.SurfaceFormat())
		}

		if dc.Width() <= 0 || dc.Height() <= 0 {
			return
		}
		view := dc.SurfaceView()
		if view == nil {
			return
		}
		if err := renderer.RenderToView(view, cfg.clearColor(scene), scene); err != nil {
			fail(fmt.Errorf("chapter %s: frame %d: %w", ch.ID, renderer.Frames(), err))
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			app.Quit()
			return
		}
		if scene.HandleKey(key) {
			slogger().Debug("tutorial: scene toggled", "chapter", ch.ID)
		}
	})

	// Scene resources go before the shared device is torn down.
	app.OnClose(func() {
		scene.Destroy()
		if renderer != nil {
			renderer.Destroy()
		}
		if device != nil {
			device.Close()
		}
	})

	stop := context.AfterFunc(ctx, app.Quit)
	defer stop()

	if err := app.Run(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
