// Command learn runs one chapter of the WebGPU tutorial.
//
// Usage:
//
//	learn [flags] <tutorial-id>
//
// Without -capture or -preview the chapter opens in a window. Press Space in
// challenge chapters to switch variants and Escape to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn"
	"github.com/gogpu/learn/tutorial"
)

const usageHint = "Call with the number of the tutorial, e.g. `1_1_2`"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	width, height int
	backend       string
	texture       string
	clear         string
	capture       string
	preview       string
	toggle        bool
	list          bool
	verbose       bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("learn", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.width, "width", 800, "window or image width")
	fs.IntVar(&opts.height, "height", 600, "window or image height")
	fs.StringVar(&opts.backend, "backend", "vulkan", "graphics backend (vulkan, noop)")
	fs.StringVar(&opts.texture, "texture", "", "image file for the texture chapters")
	fs.StringVar(&opts.clear, "clear", "", "clear color override as hex, e.g. #1a334d")
	fs.StringVar(&opts.capture, "capture", "", "render one frame offscreen and save it (png, bmp, tiff)")
	fs.StringVar(&opts.preview, "preview", "", "draw a software preview and save it (png, bmp, tiff)")
	fs.BoolVar(&opts.toggle, "space", false, "press Space once before capturing")
	fs.BoolVar(&opts.list, "list", false, "list the tutorial chapters")
	fs.BoolVar(&opts.verbose, "v", false, "log debug output to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: learn [flags] <tutorial-id>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.verbose {
		learn.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer learn.SetLogger(nil)
	}

	if opts.list {
		for _, ch := range tutorial.Chapters() {
			fmt.Fprintf(stdout, "%-7s %s\n", ch.ID, ch.Description)
		}
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, usageHint)
		return 1
	}
	// An unknown id is reported but is not a failure.
	ch, err := tutorial.Lookup(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stdout, "Unknown tutorial id")
		return 0
	}

	cfg, err := opts.config()
	if err != nil {
		fmt.Fprintf(stderr, "learn: %v\n", err)
		return 1
	}

	if err := execute(ctx, ch, cfg, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "learn: %v\n", err)
		return 1
	}
	return 0
}

func (o options) config() (tutorial.Config, error) {
	backend, err := tutorial.ParseBackend(o.backend)
	if err != nil {
		return tutorial.Config{}, err
	}
	cfg := tutorial.DefaultConfig().
		WithSize(o.width, o.height).
		WithBackend(backend).
		WithTexture(o.texture)
	if o.clear != "" {
		c, err := learn.ParseColor(o.clear)
		if err != nil {
			return tutorial.Config{}, err
		}
		cfg = cfg.WithClearColor(c)
	}
	return cfg, cfg.Validate()
}

func (o options) keys() []gpucontext.Key {
	if o.toggle {
		return []gpucontext.Key{gpucontext.KeySpace}
	}
	return nil
}

func execute(ctx context.Context, ch tutorial.Chapter, cfg tutorial.Config, o options, stdout io.Writer) error {
	if o.capture == "" && o.preview == "" {
		return tutorial.Run(ctx, ch, cfg)
	}

	if o.preview != "" {
		img, err := tutorial.Preview(ch, cfg, o.keys()...)
		if err != nil {
			return fmt.Errorf("preview %s: %w", ch.ID, err)
		}
		if err := tutorial.SaveImage(o.preview, img); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Preview saved to %s (%dx%d)\n", o.preview, cfg.Width, cfg.Height)
	}

	if o.capture != "" {
		img, err := tutorial.Capture(ctx, ch, cfg, o.keys()...)
		if err != nil {
			return fmt.Errorf("capture %s: %w", ch.ID, err)
		}
		if err := tutorial.SaveImage(o.capture, img); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Frame saved to %s (%dx%d)\n", o.capture, cfg.Width, cfg.Height)
	}
	return nil
}
