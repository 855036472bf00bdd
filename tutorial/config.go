package tutorial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Config errors.
var (
	// ErrInvalidSize is returned for non-positive window or frame sizes.
	ErrInvalidSize = errors.New("tutorial: width and height must be positive")

	// ErrUnknownBackend is returned by ParseBackend for unsupported names.
	ErrUnknownBackend = errors.New("tutorial: unknown backend")
)

// Backend selects the device used by Capture.
type Backend int

const (
	// BackendVulkan renders on a Vulkan adapter.
	BackendVulkan Backend = iota
	// BackendNoop renders on the noop backend; frames read back as zeros.
	BackendNoop
)

// String returns the flag name of the backend.
func (b Backend) String() string {
	switch b {
	case BackendVulkan:
		return "vulkan"
	case BackendNoop:
		return "noop"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses a backend flag value, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vulkan", "vk":
		return BackendVulkan, nil
	case "noop", "none":
		return BackendNoop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Config describes a tutorial run. Build it with DefaultConfig and the
// With methods.
type Config struct {
	Title   string
	Width   int
	Height  int
	Backend Backend

	// Texture is an image file for the texture chapters. Empty selects a
	// procedural checkerboard.
	Texture string

	// ClearColor overrides the chapter's clear color when set.
	ClearColor *gputypes.Color
}

// DefaultConfig returns an 800x600 Vulkan configuration.
func DefaultConfig() Config {
	return Config{
		Title:   "learn",
		Width:   800,
		Height:  600,
		Backend: BackendVulkan,
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the window or frame size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithBackend returns a copy of c with the capture backend set.
func (c Config) WithBackend(b Backend) Config {
	c.Backend = b
	return c
}

// WithTexture returns a copy of c with the texture image path set.
func (c Config) WithTexture(path string) Config {
	c.Texture = path
	return c
}

// WithClearColor returns a copy of c that clears every frame to col.
func (c Config) WithClearColor(col gputypes.Color) Config {
	c.ClearColor = &col
	return c
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	switch c.Backend {
	case BackendVulkan, BackendNoop:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// clearColor returns the override if set, otherwise the scene's color.
func (c Config) clearColor(s Scene) gputypes.Color {
	if c.ClearColor != nil {
		return *c.ClearColor
	}
	return s.ClearColor()
}

// size returns the frame size as unsigned values. Call after Validate.
func (c Config) size() (uint32, uint32) {
	return uint32(c.Width), uint32(c.Height) //nolint:gosec // validated positive
}
