package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/learn/internal/shader"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a Device on the noop backend.
func createNoopDevice(t *testing.T) (*Device, func()) {
	t.Helper()
	d, err := OpenNoop()
	if err != nil {
		t.Fatalf("OpenNoop failed: %v", err)
	}
	return d, d.Close
}

// createWrappedNoopDevice opens a noop HAL device and lets wrap replace the
// HAL device and queue before they are handed to NewFromHAL.
func createWrappedNoopDevice(t *testing.T, wrap func(hal.Device, hal.Queue) (hal.Device, hal.Queue)) (*Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	device, queue := wrap(openDev.Device, openDev.Queue)
	d, err := NewFromHAL(instance, device, queue, "noop-wrapped", shader.FormatWGSL)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		t.Fatalf("NewFromHAL failed: %v", err)
	}
	return d, d.Close
}

// failingQueue rejects every direct upload with err.
type failingQueue struct {
	hal.Queue
	err error
}

func (q failingQueue) WriteBuffer(hal.Buffer, uint64, []byte) error { return q.err }

func (q failingQueue) WriteTexture(*hal.ImageCopyTexture, []byte, *hal.ImageDataLayout, *hal.Extent3D) error {
	return q.err
}

var errUploadRejected = errors.New("upload rejected")

func withFailingQueue(device hal.Device, queue hal.Queue) (hal.Device, hal.Queue) {
	return device, failingQueue{Queue: queue, err: errUploadRejected}
}

// windowProvider has the shape of the provider a gogpu App hands out.
type windowProvider struct {
	device gpucontext.Device
	format gputypes.TextureFormat
}

var _ gpucontext.DeviceProvider = windowProvider{}

func (p windowProvider) Device() gpucontext.Device { return p.device }

func (p windowProvider) Queue() gpucontext.Queue {
	if d, ok := p.device.(*wgpu.Device); ok && d != nil {
		return d.Queue()
	}
	return nil
}

func (p windowProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p windowProvider) Adapter() gpucontext.Adapter           { return nil }

func (p windowProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop"}
}

func TestOpenNoop(t *testing.T) {
	d, cleanup := createNoopDevice(t)
	defer cleanup()

	if d.WGPU() == nil {
		t.Error("expected non-nil device")
	}
	if d.Queue() == nil {
		t.Error("expected non-nil queue")
	}
	if d.External() {
		t.Error("noop device should be owned")
	}
	if d.ShaderFormat() != shader.FormatWGSL {
		t.Errorf("ShaderFormat() = %v, want wgsl", d.ShaderFormat())
	}
	if d.SurfaceFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want BGRA8Unorm", d.SurfaceFormat())
	}
}

func TestDeviceCloseIdempotent(t *testing.T) {
	d, err := OpenNoop()
	if err != nil {
		t.Fatal(err)
	}
	d.Close()
	d.Close()
	if d.WGPU() != nil || d.Queue() != nil {
		t.Error("expected nil device and queue after Close")
	}
}

func TestOpenUnregisteredBackend(t *testing.T) {
	_, err := Open(gputypes.Backend(255))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Open(255) error = %v, want ErrBackendUnavailable", err)
	}
}

func TestFromProvider(t *testing.T) {
	owner, cleanup := createNoopDevice(t)
	defer cleanup()

	d, err := FromProvider(windowProvider{device: owner.WGPU(), format: gputypes.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("FromProvider failed: %v", err)
	}
	if !d.External() {
		t.Error("expected shared device")
	}
	if d.WGPU() != owner.WGPU() || d.Queue() != owner.Queue() {
		t.Error("expected the provider's device and queue")
	}
	if d.AdapterName() != "shared" {
		t.Errorf("AdapterName() = %q, want shared", d.AdapterName())
	}
	if d.ShaderFormat() != shader.FormatWGSL {
		t.Errorf("ShaderFormat() = %v, want wgsl", d.ShaderFormat())
	}
	if d.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want RGBA8Unorm", d.SurfaceFormat())
	}

	// Pipelines on a borrowed device target the surface format.
	p, err := NewPipeline(d, PipelineConfig{Shader: shader.Triangle})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	if p.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("pipeline format = %v, want RGBA8Unorm", p.Format())
	}
	p.Destroy()

	// Closing the borrowed device must leave the owner usable.
	d.Close()
	buf, err := owner.WGPU().CreateBuffer(&wgpu.BufferDescriptor{
		Label: "after_shared_close",
		Size:  16,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		t.Fatalf("owner device unusable after shared Close: %v", err)
	}
	buf.Release()
}

func TestFromProviderHeadlessFormat(t *testing.T) {
	owner, cleanup := createNoopDevice(t)
	defer cleanup()

	d, err := FromProvider(windowProvider{device: owner.WGPU()})
	if err != nil {
		t.Fatalf("FromProvider failed: %v", err)
	}
	if d.SurfaceFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want BGRA8Unorm fallback", d.SurfaceFormat())
	}
}

func TestFromProviderErrors(t *testing.T) {
	var nilDevice *wgpu.Device
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"nil provider", nil},
		{"no device", windowProvider{}},
		{"nil device", windowProvider{device: nilDevice}},
		{"wrong device type", windowProvider{device: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromProvider(tt.provider); !errors.Is(err, ErrNoDeviceProvider) {
				t.Errorf("FromProvider() error = %v, want ErrNoDeviceProvider", err)
			}
		})
	}
}

func TestCreateAndUploadBufferRejected(t *testing.T) {
	d, cleanup := createWrappedNoopDevice(t, withFailingQueue)
	defer cleanup()

	buf, err := d.createAndUploadBuffer("vertices", make([]byte, 16), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if !errors.Is(err, errUploadRejected) {
		t.Fatalf("createAndUploadBuffer error = %v, want errUploadRejected", err)
	}
	if buf != nil {
		t.Error("expected no buffer after a rejected upload")
	}
}

func TestCreateAndUploadBufferMisaligned(t *testing.T) {
	d, cleanup := createNoopDevice(t)
	defer cleanup()

	// Uploads must be a multiple of four bytes.
	if _, err := d.createAndUploadBuffer("odd", make([]byte, 6), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err == nil {
		t.Error("expected an error for a 6-byte upload")
	}
}
