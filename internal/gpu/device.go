package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/learn/internal/shader"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device errors.
var (
	// ErrBackendUnavailable is returned when the requested HAL backend is
	// not compiled in or not registered.
	ErrBackendUnavailable = errors.New("gpu: backend not available")

	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")

	// ErrNoDeviceProvider is returned by FromProvider when the provider
	// does not hand out a *wgpu.Device.
	ErrNoDeviceProvider = errors.New("gpu: provider does not expose a wgpu device")
)

// instanceCreator is the part of a HAL backend needed to open a device.
// Both registered backends and noop.API satisfy it.
type instanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Device owns or borrows a wgpu device and its queue.
//
// A device opened with Open or OpenNoop owns its instance and device and
// releases them on Close. A device created with FromProvider borrows them
// from a window (gogpu) and leaves them alone on Close.
type Device struct {
	instance hal.Instance
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterName   string
	shaderFormat  shader.Format
	surfaceFormat gputypes.TextureFormat
	external      bool // true when using a shared device (don't release on Close)
}

// Open creates an instance on the given registered backend, picks a
// discrete or integrated adapter when one exists, and opens a device with
// default limits.
func Open(backend gputypes.Backend) (*Device, error) {
	b, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, backend)
	}
	return openWith(b, shader.FormatSPIRV)
}

// OpenNoop opens a device on the noop backend. Every call succeeds and
// nothing reaches a GPU; used for tests and dry runs.
func OpenNoop() (*Device, error) {
	return openWith(&noop.API{}, shader.FormatWGSL)
}

func openWith(api instanceCreator, format shader.Format) (*Device, error) {
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := selectAdapter(adapters)

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	d, err := NewFromHAL(instance, openDev.Device, openDev.Queue, selected.Info.Name, format)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	slogger().Info("gpu: device opened", "adapter", selected.Info.Name, "shaders", format)
	return d, nil
}

// NewFromHAL wraps an open HAL device and queue. The returned Device
// takes ownership of both and of instance, which may be nil.
func NewFromHAL(instance hal.Instance, device hal.Device, queue hal.Queue, adapterName string, format shader.Format) (*Device, error) {
	dev, err := wgpu.NewDeviceFromHAL(device, queue, gputypes.Features(0), gputypes.DefaultLimits(), adapterName)
	if err != nil {
		return nil, fmt.Errorf("wrap device: %w", err)
	}
	return &Device{
		instance:      instance,
		device:        dev,
		queue:         dev.Queue(),
		adapterName:   adapterName,
		shaderFormat:  format,
		surfaceFormat: gputypes.TextureFormatBGRA8Unorm,
	}, nil
}

// selectAdapter prefers a discrete GPU, then an integrated one, then the
// first adapter reported.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// FromProvider borrows the device of an external provider, normally the
// one returned by a gogpu App's GPUContextProvider. Its Device method must
// return a *wgpu.Device. The provider's SurfaceFormat, when defined,
// becomes the default color format of pipelines built on the returned
// Device. Shaders are handed to the backend as WGSL since the provider's
// backend is not known.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, ErrNoDeviceProvider
	}
	dev, ok := provider.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNoDeviceProvider, provider.Device())
	}
	queue := dev.Queue()
	if queue == nil {
		return nil, fmt.Errorf("%w: device has no queue", ErrNoDeviceProvider)
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	slogger().Debug("gpu: using shared device", "surface_format", format)
	return &Device{
		device:        dev,
		queue:         queue,
		adapterName:   "shared",
		shaderFormat:  shader.FormatWGSL,
		surfaceFormat: format,
		external:      true,
	}, nil
}

// WGPU returns the underlying wgpu device.
func (d *Device) WGPU() *wgpu.Device { return d.device }

// Queue returns the device queue.
func (d *Device) Queue() *wgpu.Queue { return d.queue }

// AdapterName returns the name of the selected adapter, or "shared" for a
// borrowed device.
func (d *Device) AdapterName() string { return d.adapterName }

// ShaderFormat returns how shader modules are created on this device.
func (d *Device) ShaderFormat() shader.Format { return d.shaderFormat }

// SurfaceFormat returns the color format pipelines target by default: the
// provider's surface format for a borrowed device, BGRA8Unorm otherwise.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.surfaceFormat }

// External reports whether the device is borrowed from a provider.
func (d *Device) External() bool { return d.external }

// Close releases the device and instance if they are owned. Safe to call
// multiple times.
func (d *Device) Close() {
	if d.external {
		d.device = nil
		d.queue = nil
		return
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	d.queue = nil
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data. On a failed
// upload the buffer is released.
func (d *Device) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}
