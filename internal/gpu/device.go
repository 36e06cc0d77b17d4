package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan HAL backend
)

// Device is an opened GPU device and its queue.
//
// A Device opened with OpenDevice owns the HAL instance and device and
// destroys them on Close. A Device built from a provider or WrapDevice only
// borrows them.
type Device struct {
	mu       sync.Mutex
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string
	external bool // true when the device is shared (don't destroy on Close)
	closed   bool
}

// OpenDevice opens a device on the Vulkan backend, choosing the adapter that
// best matches pref. It returns an error wrapping ErrNoGPU if no adapter can
// be opened.
func OpenDevice(pref gputypes.PowerPreference) (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}
	d, err := openFromInstance(instance, pref)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	return d, nil
}

// openFromInstance selects and opens an adapter of instance. On success the
// returned Device owns instance.
func openFromInstance(instance hal.Instance, pref gputypes.PowerPreference) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrNoGPU)
	}

	types := make([]gputypes.DeviceType, len(adapters))
	for i := range adapters {
		types[i] = adapters[i].Info.DeviceType
	}
	selected := &adapters[pickAdapter(types, pref)]

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("%w: open device: %w", ErrNoGPU, err)
	}

	slogger().Info("gpu: device opened", "adapter", selected.Info.Name, "type", selected.Info.DeviceType)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}, nil
}

// pickAdapter returns the index of the adapter to open. Discrete GPUs rank
// first for high performance, integrated GPUs first for low power. Any other
// adapter type is used only when nothing ranks.
func pickAdapter(types []gputypes.DeviceType, pref gputypes.PowerPreference) int {
	first, second := gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU
	if pref == gputypes.PowerPreferenceLowPower {
		first, second = second, first
	}
	for _, want := range [...]gputypes.DeviceType{first, second} {
		for i, t := range types {
			if t == want {
				return i
			}
		}
	}
	return 0
}

// DeviceFromProvider borrows the device and queue of a host such as a gogpu
// window. The provider's Device must be a *wgpu.Device backed by HAL.
func DeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", ErrProviderNotHAL)
	}
	dev := provider.Device()
	if dev == nil {
		return nil, fmt.Errorf("%w: provider Device is nil", ErrProviderNotHAL)
	}
	wgpuDev, ok := dev.(*wgpu.Device)
	if !ok || wgpuDev == nil {
		return nil, fmt.Errorf("%w: provider Device is not *wgpu.Device (got %T)", ErrProviderNotHAL, dev)
	}
	device, queue := wgpuDev.HalDevice(), wgpuDev.HalQueue()
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: provider device has no HAL backend", ErrProviderNotHAL)
	}
	return WrapDevice(device, queue, "shared"), nil
}

// WrapDevice borrows an already opened device and queue. Close does not
// destroy them.
func WrapDevice(device hal.Device, queue hal.Queue, name string) *Device {
	return &Device{device: device, queue: queue, name: name, external: true}
}

// HAL returns the underlying device, or nil after Close.
func (d *Device) HAL() hal.Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.device
}

// Queue returns the device queue, or nil after Close.
func (d *Device) Queue() hal.Queue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue
}

// Name returns the adapter name.
func (d *Device) Name() string {
	return d.name
}

// Shared reports whether the device is borrowed from a host.
func (d *Device) Shared() bool {
	return d.external
}

// Closed reports whether Close has been called.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Close releases the device. Borrowed devices are left to their owner.
// Close is idempotent.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	d.closed = true
}
