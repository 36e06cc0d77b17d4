package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
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
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func TestPickAdapter(t *testing.T) {
	discrete := gputypes.DeviceTypeDiscreteGPU
	integrated := gputypes.DeviceTypeIntegratedGPU
	other := gputypes.DeviceType(0)
	for other == discrete || other == integrated {
		other++
	}

	tests := []struct {
		name  string
		types []gputypes.DeviceType
		pref  gputypes.PowerPreference
		want  int
	}{
		{"discrete first for performance", []gputypes.DeviceType{integrated, discrete}, gputypes.PowerPreferenceHighPerformance, 1},
		{"integrated first for low power", []gputypes.DeviceType{discrete, integrated}, gputypes.PowerPreferenceLowPower, 1},
		{"integrated when no discrete", []gputypes.DeviceType{other, integrated}, gputypes.PowerPreferenceHighPerformance, 1},
		{"discrete when no integrated", []gputypes.DeviceType{other, discrete}, gputypes.PowerPreferenceLowPower, 1},
		{"fallback to first", []gputypes.DeviceType{other, other}, gputypes.PowerPreferenceHighPerformance, 0},
		{"single adapter", []gputypes.DeviceType{other}, gputypes.PowerPreferenceLowPower, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickAdapter(tt.types, tt.pref); got != tt.want {
				t.Errorf("pickAdapter() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOpenFromNoopInstance(t *testing.T) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	d, err := openFromInstance(instance, gputypes.PowerPreferenceHighPerformance)
	if err != nil {
		instance.Destroy()
		t.Fatalf("openFromInstance failed: %v", err)
	}
	if d.HAL() == nil || d.Queue() == nil {
		t.Fatal("device or queue is nil")
	}
	if d.Shared() {
		t.Error("opened device should be owned")
	}

	d.Close()
	d.Close() // idempotent
	if !d.Closed() {
		t.Error("Closed() = false after Close")
	}
	if d.HAL() != nil || d.Queue() != nil {
		t.Error("handles should be nil after Close")
	}
}

// testProvider mirrors gogpu's provider: Device returns a *wgpu.Device.
type testProvider struct {
	device gpucontext.Device
}

func (p testProvider) Device() gpucontext.Device             { return p.device }
func (p testProvider) Queue() gpucontext.Queue               { return nil }
func (p testProvider) Adapter() gpucontext.Adapter           { return nil }
func (p testProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestDeviceFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	wgpuDev, err := wgpu.NewDeviceFromHAL(device, queue, 0, wgpu.DefaultLimits(), "test")
	if err != nil {
		t.Fatalf("NewDeviceFromHAL failed: %v", err)
	}

	d, err := DeviceFromProvider(testProvider{device: wgpuDev})
	if err != nil {
		t.Fatalf("DeviceFromProvider failed: %v", err)
	}
	if !d.Shared() {
		t.Error("provider device should be shared")
	}
	if d.HAL() != device || d.Queue() != queue {
		t.Error("HAL() and Queue() do not return the provider's HAL objects")
	}

	d.Close()

	// The shared device must survive Close.
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "after_close",
		Size:  16,
		Usage: gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		t.Fatalf("shared device unusable after Close: %v", err)
	}
	device.DestroyBuffer(buf)
}

func TestDeviceFromProviderRejects(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"nil", nil},
		{"nil device", testProvider{}},
		{"hal device instead of wgpu", testProvider{device: device}},
		{"wgpu device without HAL", testProvider{device: &wgpu.Device{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeviceFromProvider(tt.provider)
			if !errors.Is(err, ErrProviderNotHAL) {
				t.Errorf("err = %v, want ErrProviderNotHAL", err)
			}
		})
	}
}
