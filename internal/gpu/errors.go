package gpu

import "errors"

// Errors returned by the GPU layer.
var (
	// ErrNoGPU is returned when no usable adapter or device can be obtained.
	ErrNoGPU = errors.New("gpu: no usable GPU device")

	// ErrProviderNotHAL is returned when a device provider's Device is not a
	// HAL-backed *wgpu.Device.
	ErrProviderNotHAL = errors.New("gpu: provider does not expose a HAL device")

	// ErrInvalidSurface is returned when a surface view is missing or has a
	// zero extent.
	ErrInvalidSurface = errors.New("gpu: invalid surface")

	// ErrNotInitialized is returned when a frame is submitted before the
	// pipeline and buffers exist.
	ErrNotInitialized = errors.New("gpu: not initialized")

	// ErrClosed is returned when a closed device is used.
	ErrClosed = errors.New("gpu: device is closed")
)
