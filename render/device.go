// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. gogpu's
// App.GPUContextProvider returns one whose Device is a *wgpu.Device:
//
//	dev := provider.Device().(*wgpu.Device)
//	halDevice := dev.HalDevice()
type DeviceHandle = gpucontext.DeviceProvider

// providerSurfaceFormat returns the surface format a provider reports, or
// TextureFormatUndefined for a nil provider.
func providerSurfaceFormat(provider DeviceHandle) gputypes.TextureFormat {
	if provider == nil {
		return gputypes.TextureFormatUndefined
	}
	return provider.SurfaceFormat()
}
