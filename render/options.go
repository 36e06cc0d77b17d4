// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/triangle/internal/gpu"
)

// Option configures a renderer during creation.
//
// Example:
//
//	r := render.NewGPURenderer(scene,
//	    render.WithClearColor(triangle.Black),
//	    render.WithPowerPreference(gputypes.PowerPreferenceLowPower))
type Option func(*options)

// ShaderFormat selects how shader code is handed to the device.
type ShaderFormat = gpu.ShaderFormat

// Shader formats.
const (
	ShaderWGSL  = gpu.ShaderWGSL
	ShaderSPIRV = gpu.ShaderSPIRV
)

// options holds optional renderer configuration.
type options struct {
	variant       triangle.Variant
	clear         triangle.Color
	power         gputypes.PowerPreference
	shader        ShaderFormat
	surfaceFormat gputypes.TextureFormat
	supersample   int
	logger        *slog.Logger
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		variant:       triangle.VariantInteractive,
		clear:         gpu.DefaultClearColor,
		power:         gputypes.PowerPreferenceHighPerformance,
		shader:        ShaderWGSL,
		surfaceFormat: gpu.DefaultSurfaceFormat,
		supersample:   1,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger != nil {
		triangle.SetLogger(o.logger)
	}
	return o
}

// WithVariant sets the variant of the scene the renderer creates when it is
// given a nil scene. It has no effect on an existing scene.
func WithVariant(v triangle.Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithClearColor sets the background color. The default is white.
func WithClearColor(c triangle.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithPowerPreference selects the adapter ranking used by Init.
func WithPowerPreference(p gputypes.PowerPreference) Option {
	return func(o *options) {
		o.power = p
	}
}

// WithShaderFormat selects WGSL or SPIR-V shader input.
func WithShaderFormat(f ShaderFormat) Option {
	return func(o *options) {
		o.shader = f
	}
}

// WithSurfaceFormat sets the format assumed for surfaces whose format is
// not reported by the host.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != gputypes.TextureFormatUndefined {
			o.surfaceFormat = f
		}
	}
}

// WithSupersample sets the software renderer's supersampling factor.
// Values below 1 are treated as 1.
func WithSupersample(n int) Option {
	return func(o *options) {
		o.supersample = max(n, 1)
	}
}

// WithLogger installs l as the logger of the triangle packages.
// See triangle.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
