// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/triangle"
)

// Renderer draws the current state of a scene into a new pixmap.
//
// Implementations:
//
//   - GPURenderer: WebGPU, offscreen texture with readback
//   - SoftwareRenderer: CPU rasterization with gg
//
// Thread Safety: Renderers may be used from multiple goroutines. The scene
// they read is itself safe for concurrent use.
type Renderer interface {
	// Snapshot renders one frame of width x height pixels.
	Snapshot(width, height int) (*gg.Pixmap, error)

	// Scene returns the scene being rendered.
	Scene() *triangle.Scene

	// Close releases the renderer's resources. Close is idempotent.
	Close()
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsSurface indicates if the renderer can draw into a host
	// window surface.
	SupportsSurface bool

	// SupportsSPIRV indicates if SPIR-V shader input is supported.
	SupportsSPIRV bool
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}

// sceneOrDefault returns scene, or a new scene of the configured variant.
func sceneOrDefault(scene *triangle.Scene, o options) *triangle.Scene {
	if scene != nil {
		return scene
	}
	return triangle.NewScene(o.variant)
}

// Interface compliance checks.
var (
	_ CapableRenderer = (*GPURenderer)(nil)
	_ CapableRenderer = (*SoftwareRenderer)(nil)
)
