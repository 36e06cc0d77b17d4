// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a triangle.Scene into pixels.
//
// Two renderers share the Renderer interface:
//
//   - GPURenderer: draws through WebGPU, either into a host surface (a gogpu
//     window) or into an offscreen texture that is read back
//   - SoftwareRenderer: rasterizes the same clip-space triangle with gg, used
//     as a reference and for machines without a GPU
//
// Backends are looked up by name with NewRenderer ("gpu", "software").
//
// # Usage
//
// Headless snapshot:
//
//	scene := triangle.NewScene(triangle.VariantInteractive)
//	r, err := render.NewRenderer("gpu", scene)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	pm, err := r.Snapshot(640, 480)
//
// Integration with gogpu:
//
//	r := render.NewGPURenderer(scene)
//	_ = r.SetDeviceProvider(app.GPUContextProvider())
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _, _ = r.RenderToView(dc.SurfaceView(), 0, uint32(dc.Width()), uint32(dc.Height()))
//	})
//
// The renderer RECEIVES the window's device when a provider is set. It only
// opens a device of its own for headless use (Init).
package render
