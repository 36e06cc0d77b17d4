// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/triangle"
	xdraw "golang.org/x/image/draw"
)

// SoftwareRenderer rasterizes the scene's triangle on the CPU with gg.
//
// Clip space maps to pixels as px = (x+1)/2*w and py = (1-y)/2*h, the same
// viewport transform the GPU applies. With supersampling the triangle is
// drawn at n times the size and scaled down with Catmull-Rom filtering.
//
// Example:
//
//	r := render.NewSoftwareRenderer(scene, render.WithSupersample(4))
//	pm, _ := r.Snapshot(640, 480)
//	_ = pm.SavePNG("triangle.png")
type SoftwareRenderer struct {
	mu     sync.Mutex
	opts   options
	scene  *triangle.Scene
	frames uint64
	closed bool
}

// NewSoftwareRenderer creates a CPU renderer for scene. A nil scene is
// replaced by a new scene of the WithVariant variant.
func NewSoftwareRenderer(scene *triangle.Scene, opts ...Option) *SoftwareRenderer {
	o := buildOptions(opts)
	return &SoftwareRenderer{opts: o, scene: sceneOrDefault(scene, o)}
}

// Scene returns the scene being rendered.
func (r *SoftwareRenderer) Scene() *triangle.Scene {
	return r.scene
}

// Snapshot renders the current scene into a width x height pixmap.
func (r *SoftwareRenderer) Snapshot(width, height int) (*gg.Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: snapshot %dx%d", ErrInvalidSurface, width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	ss := r.opts.supersample
	sw, sh := width*ss, height*ss

	dc := gg.NewContext(sw, sh)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(gg.RGB(r.opts.clear.Float64()))
	dc.SetRGB(fillColor(r.scene).Float64())

	v := r.scene.Vertices()
	for i := 0; i < triangle.VertexCount; i++ {
		px, py := ClipToPixel(v.Vertex(i), sw, sh)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("render: fill triangle: %w", err)
	}

	src := dc.Image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if ss == 1 {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}

	pm := gg.NewPixmap(width, height)
	copy(pm.Data(), dst.Pix)
	r.frames++
	triangle.Logger().Debug("render: software frame", "frame", r.frames, "size", fmt.Sprintf("%dx%d", width, height), "supersample", ss)
	return pm, nil
}

// Frames returns the number of frames rendered.
func (r *SoftwareRenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{}
}

// Close marks the renderer closed. Close is idempotent.
func (r *SoftwareRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// ClipToPixel maps a clip-space point to pixel coordinates of a w x h
// target. The origin is the top-left corner and y grows downwards.
func ClipToPixel(p triangle.Vec2, w, h int) (x, y float64) {
	x = (float64(p.X) + 1) / 2 * float64(w)
	y = (1 - float64(p.Y)) / 2 * float64(h)
	return x, y
}

// fillColor is the color the GPU shader would output for scene.
func fillColor(scene *triangle.Scene) triangle.Color {
	if !scene.Variant().HasColor() {
		return triangle.Red
	}
	return scene.Color()
}
