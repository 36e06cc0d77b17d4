// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/triangle/internal/gpu"
	"github.com/gogpu/wgpu"
)

// FrameStats describes one submitted frame.
type FrameStats = gpu.FrameStats

// GPURenderer draws a scene with WebGPU.
//
// It needs a device before the first frame: either its own, opened by Init,
// or a host's, passed to SetDeviceProvider. Device objects are created on
// the first frame and rebuilt when the target format changes. Each frame
// uploads only the buffers the scene reports dirty.
//
// Example:
//
//	r := render.NewGPURenderer(nil)
//	if err := r.Init(); err != nil {
//	    log.Fatal(err) // errors.Is(err, render.ErrNoGPU)
//	}
//	defer r.Close()
//	pm, err := r.Snapshot(640, 480)
type GPURenderer struct {
	mu    sync.Mutex
	opts  options
	scene *triangle.Scene

	dev           *gpu.Device
	surfaceFormat gputypes.TextureFormat
	binder        gpu.SurfaceBinder

	pipeline  *gpu.Pipeline
	geometry  *gpu.GeometryBuffer
	uniform   *gpu.UniformBuffer
	submitter *gpu.FrameSubmitter
	offscreen *gpu.OffscreenTarget

	last   FrameStats
	closed bool
}

// NewGPURenderer creates a renderer for scene. A nil scene is replaced by a
// new scene of the WithVariant variant.
func NewGPURenderer(scene *triangle.Scene, opts ...Option) *GPURenderer {
	o := buildOptions(opts)
	return &GPURenderer{
		opts:          o,
		scene:         sceneOrDefault(scene, o),
		surfaceFormat: o.surfaceFormat,
	}
}

// Scene returns the scene being rendered.
func (r *GPURenderer) Scene() *triangle.Scene {
	return r.scene
}

// Init opens a device of the renderer's own. It is a no-op if a device is
// already set. The error wraps ErrNoGPU when no adapter can be used.
func (r *GPURenderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.dev != nil {
		return nil
	}
	dev, err := gpu.OpenDevice(r.opts.power)
	if err != nil {
		return err
	}
	r.dev = dev
	triangle.Logger().Info("render: GPU renderer initialized", "adapter", dev.Name())
	return nil
}

// SetDeviceProvider switches the renderer to a host's shared device. The
// provider's Device must be a *wgpu.Device, as gogpu's App.GPUContextProvider
// returns. A defined provider surface format becomes the default for
// RenderToView.
//
// Objects created on a previous device are released, and a device opened by
// Init is closed. The shared device itself is never destroyed.
func (r *GPURenderer) SetDeviceProvider(provider DeviceHandle) error {
	dev, err := gpu.DeviceFromProvider(provider)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.releaseLocked()
	if r.dev != nil {
		r.dev.Close()
	}
	r.dev = dev
	if f := providerSurfaceFormat(provider); f != gputypes.TextureFormatUndefined {
		r.surfaceFormat = f
	}
	triangle.Logger().Info("render: using shared GPU device", "surfaceFormat", r.surfaceFormat)
	return nil
}

// DeviceName returns the adapter name, or "" without a device.
func (r *GPURenderer) DeviceName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return ""
	}
	return r.dev.Name()
}

// RenderToView draws one frame into a host surface view, such as the one
// gogpu's Context.SurfaceView returns. width and height are in physical
// pixels. A zero format uses the provider's surface format.
func (r *GPURenderer) RenderToView(view *wgpu.TextureView, format gputypes.TextureFormat, width, height uint32) (FrameStats, error) {
	if view == nil {
		return FrameStats{}, fmt.Errorf("%w: nil surface view", ErrInvalidSurface)
	}
	tv := view.HalTextureView()
	if tv == nil {
		return FrameStats{}, fmt.Errorf("%w: surface view has no HAL view", ErrInvalidSurface)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return FrameStats{}, ErrClosed
	}
	if format == gputypes.TextureFormatUndefined {
		format = r.surfaceFormat
	}
	if err := r.binder.Bind(tv, format, width, height); err != nil {
		return FrameStats{}, err
	}
	binding, _ := r.binder.Binding()

	res, err := r.prepareLocked(binding.Format)
	if err != nil {
		return FrameStats{}, err
	}
	stats, err := r.submitter.Submit(binding, res)
	if err != nil {
		return FrameStats{}, fmt.Errorf("render: submit frame: %w", err)
	}
	r.last = stats
	return stats, nil
}

// Snapshot draws one frame into an offscreen texture and reads it back.
func (r *GPURenderer) Snapshot(width, height int) (*gg.Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: snapshot %dx%d", ErrInvalidSurface, width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.dev == nil {
		return nil, ErrNotInitialized
	}

	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	if r.offscreen == nil {
		t, err := gpu.NewOffscreenTarget(r.dev.HAL(), w, h)
		if err != nil {
			return nil, err
		}
		r.offscreen = t
	} else if err := r.offscreen.Resize(w, h); err != nil {
		return nil, err
	}
	target := r.offscreen.Binding()
	if err := r.binder.Bind(target.View, target.Format, w, h); err != nil {
		return nil, err
	}

	res, err := r.prepareLocked(target.Format)
	if err != nil {
		return nil, err
	}
	pixels, stats, err := r.submitter.SubmitOffscreen(r.offscreen, res)
	if err != nil {
		return nil, fmt.Errorf("render: submit snapshot: %w", err)
	}
	r.last = stats

	pm := gg.NewPixmap(width, height)
	copy(pm.Data(), pixels)
	return pm, nil
}

// Stats returns the stats of the most recent frame.
func (r *GPURenderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Capabilities returns the renderer's capabilities.
func (r *GPURenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{IsGPU: true, SupportsSurface: true, SupportsSPIRV: true}
}

// Close releases all device objects and, if the renderer opened its own
// device, the device. Close is idempotent.
func (r *GPURenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.releaseLocked()
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
	r.binder.Unbind()
	r.closed = true
}

// prepareLocked makes sure the pipeline and buffers exist, rebuilding the
// pipeline when the binder reports a new surface format, then uploads
// whatever the scene reports dirty. format is the bound surface format.
func (r *GPURenderer) prepareLocked(format gputypes.TextureFormat) (gpu.FrameResources, error) {
	if r.dev == nil {
		return gpu.FrameResources{}, ErrNotInitialized
	}
	device, queue := r.dev.HAL(), r.dev.Queue()
	if device == nil || queue == nil {
		return gpu.FrameResources{}, gpu.ErrClosed
	}

	if r.pipeline != nil && r.binder.FormatChanged() {
		triangle.Logger().Debug("render: rebuilding pipeline", "from", r.pipeline.Format(), "to", format)
		r.destroyPipelineLocked()
	}

	if r.pipeline == nil {
		p, err := gpu.BuildPipeline(device, gpu.PipelineConfig{
			Format:    format,
			WithColor: r.scene.Variant().HasColor(),
			Shader:    r.opts.shader,
		})
		if err != nil {
			return gpu.FrameResources{}, fmt.Errorf("render: build pipeline: %w", err)
		}
		r.pipeline = p
		if p.HasColor() {
			u, err := gpu.NewUniformBuffer(device, queue, p.UniformLayout())
			if err != nil {
				r.destroyPipelineLocked()
				return gpu.FrameResources{}, fmt.Errorf("render: %w", err)
			}
			r.uniform = u
		}
		r.scene.Invalidate()
	}

	if r.geometry == nil {
		g, err := gpu.NewGeometryBuffer(device, queue)
		if err != nil {
			return gpu.FrameResources{}, fmt.Errorf("render: %w", err)
		}
		r.geometry = g
		r.scene.Invalidate()
	}

	if r.submitter == nil {
		r.submitter = gpu.NewFrameSubmitter(device, queue)
		r.submitter.SetClearColor(r.opts.clear)
	}

	frame := r.scene.Snapshot()
	if frame.GeometryDirty {
		if err := r.geometry.Write(frame.Vertices); err != nil {
			r.scene.Invalidate()
			return gpu.FrameResources{}, fmt.Errorf("render: %w", err)
		}
	}
	if frame.ColorDirty && r.uniform != nil {
		if err := r.uniform.Write(frame.Color); err != nil {
			r.scene.Invalidate()
			return gpu.FrameResources{}, fmt.Errorf("render: %w", err)
		}
	}
	return gpu.FrameResources{Pipeline: r.pipeline, Geometry: r.geometry, Uniform: r.uniform}, nil
}

func (r *GPURenderer) destroyPipelineLocked() {
	if r.uniform != nil {
		r.uniform.Destroy()
		r.uniform = nil
	}
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
}

// releaseLocked destroys every object created on the current device.
func (r *GPURenderer) releaseLocked() {
	r.destroyPipelineLocked()
	if r.geometry != nil {
		r.geometry.Destroy()
		r.geometry = nil
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
		r.offscreen = nil
	}
	r.submitter = nil
}
