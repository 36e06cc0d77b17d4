// Package gpu drives the triangle through the gogpu/wgpu HAL.
//
// It owns every device-side object of a frame:
//
//   - Device: the GPU device and queue, opened here or borrowed from a host
//   - SurfaceBinder: the presentable texture view the next frame draws into
//   - Pipeline: the shader module, layouts and render pipeline
//   - GeometryBuffer: nine float32 vertex components (36 bytes)
//   - UniformBuffer: the RGB fill color and its bind group
//   - FrameSubmitter: one clear + draw pass per frame, submitted and waited on
//   - OffscreenTarget: a copyable texture for headless snapshots
//
// Buffers keep a host mirror of the last bytes written so callers can check
// what the device received without mapping device memory.
package gpu
