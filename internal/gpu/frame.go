package gpu

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds the wait for each submission to complete.
const submitTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls.
const pollInterval = 100 * time.Microsecond

// DefaultClearColor is the background of every frame unless configured.
var DefaultClearColor = triangle.White

// FrameResources are the device objects one frame draws with.
// Uniform is required when the pipeline has color and ignored otherwise.
type FrameResources struct {
	Pipeline *Pipeline
	Geometry *GeometryBuffer
	Uniform  *UniformBuffer
}

func (r FrameResources) validate(format gputypes.TextureFormat) error {
	if r.Pipeline == nil || r.Pipeline.pipeline == nil || r.Geometry == nil || r.Geometry.buf == nil {
		return ErrNotInitialized
	}
	if r.Pipeline.HasColor() && (r.Uniform == nil || r.Uniform.bindGroup == nil) {
		return fmt.Errorf("%w: missing color uniform", ErrNotInitialized)
	}
	if r.Pipeline.Format() != format {
		return fmt.Errorf("gpu: pipeline format %v does not match target format %v", r.Pipeline.Format(), format)
	}
	return nil
}

// FrameStats describes one submitted frame.
type FrameStats struct {
	// Frame is the 1-based sequence number of the frame.
	Frame uint64

	VertexCount   uint32
	InstanceCount uint32
	Topology      gputypes.PrimitiveTopology

	// BindGroupSet reports whether the color bind group was set.
	BindGroupSet bool

	// Cleared reports whether the pass used a clear load op.
	Cleared    bool
	ClearColor triangle.Color

	Format    gputypes.TextureFormat
	Width     uint32
	Height    uint32
	Offscreen bool
}

// FrameSubmitter records and submits one clear + draw pass per frame.
type FrameSubmitter struct {
	device hal.Device
	queue  hal.Queue
	clear  triangle.Color
	frames uint64
	last   FrameStats
}

// NewFrameSubmitter creates a submitter that clears to DefaultClearColor.
func NewFrameSubmitter(device hal.Device, queue hal.Queue) *FrameSubmitter {
	return &FrameSubmitter{device: device, queue: queue, clear: DefaultClearColor}
}

// SetClearColor changes the background of subsequent frames.
func (s *FrameSubmitter) SetClearColor(c triangle.Color) {
	s.clear = c
}

// ClearColor returns the background color.
func (s *FrameSubmitter) ClearColor() triangle.Color {
	return s.clear
}

// Frames returns the number of frames submitted.
func (s *FrameSubmitter) Frames() uint64 {
	return s.frames
}

// Last returns the stats of the most recent frame.
func (s *FrameSubmitter) Last() FrameStats {
	return s.last
}

// Submit draws one frame into binding and waits for the GPU to finish.
func (s *FrameSubmitter) Submit(binding SurfaceBinding, res FrameResources) (FrameStats, error) {
	if binding.View == nil || binding.Width == 0 || binding.Height == 0 {
		return FrameStats{}, ErrInvalidSurface
	}
	if err := res.validate(binding.Format); err != nil {
		return FrameStats{}, err
	}

	cmdBuf, stats, err := s.encode("triangle_frame", binding, res, nil)
	if err != nil {
		return FrameStats{}, err
	}
	if err := s.submitAndWait(cmdBuf); err != nil {
		return FrameStats{}, err
	}
	return s.commit(stats), nil
}

// SubmitOffscreen draws one frame into target, copies it out, and returns
// the pixels as tightly packed RGBA rows.
func (s *FrameSubmitter) SubmitOffscreen(target *OffscreenTarget, res FrameResources) ([]byte, FrameStats, error) {
	if target == nil || target.view == nil {
		return nil, FrameStats{}, ErrInvalidSurface
	}
	binding := target.Binding()
	if err := res.validate(binding.Format); err != nil {
		return nil, FrameStats{}, err
	}

	size := target.stagingSize()
	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "triangle_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, FrameStats{}, fmt.Errorf("create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	cmdBuf, stats, err := s.encode("triangle_offscreen_frame", binding, res, func(enc hal.CommandEncoder) {
		target.encodeCopy(enc, staging)
	})
	if err != nil {
		return nil, FrameStats{}, err
	}
	if err := s.submitAndWait(cmdBuf); err != nil {
		return nil, FrameStats{}, err
	}

	readback, err := s.readStaging(staging, size)
	if err != nil {
		return nil, FrameStats{}, err
	}
	stats.Offscreen = true
	return unpackRows(readback, binding.Width, binding.Height), s.commit(stats), nil
}

// encode records the render pass, then after (if any), and ends encoding.
func (s *FrameSubmitter) encode(label string, binding SurfaceBinding, res FrameResources, after func(hal.CommandEncoder)) (hal.CommandBuffer, FrameStats, error) {
	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return nil, FrameStats{}, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, FrameStats{}, fmt.Errorf("begin encoding: %w", err)
	}

	r, g, b := s.clear.Float64()
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       binding.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: r, G: g, B: b, A: 1},
		}},
	})

	stats := FrameStats{
		VertexCount:   triangle.VertexCount,
		InstanceCount: 1,
		Topology:      gputypes.PrimitiveTopologyTriangleList,
		Cleared:       true,
		ClearColor:    s.clear,
		Format:        binding.Format,
		Width:         binding.Width,
		Height:        binding.Height,
	}

	rp.SetPipeline(res.Pipeline.pipeline)
	if res.Pipeline.HasColor() {
		rp.SetBindGroup(0, res.Uniform.bindGroup, nil)
		stats.BindGroupSet = true
	}
	rp.SetVertexBuffer(0, res.Geometry.buf, 0)
	rp.Draw(stats.VertexCount, stats.InstanceCount, 0, 0)
	rp.End()

	if after != nil {
		after(encoder)
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, FrameStats{}, fmt.Errorf("end encoding: %w", err)
	}
	return cmdBuf, stats, nil
}

// submitAndWait submits cmdBuf and polls the queue until the submission
// completes or submitTimeout passes. The command buffer is freed unless the
// GPU may still be using it.
func (s *FrameSubmitter) submitAndWait(cmdBuf hal.CommandBuffer) error {
	index, err := s.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		s.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}

	deadline := time.Now().Add(submitTimeout)
	for s.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("wait for GPU: submission %d not complete after %v", index, submitTimeout)
		}
		time.Sleep(pollInterval)
	}
	s.device.FreeCommandBuffer(cmdBuf)
	return nil
}

// readStaging copies size bytes out of a completed staging buffer.
func (s *FrameSubmitter) readStaging(staging hal.Buffer, size uint64) ([]byte, error) {
	mapping, err := s.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := make([]byte, size)
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := s.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return readback, nil
}

func (s *FrameSubmitter) commit(stats FrameStats) FrameStats {
	s.frames++
	stats.Frame = s.frames
	s.last = stats
	slogger().Debug("gpu: frame submitted",
		"frame", stats.Frame, "vertices", stats.VertexCount, "offscreen", stats.Offscreen)
	return stats
}
