package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/wgpu/hal"
)

// UniformBufferSize is the size of the color uniform buffer. The shader's
// vec3<f32> occupies the first 12 bytes; uniform structs round up to 16.
const UniformBufferSize = 16

// deviceBuffer is a fixed-size device buffer that is always written whole.
// It mirrors the last upload on the host.
type deviceBuffer struct {
	device hal.Device
	queue  hal.Queue
	label  string
	buf    hal.Buffer
	host   []byte
	writes int
}

func newDeviceBuffer(device hal.Device, queue hal.Queue, label string, size uint64, usage gputypes.BufferUsage) (deviceBuffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return deviceBuffer{}, fmt.Errorf("create %s: %w", label, err)
	}
	return deviceBuffer{
		device: device,
		queue:  queue,
		label:  label,
		buf:    buf,
		host:   make([]byte, size),
	}, nil
}

// write uploads data at offset 0. data is zero-padded to the buffer size.
func (b *deviceBuffer) write(data []byte) error {
	staged := make([]byte, len(b.host))
	copy(staged, data)
	if err := b.queue.WriteBuffer(b.buf, 0, staged); err != nil {
		return fmt.Errorf("write %s: %w", b.label, err)
	}
	b.host = staged
	b.writes++
	slogger().Debug("gpu: buffer written", "buffer", b.label, "bytes", len(b.host))
	return nil
}

func (b *deviceBuffer) bytes() []byte {
	out := make([]byte, len(b.host))
	copy(out, b.host)
	return out
}

func (b *deviceBuffer) destroy() {
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// GeometryBuffer holds the nine vertex components of the triangle.
type GeometryBuffer struct {
	deviceBuffer
}

// NewGeometryBuffer creates a 36-byte vertex buffer.
func NewGeometryBuffer(device hal.Device, queue hal.Queue) (*GeometryBuffer, error) {
	b, err := newDeviceBuffer(device, queue, "triangle_vertices", triangle.VertexBytes,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &GeometryBuffer{deviceBuffer: b}, nil
}

// Write uploads the current positions of v.
func (g *GeometryBuffer) Write(v triangle.VertexSet) error {
	return g.write(v.Bytes())
}

// Bytes returns a copy of the last uploaded bytes.
func (g *GeometryBuffer) Bytes() []byte { return g.bytes() }

// Floats decodes the last upload back into nine floats.
func (g *GeometryBuffer) Floats() [triangle.VertexFloats]float32 {
	f, _ := triangle.DecodeVertices(g.host)
	return f
}

// Size returns the buffer size in bytes.
func (g *GeometryBuffer) Size() uint64 { return uint64(len(g.host)) }

// Writes returns how many uploads the buffer has received.
func (g *GeometryBuffer) Writes() int { return g.writes }

// Buffer returns the device buffer.
func (g *GeometryBuffer) Buffer() hal.Buffer { return g.buf }

// Destroy releases the device buffer.
func (g *GeometryBuffer) Destroy() { g.destroy() }

// UniformBuffer holds the fill color and the bind group exposing it at
// group 0, binding 0.
type UniformBuffer struct {
	deviceBuffer
	bindGroup hal.BindGroup
}

// NewUniformBuffer creates the 16-byte color uniform and its bind group for
// layout.
func NewUniformBuffer(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout) (*UniformBuffer, error) {
	if layout == nil {
		return nil, fmt.Errorf("create triangle uniform: nil bind group layout")
	}
	b, err := newDeviceBuffer(device, queue, "triangle_uniform", UniformBufferSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "triangle_uniform_bind",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.buf.NativeHandle(), Offset: 0, Size: UniformBufferSize,
			}},
		},
	})
	if err != nil {
		b.destroy()
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	return &UniformBuffer{deviceBuffer: b, bindGroup: bindGroup}, nil
}

// Write uploads c. The trailing four bytes are zero.
func (u *UniformBuffer) Write(c triangle.Color) error {
	return u.write(c.Bytes())
}

// Bytes returns a copy of the last uploaded bytes.
func (u *UniformBuffer) Bytes() []byte { return u.bytes() }

// Color decodes the last upload.
func (u *UniformBuffer) Color() triangle.Color {
	c, _ := triangle.DecodeColor(u.host)
	return c
}

// Writes returns how many uploads the buffer has received.
func (u *UniformBuffer) Writes() int { return u.writes }

// Buffer returns the device buffer.
func (u *UniformBuffer) Buffer() hal.Buffer { return u.buf }

// BindGroup returns the bind group for group 0.
func (u *UniformBuffer) BindGroup() hal.BindGroup { return u.bindGroup }

// Destroy releases the bind group and the device buffer.
func (u *UniformBuffer) Destroy() {
	if u.bindGroup != nil {
		u.device.DestroyBindGroup(u.bindGroup)
		u.bindGroup = nil
	}
	u.destroy()
}
