package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
)

func TestPipelineDescriptor(t *testing.T) {
	desc := pipelineDescriptor(gputypes.TextureFormatRGBA8Unorm, nil, nil)

	if desc.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("topology = %v, want triangle list", desc.Primitive.Topology)
	}
	if desc.Primitive.CullMode != gputypes.CullModeNone {
		t.Errorf("cull mode = %v, want none", desc.Primitive.CullMode)
	}
	if desc.DepthStencil != nil {
		t.Error("pipeline should have no depth/stencil state")
	}
	if desc.Multisample.Count != 1 {
		t.Errorf("sample count = %d, want 1", desc.Multisample.Count)
	}
	if desc.Vertex.EntryPoint != "vs_main" {
		t.Errorf("vertex entry = %q, want vs_main", desc.Vertex.EntryPoint)
	}

	if desc.Fragment == nil {
		t.Fatal("fragment state is nil")
	}
	if desc.Fragment.EntryPoint != "fs_main" {
		t.Errorf("fragment entry = %q, want fs_main", desc.Fragment.EntryPoint)
	}
	if len(desc.Fragment.Targets) != 1 {
		t.Fatalf("targets = %d, want 1", len(desc.Fragment.Targets))
	}
	target := desc.Fragment.Targets[0]
	if target.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("target format = %v, want RGBA8Unorm", target.Format)
	}
	if target.Blend != nil {
		t.Error("target should not blend")
	}
	if target.WriteMask != gputypes.ColorWriteMaskAll {
		t.Errorf("write mask = %v, want all", target.WriteMask)
	}
}

func TestVertexLayout(t *testing.T) {
	layouts := vertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("vertex buffers = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != triangle.VertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, triangle.VertexStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("step mode = %v, want vertex", l.StepMode)
	}
	if len(l.Attributes) != 1 {
		t.Fatalf("attributes = %d, want 1", len(l.Attributes))
	}
	a := l.Attributes[0]
	if a.Format != gputypes.VertexFormatFloat32x3 || a.Offset != 0 || a.ShaderLocation != 0 {
		t.Errorf("attribute = %+v, want float32x3 at offset 0, location 0", a)
	}
}

func TestUniformLayoutDescriptor(t *testing.T) {
	desc := uniformLayoutDescriptor()
	if len(desc.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(desc.Entries))
	}
	e := desc.Entries[0]
	if e.Binding != 0 {
		t.Errorf("binding = %d, want 0", e.Binding)
	}
	if e.Visibility != gputypes.ShaderStageFragment {
		t.Errorf("visibility = %v, want fragment", e.Visibility)
	}
	if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Error("entry should be a uniform buffer")
	}
}

func TestBuildPipeline(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name string
		cfg  PipelineConfig
	}{
		{"plain wgsl", PipelineConfig{Format: gputypes.TextureFormatBGRA8Unorm}},
		{"color wgsl", PipelineConfig{Format: gputypes.TextureFormatBGRA8Unorm, WithColor: true}},
		{"color spirv", PipelineConfig{Format: gputypes.TextureFormatRGBA8Unorm, WithColor: true, Shader: ShaderSPIRV}},
		{"default format", PipelineConfig{WithColor: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildPipeline(device, tt.cfg)
			if err != nil {
				t.Fatalf("BuildPipeline failed: %v", err)
			}
			defer p.Destroy()

			if p.pipeline == nil {
				t.Error("render pipeline is nil")
			}
			if p.HasColor() != tt.cfg.WithColor {
				t.Errorf("HasColor() = %v, want %v", p.HasColor(), tt.cfg.WithColor)
			}
			if (p.UniformLayout() != nil) != tt.cfg.WithColor {
				t.Errorf("UniformLayout() present = %v, want %v", p.UniformLayout() != nil, tt.cfg.WithColor)
			}
			want := tt.cfg.Format
			if want == gputypes.TextureFormatUndefined {
				want = DefaultSurfaceFormat
			}
			if p.Format() != want {
				t.Errorf("Format() = %v, want %v", p.Format(), want)
			}
		})
	}
}

func TestPipelineDestroyTwice(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := BuildPipeline(device, PipelineConfig{WithColor: true})
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}
	p.Destroy()
	p.Destroy()
	if p.pipeline != nil || p.shader != nil || p.uniformLayout != nil {
		t.Error("objects should be nil after Destroy")
	}
}
