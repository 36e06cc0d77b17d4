package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/wgpu/hal"
)

// PipelineConfig describes the pipeline to build.
type PipelineConfig struct {
	// Format is the color target format. It must match the surface or
	// offscreen texture the pipeline draws into.
	Format gputypes.TextureFormat

	// WithColor selects the uniform-colored shader and adds the bind group
	// layout for the color uniform. Without it the triangle is fixed red.
	WithColor bool

	// Shader selects WGSL (default) or SPIR-V shader input.
	Shader ShaderFormat
}

// Pipeline is the compiled triangle pipeline: one shader module holding
// vs_main and fs_main, a pipeline layout, and the render pipeline.
//
// Topology is triangle list with no culling, no depth/stencil and no
// blending.
type Pipeline struct {
	device hal.Device
	config PipelineConfig

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout // nil without color
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// BuildPipeline compiles the shaders and creates the render pipeline on
// device. On failure every partially created object is released.
func BuildPipeline(device hal.Device, cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = DefaultSurfaceFormat
	}
	p := &Pipeline{device: device, config: cfg}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: pipeline built",
		"format", cfg.Format, "color", cfg.WithColor, "shader", cfg.Shader.String())
	return p, nil
}

func (p *Pipeline) create() error {
	src, err := shaderSource(ShaderSource(p.config.WithColor), p.config.Shader)
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "triangle_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("compile triangle shader: %w", err)
	}
	p.shader = shader

	var layouts []hal.BindGroupLayout
	if p.config.WithColor {
		uniformLayout, err := p.device.CreateBindGroupLayout(uniformLayoutDescriptor())
		if err != nil {
			return fmt.Errorf("create triangle uniform layout: %w", err)
		}
		p.uniformLayout = uniformLayout
		layouts = append(layouts, uniformLayout)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "triangle_pipe_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("create triangle pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(pipelineDescriptor(p.config.Format, p.shader, p.pipeLayout))
	if err != nil {
		return fmt.Errorf("create triangle pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// Destroy releases the pipeline objects. Safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// Format returns the color target format the pipeline was built for.
func (p *Pipeline) Format() gputypes.TextureFormat {
	return p.config.Format
}

// HasColor reports whether the pipeline expects the color bind group.
func (p *Pipeline) HasColor() bool {
	return p.config.WithColor
}

// UniformLayout returns the bind group layout of the color uniform, or nil
// for the plain pipeline.
func (p *Pipeline) UniformLayout() hal.BindGroupLayout {
	return p.uniformLayout
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() PipelineConfig {
	return p.config
}

// pipelineDescriptor returns the fixed triangle pipeline descriptor.
func pipelineDescriptor(format gputypes.TextureFormat, shader hal.ShaderModule, layout hal.PipelineLayout) *hal.RenderPipelineDescriptor {
	return &hal.RenderPipelineDescriptor{
		Label:  "triangle_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// vertexLayout is one buffer of tightly packed vec3<f32> positions.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: triangle.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}

func uniformLayoutDescriptor() *hal.BindGroupLayoutDescriptor {
	return &hal.BindGroupLayoutDescriptor{
		Label: "triangle_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	}
}
