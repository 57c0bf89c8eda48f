//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggui"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// UI rendering errors.
var (
	// ErrNilDevice is returned when a pipeline is created without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrPipelineNotReady is returned when draws are recorded before the
	// pipeline objects exist.
	ErrPipelineNotReady = errors.New("wgpu: ui pipeline not initialized")
)

// uiVerticesPerInstance is the vertex count of one instanced draw: the four
// quad corners, assembled as a triangle strip.
const uiVerticesPerInstance = ggui.CornerCount

// UIPipeline owns the GPU objects of the instanced UI quad pipeline.
//
// Two pipeline variants share one shader module and vertex stage:
//
//	textured: fs_main, bind groups {0: view uniform, 1: texture + sampler}
//	solid:    fs_solid, bind group {0: view uniform}
//
// Texture and sampler objects belong to the caller. The pipeline publishes
// TextureLayout so the caller can build matching group 1 bind groups.
type UIPipeline struct {
	device hal.Device

	format gputypes.TextureFormat

	shader        hal.ShaderModule
	viewLayout    hal.BindGroupLayout
	textureLayout hal.BindGroupLayout

	texturedPipeLayout hal.PipelineLayout
	solidPipeLayout    hal.PipelineLayout

	textured hal.RenderPipeline
	solid    hal.RenderPipeline
}

// NewUIPipeline creates a UI pipeline that renders into targets of the given
// color format. GPU objects are created lazily by ensurePipeline.
func NewUIPipeline(device hal.Device, format gputypes.TextureFormat) *UIPipeline {
	return &UIPipeline{
		device: device,
		format: format,
	}
}

// TextureLayout returns the group 1 layout (texture_2d at binding 0,
// filtering sampler at binding 1), or nil before the pipeline is created.
func (p *UIPipeline) TextureLayout() hal.BindGroupLayout {
	return p.textureLayout
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *UIPipeline) Destroy() {
	p.destroyPipeline()
}

// ensurePipeline creates the shader, layouts and both pipeline variants if
// they don't already exist.
func (p *UIPipeline) ensurePipeline() error {
	if p.textured != nil && p.solid != nil {
		return nil
	}
	if p.device == nil {
		return ErrNilDevice
	}
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		return err
	}
	return nil
}

// createPipeline compiles the UI shader and creates both render pipelines
// with premultiplied alpha blending.
func (p *UIPipeline) createPipeline() error {
	if uiShaderSource == "" {
		return ErrEmptyShader
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ui_shader",
		Source: hal.ShaderSource{WGSL: uiShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile ui shader: %w", err)
	}
	p.shader = shader

	// Group 0: ViewArgs uniform, read by the vertex stage only.
	viewLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ui_view_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create ui view layout: %w", err)
	}
	p.viewLayout = viewLayout

	// Group 1: caller-owned texture and sampler.
	textureLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ui_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create ui texture layout: %w", err)
	}
	p.textureLayout = textureLayout

	texturedPipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_textured_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.viewLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create ui textured pipeline layout: %w", err)
	}
	p.texturedPipeLayout = texturedPipeLayout

	solidPipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_solid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.viewLayout},
	})
	if err != nil {
		return fmt.Errorf("create ui solid pipeline layout: %w", err)
	}
	p.solidPipeLayout = solidPipeLayout

	textured, err := p.createRenderPipeline("ui_textured_pipeline", p.texturedPipeLayout, uiFragmentEntry)
	if err != nil {
		return err
	}
	p.textured = textured

	solid, err := p.createRenderPipeline("ui_solid_pipeline", p.solidPipeLayout, uiSolidFragmentEntry)
	if err != nil {
		return err
	}
	p.solid = solid

	slogger().Debug("ui pipeline created", "format", p.format)
	return nil
}

// uiBlendState is source-over for premultiplied fragment output.
func uiBlendState() gputypes.BlendState {
	return gputypes.BlendStatePremultiplied()
}

// createRenderPipeline builds one pipeline variant around the shared vertex
// stage.
func (p *UIPipeline) createRenderPipeline(label string, layout hal.PipelineLayout, fragmentEntry string) (hal.RenderPipeline, error) {
	premulBlend := uiBlendState()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: uiVertexEntry,
			Buffers:    uiInstanceLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return pipeline, nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *UIPipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.solid != nil {
		p.device.DestroyRenderPipeline(p.solid)
		p.solid = nil
	}
	if p.textured != nil {
		p.device.DestroyRenderPipeline(p.textured)
		p.textured = nil
	}
	if p.solidPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.solidPipeLayout)
		p.solidPipeLayout = nil
	}
	if p.texturedPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.texturedPipeLayout)
		p.texturedPipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.viewLayout != nil {
		p.device.DestroyBindGroupLayout(p.viewLayout)
		p.viewLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// RecordDraws records the instanced UI draw into an existing render pass.
// textureGroup selects the variant: nil draws solid quads, anything else is
// bound at group 1 for the textured pipeline. No-op for empty resources.
func (p *UIPipeline) RecordDraws(rp hal.RenderPassEncoder, res *uiFrameResources, textureGroup hal.BindGroup) error {
	if res == nil || res.instanceCount == 0 {
		return nil
	}
	if p.textured == nil || p.solid == nil {
		return ErrPipelineNotReady
	}
	if textureGroup != nil {
		rp.SetPipeline(p.textured)
		rp.SetBindGroup(1, textureGroup, nil)
	} else {
		rp.SetPipeline(p.solid)
	}
	rp.SetBindGroup(0, res.viewGroup, nil)
	rp.SetVertexBuffer(0, res.instanceBuf, 0)
	rp.Draw(uiVerticesPerInstance, res.instanceCount, 0, 0)
	return nil
}

// uiFrameResources holds per-frame GPU resources for one UI draw.
type uiFrameResources struct {
	instanceBuf   hal.Buffer
	uniformBuf    hal.Buffer
	viewGroup     hal.BindGroup
	instanceCount uint32
}

func (r *uiFrameResources) destroy(device hal.Device) {
	if r.viewGroup != nil {
		device.DestroyBindGroup(r.viewGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.instanceBuf != nil {
		device.DestroyBuffer(r.instanceBuf)
	}
}

// uiInstanceLayout returns the vertex buffer layout of the instance buffer.
// The buffer advances once per instance; the four corners of an instance
// read the same record.
func uiInstanceLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: ggui.InstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: ggui.OffsetPosition, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: ggui.OffsetDimensions, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: ggui.OffsetTexCoordsBounds, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32x4, Offset: ggui.OffsetColor, ShaderLocation: 3},
				{Format: gputypes.VertexFormatFloat32x4, Offset: ggui.OffsetColorBias, ShaderLocation: 4},
			},
		},
	}
}
