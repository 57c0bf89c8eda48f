// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu draws UI quad instances on a wgpu/hal device.
//
// A Renderer wraps the instanced quad pipeline: every instance becomes a
// four-vertex triangle strip whose corners are positioned by the vertex
// stage in shaders/ui.wgsl. The CPU reference of that stage lives in the
// root ggui package (TransformVertex) and produces identical vertices.
//
// Usage with a device shared from an external provider:
//
//	r, err := gpu.NewRendererFromProvider(provider)
//	if err != nil { ... }
//	defer r.Destroy()
//	err = r.Render(ggui.NewViewArgs(w, h), instances, dst)
package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/ggui"
	gpuimpl "github.com/gogpu/ggui/internal/gpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// ErrProviderNotHAL is returned when a device provider does not expose
// wgpu/hal objects.
var ErrProviderNotHAL = errors.New("gpu: provider does not expose HAL types")

// Re-exported errors of the underlying pipeline.
var (
	ErrNilDevice   = gpuimpl.ErrNilDevice
	ErrNoInstances = gpuimpl.ErrNoInstances
	ErrTargetSize  = gpuimpl.ErrTargetSize
)

// Renderer draws instance batches. It is not safe for concurrent use.
type Renderer struct {
	session *gpuimpl.UISession
}

// NewRenderer creates a renderer on an existing device and queue. The caller
// keeps ownership of both.
func NewRenderer(device hal.Device, queue hal.Queue) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Renderer{session: gpuimpl.NewUISession(device, queue)}, nil
}

// NewRendererFromProvider creates a renderer on the device of a gpucontext
// provider. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewRendererFromProvider(provider gpucontext.DeviceProvider) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	ggui.Logger().Debug("gpu renderer attached to provider")
	return NewRenderer(device, queue)
}

// Render draws solid (untextured) instances and reads the frame back into
// dst, whose size is the viewport size.
func (r *Renderer) Render(view ggui.ViewArgs, instances []ggui.Instance, dst *image.RGBA) error {
	return r.session.RenderFrame(gpuimpl.Frame{View: view, Instances: instances}, dst)
}

// RenderTextured is like Render but samples the texture bound by group,
// which must match TextureLayout.
func (r *Renderer) RenderTextured(view ggui.ViewArgs, instances []ggui.Instance, group hal.BindGroup, dst *image.RGBA) error {
	return r.session.RenderFrame(gpuimpl.Frame{View: view, Instances: instances, TextureGroup: group}, dst)
}

// TextureLayout returns the bind group layout for textures passed to
// RenderTextured, creating the pipeline if needed.
func (r *Renderer) TextureLayout() (hal.BindGroupLayout, error) {
	if err := r.session.EnsurePipeline(); err != nil {
		return nil, err
	}
	return r.session.Pipeline().TextureLayout(), nil
}

// SetSurfaceTarget renders subsequent frames straight into view. Pass nil to
// return to offscreen readback.
func (r *Renderer) SetSurfaceTarget(view hal.TextureView, width, height uint32) {
	r.session.SetSurfaceTarget(view, width, height)
}

// Destroy releases all GPU resources owned by the renderer.
func (r *Renderer) Destroy() {
	r.session.Destroy()
}
