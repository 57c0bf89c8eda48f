//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/ggui"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoInstances is returned by RenderFrame when there is nothing to draw.
var ErrNoInstances = errors.New("wgpu: no ui instances")

// ErrTargetSize is returned when the readback target does not match the
// frame size.
var ErrTargetSize = errors.New("wgpu: ui target size mismatch")

// uiTargetFormat is the color format of the offscreen target.
const uiTargetFormat = gputypes.TextureFormatBGRA8Unorm

// fenceTimeout bounds how long a frame waits for the GPU.
const fenceTimeout = 5 * time.Second

// Frame is one UI draw: the instances, the view uniform derived from the
// viewport, and an optional caller-owned texture bind group matching
// UIPipeline.TextureLayout. A nil TextureGroup draws untextured quads.
type Frame struct {
	View         ggui.ViewArgs
	Instances    []ggui.Instance
	TextureGroup hal.BindGroup
}

// UISession renders UI frames with a UIPipeline.
//
// Two target modes are supported:
//   - Offscreen (default): renders to an internal texture, then reads back
//     pixels into an *image.RGBA.
//   - Surface: renders directly to a caller-provided texture view. No
//     readback occurs.
type UISession struct {
	device hal.Device
	queue  hal.Queue

	pipeline *UIPipeline

	colorTex  hal.Texture
	colorView hal.TextureView
	width     uint32
	height    uint32

	surfaceView   hal.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32

	instanceData []byte
}

// NewUISession creates a session for the given device and queue. The pipeline
// and textures are allocated on the first RenderFrame call.
func NewUISession(device hal.Device, queue hal.Queue) *UISession {
	return &UISession{
		device:   device,
		queue:    queue,
		pipeline: NewUIPipeline(device, uiTargetFormat),
	}
}

// Pipeline returns the session's pipeline. Callers use its TextureLayout to
// build texture bind groups; the layout exists after EnsurePipeline.
func (s *UISession) Pipeline() *UIPipeline {
	return s.pipeline
}

// EnsurePipeline creates the pipeline objects if they don't exist yet.
func (s *UISession) EnsurePipeline() error {
	if s.device == nil {
		return ErrNilDevice
	}
	return s.pipeline.ensurePipeline()
}

// SetSurfaceTarget makes the session render into view instead of the
// offscreen texture. Pass nil to return to offscreen mode. The caller keeps
// ownership of the view.
func (s *UISession) SetSurfaceTarget(view hal.TextureView, width, height uint32) {
	if view != nil {
		s.destroyTextures()
	}
	s.surfaceView = view
	s.surfaceWidth = width
	s.surfaceHeight = height
}

// Size returns the dimensions of the current offscreen texture.
func (s *UISession) Size() (uint32, uint32) {
	return s.width, s.height
}

// RenderFrame draws frame and, in offscreen mode, reads the result into dst.
// dst holds premultiplied RGBA; its bounds must match the frame size, which
// is dst's size in offscreen mode and the surface size in surface mode.
func (s *UISession) RenderFrame(frame Frame, dst *image.RGBA) error {
	if s.device == nil {
		return ErrNilDevice
	}
	if len(frame.Instances) == 0 {
		return ErrNoInstances
	}
	if err := s.pipeline.ensurePipeline(); err != nil {
		return fmt.Errorf("ensure ui pipeline: %w", err)
	}

	res, err := s.buildFrameResources(frame)
	if err != nil {
		return err
	}
	defer res.destroy(s.device)

	if s.surfaceView != nil {
		return s.encodeSubmit(s.surfaceView, res, frame.TextureGroup, nil)
	}

	if dst == nil {
		return fmt.Errorf("%w: nil target", ErrTargetSize)
	}
	b := dst.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // image bounds are non-negative
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d", ErrTargetSize, w, h)
	}
	if err := s.ensureTextures(w, h); err != nil {
		return fmt.Errorf("ensure ui textures: %w", err)
	}
	return s.encodeSubmit(s.colorView, res, frame.TextureGroup, dst)
}

// Destroy releases the session's textures and pipeline.
func (s *UISession) Destroy() {
	s.surfaceView = nil
	if s.device == nil {
		return
	}
	s.destroyTextures()
	s.pipeline.Destroy()
}

// buildFrameResources uploads the instance buffer and view uniform and
// creates the group 0 bind group.
func (s *UISession) buildFrameResources(frame Frame) (*uiFrameResources, error) {
	s.instanceData = ggui.AppendInstances(s.instanceData[:0], frame.Instances)

	res := &uiFrameResources{instanceCount: uint32(len(frame.Instances))} //nolint:gosec // instance counts fit in uint32

	instanceBuf, err := s.createAndUploadBuffer("ui_instances", s.instanceData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.instanceBuf = instanceBuf

	uniformBuf, err := s.createAndUploadBuffer("ui_view_uniform", ggui.ViewUniformBytes(frame.View),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(s.device)
		return nil, err
	}
	res.uniformBuf = uniformBuf

	viewGroup, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ui_view_bind",
		Layout: s.pipeline.viewLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: ggui.ViewUniformSize,
			}},
		},
	})
	if err != nil {
		res.destroy(s.device)
		return nil, fmt.Errorf("create ui view bind group: %w", err)
	}
	res.viewGroup = viewGroup
	return res, nil
}

// encodeSubmit records one render pass into target, submits it and waits
// for the fence. When dst is non-nil the target texture is copied back.
func (s *UISession) encodeSubmit(target hal.TextureView, res *uiFrameResources, textureGroup hal.BindGroup, dst *image.RGBA) error {
	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ui_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ui_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "ui_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	if err := s.pipeline.RecordDraws(rp, res, textureGroup); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}
	rp.End()

	var stagingBuf hal.Buffer
	var pixelBufSize uint64
	var bytesPerRow uint32
	if dst != nil {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: s.colorTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
		bytesPerRow = alignedBytesPerRow(s.width)
		pixelBufSize = uint64(bytesPerRow) * uint64(s.height)
		stagingBuf, err = s.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "ui_staging",
			Size:  pixelBufSize,
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("create staging buffer: %w", err)
		}
		defer s.device.DestroyBuffer(stagingBuf)

		encoder.CopyTextureToBuffer(s.colorTex, stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: bytesPerRow, RowsPerImage: s.height},
			TextureBase:  hal.ImageCopyTexture{Texture: s.colorTex, MipLevel: 0},
			Size:         hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
		}})

		// The color target is reused next frame as a render attachment.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: s.colorTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := s.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if dst == nil {
		return nil
	}
	readback := make([]byte, pixelBufSize)
	if err := s.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	copyBGRAToRGBA(dst, readback, int(s.width), int(s.height), int(bytesPerRow))
	return nil
}

// ensureTextures (re)creates the offscreen color target when the size
// changes.
func (s *UISession) ensureTextures(w, h uint32) error {
	if s.width == w && s.height == h && s.colorTex != nil {
		return nil
	}
	s.destroyTextures()

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ui_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        uiTargetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create ui color texture: %w", err)
	}
	s.colorTex = tex

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "ui_color_view",
		Format:        uiTargetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.destroyTextures()
		return fmt.Errorf("create ui color view: %w", err)
	}
	s.colorView = view
	s.width, s.height = w, h

	slogger().Debug("ui target allocated", "width", w, "height", h)
	return nil
}

func (s *UISession) destroyTextures() {
	if s.colorView != nil {
		s.device.DestroyTextureView(s.colorView)
		s.colorView = nil
	}
	if s.colorTex != nil {
		s.device.DestroyTexture(s.colorTex)
		s.colorTex = nil
	}
	s.width = 0
	s.height = 0
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (s *UISession) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	s.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// copyPitchAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyPitchAlignment = 256

// alignedBytesPerRow returns the padded row pitch of a BGRA8 readback.
func alignedBytesPerRow(width uint32) uint32 {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// copyBGRAToRGBA strips the per-row padding of a readback with the given
// source pitch and swizzles BGRA to RGBA into dst.
func copyBGRAToRGBA(dst *image.RGBA, src []byte, w, h, srcStride int) {
	for y := range h {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		in := src[y*srcStride : y*srcStride+w*4]
		for x := 0; x < w*4; x += 4 {
			row[x+0] = in[x+2]
			row[x+1] = in[x+1]
			row[x+2] = in[x+0]
			row[x+3] = in[x+3]
		}
	}
}
