//go:build !nogpu

// Package gpu implements the instanced UI quad pipeline on wgpu/hal.
//
// This is an internal package; the public entry point is ggui/gpu.
//
// # Architecture Overview
//
//	[]ggui.Instance -> instance buffer (64 B/instance) ---+
//	ggui.ViewArgs   -> uniform buffer (group 0)  ---------+--> vs_main --> fs_main / fs_solid
//	caller texture  -> bind group (group 1, optional) ----+
//
// Key components:
//
//   - UIPipeline: shader module, bind group layouts and the textured and
//     solid render pipeline variants
//   - UISession: per-frame buffers, render pass encoding, submission and
//     readback into an *image.RGBA or rendering into a surface view
//   - shaders/ui.wgsl: the vertex stage, equal to ggui.TransformVertex
//
// Each instance is drawn as a four-vertex triangle strip. The vertex buffer
// steps per instance and the shader indexes its corner table with
// vertex_index, so no per-vertex data or index buffer is uploaded.
//
// The WGSL source can also be compiled to SPIR-V through naga
// (CompileUIShader) for backends that consume SPIR-V.
//
// Build with -tags nogpu to exclude this package.
package gpu
