// Package ggui implements the vertex stage of an instanced 2D UI renderer.
//
// # Overview
//
// Every UI element is one Instance: a center and size in screen pixels, a
// texture region, a tint color and a color bias. The vertex stage expands an
// instance into the four corners of a quad in clip space, together with the
// texture coordinate of each corner and the two colors passed through
// unchanged.
//
// # Quick Start
//
//	view := ggui.NewViewArgs(800, 600)
//	button := ggui.Instance{
//	    Position:        ggui.V2(100, 50),
//	    Dimensions:      ggui.V2(40, 20),
//	    TexCoordsBounds: ggui.ImageFullTexBounds,
//	    Color:           ggui.Hex("#3478f6").Linear(),
//	    ColorBias:       ggui.ColorBiasNone,
//	}
//	quad := ggui.TransformInstance(view, &button)
//
// For whole frames use a Transformer, which spreads the invocations over a
// worker pool. The same algorithm runs on the GPU as the WGSL shader in
// package gpu.
//
// # Coordinate System
//
// Input positions are pixels relative to the viewport center with Y growing
// down. Output positions are clip space with Y growing up, Z = 0 and W = 1,
// so they are normalized device coordinates directly.
//
// # Corner Order
//
// The four vertices of an instance are always emitted as bottom-right,
// bottom-left, top-right, top-left. Both the geometry and the texture mapping
// use this order, so a triangle strip over the four vertices covers the quad
// with correctly oriented texture coordinates.
package ggui

// Version is the current version of the library.
const Version = "0.1.0"
