package ggui

// Corner identifies one of the four vertices of a UI quad.
//
// The numeric value is the invocation index within an instance: the GPU
// stage receives it as @builtin(vertex_index), CPU callers pass a loop
// counter in [0, CornerCount).
type Corner int

// Quad corners in emission order. The order is fixed for the lifetime of the
// process and shared by geometry and texture mapping, so vertex i of every
// instance always lands on the same logical corner.
const (
	CornerBottomRight Corner = iota
	CornerBottomLeft
	CornerTopRight
	CornerTopLeft
)

// CornerCount is the number of vertices emitted per instance.
const CornerCount = 4

// cornerOffsets is the unit quad in [-0.5, 0.5]², indexed by Corner.
// Keep in sync with the table in internal/gpu/shaders/ui.wgsl.
var cornerOffsets = [CornerCount]Vec2{
	{X: 0.5, Y: -0.5},
	{X: -0.5, Y: -0.5},
	{X: 0.5, Y: 0.5},
	{X: -0.5, Y: 0.5},
}

// CornerOffset returns the local offset of corner i.
// i must be in [0, CornerCount); other values panic.
func CornerOffset(i Corner) Vec2 {
	return cornerOffsets[i]
}

// Corners returns the four corners in emission order.
func Corners() [CornerCount]Corner {
	return [CornerCount]Corner{CornerBottomRight, CornerBottomLeft, CornerTopRight, CornerTopLeft}
}

// String returns the corner name.
func (c Corner) String() string {
	switch c {
	case CornerBottomRight:
		return "bottom-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerTopRight:
		return "top-right"
	case CornerTopLeft:
		return "top-left"
	default:
		return "unknown"
	}
}

// QuadIndices returns triangle-list indices that turn the four vertices of
// one instance into two triangles. The winding matches the triangle strip
// used by the GPU pipeline: (0,1,2) and (2,1,3).
func QuadIndices() [6]uint16 {
	return [6]uint16{0, 1, 2, 2, 1, 3}
}
