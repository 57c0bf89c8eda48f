package ggui

// Vec2 is a pair of float32 values, matching a WGSL vec2<f32>.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Mul returns the component-wise product of two vectors.
// Each product is rounded to float32 before it is returned, so a following
// Add is never fused into a multiply-add.
func (v Vec2) Mul(w Vec2) Vec2 {
	return Vec2{X: float32(v.X * w.X), Y: float32(v.Y * w.Y)}
}

// Vec4 is a quadruple of float32 values, matching a WGSL vec4<f32>.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
