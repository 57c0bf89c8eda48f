package ggui

// OutputVertex is the record handed to the next shading stage for one
// (instance, corner) pair.
type OutputVertex struct {
	// ClipPosition has Z fixed at 0 and W fixed at 1, so it equals the
	// normalized device coordinate directly.
	ClipPosition Vec4
	TexCoords    Vec2
	Color        [4]float32
	ColorBias    [4]float32
}

// TransformPosition maps the instance center plus the scaled corner offset
// into clip space.
//
// Screen Y grows downward and clip Y grows upward, hence the sign flip on the
// center. Degenerate dimensions collapse or invert the quad; nothing fails.
func TransformPosition(position, dimensions Vec2, view ViewArgs, corner Vec2) Vec4 {
	inv := view.InverseWindowHalfSize
	center := Vec2{X: float32(position.X * inv.X), Y: float32(-position.Y * inv.Y)}
	final := center.Add(dimensions.Mul(corner).Mul(inv))
	return V4(final.X, final.Y, 0, 1)
}

// MapTexCoords interpolates the texture region with the corner offset shifted
// into [0, 1]. It uses the a*(1-t) + b*t form of WGSL mix so the four corners
// hit the bounds exactly.
func MapTexCoords(bounds TexBounds, corner Vec2) Vec2 {
	t := corner.Add(Vec2{X: 0.5, Y: 0.5})
	return Vec2{
		X: mix(bounds.MinU, bounds.MaxU, t.X),
		Y: mix(bounds.MinV, bounds.MaxV, t.Y),
	}
}

func mix(a, b, t float32) float32 {
	return float32(a*(1-t)) + float32(b*t)
}

// AssembleVertex packs the computed attributes with the instance colors.
func AssembleVertex(clip Vec4, tex Vec2, color, colorBias [4]float32) OutputVertex {
	return OutputVertex{
		ClipPosition: clip,
		TexCoords:    tex,
		Color:        color,
		ColorBias:    colorBias,
	}
}

// TransformVertex evaluates one invocation of the vertex stage.
// It is a pure function: concurrent calls need no synchronization.
func TransformVertex(view ViewArgs, in *Instance, corner Corner) OutputVertex {
	offset := CornerOffset(corner)
	return AssembleVertex(
		TransformPosition(in.Position, in.Dimensions, view, offset),
		MapTexCoords(in.TexCoordsBounds, offset),
		in.Color,
		in.ColorBias,
	)
}

// TransformInstance evaluates all four corners of one instance in emission
// order.
func TransformInstance(view ViewArgs, in *Instance) [CornerCount]OutputVertex {
	var out [CornerCount]OutputVertex
	for i := range CornerCount {
		out[i] = TransformVertex(view, in, Corner(i))
	}
	return out
}

// AppendVertices appends the four vertices of every instance to dst, in
// instance order, and returns the extended slice.
func AppendVertices(dst []OutputVertex, view ViewArgs, instances []Instance) []OutputVertex {
	for i := range instances {
		for c := range CornerCount {
			dst = append(dst, TransformVertex(view, &instances[i], Corner(c)))
		}
	}
	return dst
}
