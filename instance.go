package ggui

// ViewArgs is the per-frame view uniform shared by every invocation of a draw.
//
// InverseWindowHalfSize converts pixel offsets into normalized device
// coordinate offsets. Zero or negative values are not rejected; they produce
// infinite or mirrored output.
type ViewArgs struct {
	InverseWindowHalfSize Vec2
}

// NewViewArgs returns the view uniform for a viewport of the given size in
// pixels: (1/(width/2), 1/(height/2)).
func NewViewArgs(width, height float32) ViewArgs {
	return ViewArgs{
		InverseWindowHalfSize: Vec2{X: 2 / width, Y: 2 / height},
	}
}

// TexBounds is a rectangle in normalized texture space, as sampled by the
// quad corners: the bottom corners read MinV and the top corners MaxV.
// Texture row 0 is the top image row, so a region given in image space
// (top row first) has to go through ImageTexBounds to draw upright.
// MinU > MaxU (or MinV > MaxV) mirrors the texture along that axis.
type TexBounds struct {
	MinU, MinV, MaxU, MaxV float32
}

// FullTexBounds covers the whole texture in sampling order, which shows an
// image upside down. Use ImageFullTexBounds to draw an image upright.
var FullTexBounds = TexBounds{MinU: 0, MinV: 0, MaxU: 1, MaxV: 1}

// ImageFullTexBounds covers the whole texture with the image upright.
var ImageFullTexBounds = ImageTexBounds(0, 0, 1, 1)

// ImageTexBounds converts an image-space region (left, top, right, bottom in
// normalized coordinates, V growing downward) into corner-sampled bounds, so
// the top-left of the region lands on the top-left corner of the quad.
func ImageTexBounds(left, top, right, bottom float32) TexBounds {
	return TexBounds{MinU: left, MinV: top, MaxU: right, MaxV: bottom}.FlipV()
}

// FlipV returns the bounds mirrored vertically.
func (b TexBounds) FlipV() TexBounds {
	b.MinV, b.MaxV = b.MaxV, b.MinV
	return b
}

// Color bias presets. The fragment stage computes
// color * clamp(texel + bias, 0, 1).
var (
	// ColorBiasNone samples the texture as is.
	ColorBiasNone = [4]float32{0, 0, 0, 0}

	// ColorBiasGlyph lifts RGB to 1 so alpha-only glyph atlases are tinted
	// by Color while keeping coverage in alpha.
	ColorBiasGlyph = [4]float32{1, 1, 1, 0}

	// ColorBiasSolid ignores the texture entirely: the quad is filled with Color.
	ColorBiasSolid = [4]float32{1, 1, 1, 1}
)

// Instance describes one UI element being drawn this frame.
//
// Position is the element center in screen pixels with the origin at the
// viewport center and Y growing downward. Dimensions is the element size in
// pixels. Color and ColorBias are passed through to the fragment stage
// unmodified.
type Instance struct {
	Position        Vec2
	Dimensions      Vec2
	TexCoordsBounds TexBounds
	Color           [4]float32
	ColorBias       [4]float32
}

// Rect is an axis-aligned rectangle in screen pixels, Y growing downward.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// InstanceFromRect builds an instance covering r, sampling uv and tinted
// with color.
func InstanceFromRect(r Rect, uv TexBounds, color, bias [4]float32) Instance {
	return Instance{
		Position:        Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2},
		Dimensions:      Vec2{X: r.Width(), Y: r.Height()},
		TexCoordsBounds: uv,
		Color:           color,
		ColorBias:       bias,
	}
}

// Rect returns the pixel rectangle covered by the instance.
func (in Instance) Rect() Rect {
	hw, hh := in.Dimensions.X/2, in.Dimensions.Y/2
	return Rect{
		MinX: in.Position.X - hw,
		MinY: in.Position.Y - hh,
		MaxX: in.Position.X + hw,
		MaxY: in.Position.Y + hh,
	}
}

// ClipInstance clips quad r with texture region uv against bounds.
//
// Every clipped edge moves the matching texture edge by the same fraction of
// the quad, so the visible part of the texture does not stretch. ok is false
// when nothing of r remains inside bounds.
func ClipInstance(r Rect, uv TexBounds, bounds Rect) (Rect, TexBounds, bool) {
	if r.Empty() || r.MaxX <= bounds.MinX || r.MinX >= bounds.MaxX ||
		r.MaxY <= bounds.MinY || r.MinY >= bounds.MaxY {
		return Rect{}, TexBounds{}, false
	}
	if r.MaxX > bounds.MaxX {
		old := r.Width()
		r.MaxX = bounds.MaxX
		uv.MaxU = uv.MinU + (uv.MaxU-uv.MinU)*r.Width()/old
	}
	if r.MinX < bounds.MinX {
		old := r.Width()
		r.MinX = bounds.MinX
		uv.MinU = uv.MaxU - (uv.MaxU-uv.MinU)*r.Width()/old
	}
	// Pixel Y grows downward while the bottom corners sample MinV, so the
	// bottom edge pairs with MinV and the top edge with MaxV.
	if r.MaxY > bounds.MaxY {
		old := r.Height()
		r.MaxY = bounds.MaxY
		uv.MinV = uv.MaxV - (uv.MaxV-uv.MinV)*r.Height()/old
	}
	if r.MinY < bounds.MinY {
		old := r.Height()
		r.MinY = bounds.MinY
		uv.MaxV = uv.MinV + (uv.MaxV-uv.MinV)*r.Height()/old
	}
	if r.Empty() {
		return Rect{}, TexBounds{}, false
	}
	return r, uv, true
}
