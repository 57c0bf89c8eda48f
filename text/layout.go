package text

import (
	"math"

	"github.com/gogpu/ggui"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Unbounded is a clip rectangle that keeps every glyph.
var Unbounded = ggui.Rect{
	MinX: float32(math.Inf(-1)),
	MinY: float32(math.Inf(-1)),
	MaxX: float32(math.Inf(1)),
	MaxY: float32(math.Inf(1)),
}

// Glyph is one positioned rune of a Line.
type Glyph struct {
	Rune rune

	// Dot is the pen position on the baseline before this glyph.
	Dot ggui.Vec2

	// Advance is the horizontal pen movement of this glyph, kerning with
	// the previous rune included in Dot.
	Advance float32

	// Rect is the pixel rectangle of the glyph image. Empty for runes with
	// no ink (spaces) and runes missing from the atlas.
	Rect ggui.Rect

	// UV is the atlas region of the glyph image.
	UV ggui.TexBounds
}

// Line is a laid out single line of text. Coordinates are instance pixels:
// origin at the viewport center, Y growing downward.
type Line struct {
	Glyphs []Glyph

	// Origin is the pen start on the baseline.
	Origin ggui.Vec2

	// Width is the total advance of the line.
	Width float32

	// Ascent and Descent are the face metrics, both positive.
	Ascent, Descent float32
}

// Layout places s on a single baseline starting at origin. s is composed
// to NFC first so a base letter followed by a combining mark maps to the
// precomposed atlas glyph. Runes missing from the atlas still advance the
// pen when the face knows them; unknown runes are dropped.
func (a *Atlas) Layout(s string, origin ggui.Vec2) *Line {
	s = norm.NFC.String(s)

	line := &Line{
		Origin:  origin,
		Ascent:  fixedToFloat32(a.metrics.Ascent),
		Descent: fixedToFloat32(a.metrics.Descent),
	}

	var dot fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot += a.face.Kern(prev, r)
		}

		g := Glyph{Rune: r}
		// Glyph masks were rasterized at a whole-pixel dot.
		px := float32(dot.Round())
		g.Dot = ggui.Vec2{X: origin.X + px, Y: origin.Y}

		if ag, ok := a.glyphs[r]; ok {
			g.Advance = fixedToFloat32(ag.advance)
			if !ag.src.Empty() {
				g.Rect = ggui.Rect{
					MinX: g.Dot.X + float32(ag.bounds.Min.X),
					MinY: origin.Y + float32(ag.bounds.Min.Y),
					MaxX: g.Dot.X + float32(ag.bounds.Max.X),
					MaxY: origin.Y + float32(ag.bounds.Max.Y),
				}
				g.UV = a.texBounds(ag.src)
			}
			dot += ag.advance
		} else if adv, ok := a.face.GlyphAdvance(r); ok {
			g.Advance = fixedToFloat32(adv)
			dot += adv
		} else {
			continue
		}

		line.Glyphs = append(line.Glyphs, g)
		prev = r
	}
	line.Width = fixedToFloat32(dot)
	return line
}

// Measure returns the advance width of s without building glyphs.
func Measure(face font.Face, s string) float32 {
	return fixedToFloat32(font.MeasureString(face, s))
}

// Instances appends one glyph instance per inked glyph to dst. Glyphs are
// clipped to bounds with their atlas region rescaled; glyphs entirely
// outside bounds are dropped.
func (l *Line) Instances(dst []ggui.Instance, color [4]float32, bounds ggui.Rect) []ggui.Instance {
	for i := range l.Glyphs {
		g := &l.Glyphs[i]
		if g.Rect.Empty() {
			continue
		}
		r, uv, ok := ggui.ClipInstance(g.Rect, g.UV, bounds)
		if !ok {
			continue
		}
		dst = append(dst, ggui.InstanceFromRect(r, uv, color, ggui.ColorBiasGlyph))
	}
	return dst
}

// lineBand returns the vertical center and height of the line box.
func (l *Line) lineBand() (centerY, height float32) {
	return l.Origin.Y + (l.Descent-l.Ascent)/2, l.Ascent + l.Descent
}

// SelectionInstances appends highlight quads behind glyphs [start, end) to
// dst: one advance-wide, line-high quad per glyph. The range is clamped to
// the line.
func (l *Line) SelectionInstances(dst []ggui.Instance, start, end int, color [4]float32) []ggui.Instance {
	start = max(start, 0)
	end = min(end, len(l.Glyphs))
	cy, h := l.lineBand()
	for i := start; i < end; i++ {
		g := &l.Glyphs[i]
		dst = append(dst, ggui.Instance{
			Position:        ggui.Vec2{X: g.Dot.X + g.Advance/2, Y: cy},
			Dimensions:      ggui.Vec2{X: g.Advance, Y: h},
			TexCoordsBounds: ggui.FullTexBounds,
			Color:           color,
			ColorBias:       ggui.ColorBiasSolid,
		})
	}
	return dst
}

// CaretX returns the pen X before glyph index, or the line end when index
// is past the last glyph.
func (l *Line) CaretX(index int) float32 {
	switch {
	case len(l.Glyphs) == 0:
		return l.Origin.X
	case index <= 0:
		return l.Glyphs[0].Dot.X
	case index >= len(l.Glyphs):
		last := l.Glyphs[len(l.Glyphs)-1]
		return last.Dot.X + last.Advance
	default:
		return l.Glyphs[index].Dot.X
	}
}

// CaretInstance returns a line-high bar of the given width at the caret
// position before glyph index.
func (l *Line) CaretInstance(index int, width float32, color [4]float32) ggui.Instance {
	cy, h := l.lineBand()
	return ggui.Instance{
		Position:        ggui.Vec2{X: l.CaretX(index), Y: cy},
		Dimensions:      ggui.Vec2{X: width, Y: h},
		TexCoordsBounds: ggui.FullTexBounds,
		Color:           color,
		ColorBias:       ggui.ColorBiasSolid,
	}
}
