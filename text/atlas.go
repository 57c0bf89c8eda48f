package text

import (
	"fmt"
	"image"

	"github.com/gogpu/ggui"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ASCII is the printable ASCII range, a common atlas rune set.
const ASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

const (
	defaultAtlasWidth = 512
	defaultPadding    = 1
)

// AtlasOption configures NewAtlas.
type AtlasOption func(*atlasOptions)

type atlasOptions struct {
	width   int
	padding int
}

// WithAtlasWidth sets the atlas texture width in pixels. The height grows to
// fit the glyphs.
func WithAtlasWidth(w int) AtlasOption {
	return func(o *atlasOptions) {
		if w > 0 {
			o.width = w
		}
	}
}

// WithPadding sets the empty border kept around every glyph, which stops
// linear filtering from bleeding neighbours into a quad.
func WithPadding(p int) AtlasOption {
	return func(o *atlasOptions) {
		if p >= 0 {
			o.padding = p
		}
	}
}

// atlasGlyph is the placement of one rune.
type atlasGlyph struct {
	src     image.Rectangle // pixels inside the atlas image
	bounds  image.Rectangle // pixels relative to the dot, Y down
	advance fixed.Int26_6
}

// Atlas is an alpha texture holding the rasterized glyphs of one face.
// It is immutable after NewAtlas and safe for concurrent Layout calls.
type Atlas struct {
	face    font.Face
	img     *image.Alpha
	glyphs  map[rune]atlasGlyph
	metrics font.Metrics
}

// NewAtlas rasterizes every distinct rune of runes with face and packs the
// masks into rows of a single alpha image. Runes the face cannot render are
// skipped.
func NewAtlas(face font.Face, runes string, opts ...AtlasOption) (*Atlas, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	o := atlasOptions{width: defaultAtlasWidth, padding: defaultPadding}
	for _, opt := range opts {
		opt(&o)
	}

	type pending struct {
		r    rune
		mask *image.Alpha
		g    atlasGlyph
	}
	var ps []pending
	seen := make(map[rune]bool)
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true

		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		p := pending{r: r, g: atlasGlyph{bounds: dr, advance: advance}}
		if !dr.Empty() {
			// Faces may reuse the mask buffer between Glyph calls.
			m := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(m, m.Bounds(), mask, maskp, draw.Src)
			p.mask = m
		}
		ps = append(ps, p)
	}

	// Shelf packing in insertion order.
	x, y, rowH := o.padding, o.padding, 0
	for i := range ps {
		if ps[i].mask == nil {
			continue
		}
		w, h := ps[i].g.bounds.Dx(), ps[i].g.bounds.Dy()
		if w+2*o.padding > o.width {
			return nil, fmt.Errorf("%w: %q is %dpx wide, atlas is %dpx", ErrAtlasTooSmall, ps[i].r, w, o.width)
		}
		if x+w+o.padding > o.width {
			x = o.padding
			y += rowH + o.padding
			rowH = 0
		}
		ps[i].g.src = image.Rect(x, y, x+w, y+h)
		x += w + o.padding
		rowH = max(rowH, h)
	}

	img := image.NewAlpha(image.Rect(0, 0, o.width, y+rowH+o.padding))
	glyphs := make(map[rune]atlasGlyph, len(ps))
	for _, p := range ps {
		if p.mask != nil {
			draw.Draw(img, p.g.src, p.mask, image.Point{}, draw.Src)
		}
		glyphs[p.r] = p.g
	}

	ggui.Logger().Debug("glyph atlas built",
		"glyphs", len(glyphs), "width", img.Rect.Dx(), "height", img.Rect.Dy())

	return &Atlas{
		face:    face,
		img:     img,
		glyphs:  glyphs,
		metrics: face.Metrics(),
	}, nil
}

// Image returns the atlas texture. Upload it as a single-channel or
// alpha-only texture; RGB is supplied by the glyph color bias.
func (a *Atlas) Image() *image.Alpha {
	return a.img
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (width, height int) {
	return a.img.Rect.Dx(), a.img.Rect.Dy()
}

// Len returns the number of runes in the atlas.
func (a *Atlas) Len() int {
	return len(a.glyphs)
}

// texBounds converts an atlas pixel rectangle into instance texture bounds.
// Atlas rows grow downward while the bottom quad corners sample MinV, so V
// is flipped.
func (a *Atlas) texBounds(src image.Rectangle) ggui.TexBounds {
	w, h := float32(a.img.Rect.Dx()), float32(a.img.Rect.Dy())
	return ggui.ImageTexBounds(
		float32(src.Min.X)/w,
		float32(src.Min.Y)/h,
		float32(src.Max.X)/w,
		float32(src.Max.Y)/h,
	)
}
