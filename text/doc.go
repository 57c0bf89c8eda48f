// Package text turns strings into glyph quad instances.
//
// An Atlas rasterizes the runes of a golang.org/x/image/font.Face into one
// alpha texture. Laying out a string against the atlas yields a Line whose
// glyphs convert into ggui.Instance values:
//
//	face, err := text.LoadFace(ttf, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	atlas, err := text.NewAtlas(face, text.ASCII)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	line := atlas.Layout("Hello", ggui.V2(-100, 0))
//	instances := line.Instances(nil, color, text.Unbounded)
//
// Glyph instances use ggui.ColorBiasGlyph: the atlas holds coverage in
// alpha, the instance color supplies RGB. Selection and caret quads use
// ggui.ColorBiasSolid so they can share a draw with the glyphs.
//
// Layout is single-line and left-to-right. Shaping, bidi and line wrapping
// are out of scope.
package text
