package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrNilFace is returned when an atlas is built without a face.
	ErrNilFace = errors.New("text: face is nil")

	// ErrAtlasTooSmall is returned when a glyph is wider than the atlas.
	ErrAtlasTooSmall = errors.New("text: glyph does not fit atlas width")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")
)
