package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace parses TrueType/OpenType data and returns a face of the given
// size in pixels.
func LoadFace(data []byte, size float64) (font.Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	return face, nil
}

// fixedToFloat32 converts a 26.6 fixed-point value to float32 pixels.
func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
