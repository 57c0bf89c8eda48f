package ggui

import (
	"errors"
	"fmt"
	"image/color"

	icolor "github.com/gogpu/ggui/internal/color"
)

// ErrInvalidHexColor is returned by ParseHex for malformed input.
var ErrInvalidHexColor = errors.New("ggui: invalid hex color")

// RGBA is a straight-alpha color in sRGB space with components in [0, 1].
// UI authors pick colors in sRGB; instances carry linear values, so convert
// with Linear or Tint before storing a color in an Instance.
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque color from sRGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// FromColor converts a standard color.Color to RGBA, undoing the
// premultiplication that color.Color.RGBA applies.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// Hex creates a color from a hex string, returning opaque black for
// malformed input. Supports "RGB", "RGBA", "RRGGBB", "RRGGBBAA" with an
// optional leading '#'.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return RGBA{A: 1}
	}
	return c
}

// ParseHex is like Hex but reports malformed input.
func ParseHex(hex string) (RGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b, a uint32
	a = 255
	ok := true
	switch len(s) {
	case 3, 4:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		if ok && len(s) == 4 {
			ok = parseHex(s[3:4], &a)
			a *= 17
		}
		r, g, b = r*17, g*17, b*17
	case 6, 8:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
		if ok && len(s) == 8 {
			ok = parseHex(s[6:8], &a)
		}
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, hex)
	}

	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}, nil
}

// parseHex accumulates hex digits of s into val.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Linear converts the color to linear RGBA as stored in Instance.Color.
// Alpha is copied unchanged.
func (c RGBA) Linear() [4]float32 {
	l := icolor.SRGBToLinearColor(icolor.ColorF32{R: c.R, G: c.G, B: c.B, A: c.A})
	return [4]float32{l.R, l.G, l.B, l.A}
}

// Tint multiplies c by tint in sRGB space and returns the linear result.
func Tint(c, tint RGBA) [4]float32 {
	return RGBA{
		R: c.R * tint.R,
		G: c.G * tint.G,
		B: c.B * tint.B,
		A: c.A * tint.A,
	}.Linear()
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
