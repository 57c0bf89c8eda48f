// Package color converts UI colors between sRGB and linear space.
//
// Colors are authored in sRGB while instance buffers carry linear values so
// that the fragment stage blends in linear space.
package color

// ColorF32 represents a color with float32 components in [0,1].
// RGB components are in the color space indicated by context.
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}
