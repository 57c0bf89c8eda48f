package main

import (
	"image"
	"image/color"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/config"
	icolor "github.com/gogpu/ggui/internal/color"
	"github.com/gogpu/ggui/text"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxQuadsPerDraw keeps vertex indices inside uint16.
const maxQuadsPerDraw = 0xFFFF / ggui.CornerCount

var background = color.RGBA{R: 0x18, G: 0x1c, B: 0x22, A: 0xff}

// source selects the texture a quad samples. The GPU fragment stage computes
// color * clamp(texel + bias, 0, 1); the preview picks a pre-biased image
// instead.
type source int

const (
	sourceSolid   source = iota // bias lifts every channel: plain color
	sourceGlyph                 // bias lifts RGB: atlas coverage in alpha
	sourceTexture               // no bias: sample the element texture
	sourceCount
)

func sourceFor(bias [4]float32) source {
	switch {
	case bias[0] >= 1 && bias[1] >= 1 && bias[2] >= 1 && bias[3] >= 1:
		return sourceSolid
	case bias[0] >= 1 && bias[1] >= 1 && bias[2] >= 1:
		return sourceGlyph
	default:
		return sourceTexture
	}
}

type batch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

type game struct {
	path  string
	scene *config.Scene
	atlas *text.Atlas
	tr    *ggui.Transformer

	images  [sourceCount]*ebiten.Image
	batches [sourceCount][]batch

	out []ggui.OutputVertex
}

func newGame(path string, atlas *text.Atlas) (*game, error) {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	g := &game{
		path:  path,
		atlas: atlas,
		tr:    ggui.NewTransformer(),
		images: [sourceCount]*ebiten.Image{
			sourceSolid:   white,
			sourceGlyph:   ebiten.NewImageFromImage(coverageImage(atlas.Image())),
			sourceTexture: ebiten.NewImageFromImage(checkerImage(64, 8)),
		},
	}
	if err := g.reload(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// reload reads the scene file and rebuilds the vertex batches.
func (g *game) reload() error {
	scene, err := config.LoadFile(g.path)
	if err != nil {
		return err
	}
	g.scene = scene

	instances := scene.Instances(g.atlas)
	g.out = g.tr.Transform(g.out, scene.ViewArgs(), instances)

	for s := range g.batches {
		g.batches[s] = g.batches[s][:0]
	}
	w, h := scene.Viewport.Width, scene.Viewport.Height
	quad := ggui.QuadIndices()
	for i := range instances {
		s := sourceFor(instances[i].ColorBias)
		bs := g.batches[s]
		if len(bs) == 0 || len(bs[len(bs)-1].vertices) >= maxQuadsPerDraw*ggui.CornerCount {
			bs = append(bs, batch{})
		}
		b := &bs[len(bs)-1]

		sw, sh := g.images[s].Bounds().Dx(), g.images[s].Bounds().Dy()
		base := uint16(len(b.vertices)) //nolint:gosec // bounded by maxQuadsPerDraw
		for _, v := range g.out[i*ggui.CornerCount : (i+1)*ggui.CornerCount] {
			b.vertices = append(b.vertices, toEbitenVertex(v, w, h, float32(sw), float32(sh)))
		}
		for _, idx := range quad {
			b.indices = append(b.indices, base+idx)
		}
		g.batches[s] = bs
	}

	ggui.Logger().Info("scene loaded", "path", g.path, "instances", len(instances))
	return nil
}

// toEbitenVertex maps a clip-space vertex back to window pixels and its
// texture coordinates to source pixels. Colors go back to sRGB since ebiten
// blends in display space.
func toEbitenVertex(v ggui.OutputVertex, w, h, srcW, srcH float32) ebiten.Vertex {
	c := icolor.LinearToSRGBColor(icolor.ColorF32{R: v.Color[0], G: v.Color[1], B: v.Color[2], A: v.Color[3]})
	p := v.ClipPosition.XY()
	return ebiten.Vertex{
		DstX:   (p.X + 1) / 2 * w,
		DstY:   (1 - p.Y) / 2 * h,
		SrcX:   v.TexCoords.X * srcW,
		SrcY:   v.TexCoords.Y * srcH,
		ColorR: c.R,
		ColorG: c.G,
		ColorB: c.B,
		ColorA: c.A,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			ggui.Logger().Warn("reload failed", "err", err)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for s, bs := range g.batches {
		for _, b := range bs {
			screen.DrawTriangles(b.vertices, b.indices, g.images[s], &ebiten.DrawTrianglesOptions{
				Filter: ebiten.FilterLinear,
			})
		}
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return int(g.scene.Viewport.Width), int(g.scene.Viewport.Height)
}

func (g *game) Close() {
	g.tr.Close()
}

// coverageImage turns an alpha atlas into white texels carrying the coverage
// in alpha, which is what a glyph bias of (1, 1, 1, 0) produces on the GPU.
func coverageImage(a *image.Alpha) *image.NRGBA {
	img := image.NewNRGBA(a.Rect)
	for i, cov := range a.Pix {
		img.Pix[4*i+0] = 0xff
		img.Pix[4*i+1] = 0xff
		img.Pix[4*i+2] = 0xff
		img.Pix[4*i+3] = cov
	}
	return img
}

// checkerImage is the stand-in texture for untinted elements.
func checkerImage(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
