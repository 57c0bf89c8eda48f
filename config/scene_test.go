package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/text"
	"golang.org/x/image/font/basicfont"
)

const sampleScene = `
viewport: {width: 800, height: 600}
elements:
  - name: panel
    rect: [0, 0, 400, 300]
    color: "#ffffff"
  - name: icon
    rect: [400, 300, 464, 364]
    uv: [0, 0, 0.5, 0.5]
    color: "#ff0000"
    tint: "#ffffff80"
    bias: none
  - name: custom
    rect: [10, 10, 20, 20]
    color: "#000"
    bias: [0.5, 0.5, 0.5, 1]
  - name: clipped
    rect: [-50, 0, 50, 10]
    color: "#000"
    clip: [0, 0, 800, 600]
labels:
  - text: AB
    origin: [400, 300]
    color: "#ffffff"
    selection: [0, 1]
    caret: 2
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Viewport.Width != 800 || s.Viewport.Height != 600 {
		t.Errorf("viewport = %+v", s.Viewport)
	}
	if len(s.Elements) != 4 || len(s.Labels) != 1 {
		t.Fatalf("got %d elements, %d labels", len(s.Elements), len(s.Labels))
	}
	if got := s.Elements[1].Bias.Or(ggui.ColorBiasSolid); got != ggui.ColorBiasNone {
		t.Errorf("icon bias = %v, want none", got)
	}
	if got := s.Elements[2].Bias.Or(ggui.ColorBiasSolid); got != [4]float32{0.5, 0.5, 0.5, 1} {
		t.Errorf("custom bias = %v", got)
	}
	if got := s.Elements[0].Bias.Or(ggui.ColorBiasSolid); got != ggui.ColorBiasSolid {
		t.Errorf("default bias = %v, want solid", got)
	}

	view := s.ViewArgs()
	if view != ggui.NewViewArgs(800, 600) {
		t.Errorf("ViewArgs = %v", view)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "zero viewport",
			yaml:    "viewport: {width: 0, height: 600}",
			wantErr: ErrInvalidViewport,
		},
		{
			name:    "missing viewport",
			yaml:    "elements: []",
			wantErr: ErrInvalidViewport,
		},
		{
			name: "bad color",
			yaml: `
viewport: {width: 10, height: 10}
elements:
  - {name: x, rect: [0, 0, 1, 1], color: "#zz"}`,
			wantErr: ggui.ErrInvalidHexColor,
		},
		{
			name: "bad tint",
			yaml: `
viewport: {width: 10, height: 10}
elements:
  - {name: x, rect: [0, 0, 1, 1], color: "#fff", tint: "nope"}`,
			wantErr: ggui.ErrInvalidHexColor,
		},
		{
			name: "bad bias name",
			yaml: `
viewport: {width: 10, height: 10}
elements:
  - {name: x, rect: [0, 0, 1, 1], color: "#fff", bias: shiny}`,
			wantErr: ErrInvalidBias,
		},
		{
			name: "short bias",
			yaml: `
viewport: {width: 10, height: 10}
elements:
  - {name: x, rect: [0, 0, 1, 1], color: "#fff", bias: [1, 1]}`,
			wantErr: ErrInvalidBias,
		},
		{
			name: "infinite rect",
			yaml: `
viewport: {width: 10, height: 10}
elements:
  - {name: x, rect: [0, 0, .inf, 1], color: "#fff"}`,
			wantErr: ErrNonFinite,
		},
		{
			name: "bad label color",
			yaml: `
viewport: {width: 10, height: 10}
labels:
  - {text: hi, origin: [0, 0], color: "red"}`,
			wantErr: ggui.ErrInvalidHexColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("viewport: {width: 10, height: 10}\nbogus: 1\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(sampleScene), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrNotExist", err)
	}
}

func TestSceneInstances(t *testing.T) {
	s, err := Load(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	quads := s.Instances(nil)
	if len(quads) != 4 {
		t.Fatalf("got %d instances without atlas, want 4", len(quads))
	}

	// The top-left quarter panel is centered at (-200, -150) in instance space.
	panel := quads[0]
	if panel.Position != ggui.V2(-200, -150) || panel.Dimensions != ggui.V2(400, 300) {
		t.Errorf("panel = %v / %v", panel.Position, panel.Dimensions)
	}
	if panel.Color != ggui.White.Linear() {
		t.Errorf("panel color = %v", panel.Color)
	}

	icon := quads[1]
	if icon.TexCoordsBounds != (ggui.TexBounds{MinU: 0, MinV: 0.5, MaxU: 0.5, MaxV: 0}) {
		t.Errorf("icon uv = %v", icon.TexCoordsBounds)
	}
	if icon.Color != ggui.Tint(ggui.Hex("#ff0000"), ggui.Hex("#ffffff80")) {
		t.Errorf("icon color = %v", icon.Color)
	}

	clipped := quads[3].Rect()
	if clipped.MinX != -400 || clipped.MaxX != -350 {
		t.Errorf("clipped rect = %v, want x in [-400, -350]", clipped)
	}
	if quads[3].TexCoordsBounds.MinU != 0.5 {
		t.Errorf("clipped uv = %v, want MinU 0.5", quads[3].TexCoordsBounds)
	}

	atlas, err := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	all := s.Instances(atlas)
	// 4 quads + 1 selection + 2 glyphs + 1 caret.
	if len(all) != 8 {
		t.Fatalf("got %d instances with atlas, want 8", len(all))
	}
	if all[4].ColorBias != ggui.ColorBiasSolid || all[5].ColorBias != ggui.ColorBiasGlyph {
		t.Errorf("label order wrong: biases %v, %v", all[4].ColorBias, all[5].ColorBias)
	}
	if caret := all[7]; caret.Position.X != 14 {
		t.Errorf("caret x = %v, want 14", caret.Position.X)
	}
}

func TestSceneInstancesClippedAway(t *testing.T) {
	s := &Scene{
		Viewport: Viewport{Width: 100, Height: 100},
		Elements: []Element{{
			Name:  "gone",
			Rect:  [4]float32{0, 0, 10, 10},
			Color: "#fff",
			Clip:  &[4]float32{50, 50, 60, 60},
		}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := s.Instances(nil); len(got) != 0 {
		t.Errorf("got %d instances, want 0", len(got))
	}
}

func TestSceneElementUVUpright(t *testing.T) {
	s, err := Load(strings.NewReader(`
viewport: {width: 200, height: 100}
elements:
  - {name: icon, rect: [10, 10, 50, 30], uv: [0.25, 0.5, 0.75, 1], color: "#fff", bias: none}
  - {name: full, rect: [60, 10, 100, 30], color: "#fff", bias: none}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	quads := s.Instances(nil)
	view := s.ViewArgs()

	tests := []struct {
		name        string
		quad        ggui.Instance
		topLeft     ggui.Vec2
		bottomRight ggui.Vec2
	}{
		{"region", quads[0], ggui.V2(0.25, 0.5), ggui.V2(0.75, 1)},
		{"default", quads[1], ggui.V2(0, 0), ggui.V2(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ggui.TransformInstance(view, &tt.quad)
			tl, br := out[ggui.CornerTopLeft], out[ggui.CornerBottomRight]

			// Top-left on screen: smaller clip X, larger clip Y.
			if !(tl.ClipPosition.X < br.ClipPosition.X && tl.ClipPosition.Y > br.ClipPosition.Y) {
				t.Fatalf("corner positions tl=%v br=%v", tl.ClipPosition, br.ClipPosition)
			}
			if tl.TexCoords != tt.topLeft {
				t.Errorf("top-left samples %v, want image point %v", tl.TexCoords, tt.topLeft)
			}
			if br.TexCoords != tt.bottomRight {
				t.Errorf("bottom-right samples %v, want image point %v", br.TexCoords, tt.bottomRight)
			}
		})
	}
}
