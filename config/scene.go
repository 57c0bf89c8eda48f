// Package config loads UI scenes from YAML.
//
// A scene is a viewport plus a list of quads and text labels in
// top-left-origin pixel coordinates:
//
//	viewport: {width: 800, height: 600}
//	elements:
//	  - name: panel
//	    rect: [20, 20, 300, 200]
//	    color: "#202830"
//	  - name: icon
//	    rect: [40, 40, 104, 104]
//	    uv: [0, 0, 0.5, 0.5]
//	    color: "#ffffff"
//	    bias: none
//	labels:
//	  - text: Hello
//	    origin: [40, 140]
//	    color: "#e0e0e0"
//	    selection: [1, 3]
//
// Scene.Instances converts the scene into ggui instances whose positions
// are relative to the viewport center, as the transform expects.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/text"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrInvalidViewport = errors.New("config: viewport must have positive width and height")
	ErrNonFinite       = errors.New("config: non-finite coordinate")
	ErrInvalidBias     = errors.New("config: invalid color bias")
)

// Scene is the root of a scene file.
type Scene struct {
	Viewport Viewport  `yaml:"viewport"`
	Elements []Element `yaml:"elements"`
	Labels   []Label   `yaml:"labels"`
}

// Viewport is the window size in pixels.
type Viewport struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Element is one textured or solid quad.
type Element struct {
	Name string `yaml:"name"`

	// Rect is [minX, minY, maxX, maxY] in pixels, Y down.
	Rect [4]float32 `yaml:"rect"`

	// UV is [left, top, right, bottom] in normalized image coordinates,
	// V down like Rect; defaults to the whole texture.
	UV *[4]float32 `yaml:"uv,omitempty"`

	// Color is an sRGB hex color; Tint multiplies it.
	Color string `yaml:"color"`
	Tint  string `yaml:"tint,omitempty"`

	// Bias defaults to solid.
	Bias Bias `yaml:"bias,omitempty"`

	// Clip optionally limits the quad to [minX, minY, maxX, maxY].
	Clip *[4]float32 `yaml:"clip,omitempty"`
}

// Label is one line of text drawn from the glyph atlas.
type Label struct {
	Text string `yaml:"text"`

	// Origin is the pen start on the baseline, in pixels.
	Origin [2]float32 `yaml:"origin"`

	Color string `yaml:"color"`

	// Selection highlights glyphs [start, end).
	Selection      *[2]int `yaml:"selection,omitempty"`
	SelectionColor string  `yaml:"selection_color,omitempty"`

	// Caret draws an insertion bar before the given glyph index.
	Caret *int `yaml:"caret,omitempty"`

	Clip *[4]float32 `yaml:"clip,omitempty"`
}

// defaultSelectionColor is used when a label selects text without a color.
const defaultSelectionColor = "#3366cc80"

// Bias is a color bias, written as "none", "glyph", "solid" or a list of
// four numbers.
type Bias struct {
	Value [4]float32
	set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler for Bias.
func (b *Bias) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		switch s {
		case "none":
			b.Value = ggui.ColorBiasNone
		case "glyph":
			b.Value = ggui.ColorBiasGlyph
		case "solid":
			b.Value = ggui.ColorBiasSolid
		default:
			return fmt.Errorf("%w: %q at line %d", ErrInvalidBias, s, value.Line)
		}
	case yaml.SequenceNode:
		var v []float32
		if err := value.Decode(&v); err != nil {
			return err
		}
		if len(v) != 4 {
			return fmt.Errorf("%w: want 4 components, got %d at line %d", ErrInvalidBias, len(v), value.Line)
		}
		copy(b.Value[:], v)
	default:
		return fmt.Errorf("%w: line %d", ErrInvalidBias, value.Line)
	}
	b.set = true
	return nil
}

// Or returns the bias value, or def when the bias was not written.
func (b Bias) Or(def [4]float32) [4]float32 {
	if !b.set {
		return def
	}
	return b.Value
}

// Load decodes and validates a scene. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads a scene from a YAML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the viewport, coordinates and colors.
func (s *Scene) Validate() error {
	if !(s.Viewport.Width > 0) || !(s.Viewport.Height > 0) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidViewport, s.Viewport.Width, s.Viewport.Height)
	}
	for i := range s.Elements {
		e := &s.Elements[i]
		if err := e.validate(); err != nil {
			return fmt.Errorf("config: element %d (%s): %w", i, e.Name, err)
		}
	}
	for i := range s.Labels {
		if err := s.Labels[i].validate(); err != nil {
			return fmt.Errorf("config: label %d: %w", i, err)
		}
	}
	return nil
}

func (e *Element) validate() error {
	if err := finite(e.Rect[:]...); err != nil {
		return err
	}
	if e.UV != nil {
		if err := finite(e.UV[:]...); err != nil {
			return err
		}
	}
	if e.Clip != nil {
		if err := finite(e.Clip[:]...); err != nil {
			return err
		}
	}
	if _, err := ggui.ParseHex(e.Color); err != nil {
		return err
	}
	if e.Tint != "" {
		if _, err := ggui.ParseHex(e.Tint); err != nil {
			return err
		}
	}
	return nil
}

func (l *Label) validate() error {
	if err := finite(l.Origin[:]...); err != nil {
		return err
	}
	if l.Clip != nil {
		if err := finite(l.Clip[:]...); err != nil {
			return err
		}
	}
	if _, err := ggui.ParseHex(l.Color); err != nil {
		return err
	}
	if l.SelectionColor != "" {
		if _, err := ggui.ParseHex(l.SelectionColor); err != nil {
			return err
		}
	}
	return nil
}

func finite(vs ...float32) error {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, v)
		}
	}
	return nil
}

// ViewArgs returns the view uniform of the scene viewport.
func (s *Scene) ViewArgs() ggui.ViewArgs {
	return ggui.NewViewArgs(s.Viewport.Width, s.Viewport.Height)
}

// toCenter converts a top-left-origin pixel rectangle into instance space.
func (s *Scene) toCenter(r [4]float32) ggui.Rect {
	hw, hh := s.Viewport.Width/2, s.Viewport.Height/2
	return ggui.Rect{MinX: r[0] - hw, MinY: r[1] - hh, MaxX: r[2] - hw, MaxY: r[3] - hh}
}

// Instances converts the scene into instances in draw order: elements, then
// per label its selection, glyphs and caret. Labels are skipped when atlas
// is nil. The scene must have passed Validate.
func (s *Scene) Instances(atlas *text.Atlas) []ggui.Instance {
	out := make([]ggui.Instance, 0, len(s.Elements))
	for i := range s.Elements {
		e := &s.Elements[i]

		uv := ggui.ImageFullTexBounds
		if e.UV != nil {
			uv = ggui.ImageTexBounds(e.UV[0], e.UV[1], e.UV[2], e.UV[3])
		}
		color := ggui.Tint(ggui.Hex(e.Color), tintOrWhite(e.Tint))
		r := s.toCenter(e.Rect)
		if e.Clip != nil {
			var ok bool
			r, uv, ok = ggui.ClipInstance(r, uv, s.toCenter(*e.Clip))
			if !ok {
				continue
			}
		}
		out = append(out, ggui.InstanceFromRect(r, uv, color, e.Bias.Or(ggui.ColorBiasSolid)))
	}

	if atlas == nil {
		return out
	}
	hw, hh := s.Viewport.Width/2, s.Viewport.Height/2
	for i := range s.Labels {
		l := &s.Labels[i]
		line := atlas.Layout(l.Text, ggui.V2(l.Origin[0]-hw, l.Origin[1]-hh))
		color := ggui.Hex(l.Color).Linear()

		if l.Selection != nil {
			selColor := l.SelectionColor
			if selColor == "" {
				selColor = defaultSelectionColor
			}
			out = line.SelectionInstances(out, l.Selection[0], l.Selection[1], ggui.Hex(selColor).Linear())
		}
		bounds := text.Unbounded
		if l.Clip != nil {
			bounds = s.toCenter(*l.Clip)
		}
		out = line.Instances(out, color, bounds)
		if l.Caret != nil {
			out = append(out, line.CaretInstance(*l.Caret, 1, color))
		}
	}
	return out
}

func tintOrWhite(hex string) ggui.RGBA {
	if hex == "" {
		return ggui.White
	}
	return ggui.Hex(hex)
}
