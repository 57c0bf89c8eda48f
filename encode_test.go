package ggui

import (
	"encoding/binary"
	"math"
	"testing"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestAppendInstancesLayout(t *testing.T) {
	in := Instance{
		Position:        V2(1, 2),
		Dimensions:      V2(3, 4),
		TexCoordsBounds: TexBounds{5, 6, 7, 8},
		Color:           [4]float32{9, 10, 11, 12},
		ColorBias:       [4]float32{13, 14, 15, 16},
	}

	prefix := []byte{0xAA, 0xBB}
	buf := AppendInstances(prefix, []Instance{in, in})
	if len(buf) != len(prefix)+2*InstanceStride {
		t.Fatalf("len = %d, want %d", len(buf), len(prefix)+2*InstanceStride)
	}
	if buf[0] != 0xAA || buf[1] != 0xBB {
		t.Error("prefix bytes overwritten")
	}

	rec := buf[len(prefix)+InstanceStride:]
	for i := range 16 {
		if got := f32At(rec, i*4); got != float32(i+1) {
			t.Errorf("float %d = %v, want %v", i, got, i+1)
		}
	}

	offsets := []struct {
		name string
		off  int
		want float32
	}{
		{"position", OffsetPosition, 1},
		{"dimensions", OffsetDimensions, 3},
		{"tex_coords_bounds", OffsetTexCoordsBounds, 5},
		{"color", OffsetColor, 9},
		{"color_bias", OffsetColorBias, 13},
	}
	for _, o := range offsets {
		if got := f32At(rec, o.off); got != o.want {
			t.Errorf("%s at offset %d = %v, want %v", o.name, o.off, got, o.want)
		}
	}
}

func TestDecodeInstance(t *testing.T) {
	for _, in := range testInstances() {
		buf := AppendInstances(nil, []Instance{in})
		if got := DecodeInstance(buf); got != in {
			t.Errorf("DecodeInstance = %+v, want %+v", got, in)
		}
	}
}

func TestAppendOutputVertices(t *testing.T) {
	v := OutputVertex{
		ClipPosition: V4(0.3, -0.2, 0, 1),
		TexCoords:    V2(1, 0),
		Color:        [4]float32{0.1, 0.2, 0.3, 0.4},
		ColorBias:    ColorBiasGlyph,
	}
	buf := AppendOutputVertices(nil, []OutputVertex{v, v, v})
	if len(buf) != 3*OutputVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 3*OutputVertexStride)
	}
	want := []float32{0.3, -0.2, 0, 1, 1, 0, 0.1, 0.2, 0.3, 0.4, 1, 1, 1, 0}
	rec := buf[2*OutputVertexStride:]
	for i, w := range want {
		if got := f32At(rec, i*4); got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestViewUniformBytes(t *testing.T) {
	buf := ViewUniformBytes(NewViewArgs(800, 600))
	if len(buf) != ViewUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), ViewUniformSize)
	}
	if got := f32At(buf, 0); got != float32(2)/800 {
		t.Errorf("x = %v, want %v", got, float32(2)/800)
	}
	if got := f32At(buf, 4); got != float32(2)/600 {
		t.Errorf("y = %v, want %v", got, float32(2)/600)
	}
	for i := 8; i < ViewUniformSize; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, buf[i])
		}
	}
}
