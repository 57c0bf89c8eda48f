package ggui

import (
	"encoding/binary"
	"math"
)

// InstanceStride is the byte stride of one instance record in the instance
// buffer. Layout:
//
//	position          (vec2<f32>) = 8 bytes  (location 0, offset 0)
//	dimensions        (vec2<f32>) = 8 bytes  (location 1, offset 8)
//	tex_coords_bounds (vec4<f32>) = 16 bytes (location 2, offset 16)
//	color             (vec4<f32>) = 16 bytes (location 3, offset 32)
//	color_bias        (vec4<f32>) = 16 bytes (location 4, offset 48)
//
// Total = 64 bytes per instance.
const InstanceStride = 64

// Attribute offsets inside an instance record.
const (
	OffsetPosition        = 0
	OffsetDimensions      = 8
	OffsetTexCoordsBounds = 16
	OffsetColor           = 32
	OffsetColorBias       = 48
)

// OutputVertexStride is the byte stride of one encoded OutputVertex:
// clip_position (16) + tex_coords (8) + color (16) + color_bias (16).
const OutputVertexStride = 56

// ViewUniformSize is the byte size of the view uniform buffer. The payload is
// one vec2<f32>; the rest is padding to the 16-byte uniform alignment.
const ViewUniformSize = 16

// AppendInstances encodes instances in the instance buffer layout and appends
// them to dst.
func AppendInstances(dst []byte, instances []Instance) []byte {
	need := len(dst) + len(instances)*InstanceStride
	if cap(dst) < need {
		grown := make([]byte, len(dst), need)
		copy(grown, dst)
		dst = grown
	}
	for i := range instances {
		off := len(dst)
		dst = dst[:off+InstanceStride]
		writeInstance(dst[off:], &instances[i])
	}
	return dst
}

func writeInstance(buf []byte, in *Instance) {
	putF32s(buf[OffsetPosition:], in.Position.X, in.Position.Y)
	putF32s(buf[OffsetDimensions:], in.Dimensions.X, in.Dimensions.Y)
	b := in.TexCoordsBounds
	putF32s(buf[OffsetTexCoordsBounds:], b.MinU, b.MinV, b.MaxU, b.MaxV)
	putF32s(buf[OffsetColor:], in.Color[:]...)
	putF32s(buf[OffsetColorBias:], in.ColorBias[:]...)
}

// DecodeInstance reads one instance record from buf.
// buf must hold at least InstanceStride bytes.
func DecodeInstance(buf []byte) Instance {
	_ = buf[InstanceStride-1]
	var in Instance
	in.Position = Vec2{X: getF32(buf, 0), Y: getF32(buf, 4)}
	in.Dimensions = Vec2{X: getF32(buf, 8), Y: getF32(buf, 12)}
	in.TexCoordsBounds = TexBounds{
		MinU: getF32(buf, 16), MinV: getF32(buf, 20),
		MaxU: getF32(buf, 24), MaxV: getF32(buf, 28),
	}
	for i := range 4 {
		in.Color[i] = getF32(buf, OffsetColor+4*i)
		in.ColorBias[i] = getF32(buf, OffsetColorBias+4*i)
	}
	return in
}

// AppendOutputVertices encodes vertices in output attribute order and
// appends them to dst.
func AppendOutputVertices(dst []byte, vertices []OutputVertex) []byte {
	var rec [OutputVertexStride]byte
	for i := range vertices {
		v := &vertices[i]
		c := v.ClipPosition
		putF32s(rec[0:], c.X, c.Y, c.Z, c.W)
		putF32s(rec[16:], v.TexCoords.X, v.TexCoords.Y)
		putF32s(rec[24:], v.Color[:]...)
		putF32s(rec[40:], v.ColorBias[:]...)
		dst = append(dst, rec[:]...)
	}
	return dst
}

// ViewUniformBytes encodes the view uniform for upload.
func ViewUniformBytes(view ViewArgs) []byte {
	buf := make([]byte, ViewUniformSize)
	putF32s(buf, view.InverseWindowHalfSize.X, view.InverseWindowHalfSize.Y)
	// Padding bytes 8..15 remain zero.
	return buf
}

func putF32s(buf []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}

func getF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}
