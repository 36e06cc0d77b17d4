package triangle

import (
	"encoding/binary"
	"math"
)

// Vertex layout constants. The geometry buffer on the device has exactly
// VertexBytes bytes.
const (
	// VertexCount is the number of vertices drawn per frame.
	VertexCount = 3

	// FloatsPerVertex is the number of float32 components per vertex (x, y, z).
	FloatsPerVertex = 3

	// VertexFloats is the length of the flat vertex sequence.
	VertexFloats = VertexCount * FloatsPerVertex

	// VertexStride is the byte stride of one vertex.
	VertexStride = FloatsPerVertex * 4

	// VertexBytes is the byte size of the whole vertex sequence.
	VertexBytes = VertexFloats * 4
)

// Vec2 is a point in clip space.
type Vec2 struct {
	X, Y float32
}

// VertexSet is the triangle geometry: three points with z = 0, stored as a
// flat sequence of nine float32 values.
//
// The set keeps the positions it was created with. Translate moves every
// vertex relative to those originals, so repeated slider inputs do not
// accumulate.
type VertexSet struct {
	orig   [VertexFloats]float32
	cur    [VertexFloats]float32
	offset float32
}

// NewVertexSet creates a vertex set from three clip-space points.
func NewVertexSet(a, b, c Vec2) VertexSet {
	var v VertexSet
	for i, p := range [VertexCount]Vec2{a, b, c} {
		v.orig[i*FloatsPerVertex] = p.X
		v.orig[i*FloatsPerVertex+1] = p.Y
	}
	v.cur = v.orig
	return v
}

// DefaultVertices returns the tutorial triangle: apex at the top, base along
// y = -0.5.
func DefaultVertices() VertexSet {
	return NewVertexSet(
		Vec2{X: 0.0, Y: 0.5},
		Vec2{X: -0.5, Y: -0.5},
		Vec2{X: 0.5, Y: -0.5},
	)
}

// Translate sets the x-component of each vertex to its original value plus dx.
func (v *VertexSet) Translate(dx float32) {
	v.offset = dx
	for i := 0; i < VertexCount; i++ {
		j := i * FloatsPerVertex
		v.cur[j] = v.orig[j] + dx
	}
}

// Offset returns the horizontal offset last passed to Translate.
func (v VertexSet) Offset() float32 {
	return v.offset
}

// Floats returns the current flat vertex sequence.
func (v VertexSet) Floats() [VertexFloats]float32 {
	return v.cur
}

// Original returns the flat vertex sequence before any translation.
func (v VertexSet) Original() [VertexFloats]float32 {
	return v.orig
}

// Vertex returns the current position of vertex i.
func (v VertexSet) Vertex(i int) Vec2 {
	j := i * FloatsPerVertex
	return Vec2{X: v.cur[j], Y: v.cur[j+1]}
}

// Bytes returns the current vertex sequence as little-endian float32 bytes,
// the exact content of the geometry buffer.
func (v VertexSet) Bytes() []byte {
	return v.AppendBytes(make([]byte, 0, VertexBytes))
}

// AppendBytes appends the vertex bytes to dst and returns the extended slice.
func (v VertexSet) AppendBytes(dst []byte) []byte {
	for _, f := range v.cur {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// DecodeVertices parses a 36-byte geometry buffer back into nine floats.
// It returns false if data has the wrong length.
func DecodeVertices(data []byte) ([VertexFloats]float32, bool) {
	var out [VertexFloats]float32
	if len(data) != VertexBytes {
		return out, false
	}
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, true
}
