package triangle

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Variant selects which tutorial stage of the program is built.
type Variant int

const (
	// VariantPlain draws a fixed red triangle: no uniform buffer, no controls.
	VariantPlain Variant = iota

	// VariantColor adds the color uniform and the color picker.
	VariantColor

	// VariantInteractive adds the horizontal slider on top of VariantColor.
	VariantInteractive
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantColor:
		return "color"
	case VariantInteractive:
		return "interactive"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant parses a variant name as returned by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return VariantPlain, nil
	case "color":
		return VariantColor, nil
	case "interactive", "":
		return VariantInteractive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
	}
}

// HasColor reports whether the variant uses a color uniform.
func (v Variant) HasColor() bool {
	return v == VariantColor || v == VariantInteractive
}

// HasSlider reports whether the variant accepts slider input.
func (v Variant) HasSlider() bool {
	return v == VariantInteractive
}

// Scene is the host-side state of the triangle: its geometry, its color, and
// which of the two device buffers are out of date.
//
// Scene is safe for concurrent use. Input callbacks and the draw loop may
// run on different goroutines.
type Scene struct {
	mu       sync.Mutex
	variant  Variant
	vertices VertexSet
	color    Color

	geometryDirty bool
	colorDirty    bool
}

// NewScene creates a scene with the default triangle and color. Both buffers
// start dirty so the first frame uploads them.
func NewScene(v Variant) *Scene {
	return &Scene{
		variant:       v,
		vertices:      DefaultVertices(),
		color:         Red,
		geometryDirty: true,
		colorDirty:    v.HasColor(),
	}
}

// Variant returns the scene's variant.
func (s *Scene) Variant() Variant {
	return s.variant
}

// Apply applies a user input. It returns true if the scene changed and a
// redraw is needed. Inputs the variant does not support are ignored, as are
// slider values that are NaN or infinite.
func (s *Scene) Apply(in Input) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in := in.(type) {
	case SliderInput:
		if !s.variant.HasSlider() {
			Logger().Debug("slider input ignored", "variant", s.variant.String())
			return false
		}
		if v := float64(in.Value); math.IsNaN(v) || math.IsInf(v, 0) {
			Logger().Debug("non-finite slider input ignored", "value", v)
			return false
		}
		s.vertices.Translate(in.Value)
		s.geometryDirty = true
		return true
	case ColorInput:
		if !s.variant.HasColor() {
			Logger().Debug("color input ignored", "variant", s.variant.String())
			return false
		}
		s.color = in.Color
		s.colorDirty = true
		return true
	default:
		return false
	}
}

// Vertices returns a copy of the current vertex set.
func (s *Scene) Vertices() VertexSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vertices
}

// Color returns the current fill color.
func (s *Scene) Color() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// Snapshot returns the vertices, the color, and the dirty flags in one
// consistent read, then marks both buffers clean. The draw loop calls it
// once per frame and uploads only what was dirty.
func (s *Scene) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := Frame{
		Vertices:      s.vertices,
		Color:         s.color,
		GeometryDirty: s.geometryDirty,
		ColorDirty:    s.colorDirty,
	}
	s.geometryDirty = false
	s.colorDirty = false
	return f
}

// Invalidate marks both buffers dirty, forcing a full re-upload. Call it
// after the device buffers are recreated.
func (s *Scene) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometryDirty = true
	s.colorDirty = s.variant.HasColor()
}

// Frame is one consistent read of a Scene.
type Frame struct {
	Vertices VertexSet
	Color    Color

	// GeometryDirty and ColorDirty report which buffers changed since the
	// previous snapshot.
	GeometryDirty bool
	ColorDirty    bool
}
