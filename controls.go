package triangle

import (
	"math"
	"strconv"
)

// Input is a user action produced by a control and consumed by Scene.Apply.
//
// Concrete inputs are SliderInput and ColorInput.
type Input interface {
	input()
}

// SliderInput moves the triangle horizontally. Value is an absolute offset
// added to each vertex's original x-coordinate.
type SliderInput struct {
	Value float32
}

// ColorInput replaces the fill color.
type ColorInput struct {
	Color Color
}

func (SliderInput) input() {}
func (ColorInput) input()  {}

// Default slider range. The triangle's center stays inside clip space.
const (
	DefaultSliderMin  = -1.0
	DefaultSliderMax  = 1.0
	DefaultSliderStep = 0.05
)

// Slider is a horizontal range control.
//
// Value always lies in [Min, Max]. If Step is positive, Value is snapped to
// Min + k*Step.
type Slider struct {
	Min, Max, Step float32

	value float32
}

// NewSlider creates a slider with the default range, centered at 0.
func NewSlider() *Slider {
	return &Slider{Min: DefaultSliderMin, Max: DefaultSliderMax, Step: DefaultSliderStep}
}

// Value returns the current slider value.
func (s *Slider) Value() float32 {
	return s.value
}

// Set moves the slider to v (clamped and snapped) and returns the resulting
// input.
func (s *Slider) Set(v float32) SliderInput {
	s.value = s.normalize(v)
	return SliderInput{Value: s.value}
}

// Nudge moves the slider by n steps. A slider with no step moves by 1% of
// its range per step.
func (s *Slider) Nudge(n int) SliderInput {
	step := s.Step
	if step <= 0 {
		step = (s.Max - s.Min) / 100
	}
	return s.Set(s.value + float32(n)*step)
}

// Reset moves the slider back to 0, or to the nearest valid value if 0 is
// outside the range.
func (s *Slider) Reset() SliderInput {
	return s.Set(0)
}

func (s *Slider) normalize(v float32) float32 {
	lo, hi := decimal(s.Min), decimal(s.Max)
	if lo > hi {
		lo, hi = hi, lo
	}
	x := decimal(v)
	if math.IsNaN(x) {
		x = lo
	}
	if s.Step > 0 {
		step := decimal(s.Step)
		x = lo + math.Round((x-lo)/step)*step
		x = math.Round(x*1e9) / 1e9
	}
	x = math.Max(lo, math.Min(hi, x))
	return float32(x)
}

// decimal widens f through its shortest decimal form, so 0.05 stays 0.05
// instead of becoming 0.05000000074505806.
func decimal(f float32) float64 {
	d, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return d
}

// ColorPicker holds the current fill color and a palette to cycle through.
type ColorPicker struct {
	palette []Color
	index   int // palette position of the current color, -1 if custom
	current Color
}

// NewColorPicker creates a picker over palette, starting at its first entry.
// A nil or empty palette uses DefaultPalette.
func NewColorPicker(palette []Color) *ColorPicker {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := make([]Color, len(palette))
	copy(p, palette)
	return &ColorPicker{palette: p, current: p[0]}
}

// Color returns the currently selected color.
func (p *ColorPicker) Color() Color {
	return p.current
}

// Palette returns a copy of the picker's palette.
func (p *ColorPicker) Palette() []Color {
	out := make([]Color, len(p.palette))
	copy(out, p.palette)
	return out
}

// Set selects an arbitrary color.
func (p *ColorPicker) Set(c Color) ColorInput {
	p.current = RGB(c.R, c.G, c.B)
	p.index = p.indexOf(p.current)
	return ColorInput{Color: p.current}
}

// Pick selects a color from a hex string such as "#ff8800".
func (p *ColorPicker) Pick(hex string) (ColorInput, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return ColorInput{}, err
	}
	return p.Set(c), nil
}

// Next selects the next palette color, wrapping around. From a custom color
// it selects the first palette entry.
func (p *ColorPicker) Next() ColorInput {
	return p.step(1)
}

// Prev selects the previous palette color, wrapping around.
func (p *ColorPicker) Prev() ColorInput {
	return p.step(-1)
}

// Reset selects the first palette color.
func (p *ColorPicker) Reset() ColorInput {
	p.index = 0
	p.current = p.palette[0]
	return ColorInput{Color: p.current}
}

func (p *ColorPicker) step(d int) ColorInput {
	n := len(p.palette)
	if p.index < 0 {
		p.index = 0
	} else {
		p.index = ((p.index+d)%n + n) % n
	}
	p.current = p.palette[p.index]
	return ColorInput{Color: p.current}
}

func (p *ColorPicker) indexOf(c Color) int {
	for i, pc := range p.palette {
		if pc == c {
			return i
		}
	}
	return -1
}
