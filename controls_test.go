package triangle

import (
	"errors"
	"testing"
)

func TestSliderSet(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"on step", 0.25, 0.25},
		{"snaps down", 0.26, 0.25},
		{"snaps up", 0.24, 0.25},
		{"clamps max", 3, 1},
		{"clamps min", -3, -1},
		{"negative", -0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider()
			in := s.Set(tt.in)
			if !approx(in.Value, tt.want) {
				t.Errorf("Set(%v).Value = %v, want %v", tt.in, in.Value, tt.want)
			}
			if s.Value() != in.Value {
				t.Errorf("Value() = %v, want %v", s.Value(), in.Value)
			}
		})
	}
}

func TestSliderNoStep(t *testing.T) {
	s := &Slider{Min: 0, Max: 10}
	if got := s.Set(3.3).Value; !approx(got, 3.3) {
		t.Errorf("Set(3.3) = %v, want 3.3 (no snapping)", got)
	}
	if got := s.Nudge(1).Value; !approx(got, 3.4) {
		t.Errorf("Nudge(1) = %v, want 3.4 (1%% of range)", got)
	}
}

func TestSliderNudge(t *testing.T) {
	s := NewSlider()
	s.Nudge(1)
	s.Nudge(1)
	if got := s.Value(); !approx(got, 0.1) {
		t.Errorf("after two nudges, Value() = %v, want 0.1", got)
	}
	s.Nudge(-5)
	if got := s.Value(); !approx(got, -0.15) {
		t.Errorf("after Nudge(-5), Value() = %v, want -0.15", got)
	}
	for range 100 {
		s.Nudge(1)
	}
	if got := s.Value(); got != DefaultSliderMax {
		t.Errorf("nudging past max: Value() = %v, want %v", got, float32(DefaultSliderMax))
	}
	if got := s.Reset().Value; got != 0 {
		t.Errorf("Reset() = %v, want 0", got)
	}
}

func TestSliderSnapsToExactSteps(t *testing.T) {
	s := NewSlider()
	if got := s.Set(0.333).Value; got != 0.35 {
		t.Errorf("Set(0.333) = %v, want exactly 0.35", got)
	}
	if got := s.Reset().Value; got != 0 {
		t.Errorf("Reset() = %v, want exactly 0", got)
	}
	if got := s.Nudge(1).Value; got != 0.05 {
		t.Errorf("Nudge(1) from 0 = %v, want exactly 0.05", got)
	}

	s.Set(DefaultSliderMin)
	for range 20 {
		s.Nudge(1)
	}
	if got := s.Value(); got != 0 {
		t.Errorf("20 nudges from min = %v, want exactly 0", got)
	}
}

func TestSliderResetOutsideRange(t *testing.T) {
	s := &Slider{Min: 0.5, Max: 2, Step: 0.5}
	if got := s.Reset().Value; got != 0.5 {
		t.Errorf("Reset() with 0 outside range = %v, want 0.5", got)
	}
}

func TestColorPickerCycle(t *testing.T) {
	p := NewColorPicker([]Color{Red, Green, Blue})
	if p.Color() != Red {
		t.Fatalf("initial color = %v, want red", p.Color())
	}

	want := []Color{Green, Blue, Red, Green}
	for i, w := range want {
		if got := p.Next().Color; got != w {
			t.Errorf("Next() #%d = %v, want %v", i, got, w)
		}
	}
	if got := p.Prev().Color; got != Red {
		t.Errorf("Prev() = %v, want red", got)
	}
	if got := p.Prev().Color; got != Blue {
		t.Errorf("Prev() wrap = %v, want blue", got)
	}
}

func TestColorPickerPick(t *testing.T) {
	p := NewColorPicker(nil)
	if len(p.Palette()) != len(DefaultPalette) {
		t.Fatalf("nil palette should use DefaultPalette")
	}

	in, err := p.Pick("#336699")
	if err != nil {
		t.Fatalf("Pick error = %v", err)
	}
	if in.Color.Hex() != "#336699" || p.Color() != in.Color {
		t.Errorf("Pick = %v, picker color = %v", in.Color, p.Color())
	}

	// From a custom color, Next starts at the first palette entry.
	if got := p.Next().Color; got != DefaultPalette[0] {
		t.Errorf("Next() from custom = %v, want %v", got, DefaultPalette[0])
	}

	// Picking a palette color resumes cycling from it.
	if _, err := p.Pick("#0000ff"); err != nil {
		t.Fatal(err)
	}
	if got := p.Next().Color; got != Yellow {
		t.Errorf("Next() after blue = %v, want yellow", got)
	}

	if _, err := p.Pick("bogus"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Pick(bogus) error = %v, want ErrInvalidColor", err)
	}
	if got := p.Reset().Color; got != Red {
		t.Errorf("Reset() = %v, want red", got)
	}
}

func TestColorPickerPaletteIsCopied(t *testing.T) {
	pal := []Color{Red, Green}
	p := NewColorPicker(pal)
	pal[0] = Black
	if p.Color() != Red {
		t.Error("picker should not alias the caller's palette")
	}
	out := p.Palette()
	out[1] = Black
	if p.Next().Color != Green {
		t.Error("Palette() should return a copy")
	}
}
