package triangle

import (
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Red},
		{"00ff00", Green},
		{"#00F", Blue},
		{"#fff", White},
		{"#000000", Black},
		{"#FfFf00", Yellow},
		{"#808080", Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.in, err)
			}
			if !approx(got.R, tt.want.R) || !approx(got.G, tt.want.G) || !approx(got.B, tt.want.B) {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#ff00", "#ff000", "#gg0000", "#ff00000", "red"} {
		_, err := ParseHex(in)
		if !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex should panic on invalid input")
		}
	}()
	MustParseHex("nope")
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#ff8800", "#123456", "#000000", "#ffffff"} {
		if got := MustParseHex(s).Hex(); got != s {
			t.Errorf("Hex() round trip: got %q, want %q", got, s)
		}
	}
}

func TestRGBClamps(t *testing.T) {
	c := RGB(-0.5, 2, 0.25)
	if c != (Color{R: 0, G: 1, B: 0.25}) {
		t.Errorf("RGB clamp = %+v", c)
	}
}

func TestColorBytes(t *testing.T) {
	c := Color{R: 0.25, G: 0.5, B: 1}
	data := c.Bytes()
	if len(data) != ColorBytes {
		t.Fatalf("len(Bytes()) = %d, want %d", len(data), ColorBytes)
	}
	got, ok := DecodeColor(data)
	if !ok {
		t.Fatal("DecodeColor failed")
	}
	if got != c {
		t.Errorf("DecodeColor = %+v, want %+v", got, c)
	}
	// 1.0f is 0x3F800000.
	if b := data[8:12]; b[0] != 0 || b[1] != 0 || b[2] != 0x80 || b[3] != 0x3F {
		t.Errorf("blue bytes = % x, want 00 00 80 3f", b)
	}
}

func TestDecodeColorShort(t *testing.T) {
	if _, ok := DecodeColor(make([]byte, ColorBytes-1)); ok {
		t.Error("DecodeColor on short data should fail")
	}
	// Padded uniform data decodes from its first 12 bytes.
	padded := append(Green.Bytes(), 0, 0, 0, 0)
	got, ok := DecodeColor(padded)
	if !ok || got != Green {
		t.Errorf("DecodeColor(padded) = %+v, %v", got, ok)
	}
}
