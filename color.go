package triangle

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ColorBytes is the byte size of the RGB payload in the uniform buffer.
const ColorBytes = 3 * 4

// Color is an RGB fill color. Each component is in the range [0, 1].
type Color struct {
	R, G, B float32
}

// Common colors. These also make up DefaultPalette.
var (
	Red     = Color{R: 1, G: 0, B: 0}
	Green   = Color{R: 0, G: 1, B: 0}
	Blue    = Color{R: 0, G: 0, B: 1}
	Yellow  = Color{R: 1, G: 1, B: 0}
	Cyan    = Color{R: 0, G: 1, B: 1}
	Magenta = Color{R: 1, G: 0, B: 1}
	White   = Color{R: 1, G: 1, B: 1}
	Black   = Color{R: 0, G: 0, B: 0}
)

// DefaultPalette is the color picker's palette, in cycling order.
var DefaultPalette = []Color{Red, Green, Blue, Yellow, Cyan, Magenta, White}

// RGB creates a color from components, clamping each to [0, 1].
func RGB(r, g, b float32) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// ParseHex parses a color from a hex string.
// Supports formats "RGB" and "RRGGBB", with or without a leading '#'.
// This is the value format of an HTML color input.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(s) {
	case 3:
		r, ok = parseHexDigits(s[0:1])
		if ok {
			g, ok = parseHexDigits(s[1:2])
		}
		if ok {
			b, ok = parseHexDigits(s[2:3])
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		r, ok = parseHexDigits(s[0:2])
		if ok {
			g, ok = parseHexDigits(s[2:4])
		}
		if ok {
			b, ok = parseHexDigits(s[4:6])
		}
	}
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHexDigits parses one or two hex digits.
func parseHexDigits(s string) (uint32, bool) {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Bytes returns the color as three little-endian float32 values, the RGB
// payload of the uniform buffer.
func (c Color) Bytes() []byte {
	return c.AppendBytes(make([]byte, 0, ColorBytes))
}

// AppendBytes appends the RGB payload to dst and returns the extended slice.
func (c Color) AppendBytes(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.R))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.G))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.B))
	return dst
}

// DecodeColor parses the first 12 bytes of a uniform buffer back into a
// color. It returns false if data is shorter than ColorBytes.
func DecodeColor(data []byte) (Color, bool) {
	if len(data) < ColorBytes {
		return Color{}, false
	}
	return Color{
		R: math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])),
		G: math.Float32frombits(binary.LittleEndian.Uint32(data[4:8])),
		B: math.Float32frombits(binary.LittleEndian.Uint32(data[8:12])),
	}, true
}

// Float64 returns the components widened to float64, the form gg and
// gputypes.Color use.
func (c Color) Float64() (r, g, b float64) {
	return float64(c.R), float64(c.G), float64(c.B)
}

func clamp01(x float32) float32 {
	switch {
	case x < 0 || x != x:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func to255(x float32) uint8 {
	return uint8(math.Round(float64(clamp01(x)) * 255))
}
