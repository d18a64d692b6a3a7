package draw

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Tint is an 8-bit RGBA colour. Alpha scales the colour's contribution when
// blended onto a surface.
type Tint struct {
	R, G, B, A uint8
}

// Named tints.
var (
	White       = Tint{255, 255, 255, 255}
	Transparent = Tint{}
	LightBlue   = Tint{173, 216, 230, 255}
	Yellow      = Tint{255, 255, 0, 255}
	Red         = Tint{255, 60, 60, 255}
	Gray        = Tint{160, 160, 160, 255}
)

// RGBA builds a Tint from components.
func RGBA(r, g, b, a uint8) Tint {
	return Tint{R: r, G: g, B: b, A: a}
}

// Mul scales every channel, alpha included, by f (clamped to [0,255]).
func (t Tint) Mul(f float64) Tint {
	return Tint{
		R: channel(float64(t.R) * f),
		G: channel(float64(t.G) * f),
		B: channel(float64(t.B) * f),
		A: channel(float64(t.A) * f),
	}
}

// Modulate multiplies two tints channel by channel.
func (t Tint) Modulate(o Tint) Tint {
	return Tint{
		R: uint8(uint16(t.R) * uint16(o.R) / 255),
		G: uint8(uint16(t.G) * uint16(o.G) / 255),
		B: uint8(uint16(t.B) * uint16(o.B) / 255),
		A: uint8(uint16(t.A) * uint16(o.A) / 255),
	}
}

// Color returns the terminal colour of t with alpha applied.
func (t Tint) Color() tcell.Color {
	a := float64(t.A) / 255
	return tcell.NewRGBColor(int32(float64(t.R)*a), int32(float64(t.G)*a), int32(float64(t.B)*a))
}

// HSV builds an opaque tint from a hue in sextants [0,6), saturation and value.
func HSV(hue, s, v float64) Tint {
	r, g, b := colorful.Hsv(hue*60, s, v).Clamped().RGB255()
	return Tint{R: r, G: g, B: b, A: 255}
}

// Lerp interpolates linearly between a and b. t is clamped to [0,1].
func Lerp(a, b Tint, t float64) Tint {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	r, g, bl := a.colorful().BlendRgb(b.colorful(), t).Clamped().RGB255()
	return Tint{R: r, G: g, B: bl, A: channel(float64(a.A) + (float64(b.A)-float64(a.A))*t)}
}

func (t Tint) colorful() colorful.Color {
	return colorful.Color{R: float64(t.R) / 255, G: float64(t.G) / 255, B: float64(t.B) / 255}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
