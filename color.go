package saguaro

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a "#rrggbb" (or "#rgb") color string. The leading '#' is
// optional.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// MustParseHex is like ParseHex but panics on malformed input. Intended for
// package-level color constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("saguaro: " + err.Error())
	}
	return c
}

// Hex formats the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color so a Color can be handed to image and
// rendering libraries directly. The color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Floats returns the channels scaled to [0, 1].
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Blend linearly interpolates each channel from a toward b. t is clamped to
// [0, 1]; t=0 yields a and t=1 yields b. Channels are floored, which matches
// compositing b over a with opacity t.
func Blend(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Color{
		R: blendChannel(a.R, b.R, t),
		G: blendChannel(a.G, b.G, t),
		B: blendChannel(a.B, b.B, t),
	}
}

func blendChannel(a, b uint8, t float64) uint8 {
	v := math.Floor(float64(a)*(1-t) + float64(b)*t)
	return clampChannel(v)
}

// clampChannel floors v into the valid 0..255 channel range.
func clampChannel(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
