package saguaro

import "math"

// Color is an opaque 24-bit RGB color. Every on-screen color is derived by
// blending a day color toward the night color, so alpha is never carried.
type Color struct {
	R, G, B uint8
}

// Vec2 is a 2D vector used for positions and offsets. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Range is a general-purpose min/max range. Used by Config for every sampled
// quantity (radius, segment length, depth, speed, hill shape).
type Range struct {
	Min, Max float64
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// mapToRange linearly maps v from [fromMin, fromMax] onto [toMin, toMax].
// Values outside the source range extrapolate.
func mapToRange(v, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		return toMin
	}
	return (v-fromMin)*(toMax-toMin)/(fromMax-fromMin) + toMin
}

// Key identifies one of the two opposing direction keys.
type Key uint8

const (
	KeyNegative Key = iota + 1 // scrolls toward lower positions (left arrow)
	KeyPositive                // scrolls toward higher positions (right arrow)
)

// KeyLeft and KeyRight are the conventional bindings for the two keys.
const (
	KeyLeft  = KeyNegative
	KeyRight = KeyPositive
)

// Direction is the latched scroll direction.
type Direction uint8

const (
	DirectionNone     Direction = iota // no key held
	DirectionNegative                  // position decreases each tick
	DirectionPositive                  // position increases each tick
)

// String returns a short name used in logs.
func (d Direction) String() string {
	switch d {
	case DirectionNegative:
		return "negative"
	case DirectionPositive:
		return "positive"
	default:
		return "none"
	}
}

// Growth is one of the constrained directions a cactus segment may extend
// toward. The values are ordered by angle, which places GrowUp last.
type Growth uint8

const (
	GrowRight Growth = iota // angle 0
	GrowLeft                // angle π
	GrowUp                  // angle 3π/2 (screen up)
)

// allGrowths lists the growth directions in ascending angle order.
var allGrowths = [...]Growth{GrowRight, GrowLeft, GrowUp}

// Angle returns the growth direction in radians.
func (g Growth) Angle() float64 {
	switch g {
	case GrowLeft:
		return math.Pi
	case GrowUp:
		return math.Pi * 3 / 2
	default:
		return 0
	}
}

// Unit returns the unit vector for the direction, exact on both axes.
func (g Growth) Unit() Vec2 {
	switch g {
	case GrowLeft:
		return Vec2{-1, 0}
	case GrowUp:
		return Vec2{0, -1}
	default:
		return Vec2{1, 0}
	}
}

func (g Growth) scaled(length float64) Vec2 {
	u := g.Unit()
	return Vec2{u.X * length, u.Y * length}
}

// String returns a short name used in logs and test failures.
func (g Growth) String() string {
	switch g {
	case GrowLeft:
		return "left"
	case GrowUp:
		return "up"
	default:
		return "right"
	}
}

// GrowthSet is a bitmask of used growth directions.
type GrowthSet uint8

// Has reports whether g is in the set.
func (s GrowthSet) Has(g Growth) bool {
	return s&(1<<g) != 0
}

// With returns the set with g added.
func (s GrowthSet) With(g Growth) GrowthSet {
	return s | 1<<g
}

// Full reports whether every growth direction is used.
func (s GrowthSet) Full() bool {
	return s == 1<<GrowRight|1<<GrowLeft|1<<GrowUp
}

// available appends the directions not in s to buf, in ascending angle order.
func (s GrowthSet) available(buf []Growth) []Growth {
	buf = buf[:0]
	for _, g := range allGrowths {
		if !s.Has(g) {
			buf = append(buf, g)
		}
	}
	return buf
}

// Crossing is the result of a scroll tick.
type Crossing uint8

const (
	CrossedNone Crossing = iota // no new extreme reached
	CrossedLow                  // position went below the low watermark
	CrossedHigh                 // position went above the high watermark
)
