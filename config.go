package saguaro

import (
	"errors"
	"fmt"
)

// HillConfig describes one sinusoidal hill silhouette.
type HillConfig struct {
	// Baseline is the silhouette's resting height as a fraction of the
	// canvas height.
	Baseline float64
	// Amplitude is sampled once at startup, in pixels.
	Amplitude Range
	// Frequency is sampled once at startup, in cycles per 360 pixels.
	Frequency Range
	// ScrollDivisor slows the layer relative to the scroll position. Larger
	// values move the layer less (further away).
	ScrollDivisor float64
	Color         Color
}

// Config holds the construction-time parameters of a scene. Start from
// DefaultConfig and override fields, or overlay an INI document with
// LoadConfig.
type Config struct {
	// Canvas size in pixels.
	Width, Height float64

	// Day/night cycle length in ticks and the night overlay opacity bounds.
	MaxTime      int
	NightOpacity Range
	SkyColor     Color
	NightColor   Color

	// Star field.
	TotalStars int
	StarRadius float64
	StarColor  Color

	BackHills  HillConfig
	FrontHills HillConfig

	// Ground starts at GroundLevel×Height.
	GroundLevel float64
	SandColor   Color

	// Cacti are anchored in a band DepthSpan pixels deep starting at the
	// ground line.
	DepthSpan     float64
	CactusRadius  Range
	SegmentLength Range
	MinSegments   int
	MaxSegments   int
	// VerticalSkew biases growth upward; must be > 1.
	VerticalSkew float64
	// CactiPerBatch is the number of cacti created per generation band.
	CactiPerBatch int
	// Speed maps depth to horizontal speed (pixels per scroll step).
	Speed Range
	// CactusColor is the base color; its green channel is replaced by a
	// depth-mapped value from CactusGreen.Max (farthest) to CactusGreen.Min
	// (nearest).
	CactusColor Color
	CactusGreen Range

	// EvictOffscreen drops cacti more than one screen width outside the
	// view after each generated batch. Off by default: cacti accumulate.
	EvictOffscreen bool

	// StartPosition is the initial scroll position.
	StartPosition int
}

// DefaultConfig returns the stock desert scene.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       450,
		MaxTime:      3600,
		NightOpacity: Range{0, 0.6},
		SkyColor:     Color{0xb9, 0xe8, 0xff},
		NightColor:   Color{0x15, 0x1b, 0x54},

		TotalStars: 50,
		StarRadius: 1,
		StarColor:  Color{0xff, 0xff, 0xff},

		BackHills: HillConfig{
			Baseline:      1.0 / 3,
			Amplitude:     Range{30, 40},
			Frequency:     Range{1, 1.5},
			ScrollDivisor: 50,
			Color:         Color{0xd5, 0xc9, 0xa6},
		},
		FrontHills: HillConfig{
			Baseline:      1.0 / 2,
			Amplitude:     Range{20, 30},
			Frequency:     Range{1, 2},
			ScrollDivisor: 25,
			Color:         Color{0xca, 0xbd, 0x95},
		},

		GroundLevel: 2.0 / 3,
		SandColor:   Color{0xc2, 0xb2, 0x80},

		DepthSpan:     50,
		CactusRadius:  Range{5, 10},
		SegmentLength: Range{20, 50},
		MinSegments:   2,
		MaxSegments:   10,
		VerticalSkew:  5,
		CactiPerBatch: 7,
		Speed:         Range{4, 20},
		CactusColor:   Color{37, 114, 61},
		CactusGreen:   Range{114, 159},
	}
}

// Ground returns the ground line in pixels.
func (c Config) Ground() float64 {
	return c.Height * c.GroundLevel
}

// Depth returns the band cactus anchors are sampled from.
func (c Config) Depth() Range {
	g := c.Ground()
	return Range{g, g + c.DepthSpan}
}

// SpawnSpacing is the number of scroll steps between generated batches.
func (c Config) SpawnSpacing() int {
	s := int(c.Width / c.Speed.Max)
	if s < 1 {
		s = 1
	}
	return s
}

// Validate reports every malformed field.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	checkRange := func(name string, r Range) {
		check(r.Valid(), "%s: min %v > max %v", name, r.Min, r.Max)
	}

	check(c.Width > 0 && c.Height > 0, "canvas: size %vx%v must be positive", c.Width, c.Height)
	check(c.MaxTime >= 2, "sky: max_time %d must be >= 2", c.MaxTime)
	checkRange("sky: night opacity", c.NightOpacity)
	check(c.NightOpacity.Min >= 0 && c.NightOpacity.Max <= 1,
		"sky: night opacity %v..%v outside [0, 1]", c.NightOpacity.Min, c.NightOpacity.Max)
	check(c.TotalStars >= 0, "stars: count %d is negative", c.TotalStars)
	check(c.StarRadius > 0, "stars: radius %v must be positive", c.StarRadius)

	for _, h := range []struct {
		name string
		cfg  HillConfig
	}{{"hills: back", c.BackHills}, {"hills: front", c.FrontHills}} {
		checkRange(h.name+" amplitude", h.cfg.Amplitude)
		checkRange(h.name+" frequency", h.cfg.Frequency)
		check(h.cfg.ScrollDivisor > 0, "%s: scroll divisor %v must be positive", h.name, h.cfg.ScrollDivisor)
	}

	check(c.GroundLevel > 0 && c.GroundLevel <= 1, "ground: level %v outside (0, 1]", c.GroundLevel)
	check(c.DepthSpan >= 0, "cactus: depth span %v is negative", c.DepthSpan)
	checkRange("cactus: radius", c.CactusRadius)
	check(c.CactusRadius.Min > 0, "cactus: radius %v must be positive", c.CactusRadius.Min)
	checkRange("cactus: segment length", c.SegmentLength)
	check(c.SegmentLength.Min > 0, "cactus: segment length %v must be positive", c.SegmentLength.Min)
	check(c.MinSegments >= 0, "cactus: min segments %d is negative", c.MinSegments)
	check(c.MinSegments <= c.MaxSegments, "cactus: min segments %d > max segments %d", c.MinSegments, c.MaxSegments)
	check(c.VerticalSkew > 1, "cactus: vertical skew %v must be > 1", c.VerticalSkew)
	check(c.CactiPerBatch >= 0, "cactus: batch size %d is negative", c.CactiPerBatch)
	checkRange("cactus: green", c.CactusGreen)
	check(c.CactusGreen.Min >= 0 && c.CactusGreen.Max <= 255,
		"cactus: green %v..%v outside [0, 255]", c.CactusGreen.Min, c.CactusGreen.Max)
	checkRange("scroll: speed", c.Speed)
	check(c.Speed.Min > 0, "scroll: speed %v must be positive", c.Speed.Min)

	return errors.Join(errs...)
}
