package saguaro

import "github.com/tanema/gween/ease"

// DayNightCycle owns the cyclic clock and derives the night opacity from it.
// The opacity rises from MinOpacity to MaxOpacity over the first half of the
// cycle and falls back over the second half.
type DayNightCycle struct {
	time    int
	maxTime int
	min     float64
	max     float64

	// Easing shapes each half of the wave. nil gives a piecewise-linear
	// triangle wave computed in float64, the same shape as ease.Linear.
	Easing ease.TweenFunc
}

// NewDayNightCycle creates a cycle at time 0. Panics if maxTime < 2 or the
// opacity bounds are inverted.
func NewDayNightCycle(maxTime int, minOpacity, maxOpacity float64) *DayNightCycle {
	if maxTime < 2 {
		panic("saguaro: day/night cycle needs maxTime >= 2")
	}
	if minOpacity > maxOpacity {
		panic("saguaro: day/night opacity bounds are inverted")
	}
	return &DayNightCycle{maxTime: maxTime, min: minOpacity, max: maxOpacity}
}

// Time returns the current clock value in [0, MaxTime].
func (c *DayNightCycle) Time() int {
	return c.time
}

// MaxTime returns the cycle length.
func (c *DayNightCycle) MaxTime() int {
	return c.maxTime
}

// Advance increments the clock by one, wrapping to 0 after MaxTime.
// Reports whether the clock wrapped.
func (c *DayNightCycle) Advance() bool {
	c.time++
	if c.time > c.maxTime {
		c.time = 0
		return true
	}
	return false
}

// NightOpacity returns the current blend factor toward the night color.
func (c *DayNightCycle) NightOpacity() float64 {
	half := float64(c.maxTime) / 2
	t := float64(c.time)
	if c.Easing == nil {
		var v float64
		if t < half {
			v = mapToRange(t, 0, half, c.min, c.max)
		} else {
			v = mapToRange(t, half, float64(c.maxTime), c.max, c.min)
		}
		return clampFloat(v, c.min, c.max)
	}

	// gween works in float32.
	lo, hi := float32(c.min), float32(c.max)
	var v float32
	if t < half {
		v = c.Easing(float32(t), lo, hi-lo, float32(half))
	} else {
		v = c.Easing(float32(t-half), hi, lo-hi, float32(half))
	}
	return clampFloat(float64(v), c.min, c.max)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
