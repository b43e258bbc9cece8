package saguaro

import "math"

// HillLayer is a sinusoidal silhouette. Its shape is sampled once at
// construction; scrolling only shifts its phase.
type HillLayer struct {
	Baseline      float64
	Offset        float64
	Amplitude     float64
	Frequency     float64
	ScrollDivisor float64
	Color         Color
}

// NewHillLayer samples a layer's offset, amplitude, and frequency.
func NewHillLayer(cfg HillConfig, width, height float64, rng Rand) HillLayer {
	return HillLayer{
		Baseline:      height * cfg.Baseline,
		Offset:        uniform(rng, 0, width),
		Amplitude:     uniformRange(rng, cfg.Amplitude),
		Frequency:     uniformRange(rng, cfg.Frequency),
		ScrollDivisor: cfg.ScrollDivisor,
		Color:         cfg.Color,
	}
}

// Phase returns the layer phase for a scroll position. Larger divisors give
// slower, more distant layers.
func (h HillLayer) Phase(position int) float64 {
	return float64(position) / h.ScrollDivisor
}

// Y returns the silhouette height at screen column x for the given phase.
func (h HillLayer) Y(x, phase float64) float64 {
	return h.Baseline - math.Sin(h.Frequency*x*math.Pi/180+h.Offset+phase*h.Frequency)*h.Amplitude
}

// Outline appends the closed silhouette polygon to buf: one point per column
// across [0, width], then the two bottom corners.
func (h HillLayer) Outline(buf []Vec2, width, height float64, position int) []Vec2 {
	phase := h.Phase(position)
	buf = buf[:0]
	for x := 0.0; x <= width; x++ {
		buf = append(buf, Vec2{x, h.Y(x, phase)})
	}
	return append(buf, Vec2{width, height}, Vec2{0, height})
}

// fillOutlineColumns paints an Outline polygon as one-pixel columns, for
// surfaces that cannot fill polygons.
func fillOutlineColumns(s Surface, outline []Vec2, c Color) {
	if len(outline) < 3 {
		return
	}
	bottom := outline[len(outline)-1].Y
	for _, p := range outline[:len(outline)-2] {
		s.FillRect(p.X, p.Y, 1, bottom-p.Y, c)
	}
}
