package saguaro

// StarField is a fixed set of star positions sampled on first use.
type StarField struct {
	count  int
	width  float64
	height float64
	stars  []Vec2
	ready  bool
}

// NewStarField creates an empty field of count stars spread over
// [0, width) × [0, height).
func NewStarField(count int, width, height float64) *StarField {
	return &StarField{count: count, width: width, height: height}
}

// Initialized reports whether the star positions have been sampled.
func (f *StarField) Initialized() bool {
	return f.ready
}

// Ensure samples the star positions if that has not happened yet.
func (f *StarField) Ensure(rng Rand) {
	if f.ready {
		return
	}
	f.stars = make([]Vec2, f.count)
	for i := range f.stars {
		f.stars[i] = Vec2{rng.Float64() * f.width, rng.Float64() * f.height}
	}
	f.ready = true
}

// Stars returns the sampled positions. The returned slice MUST NOT be mutated.
func (f *StarField) Stars() []Vec2 {
	return f.stars
}

// StarColor blends the night-tinted sky toward the star color by the same
// opacity, so stars vanish by day and shine fully at deepest night.
func StarColor(sky, night, star Color, opacity float64) Color {
	return Blend(Blend(sky, night, opacity), star, opacity)
}
