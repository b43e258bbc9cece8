package saguaro

import (
	"cmp"
	"math"
	"slices"
)

// Segment is one straight piece of cactus growing out of a node.
type Segment struct {
	// From is the index of the node the segment grows out of.
	From int
	// Growth is the direction the segment extends toward.
	Growth Growth
	// To is the segment's terminal point in world coordinates.
	To Vec2
	// Synthetic marks the upward stub added to nodes that never grew up.
	Synthetic bool
}

// CactusNode is a branching point of a cactus.
type CactusNode struct {
	Position Vec2
	// Parent is the index of the node this one grew out of, or -1 for the
	// root.
	Parent   int
	Segments []Segment
	Used     GrowthSet
}

// Cactus is a procedurally branched cactus. The trunk runs straight up from
// Anchor to Nodes[0], the root of the branch tree.
type Cactus struct {
	// Anchor is where the cactus meets the ground. Anchor.Y doubles as the
	// depth key for color and parallax speed.
	Anchor Vec2
	Radius float64
	Color  Color
	Nodes  []CactusNode
}

// Depth returns the cactus' depth key.
func (c *Cactus) Depth() float64 {
	return c.Anchor.Y
}

// SegmentCount returns the number of segments across all nodes, not
// counting the trunk.
func (c *Cactus) SegmentCount() int {
	n := 0
	for i := range c.Nodes {
		n += len(c.Nodes[i].Segments)
	}
	return n
}

// Bounds returns the horizontal extent of the cactus in world coordinates,
// including its stroke radius.
func (c *Cactus) Bounds() (minX, maxX float64) {
	minX, maxX = c.Anchor.X, c.Anchor.X
	for i := range c.Nodes {
		for _, s := range c.Nodes[i].Segments {
			minX = min(minX, s.To.X)
			maxX = max(maxX, s.To.X)
		}
	}
	return minX - c.Radius, maxX + c.Radius
}

// XSampler draws a cactus anchor x coordinate.
type XSampler func(r Rand) float64

// UniformX samples x uniformly between a and b.
func UniformX(a, b float64) XSampler {
	return func(r Rand) float64 {
		return uniform(r, a, b)
	}
}

// CactusGenerator grows cacti and keeps them ordered by ascending depth so
// they can be painted back to front.
type CactusGenerator struct {
	rng Rand

	depth         Range
	radius        Range
	segmentLength Range
	minSegments   int
	maxSegments   int
	skew          float64
	baseColor     Color
	green         Range
	speed         Range

	cacti []*Cactus

	// scratch buffers reused across growth steps
	available []Growth
	eligible  []int
}

// NewCactusGenerator creates an empty generator. Panics if the cactus part
// of cfg is malformed.
func NewCactusGenerator(cfg Config, rng Rand) *CactusGenerator {
	if rng == nil {
		panic("saguaro: cactus generator needs a random source")
	}
	switch {
	case !cfg.CactusRadius.Valid():
		panic("saguaro: cactus radius range is inverted")
	case !cfg.SegmentLength.Valid():
		panic("saguaro: cactus segment length range is inverted")
	case cfg.MinSegments < 0 || cfg.MinSegments > cfg.MaxSegments:
		panic("saguaro: cactus segment count bounds are invalid")
	case cfg.VerticalSkew <= 1:
		panic("saguaro: cactus vertical skew must be > 1")
	case !cfg.Speed.Valid():
		panic("saguaro: cactus speed range is inverted")
	}
	return &CactusGenerator{
		rng:           rng,
		depth:         cfg.Depth(),
		radius:        cfg.CactusRadius,
		segmentLength: cfg.SegmentLength,
		minSegments:   cfg.MinSegments,
		maxSegments:   cfg.MaxSegments,
		skew:          cfg.VerticalSkew,
		baseColor:     cfg.CactusColor,
		green:         cfg.CactusGreen,
		speed:         cfg.Speed,
		available:     make([]Growth, 0, len(allGrowths)),
	}
}

// Cacti returns the live cacti in ascending depth order. The returned slice
// MUST NOT be mutated.
func (g *CactusGenerator) Cacti() []*Cactus {
	return g.cacti
}

// Len returns the number of live cacti.
func (g *CactusGenerator) Len() int {
	return len(g.cacti)
}

// GenerateBatch grows count cacti with anchor x drawn from sampleX and adds
// them to the collection, which stays sorted by depth.
func (g *CactusGenerator) GenerateBatch(count int, sampleX XSampler) {
	for i := 0; i < count; i++ {
		x := sampleX(g.rng)
		g.cacti = append(g.cacti, g.grow(x))
	}
	slices.SortStableFunc(g.cacti, func(a, b *Cactus) int {
		return cmp.Compare(a.Anchor.Y, b.Anchor.Y)
	})
}

// Evict removes every cactus for which keep returns false and reports how
// many were removed. Depth order is preserved.
func (g *CactusGenerator) Evict(keep func(*Cactus) bool) int {
	before := len(g.cacti)
	g.cacti = slices.DeleteFunc(g.cacti, func(c *Cactus) bool {
		return !keep(c)
	})
	return before - len(g.cacti)
}

// Speed returns the parallax speed of a cactus: nearer cacti (larger depth)
// move faster.
func (g *CactusGenerator) Speed(c *Cactus) float64 {
	return mapToRange(c.Anchor.Y, g.depth.Min, g.depth.Max, g.speed.Min, g.speed.Max)
}

// depthColor darkens the green channel as depth increases.
func (g *CactusGenerator) depthColor(y float64) Color {
	c := g.baseColor
	c.G = clampChannel(math.Floor(mapToRange(y, g.depth.Min, g.depth.Max, g.green.Max, g.green.Min)))
	return c
}

// grow builds one cactus anchored at x.
func (g *CactusGenerator) grow(x float64) *Cactus {
	y := uniformRange(g.rng, g.depth)
	c := &Cactus{
		Anchor: Vec2{x, y},
		Radius: uniformRange(g.rng, g.radius),
		Color:  g.depthColor(y),
	}
	trunk := uniformRange(g.rng, g.segmentLength)
	c.Nodes = append(c.Nodes, CactusNode{Position: Vec2{x, y - trunk}, Parent: -1})

	segments := intBetween(g.rng, g.minSegments, g.maxSegments)
	for i := 0; i < segments; i++ {
		idx := g.pickNode(c)
		dir := g.chooseGrowth(c.Nodes[idx].Used)
		to := c.Nodes[idx].Position.Add(dir.scaled(uniformRange(g.rng, g.segmentLength)))

		n := &c.Nodes[idx]
		n.Segments = append(n.Segments, Segment{From: idx, Growth: dir, To: to})
		n.Used = n.Used.With(dir)
		c.Nodes = append(c.Nodes, CactusNode{Position: to, Parent: idx})
	}

	// Every node keeps growing upward, even the ones that only branched
	// sideways or not at all.
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if n.Used.Has(GrowUp) {
			continue
		}
		to := n.Position.Add(GrowUp.scaled(uniformRange(g.rng, g.segmentLength)))
		n.Segments = append(n.Segments, Segment{From: i, Growth: GrowUp, To: to, Synthetic: true})
		n.Used = n.Used.With(GrowUp)
	}
	return c
}

// pickNode selects a node uniformly among those with a free direction.
func (g *CactusGenerator) pickNode(c *Cactus) int {
	g.eligible = g.eligible[:0]
	for i := range c.Nodes {
		if !c.Nodes[i].Used.Full() {
			g.eligible = append(g.eligible, i)
		}
	}
	if len(g.eligible) == 0 {
		panic("saguaro: no cactus node has a free growth direction")
	}
	return g.eligible[indexFrom(g.rng.Float64(), len(g.eligible))]
}

// chooseGrowth picks a free direction, biased upward.
func (g *CactusGenerator) chooseGrowth(used GrowthSet) Growth {
	avail := used.available(g.available)
	g.available = avail
	switch {
	case len(avail) == 1:
		return avail[0]
	case !slices.Contains(avail, GrowUp):
		return avail[indexFrom(g.rng.Float64(), len(avail))]
	}
	// avail is in ascending angle order, so GrowUp is last and the skewed
	// draw favors it.
	if avail[gammaIndex(g.rng, len(avail), g.skew)] == GrowUp {
		return GrowUp
	}
	lateral := avail[:len(avail)-1]
	return lateral[indexFrom(g.rng.Float64(), len(lateral))]
}
