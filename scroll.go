package saguaro

// ScrollController owns the scroll position, the direction latched from the
// two direction keys, and the furthest position reached each way.
//
// Watermarks only move outward. Reversing into already visited space moves
// the position but never reports a crossing.
type ScrollController struct {
	position  int
	low, high int
	direction Direction

	negativeDown bool
	positiveDown bool
}

// NewScrollController creates a controller at the given start position with
// both watermarks at that position.
func NewScrollController(start int) *ScrollController {
	return &ScrollController{position: start, low: start, high: start}
}

// Position returns the current scroll position.
func (s *ScrollController) Position() int { return s.position }

// LowWatermark returns the lowest position reached.
func (s *ScrollController) LowWatermark() int { return s.low }

// HighWatermark returns the highest position reached.
func (s *ScrollController) HighWatermark() int { return s.high }

// Direction returns the latched direction.
func (s *ScrollController) Direction() Direction { return s.direction }

// OnDirectionKeyDown latches the direction of the pressed key. The most
// recently pressed key wins while both are held.
func (s *ScrollController) OnDirectionKeyDown(k Key) {
	switch k {
	case KeyNegative:
		s.negativeDown = true
		s.direction = DirectionNegative
	case KeyPositive:
		s.positiveDown = true
		s.direction = DirectionPositive
	}
}

// OnDirectionKeyUp releases a key. If the opposite key is still held the
// direction falls back to it, otherwise scrolling stops.
func (s *ScrollController) OnDirectionKeyUp(k Key) {
	switch k {
	case KeyNegative:
		s.negativeDown = false
		if s.positiveDown {
			s.direction = DirectionPositive
		} else {
			s.direction = DirectionNone
		}
	case KeyPositive:
		s.positiveDown = false
		if s.negativeDown {
			s.direction = DirectionNegative
		} else {
			s.direction = DirectionNone
		}
	}
}

// Tick advances the position one step in the latched direction and reports
// whether a new extreme was reached. With no direction latched it is a no-op.
func (s *ScrollController) Tick() Crossing {
	switch s.direction {
	case DirectionNegative:
		s.position--
		if s.position < s.low {
			s.low = s.position
			return CrossedLow
		}
	case DirectionPositive:
		s.position++
		if s.position > s.high {
			s.high = s.position
			return CrossedHigh
		}
	}
	return CrossedNone
}
