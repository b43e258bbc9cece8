package saguaro

import "time"

// debugStats holds per-tick timing and draw-call metrics.
// Only populated when the animator is in debug mode.
type debugStats struct {
	paintTime    time.Duration
	simTime      time.Duration
	drawCalls    int
	cacti        int
	segments     int
	nightOpacity float64
}

// debugLog writes tick stats at debug level.
func (a *SceneAnimator) debugLog(stats debugStats) {
	if !a.debug {
		return
	}
	st := a.state
	Logger().Debug("tick",
		"frame", st.Frame,
		"paint", stats.paintTime,
		"sim", stats.simTime,
		"total", stats.paintTime+stats.simTime,
		"draw_calls", stats.drawCalls,
		"cacti", stats.cacti,
		"segments", stats.segments,
		"position", st.Scroll.Position(),
		"night_opacity", stats.nightOpacity,
	)
}

// debugMaxCacti is the first cactus count that triggers a growth warning.
// Later warnings fire each time the count doubles again.
const debugMaxCacti = 1000

// debugCheckCactusCount warns when the unbounded collection keeps growing.
func (a *SceneAnimator) debugCheckCactusCount() {
	n := a.state.Cacti.Len()
	if a.cactiWarnAt == 0 {
		a.cactiWarnAt = debugMaxCacti
	}
	if n <= a.cactiWarnAt {
		return
	}
	Logger().Warn("cactus collection is growing without bound",
		"cacti", n, "threshold", a.cactiWarnAt, "evict_offscreen", a.state.Config.EvictOffscreen)
	for a.cactiWarnAt < n {
		a.cactiWarnAt *= 2
	}
}

// countSegments counts painted segments including trunks.
func countSegments(cacti []*Cactus) int {
	n := 0
	for _, c := range cacti {
		n += 1 + c.SegmentCount()
	}
	return n
}
