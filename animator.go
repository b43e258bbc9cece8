package saguaro

import (
	"fmt"
	"time"
)

// SceneState is everything a tick reads and mutates. It is owned by a
// single SceneAnimator and touched only from its tick and key handlers.
type SceneState struct {
	Config Config

	Clock      *DayNightCycle
	Scroll     *ScrollController
	Cacti      *CactusGenerator
	Stars      *StarField
	BackHills  HillLayer
	FrontHills HillLayer

	// Rand is the single random source behind every sampling point.
	Rand Rand

	// Frame counts completed ticks.
	Frame uint64

	seeded bool
}

// NewSceneState samples the hill layers and builds the remaining state
// from cfg. Stars and cacti are populated lazily on the first tick.
func NewSceneState(cfg Config, rng Rand) *SceneState {
	return &SceneState{
		Config:     cfg,
		Clock:      NewDayNightCycle(cfg.MaxTime, cfg.NightOpacity.Min, cfg.NightOpacity.Max),
		Scroll:     NewScrollController(cfg.StartPosition),
		Cacti:      NewCactusGenerator(cfg, rng),
		Stars:      NewStarField(cfg.TotalStars, cfg.Width, cfg.Ground()),
		BackHills:  NewHillLayer(cfg.BackHills, cfg.Width, cfg.Height, rng),
		FrontHills: NewHillLayer(cfg.FrontHills, cfg.Width, cfg.Height, rng),
		Rand:       rng,
	}
}

// SceneAnimator drives the desert scene: one Tick paints a frame onto the
// renderer and then advances scrolling, generation, and the clock.
type SceneAnimator struct {
	state    *SceneState
	renderer Renderer
	polygons PolygonFiller
	sink     EventSink
	running  bool
	debug    bool

	drawCalls   int
	cactiWarnAt int
	outline     []Vec2

	injectQueue   []syntheticKeyEvent
	testRunner    *TestRunner
	snapshotQueue []string
}

// NewSceneAnimator creates an idle animator. A nil rng seeds one from the
// clock. Panics if cfg does not validate or r is nil.
func NewSceneAnimator(cfg Config, r Renderer, rng Rand) *SceneAnimator {
	if r == nil {
		panic("saguaro: animator needs a renderer")
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("saguaro: invalid config: %v", err))
	}
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	a := &SceneAnimator{
		state:    NewSceneState(cfg, rng),
		renderer: r,
		outline:  make([]Vec2, 0, int(cfg.Width)+3),
	}
	a.polygons, _ = r.(PolygonFiller)
	return a
}

// State returns the animator's state. Mutating it between ticks is allowed;
// mutating it from another goroutine is not.
func (a *SceneAnimator) State() *SceneState {
	return a.state
}

// SetEventSink sets the optional receiver of scene events. Pass nil to stop
// emitting.
func (a *SceneAnimator) SetEventSink(sink EventSink) {
	a.sink = sink
}

// SetDebugMode enables per-tick stats logging at debug level and warnings
// about cactus growth.
func (a *SceneAnimator) SetDebugMode(enabled bool) {
	a.debug = enabled
}

// Running reports whether Start has been called.
func (a *SceneAnimator) Running() bool {
	return a.running
}

// Start begins the frame loop by scheduling the first tick. Every tick
// schedules the next one. Panics if already running.
func (a *SceneAnimator) Start() {
	if a.running {
		panic("saguaro: animator already running")
	}
	a.running = true
	Logger().Info("scene started",
		"width", a.state.Config.Width, "height", a.state.Config.Height,
		"polygons", a.polygons != nil)
	a.renderer.ScheduleNextFrame(a.frame)
}

func (a *SceneAnimator) frame() {
	a.Tick()
	a.renderer.ScheduleNextFrame(a.frame)
}

// OnKeyDown handles a direction key press.
func (a *SceneAnimator) OnKeyDown(k Key) {
	a.state.Scroll.OnDirectionKeyDown(k)
}

// OnKeyUp handles a direction key release.
func (a *SceneAnimator) OnKeyUp(k Key) {
	a.state.Scroll.OnDirectionKeyUp(k)
}

// Tick runs one frame: paint background and foreground for the current
// position and time, then scroll, generate, and advance the clock. It does
// not schedule another frame.
func (a *SceneAnimator) Tick() {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	if a.testRunner != nil {
		a.testRunner.step(a)
	}
	a.processInjectedInput()

	st := a.state
	a.drawCalls = 0
	opacity := st.Clock.NightOpacity()
	a.clear()
	a.paintBackground(opacity)
	a.paintForeground(opacity)

	var t1 time.Time
	if a.debug {
		t1 = time.Now()
	}

	a.advance()

	if a.debug {
		a.debugLog(debugStats{
			paintTime:    t1.Sub(t0),
			simTime:      time.Since(t1),
			drawCalls:    a.drawCalls,
			cacti:        st.Cacti.Len(),
			segments:     countSegments(st.Cacti.Cacti()),
			nightOpacity: opacity,
		})
		a.debugCheckCactusCount()
	}
	if f, ok := a.sink.(EventFlusher); ok {
		f.Flush()
	}
	st.Frame++
}

// paintBackground draws the sky, stars, and both hill layers.
func (a *SceneAnimator) paintBackground(opacity float64) {
	st := a.state
	cfg := &st.Config

	a.fillRect(0, 0, cfg.Width, cfg.Height, Blend(cfg.SkyColor, cfg.NightColor, opacity))

	st.Stars.Ensure(st.Rand)
	starColor := StarColor(cfg.SkyColor, cfg.NightColor, cfg.StarColor, opacity)
	for _, s := range st.Stars.Stars() {
		a.fillCircle(s.X, s.Y, cfg.StarRadius, starColor)
	}

	pos := st.Scroll.Position()
	a.paintHills(st.BackHills, pos, opacity)
	a.paintHills(st.FrontHills, pos, opacity)
}

func (a *SceneAnimator) paintHills(h HillLayer, position int, opacity float64) {
	cfg := &a.state.Config
	a.outline = h.Outline(a.outline, cfg.Width, cfg.Height, position)
	c := Blend(h.Color, cfg.NightColor, opacity)
	if a.polygons != nil {
		a.drawCalls++
		a.polygons.FillPolygon(a.outline, c)
		return
	}
	a.drawCalls += len(a.outline) - 2
	fillOutlineColumns(a.renderer, a.outline, c)
}

// paintForeground draws the ground and every cactus, farthest first.
func (a *SceneAnimator) paintForeground(opacity float64) {
	st := a.state
	cfg := &st.Config
	ground := cfg.Ground()
	a.fillRect(0, ground, cfg.Width, cfg.Height-ground, Blend(cfg.SandColor, cfg.NightColor, opacity))

	if !st.seeded {
		a.seedCacti()
	}

	pos := float64(st.Scroll.Position())
	for _, c := range st.Cacti.Cacti() {
		a.paintCactus(c, pos*st.Cacti.Speed(c), Blend(c.Color, cfg.NightColor, opacity))
	}
}

// seedCacti populates three screen-wide bands around the starting view.
func (a *SceneAnimator) seedCacti() {
	st := a.state
	cfg := &st.Config
	base := float64(st.Scroll.Position()) * cfg.Speed.Max
	for band := -1.0; band <= 1; band++ {
		lo := base + band*cfg.Width
		st.Cacti.GenerateBatch(cfg.CactiPerBatch, UniformX(lo, lo+cfg.Width))
	}
	st.seeded = true
	Logger().Info("cacti seeded", "cacti", st.Cacti.Len())
}

// paintCactus draws the trunk and every segment shifted left by offset.
// Stored coordinates are never modified.
func (a *SceneAnimator) paintCactus(c *Cactus, offset float64, col Color) {
	if len(c.Nodes) == 0 {
		return
	}
	shift := Vec2{-offset, 0}
	a.paintSegment(c.Anchor.Add(shift), c.Nodes[0].Position.Add(shift), c.Radius, col)
	for i := range c.Nodes {
		from := c.Nodes[i].Position.Add(shift)
		for _, s := range c.Nodes[i].Segments {
			a.paintSegment(from, s.To.Add(shift), c.Radius, col)
		}
	}
}

// paintSegment draws a rounded stroke: a cap at each end joined by a line
// as wide as the caps.
func (a *SceneAnimator) paintSegment(from, to Vec2, r float64, c Color) {
	a.fillCircle(from.X, from.Y, r, c)
	a.strokeLine(from.X, from.Y, to.X, to.Y, 2*r, c)
	a.fillCircle(to.X, to.Y, r, c)
}

// advance moves the simulation forward after the frame is painted.
func (a *SceneAnimator) advance() {
	st := a.state
	crossing := st.Scroll.Tick()
	if crossing != CrossedNone {
		pos := st.Scroll.Position()
		a.emit(SceneEvent{Type: EventWatermarkCrossed, Position: pos, Crossing: crossing, Total: st.Cacti.Len()})
		if pos%st.Config.SpawnSpacing() == 0 {
			a.generate(crossing, pos)
		}
	}
	if st.Clock.Advance() {
		a.emit(SceneEvent{Type: EventCycleWrapped, Position: st.Scroll.Position(), Total: st.Cacti.Len()})
	}
}

// generate grows a batch just beyond the view on the side being scrolled
// toward.
func (a *SceneAnimator) generate(crossing Crossing, pos int) {
	st := a.state
	cfg := &st.Config
	base := float64(pos) * cfg.Speed.Max

	var sample XSampler
	if crossing == CrossedLow {
		sample = UniformX(base-cfg.Width, base)
	} else {
		sample = UniformX(base+cfg.Width, base+2*cfg.Width)
	}
	st.Cacti.GenerateBatch(cfg.CactiPerBatch, sample)
	a.emit(SceneEvent{Type: EventBatchGenerated, Position: pos, Crossing: crossing, Count: cfg.CactiPerBatch, Total: st.Cacti.Len()})

	if cfg.EvictOffscreen {
		a.evict(crossing, pos)
	}
}

// evict drops cacti that are more than one screen width past the view
// behind the direction of travel.
func (a *SceneAnimator) evict(crossing Crossing, pos int) {
	st := a.state
	w := st.Config.Width
	n := st.Cacti.Evict(func(c *Cactus) bool {
		offset := float64(pos) * st.Cacti.Speed(c)
		minX, maxX := c.Bounds()
		if crossing == CrossedHigh {
			return maxX-offset >= -w
		}
		return minX-offset <= 2*w
	})
	if n > 0 {
		a.emit(SceneEvent{Type: EventEvicted, Position: pos, Crossing: crossing, Count: n, Total: st.Cacti.Len()})
	}
}

func (a *SceneAnimator) emit(e SceneEvent) {
	e.Frame = a.state.Frame
	if a.sink != nil {
		a.sink.EmitEvent(e)
	}
}

func (a *SceneAnimator) clear() {
	a.drawCalls++
	a.renderer.ClearSurface()
}

func (a *SceneAnimator) fillRect(x, y, w, h float64, c Color) {
	a.drawCalls++
	a.renderer.FillRect(x, y, w, h, c)
}

func (a *SceneAnimator) fillCircle(x, y, r float64, c Color) {
	a.drawCalls++
	a.renderer.FillCircle(x, y, r, c)
}

func (a *SceneAnimator) strokeLine(x1, y1, x2, y2, width float64, c Color) {
	a.drawCalls++
	a.renderer.StrokeLine(x1, y1, x2, y2, width, c)
}
