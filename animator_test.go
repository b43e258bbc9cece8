package saguaro

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// eventLog is an EventSink that keeps every event.
type eventLog struct {
	events []SceneEvent
}

func (l *eventLog) EmitEvent(e SceneEvent) {
	l.events = append(l.events, e)
}

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestAnimator(t *testing.T, cfg Config, seed uint64) (*SceneAnimator, *Recorder) {
	t.Helper()
	rec := NewRecorder(true)
	return NewSceneAnimator(cfg, rec.Surface(), NewRand(seed)), rec
}

func TestTick_FirstFrameOrder(t *testing.T) {
	cfg := DefaultConfig()
	a, rec := newTestAnimator(t, cfg, 1)
	a.Tick()

	cmds := rec.Commands()
	i := 0
	expect := func(ct CommandType, what string) DrawCommand {
		t.Helper()
		if i >= len(cmds) || cmds[i].Type != ct {
			t.Fatalf("command %d: want %v (%s), got %+v", i, ct, what, cmds[min(i, len(cmds)-1)])
		}
		i++
		return cmds[i-1]
	}

	expect(CommandClear, "clear")
	sky := expect(CommandRect, "sky")
	if sky.Color != cfg.SkyColor || sky.W != cfg.Width || sky.H != cfg.Height {
		t.Errorf("sky = %+v", sky)
	}
	for range cfg.TotalStars {
		star := expect(CommandCircle, "star")
		if star.R != cfg.StarRadius || star.Color != cfg.SkyColor {
			t.Errorf("daytime star = %+v", star)
		}
	}
	back := expect(CommandPolygon, "back hills")
	front := expect(CommandPolygon, "front hills")
	if back.Color != cfg.BackHills.Color || front.Color != cfg.FrontHills.Color {
		t.Errorf("hill colors = %v, %v", back.Color, front.Color)
	}
	ground := expect(CommandRect, "ground")
	if ground.Color != cfg.SandColor || ground.Y != cfg.Ground() {
		t.Errorf("ground = %+v", ground)
	}

	st := a.State()
	if got := len(st.Stars.Stars()); got != cfg.TotalStars {
		t.Errorf("stars = %d, want %d", got, cfg.TotalStars)
	}
	if st.Cacti.Len() != 3*cfg.CactiPerBatch {
		t.Errorf("cacti = %d, want %d", st.Cacti.Len(), 3*cfg.CactiPerBatch)
	}

	want := 0
	for _, c := range st.Cacti.Cacti() {
		want += 3 * (1 + c.SegmentCount())
	}
	rest := cmds[i:]
	if len(rest) != want {
		t.Fatalf("cactus primitives = %d, want %d", len(rest), want)
	}
	for j, c := range rest {
		if c.Type != CommandCircle && c.Type != CommandLine {
			t.Fatalf("cactus primitive %d is %v", j, c.Type)
		}
	}
}

func TestTick_CactusSegmentShape(t *testing.T) {
	cfg := DefaultConfig()
	a, rec := newTestAnimator(t, cfg, 2)
	a.Tick()

	c := a.State().Cacti.Cacti()[0]
	cmds := rec.Commands()
	// Skip clear, sky, stars, two hills, ground.
	first := cmds[1+1+cfg.TotalStars+2+1:]
	cap1, line, cap2 := first[0], first[1], first[2]

	if cap1.X != c.Anchor.X || cap1.Y != c.Anchor.Y || cap1.R != c.Radius {
		t.Errorf("trunk base cap = %+v, anchor %v", cap1, c.Anchor)
	}
	if line.Width != 2*c.Radius || line.X2 != c.Nodes[0].Position.X || line.Y2 != c.Nodes[0].Position.Y {
		t.Errorf("trunk line = %+v", line)
	}
	if cap2.X != c.Nodes[0].Position.X || cap2.Y != c.Nodes[0].Position.Y {
		t.Errorf("trunk top cap = %+v", cap2)
	}
	if cap1.Color != c.Color {
		t.Errorf("daytime cactus color = %v, want %v", cap1.Color, c.Color)
	}
}

func TestTick_ParallaxOffset(t *testing.T) {
	cfg := DefaultConfig()
	a, rec := newTestAnimator(t, cfg, 3)
	a.OnKeyDown(KeyRight)
	for range 10 {
		a.Tick()
	}
	// Paint happens before scrolling, so the 11th tick paints position 10.
	a.Tick()

	st := a.State()
	c := st.Cacti.Cacti()[0]
	offset := 10 * st.Cacti.Speed(c)
	cmds := rec.Commands()
	cap1 := cmds[1+1+cfg.TotalStars+2+1]
	if cap1.X != c.Anchor.X-offset || cap1.Y != c.Anchor.Y {
		t.Errorf("painted at (%v,%v), want (%v,%v)", cap1.X, cap1.Y, c.Anchor.X-offset, c.Anchor.Y)
	}
	if c.Anchor.X == cap1.X {
		t.Error("stored coordinates should not move")
	}
}

func TestTick_Deterministic(t *testing.T) {
	run := func() []DrawCommand {
		a, rec := newTestAnimator(t, DefaultConfig(), 77)
		a.OnKeyDown(KeyLeft)
		for range 45 {
			a.Tick()
		}
		return append([]DrawCommand(nil), rec.Commands()...)
	}
	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different frames")
	}
}

func TestTick_GenerationGate(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := newTestAnimator(t, cfg, 5)
	log := &eventLog{}
	a.SetEventSink(log)

	a.OnKeyDown(KeyRight)
	for range 120 {
		a.Tick()
	}
	if got := log.count(EventWatermarkCrossed); got != 120 {
		t.Errorf("crossings = %d, want 120", got)
	}
	if got := log.count(EventBatchGenerated); got != 3 {
		t.Errorf("batches = %d, want 3 (positions 40, 80, 120)", got)
	}
	st := a.State()
	if st.Cacti.Len() != 6*cfg.CactiPerBatch {
		t.Errorf("cacti = %d", st.Cacti.Len())
	}

	// High-side batches land in [p*max+W, p*max+2W].
	for _, e := range log.events {
		if e.Type == EventBatchGenerated && e.Crossing != CrossedHigh {
			t.Errorf("batch on %v", e.Crossing)
		}
	}
	maxSpeed := cfg.Speed.Max
	var inBand int
	for _, c := range st.Cacti.Cacti() {
		x := c.Anchor.X
		for _, p := range []float64{40, 80, 120} {
			if x >= p*maxSpeed+cfg.Width && x < p*maxSpeed+2*cfg.Width {
				inBand++
				break
			}
		}
	}
	if inBand < 3*cfg.CactiPerBatch {
		t.Errorf("only %d cacti in generated bands", inBand)
	}

	// Turning back over visited ground spawns nothing.
	a.OnKeyUp(KeyRight)
	a.OnKeyDown(KeyLeft)
	for range 120 {
		a.Tick()
	}
	if got := log.count(EventBatchGenerated); got != 3 {
		t.Errorf("batches after reversal = %d, want 3", got)
	}
	for range 40 {
		a.Tick()
	}
	if got := log.count(EventBatchGenerated); got != 4 {
		t.Errorf("batches after new low = %d, want 4", got)
	}
	last := log.events[len(log.events)-1]
	if last.Type != EventBatchGenerated || last.Crossing != CrossedLow || last.Position != -40 {
		t.Errorf("last event = %+v", last)
	}
}

func TestTick_LowBatchBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CactiPerBatch = 0
	a, _ := newTestAnimator(t, cfg, 6)
	a.Tick() // seed nothing
	a.State().Config.CactiPerBatch = 5
	a.OnKeyDown(KeyLeft)
	for range 40 {
		a.Tick()
	}
	cacti := a.State().Cacti.Cacti()
	if len(cacti) != 5 {
		t.Fatalf("cacti = %d, want 5", len(cacti))
	}
	lo, hi := -40*cfg.Speed.Max-cfg.Width, -40*cfg.Speed.Max
	for _, c := range cacti {
		if c.Anchor.X < lo || c.Anchor.X >= hi {
			t.Errorf("low batch cactus at %v outside [%v, %v)", c.Anchor.X, lo, hi)
		}
	}
}

func TestTick_Eviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EvictOffscreen = true
	a, _ := newTestAnimator(t, cfg, 8)
	log := &eventLog{}
	a.SetEventSink(log)

	a.OnKeyDown(KeyRight)
	const ticks = 2000 // a multiple of the spawn spacing
	for range ticks {
		a.Tick()
	}
	st := a.State()
	if st.Cacti.Len() >= 3*cfg.CactiPerBatch+ticks/40*cfg.CactiPerBatch {
		t.Errorf("nothing evicted: %d cacti", st.Cacti.Len())
	}
	if log.count(EventEvicted) == 0 {
		t.Error("no eviction events")
	}
	for _, c := range st.Cacti.Cacti() {
		_, maxX := c.Bounds()
		if right := maxX - ticks*st.Cacti.Speed(c); right < -cfg.Width {
			t.Errorf("cactus right edge at %v, more than a width behind the view", right)
		}
	}
}

func TestTick_NoEvictionByDefault(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := newTestAnimator(t, cfg, 8)
	a.OnKeyDown(KeyRight)
	for range 400 {
		a.Tick()
	}
	if got, want := a.State().Cacti.Len(), 13*cfg.CactiPerBatch; got != want {
		t.Errorf("cacti = %d, want %d", got, want)
	}
}

// flushLog is an eventLog that records how many events each flush saw.
type flushLog struct {
	eventLog
	pending []int
	seen    int
}

func (l *flushLog) Flush() {
	l.pending = append(l.pending, len(l.events)-l.seen)
	l.seen = len(l.events)
}

func TestTick_FlushesSinkEveryTick(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := newTestAnimator(t, cfg, 5)
	log := &flushLog{}
	a.SetEventSink(log)

	a.OnKeyDown(KeyRight)
	for range 40 {
		a.Tick()
	}

	if len(log.pending) != 40 {
		t.Fatalf("flushes = %d, want one per tick", len(log.pending))
	}
	// One crossing per tick, plus a batch on the 40th.
	for i, n := range log.pending[:39] {
		if n != 1 {
			t.Errorf("tick %d flushed %d events, want 1", i+1, n)
		}
	}
	if n := log.pending[39]; n != 2 {
		t.Errorf("tick 40 flushed %d events, want 2", n)
	}
}

func TestTick_ClockAndNight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTime = 10
	cfg.TotalStars = 1
	a, rec := newTestAnimator(t, cfg, 9)
	log := &eventLog{}
	a.SetEventSink(log)

	for range 5 {
		a.Tick()
	}
	// The sixth tick paints time 5, the darkest point.
	a.Tick()
	sky := rec.Commands()[1]
	if want := Blend(cfg.SkyColor, cfg.NightColor, cfg.NightOpacity.Max); sky.Color != want {
		t.Errorf("midnight sky = %v, want %v", sky.Color, want)
	}
	for range 5 {
		a.Tick()
	}
	if got := log.count(EventCycleWrapped); got != 1 {
		t.Errorf("wraps = %d, want 1", got)
	}
	if a.State().Clock.Time() != 0 {
		t.Errorf("time = %d", a.State().Clock.Time())
	}
}

func TestTick_ColumnHills(t *testing.T) {
	cfg := DefaultConfig()
	rec := NewRecorder(false)
	a := NewSceneAnimator(cfg, rec, NewRand(1))
	a.Tick()
	st := rec.Stats()
	if st.ByType[CommandPolygon] != 0 {
		t.Error("plain surface received polygons")
	}
	// sky + ground + one column per pixel for each hill layer
	if want := 2 + 2*(int(cfg.Width)+1); st.ByType[CommandRect] != want {
		t.Errorf("rects = %d, want %d", st.ByType[CommandRect], want)
	}
}

func TestStart(t *testing.T) {
	a, rec := newTestAnimator(t, DefaultConfig(), 1)
	if a.Running() {
		t.Fatal("animator should start idle")
	}
	a.Start()
	if !a.Running() {
		t.Fatal("Start should mark the animator running")
	}
	if len(rec.Commands()) != 0 {
		t.Error("Start should only schedule, not paint")
	}
	for range 3 {
		if !rec.RunPending() {
			t.Fatal("each frame should schedule the next")
		}
	}
	if a.State().Frame != 3 {
		t.Errorf("frame = %d, want 3", a.State().Frame)
	}

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(fmt.Sprint(r), "already running") {
			t.Errorf("second Start: recover = %v", r)
		}
	}()
	a.Start()
}

func TestNewSceneAnimator_Panics(t *testing.T) {
	t.Run("nil renderer", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewSceneAnimator(DefaultConfig(), nil, NewRand(1))
	})
	t.Run("invalid config", func(t *testing.T) {
		defer func() {
			r := recover()
			if r == nil || !strings.Contains(fmt.Sprint(r), "invalid config") {
				t.Errorf("recover = %v", r)
			}
		}()
		cfg := DefaultConfig()
		cfg.MaxTime = 1
		NewSceneAnimator(cfg, NewRecorder(false), NewRand(1))
	})
}
