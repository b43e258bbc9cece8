// Package termhost runs a saguaro scene in a terminal with tcell. Each
// cell shows two scene pixels using the upper half block, so a terminal of
// C×R cells displays a C×2R raster of the canvas.
package termhost

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/saguaro"
	"github.com/phanxgames/saguaro/raster"
)

// Options configures the terminal host.
type Options struct {
	// FPS is the tick rate. Zero means 30.
	FPS int
	// ReleaseAfter is how long a direction key counts as held after its
	// last press or autorepeat. Zero means 550ms, just above the usual
	// autorepeat delay.
	ReleaseAfter time.Duration
	// ShowStatus draws a one-line status bar on the top row.
	ShowStatus bool
}

const upperHalfBlock = '▀'

type renderer struct {
	*raster.Surface
	next func()
}

func (r *renderer) ScheduleNextFrame(fn func()) {
	r.next = fn
}

// Host owns the terminal screen and the animator it drives.
type Host struct {
	screen  tcell.Screen
	opts    Options
	cfg     saguaro.Config
	anim    *saguaro.SceneAnimator
	r       *renderer
	keys    keyState
	expired []saguaro.Key
}

// NewHost builds the animator. The screen is initialized by Run.
func NewHost(screen tcell.Screen, cfg saguaro.Config, rng saguaro.Rand, opts Options) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("termhost: %w", err)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.ReleaseAfter <= 0 {
		opts.ReleaseAfter = 550 * time.Millisecond
	}
	// Sized properly once the screen reports its dimensions.
	r := &renderer{Surface: raster.NewSurface(1, 1, cfg.Width, cfg.Height)}
	return &Host{
		screen: screen,
		opts:   opts,
		cfg:    cfg,
		anim:   saguaro.NewSceneAnimator(cfg, r, rng),
		r:      r,
		keys:   keyState{releaseAfter: opts.ReleaseAfter},
	}, nil
}

// Animator returns the scene animator.
func (h *Host) Animator() *saguaro.SceneAnimator {
	return h.anim
}

// Run initializes the screen and drives the scene until the user quits or
// ctx is done.
func (h *Host) Run(ctx context.Context) error {
	s := h.screen
	if err := s.Init(); err != nil {
		return fmt.Errorf("termhost: init screen: %w", err)
	}
	defer s.Fini()
	defer h.r.Close()
	s.Clear()
	s.HideCursor()
	if err := h.resize(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(s, events, done)

	tick := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer tick.Stop()

	saguaro.Logger().Info("terminal host started", "fps", h.opts.FPS)
	h.anim.Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
				if err := h.resize(); err != nil {
					return err
				}
			case *tcell.EventKey:
				if isQuit(e) {
					return nil
				}
				h.handleKey(e, time.Now())
			}
		case now := <-tick.C:
			if err := h.frame(now); err != nil {
				return err
			}
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalized
// or done is closed.
func pollEvents(s tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (h *Host) handleKey(e *tcell.EventKey, now time.Time) {
	k, ok := sceneKey(e)
	if !ok {
		return
	}
	if h.keys.press(k, now) {
		h.anim.OnKeyDown(k)
	}
}

// frame releases stale keys, runs the scheduled tick, and shows it.
func (h *Host) frame(now time.Time) error {
	h.expired = h.keys.expire(h.expired, now)
	for _, k := range h.expired {
		h.anim.OnKeyUp(k)
	}

	if next := h.r.next; next != nil {
		h.r.next = nil
		next()
	}
	if err := h.r.Err(); err != nil {
		return fmt.Errorf("termhost: render: %w", err)
	}
	h.blit()
	if h.opts.ShowStatus {
		h.drawStatus()
	}
	h.screen.Show()
	return nil
}

func (h *Host) resize() error {
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if err := h.r.Resize(cols, rows*2, h.cfg.Width, h.cfg.Height); err != nil {
		return fmt.Errorf("termhost: resize: %w", err)
	}
	saguaro.Logger().Debug("terminal resized", "cols", cols, "rows", rows)
	return nil
}

// blit copies the raster onto the screen, two pixel rows per cell row.
func (h *Host) blit() {
	w, ph := h.r.Width(), h.r.Height()
	pix := h.r.Pixels()
	for y := 0; y+1 < ph; y += 2 {
		top := y * w * 4
		bot := (y + 1) * w * 4
		for x := 0; x < w; x++ {
			i := x * 4
			fg := tcell.NewRGBColor(int32(pix[top+i]), int32(pix[top+i+1]), int32(pix[top+i+2]))
			bg := tcell.NewRGBColor(int32(pix[bot+i]), int32(pix[bot+i+1]), int32(pix[bot+i+2]))
			h.screen.SetContent(x, y/2, upperHalfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func (h *Host) drawStatus() {
	st := h.anim.State()
	line := fmt.Sprintf(" pos %d  %s  cacti %d  night %.2f  q quits ",
		st.Scroll.Position(), st.Scroll.Direction(), st.Cacti.Len(), st.Clock.NightOpacity())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, ch := range line {
		h.screen.SetContent(i, 0, ch, nil, style)
	}
}
