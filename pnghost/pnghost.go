// Package pnghost renders a saguaro scene headlessly and writes frames as
// PNG files. It is used for previews, CI snapshots, and scripted runs.
package pnghost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phanxgames/saguaro"
	"github.com/phanxgames/saguaro/raster"
)

// Options configures a headless run.
type Options struct {
	// Frames is the number of ticks to run. Must be positive.
	Frames int
	// Every writes every Nth frame. Zero writes only the final frame.
	Every int
	// Dir receives the PNG files. Defaults to the working directory.
	Dir string
	// Scale sizes the pixmap relative to the scene canvas. Zero means 1.
	Scale float64
	// Hold keeps a direction key pressed for the whole run. Zero holds
	// nothing.
	Hold saguaro.Key
}

// renderer adds synchronous frame scheduling to a raster surface.
type renderer struct {
	*raster.Surface
	next func()
}

func (r *renderer) ScheduleNextFrame(fn func()) {
	r.next = fn
}

// Host drives an animator frame by frame against an in-memory pixmap.
type Host struct {
	opts    Options
	anim    *saguaro.SceneAnimator
	r       *renderer
	written []string
}

// NewHost builds the animator and its surface.
func NewHost(cfg saguaro.Config, rng saguaro.Rand, opts Options) (*Host, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("pnghost: frames %d must be positive", opts.Frames)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pnghost: %w", err)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	w := max(1, int(cfg.Width*opts.Scale))
	h := max(1, int(cfg.Height*opts.Scale))
	r := &renderer{Surface: raster.NewSurface(w, h, cfg.Width, cfg.Height)}
	return &Host{
		opts: opts,
		anim: saguaro.NewSceneAnimator(cfg, r, rng),
		r:    r,
	}, nil
}

// Animator returns the scene animator, for attaching sinks and test
// runners before Run.
func (h *Host) Animator() *saguaro.SceneAnimator {
	return h.anim
}

// Written lists the files written so far.
func (h *Host) Written() []string {
	return h.written
}

// Run ticks Frames times, writing frames and snapshots as it goes. It
// stops early when ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer h.r.Close()
	if err := os.MkdirAll(h.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("pnghost: %w", err)
	}
	log := saguaro.Logger()

	if h.opts.Hold != 0 {
		h.anim.OnKeyDown(h.opts.Hold)
	}
	h.anim.Start()
	for frame := 1; frame <= h.opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := h.r.next
		h.r.next = nil
		next()
		if err := h.r.Err(); err != nil {
			return fmt.Errorf("pnghost: frame %d: %w", frame, err)
		}

		if h.shouldWrite(frame) {
			path := filepath.Join(h.opts.Dir, fmt.Sprintf("frame_%05d.png", frame))
			if err := h.save(path); err != nil {
				return err
			}
		}
		now := time.Now()
		for _, label := range h.anim.TakeSnapshots() {
			if err := h.save(saguaro.SnapshotPath(h.opts.Dir, label, now)); err != nil {
				return err
			}
		}
	}
	log.Info("headless run finished", "frames", h.opts.Frames, "files", len(h.written))
	return nil
}

func (h *Host) shouldWrite(frame int) bool {
	if h.opts.Every <= 0 {
		return frame == h.opts.Frames
	}
	return frame%h.opts.Every == 0
}

func (h *Host) save(path string) error {
	if err := h.r.Context().SavePNG(path); err != nil {
		return fmt.Errorf("pnghost: save %s: %w", path, err)
	}
	h.written = append(h.written, path)
	saguaro.Logger().Debug("frame written", "path", path)
	return nil
}
