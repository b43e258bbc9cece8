// Command saguaro shows the procedurally generated desert scene.
//
//	saguaro                          # window, arrow keys scroll
//	saguaro -backend terminal        # tcell, half-block pixels
//	saguaro -backend png -frames 300 -every 60 -hold right -out frames/
//
// A JSON script (-script) can drive keys and snapshots in any backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"github.com/phanxgames/saguaro"
	"github.com/phanxgames/saguaro/ebitenhost"
	"github.com/phanxgames/saguaro/ecs"
	"github.com/phanxgames/saguaro/pnghost"
	"github.com/phanxgames/saguaro/termhost"

	"github.com/yohamta/donburi"
)

type options struct {
	backend    string
	configPath string
	seed       uint64
	debug      bool
	frames     int
	every      int
	out        string
	script     string
	hold       string
	scale      float64
	fps        int
	logPath    string
	showFPS    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("saguaro", flag.ContinueOnError)
	fs.StringVar(&o.backend, "backend", "window", "window, terminal, or png")
	fs.StringVar(&o.configPath, "config", "", "INI file overlaid on the default scene")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.BoolVar(&o.debug, "debug", false, "log per-tick stats")
	fs.IntVar(&o.frames, "frames", 0, "stop after this many ticks (png backend requires it)")
	fs.IntVar(&o.every, "every", 0, "png: write every Nth frame (0 writes only the last)")
	fs.StringVar(&o.out, "out", "screenshots", "directory for frames and snapshots")
	fs.StringVar(&o.script, "script", "", "JSON test script driving keys and snapshots")
	fs.StringVar(&o.hold, "hold", "", "png: hold a direction key (left or right) for the whole run")
	fs.Float64Var(&o.scale, "scale", 1, "window or png scale factor")
	fs.IntVar(&o.fps, "fps", 30, "terminal: ticks per second")
	fs.StringVar(&o.logPath, "log", "", "log file (defaults to stderr, or nothing for the terminal backend)")
	fs.BoolVar(&o.showFPS, "show-fps", false, "window: FPS overlay; terminal: status bar")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch o.backend {
	case "window", "terminal", "png":
	default:
		return o, fmt.Errorf("unknown backend %q", o.backend)
	}
	if o.backend == "png" && o.frames <= 0 {
		return o, errors.New("png backend needs -frames")
	}
	return o, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "saguaro:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(o)
	if err != nil {
		return err
	}
	defer closeLog()
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	saguaro.SetLogger(logger)
	gg.SetLogger(logger)

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("scene configured", "seed", seed, "backend", o.backend, "config", o.configPath)
	rng := saguaro.NewRand(seed)

	var runner *saguaro.TestRunner
	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return err
		}
		if runner, err = saguaro.LoadTestScript(data); err != nil {
			return err
		}
	}

	world := donburi.NewWorld()
	var tally ecs.Tally
	tally.Subscribe(world)
	setup := func(a *saguaro.SceneAnimator) {
		a.SetDebugMode(o.debug)
		a.SetEventSink(ecs.NewDonburiSink(world))
		if runner != nil {
			a.SetTestRunner(runner)
		}
	}
	defer func() {
		logger.Info("scene events", "crossings", tally.Crossings, "batches", tally.Batches,
			"evicted", tally.Evicted, "wraps", tally.Wraps, "cacti", tally.LastTotal)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch o.backend {
	case "png":
		var hold saguaro.Key
		if o.hold != "" {
			if hold, err = saguaro.ParseKey(o.hold); err != nil {
				return err
			}
		}
		h, err := pnghost.NewHost(cfg, rng, pnghost.Options{
			Frames: o.frames,
			Every:  o.every,
			Dir:    o.out,
			Scale:  o.scale,
			Hold:   hold,
		})
		if err != nil {
			return err
		}
		setup(h.Animator())
		return h.Run(ctx)

	case "terminal":
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		h, err := termhost.NewHost(screen, cfg, rng, termhost.Options{FPS: o.fps, ShowStatus: o.showFPS})
		if err != nil {
			return err
		}
		setup(h.Animator())
		return h.Run(ctx)

	default:
		if err := cfg.Validate(); err != nil {
			return err
		}
		g := ebitenhost.NewGame(cfg, rng, ebitenhost.RunConfig{
			Title:         "Saguaro",
			Scale:         o.scale,
			ShowFPS:       o.showFPS,
			Antialias:     true,
			ScreenshotDir: o.out,
			MaxFrames:     o.frames,
		})
		setup(g.Animator())
		return ebitenhost.Run(g)
	}
}

func loadConfig(path string) (saguaro.Config, error) {
	if path == "" {
		return saguaro.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return saguaro.Config{}, err
	}
	return saguaro.LoadConfig(data)
}

// openLog picks the log destination. The terminal backend owns the screen,
// so it logs nowhere unless a file is given.
func openLog(o options) (io.Writer, func(), error) {
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if o.backend == "terminal" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}
