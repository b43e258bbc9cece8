package pnghost

import (
	"context"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/phanxgames/saguaro"
)

func smallConfig() saguaro.Config {
	cfg := saguaro.DefaultConfig()
	cfg.Width, cfg.Height = 160, 90
	cfg.TotalStars = 5
	return cfg
}

func TestNewHost_Validation(t *testing.T) {
	if _, err := NewHost(smallConfig(), saguaro.NewRand(1), Options{}); err == nil {
		t.Error("expected error for zero frames")
	}
	bad := smallConfig()
	bad.CactusRadius = saguaro.Range{Min: 9, Max: 3}
	if _, err := NewHost(bad, saguaro.NewRand(1), Options{Frames: 1}); err == nil {
		t.Error("expected error for inverted radius")
	}
}

func TestHost_WritesFrames(t *testing.T) {
	dir := t.TempDir()
	h, err := NewHost(smallConfig(), saguaro.NewRand(3), Options{
		Frames: 4,
		Every:  2,
		Dir:    dir,
		Hold:   saguaro.KeyRight,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	written := h.Written()
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 files", written)
	}
	if !strings.HasSuffix(written[1], "frame_00004.png") {
		t.Errorf("last file = %q", written[1])
	}

	f, err := os.Open(written[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Errorf("image size = %dx%d, want 160x90", b.Dx(), b.Dy())
	}

	if pos := h.Animator().State().Scroll.Position(); pos != 4 {
		t.Errorf("position = %d, want 4", pos)
	}
}

func TestHost_ScriptSnapshots(t *testing.T) {
	dir := t.TempDir()
	h, err := NewHost(smallConfig(), saguaro.NewRand(3), Options{Frames: 6, Dir: dir, Scale: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	runner, err := saguaro.LoadTestScript([]byte(`{"steps": [
		{"action": "tap", "key": "right"},
		{"action": "snapshot", "label": "after tap"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.Animator().SetTestRunner(runner)

	if err := h.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	var snaps int
	for _, p := range h.Written() {
		if strings.HasSuffix(p, "after_tap.png") {
			snaps++
		}
	}
	if snaps != 1 {
		t.Errorf("snapshots = %d in %v, want 1", snaps, h.Written())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestHost_Cancelled(t *testing.T) {
	h, err := NewHost(smallConfig(), saguaro.NewRand(1), Options{Frames: 10, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Run(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
