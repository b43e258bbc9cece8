package saguaro

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLogger_DefaultSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestDebugMode_LogsTicks(t *testing.T) {
	buf := captureLogs(t)
	a, _ := newTestAnimator(t, DefaultConfig(), 1)

	a.Tick()
	if strings.Contains(buf.String(), "msg=tick") {
		t.Fatal("tick stats logged without debug mode")
	}

	a.SetDebugMode(true)
	a.Tick()
	out := buf.String()
	for _, want := range []string{"msg=tick", "draw_calls=", "cacti=21", "frame=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugMode_CactusWarning(t *testing.T) {
	buf := captureLogs(t)
	cfg := DefaultConfig()
	cfg.CactiPerBatch = 400
	a, _ := newTestAnimator(t, cfg, 1)
	a.SetDebugMode(true)

	a.Tick() // seeds 1200 cacti
	if !strings.Contains(buf.String(), "growing without bound") {
		t.Fatal("expected a growth warning")
	}
	if a.cactiWarnAt != 2*debugMaxCacti {
		t.Errorf("next threshold = %d, want %d", a.cactiWarnAt, 2*debugMaxCacti)
	}

	buf.Reset()
	a.Tick()
	if strings.Contains(buf.String(), "growing without bound") {
		t.Error("warning repeated without further growth")
	}
}

func TestDebugMode_DrawCalls(t *testing.T) {
	captureLogs(t)
	cfg := DefaultConfig()
	a, rec := newTestAnimator(t, cfg, 1)
	a.Tick()
	if got := rec.Stats().Total; a.drawCalls != got {
		t.Errorf("drawCalls = %d, recorder saw %d", a.drawCalls, got)
	}
}

func TestEventType_String(t *testing.T) {
	names := map[EventType]string{
		EventWatermarkCrossed: "watermark_crossed",
		EventBatchGenerated:   "batch_generated",
		EventEvicted:          "evicted",
		EventCycleWrapped:     "cycle_wrapped",
		EventType(99):         "unknown",
	}
	for et, want := range names {
		if got := et.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", et, got, want)
		}
	}
}
