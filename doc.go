// Package saguaro is a procedurally generated, side-scrolling desert scene:
// a day/night sky with stars, two parallax hill layers, sand, and branching
// saguaro cacti that are grown on demand as the viewer scrolls into new
// territory.
//
// The package is renderer-agnostic. A host supplies a [Renderer] (a
// [Surface] plus a [Scheduler]) and forwards two direction keys; the
// [SceneAnimator] does the rest. Ready-made hosts live in sub-packages:
// ebitenhost (window), termhost (terminal), and pnghost (headless PNG
// frames).
//
// # Quick start
//
//	anim := saguaro.NewSceneAnimator(saguaro.DefaultConfig(), renderer, saguaro.NewRand(42))
//	anim.Start()
//	// host: call anim.OnKeyDown(saguaro.KeyRight) / anim.OnKeyUp(...) on input
//
// For deterministic tests drive [SceneAnimator.Tick] directly against a
// [Recorder]:
//
//	rec := saguaro.NewRecorder(true)
//	anim := saguaro.NewSceneAnimator(cfg, rec.Surface(), saguaro.NewRand(1))
//	anim.Tick()
//	cmds := rec.Commands()
//
// # Frame order
//
// Each tick paints clear, sky, stars, back hills, front hills, ground, and
// then every cactus from farthest to nearest. After painting it scrolls one
// step, grows a batch of cacti when a new extreme lands on a spawn
// boundary, and advances the day/night clock.
//
// # Configuration
//
// [DefaultConfig] is the stock scene. [LoadConfig] overlays an INI document
// on the defaults:
//
//	[canvas]
//	width = 1024
//	height = 576
//
//	[cactus]
//	batch_size = 10
//	evict_offscreen = true
//
// # Randomness
//
// Every sampling point draws from one [Rand]. [NewRand] gives a seeded PCG
// source; [SequenceRand] replays fixed values.
//
// # Events and logging
//
// An [EventSink] receives watermark crossings, generated batches,
// evictions, and clock wraps (see saguaro/ecs for a Donburi adapter).
// Logging goes through log/slog and is silent until [SetLogger] is called.
package saguaro
