// Package ebitenhost runs a saguaro scene in an Ebitengine window.
//
// The animator ticks from Update into a saguaro.Recorder; Draw replays the
// recorded frame onto the screen. Arrow keys scroll the scene and Escape
// quits.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/saguaro"
)

// RunConfig configures the window.
type RunConfig struct {
	Title string
	// Scale multiplies the window size; the logical canvas stays at the
	// scene's configured size. Zero means 1.
	Scale float64
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
	// Antialias smooths circles, lines, and hills.
	Antialias bool
	// ScreenshotDir receives snapshot PNGs. Defaults to "screenshots".
	ScreenshotDir string
	// MaxFrames stops the game after that many ticks. Zero runs until the
	// window closes.
	MaxFrames int
}

// keyBindings maps Ebitengine keys to scene direction keys.
var keyBindings = [...]struct {
	ebiten ebiten.Key
	scene  saguaro.Key
}{
	{ebiten.KeyArrowLeft, saguaro.KeyLeft},
	{ebiten.KeyArrowRight, saguaro.KeyRight},
	{ebiten.KeyA, saguaro.KeyLeft},
	{ebiten.KeyD, saguaro.KeyRight},
}

// keyInput reports physical key state for the current frame.
type keyInput interface {
	justPressed(k ebiten.Key) bool
	justReleased(k ebiten.Key) bool
	pressed(k ebiten.Key) bool
}

type ebitenInput struct{}

func (ebitenInput) justPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenInput) justReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (ebitenInput) pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }

type keyReceiver interface {
	OnKeyDown(k saguaro.Key)
	OnKeyUp(k saguaro.Key)
}

// forwardKeys turns physical key transitions into scene key events. A scene
// key is released only when no key bound to it is still held.
func forwardKeys(dst keyReceiver, in keyInput) {
	for _, b := range keyBindings {
		if in.justPressed(b.ebiten) {
			dst.OnKeyDown(b.scene)
		}
	}
	var released [saguaro.KeyPositive + 1]bool
	for _, b := range keyBindings {
		if !in.justReleased(b.ebiten) || released[b.scene] || sceneKeyHeld(b.scene, in) {
			continue
		}
		released[b.scene] = true
		dst.OnKeyUp(b.scene)
	}
}

func sceneKeyHeld(k saguaro.Key, in keyInput) bool {
	for _, b := range keyBindings {
		if b.scene == k && in.pressed(b.ebiten) {
			return true
		}
	}
	return false
}

// Game implements ebiten.Game for a saguaro scene.
type Game struct {
	cfg     RunConfig
	anim    *saguaro.SceneAnimator
	rec     *saguaro.Recorder
	surface *Surface
	fps     *fpsOverlay
	width   int
	height  int
	frames  int
}

// NewGame builds the animator and starts it against a recorder. The first
// tick runs on the first Update.
func NewGame(scene saguaro.Config, rng saguaro.Rand, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	rec := saguaro.NewRecorder(true)
	g := &Game{
		cfg:     cfg,
		anim:    saguaro.NewSceneAnimator(scene, rec.Surface(), rng),
		rec:     rec,
		surface: NewSurface(nil, cfg.Antialias),
		width:   int(scene.Width),
		height:  int(scene.Height),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	g.anim.Start()
	return g
}

// Animator returns the scene animator, for attaching sinks, test runners,
// and debug mode before Run.
func (g *Game) Animator() *saguaro.SceneAnimator {
	return g.anim
}

// Update forwards key transitions and runs the scheduled tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	forwardKeys(g.anim, ebitenInput{})

	g.rec.RunPending()
	g.frames++

	if g.fps != nil {
		st := g.anim.State()
		g.fps.update(1/float64(ebiten.TPS()), st.Scroll.Position(), st.Cacti.Len())
	}
	if g.cfg.MaxFrames > 0 && g.frames >= g.cfg.MaxFrames {
		return ebiten.Termination
	}
	return nil
}

// Draw replays the most recent tick onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.rec.Replay(g.surface)
	g.flushSnapshots(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout keeps the logical screen at the scene size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it closes.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(int(float64(g.width)*g.cfg.Scale), int(float64(g.height)*g.cfg.Scale))
	saguaro.Logger().Info("window opened", "title", g.cfg.Title, "width", g.width, "height", g.height)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
