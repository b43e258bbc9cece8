package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/saguaro"
)

// flushSnapshots captures the rendered frame for every queued label and
// writes each as a PNG file. Called at the end of Draw.
func (g *Game) flushSnapshots(screen *ebiten.Image) {
	labels := g.anim.TakeSnapshots()
	if len(labels) == 0 {
		return
	}
	log := saguaro.Logger()
	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		log.Warn("snapshot: mkdir", "dir", g.cfg.ScreenshotDir, "err", err)
		return
	}

	img := readScreen(screen)
	now := time.Now()
	for _, label := range labels {
		path := saguaro.SnapshotPath(g.cfg.ScreenshotDir, label, now)
		if err := writePNG(path, img); err != nil {
			log.Warn("snapshot", "err", err)
			continue
		}
		log.Info("snapshot written", "path", path)
	}
}

// readScreen copies the screen into a straight-alpha image.
func readScreen(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
