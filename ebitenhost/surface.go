package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/saguaro"
)

// Surface paints saguaro draw calls onto an *ebiten.Image. It implements
// saguaro.Surface and saguaro.PolygonFiller.
type Surface struct {
	dst       *ebiten.Image
	antialias bool

	// triangle buffers reused across FillPolygon calls
	verts []ebiten.Vertex
	inds  []uint16
}

// NewSurface creates a surface targeting dst.
func NewSurface(dst *ebiten.Image, antialias bool) *Surface {
	return &Surface{dst: dst, antialias: antialias}
}

// SetTarget switches the destination image. Ebitengine hands Draw a new
// screen image each frame.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) ClearSurface() {
	s.dst.Clear()
}

func (s *Surface) FillRect(x, y, w, h float64, c saguaro.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, s.antialias)
}

func (s *Surface) FillCircle(x, y, r float64, c saguaro.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, s.antialias)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c saguaro.Color) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, s.antialias)
}

// FillPolygon fills a hill outline: a run of top points followed by the two
// bottom corners. The outline is not convex, so it is drawn as a strip of
// column quads instead of a fan.
func (s *Surface) FillPolygon(points []saguaro.Vec2, c saguaro.Color) {
	s.verts, s.inds = appendOutlineStrip(s.verts[:0], s.inds[:0], points, c)
	if len(s.inds) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: s.antialias}
	s.dst.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), op)
}

// maxStripColumns keeps vertex indices within uint16.
const maxStripColumns = (1 << 16) / 2

// appendOutlineStrip triangulates an outline polygon into a strip. For N
// top points: 2N vertices, 6(N-1) indices.
func appendOutlineStrip(verts []ebiten.Vertex, inds []uint16, outline []saguaro.Vec2, c saguaro.Color) ([]ebiten.Vertex, []uint16) {
	if len(outline) < 4 {
		return verts, inds
	}
	top := outline[:len(outline)-2]
	bottom := outline[len(outline)-1].Y
	if len(top) > maxStripColumns {
		top = top[:maxStripColumns]
	}
	r, g, b, a := colorScale(c)
	for _, p := range top {
		verts = append(verts,
			ebiten.Vertex{DstX: float32(p.X), DstY: float32(p.Y), SrcX: 0.5, SrcY: 0.5, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: float32(p.X), DstY: float32(bottom), SrcX: 0.5, SrcY: 0.5, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		)
	}
	for i := 0; i < len(top)-1; i++ {
		t0 := uint16(2 * i)
		b0 := t0 + 1
		t1 := t0 + 2
		b1 := t0 + 3
		inds = append(inds, t0, b0, t1, t1, b0, b1)
	}
	return verts, inds
}

func colorScale(c color.Color) (r, g, b, a float32) {
	cr, cg, cb, ca := c.RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}

// --- White pixel singleton (no sync.Once, drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
