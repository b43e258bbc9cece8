// Package raster paints saguaro draw calls into an in-memory pixmap with
// gogpu/gg's software renderer. The terminal and PNG hosts read frames
// from it.
package raster

import (
	"github.com/gogpu/gg"

	"github.com/phanxgames/saguaro"
)

// Surface is a saguaro.Surface and saguaro.PolygonFiller backed by a
// gg.Context. Draw calls are in scene coordinates and scaled to the pixmap.
type Surface struct {
	ctx    *gg.Context
	scaleX float64
	scaleY float64
	err    error
}

// NewSurface creates a width×height pixmap that a sceneW×sceneH canvas is
// scaled into. The axes scale independently.
func NewSurface(width, height int, sceneW, sceneH float64) *Surface {
	s := &Surface{ctx: gg.NewContext(width, height)}
	s.setScale(width, height, sceneW, sceneH)
	return s
}

func (s *Surface) setScale(width, height int, sceneW, sceneH float64) {
	s.scaleX = float64(width) / sceneW
	s.scaleY = float64(height) / sceneH
	s.ctx.Identity()
	s.ctx.Scale(s.scaleX, s.scaleY)
}

// Resize changes the pixmap size, keeping the scene fitted to it.
func (s *Surface) Resize(width, height int, sceneW, sceneH float64) error {
	if err := s.ctx.Resize(width, height); err != nil {
		return err
	}
	s.setScale(width, height, sceneW, sceneH)
	return nil
}

// Context exposes the underlying context for encoding the frame.
func (s *Surface) Context() *gg.Context {
	return s.ctx
}

// Width returns the pixmap width.
func (s *Surface) Width() int { return s.ctx.Width() }

// Height returns the pixmap height.
func (s *Surface) Height() int { return s.ctx.Height() }

// Pixels returns the frame as tightly packed RGBA bytes. The returned slice
// MUST NOT be mutated and is only valid until the next draw call.
func (s *Surface) Pixels() []uint8 {
	return s.ctx.ResizeTarget().Data()
}

// Err returns the first rendering error since the last ClearSurface.
func (s *Surface) Err() error {
	return s.err
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

func (s *Surface) ClearSurface() {
	s.err = nil
	s.ctx.ClearWithColor(gg.RGB(0, 0, 0))
}

func (s *Surface) FillRect(x, y, w, h float64, c saguaro.Color) {
	s.setColor(c)
	s.ctx.DrawRectangle(x, y, w, h)
	s.record(s.ctx.Fill())
}

func (s *Surface) FillCircle(x, y, r float64, c saguaro.Color) {
	s.setColor(c)
	s.ctx.DrawCircle(x, y, r)
	s.record(s.ctx.Fill())
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c saguaro.Color) {
	s.setColor(c)
	s.ctx.SetLineWidth(width)
	s.ctx.DrawLine(x1, y1, x2, y2)
	s.record(s.ctx.Stroke())
}

func (s *Surface) FillPolygon(points []saguaro.Vec2, c saguaro.Color) {
	if len(points) < 3 {
		return
	}
	s.setColor(c)
	s.ctx.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.ctx.ClosePath()
	s.record(s.ctx.Fill())
}

func (s *Surface) setColor(c saguaro.Color) {
	r, g, b := c.Floats()
	s.ctx.SetRGB(r, g, b)
}

func (s *Surface) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}
