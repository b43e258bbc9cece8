package raster

import (
	"testing"

	"github.com/phanxgames/saguaro"
)

func pixel(s *Surface, x, y int) (r, g, b uint8) {
	i := (y*s.Width() + x) * 4
	p := s.Pixels()
	return p[i], p[i+1], p[i+2]
}

func TestSurface_FillRect(t *testing.T) {
	s := NewSurface(20, 20, 20, 20)
	defer s.Close()

	s.ClearSurface()
	s.FillRect(0, 0, 20, 10, saguaro.Color{R: 255})
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}

	if r, g, b := pixel(s, 10, 5); r != 255 || g != 0 || b != 0 {
		t.Errorf("inside = (%d,%d,%d), want red", r, g, b)
	}
	if r, g, b := pixel(s, 10, 15); r != 0 || g != 0 || b != 0 {
		t.Errorf("outside = (%d,%d,%d), want black", r, g, b)
	}
}

func TestSurface_Scaled(t *testing.T) {
	// A 100×100 scene squeezed into 10×10 pixels.
	s := NewSurface(10, 10, 100, 100)
	defer s.Close()

	s.ClearSurface()
	s.FillRect(50, 0, 50, 100, saguaro.Color{G: 255})

	if _, g, _ := pixel(s, 7, 5); g != 255 {
		t.Errorf("right half green = %d, want 255", g)
	}
	if _, g, _ := pixel(s, 2, 5); g != 0 {
		t.Errorf("left half green = %d, want 0", g)
	}
}

func TestSurface_FillPolygon(t *testing.T) {
	s := NewSurface(20, 20, 20, 20)
	defer s.Close()

	s.ClearSurface()
	s.FillPolygon([]saguaro.Vec2{{X: 0, Y: 10}, {X: 10, Y: 8}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 0, Y: 20}}, saguaro.Color{B: 255})

	if _, _, b := pixel(s, 10, 15); b != 255 {
		t.Errorf("inside blue = %d, want 255", b)
	}
	if _, _, b := pixel(s, 10, 2); b != 0 {
		t.Errorf("above outline blue = %d, want 0", b)
	}
}

func TestSurface_Resize(t *testing.T) {
	s := NewSurface(10, 10, 100, 100)
	defer s.Close()

	if err := s.Resize(40, 20, 100, 100); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 40 || s.Height() != 20 {
		t.Errorf("size = %dx%d, want 40x20", s.Width(), s.Height())
	}
	if len(s.Pixels()) != 40*20*4 {
		t.Errorf("pixels = %d bytes", len(s.Pixels()))
	}
}
