package ebitenhost

import (
	"testing"

	"github.com/phanxgames/saguaro"
)

func TestAppendOutlineStrip(t *testing.T) {
	outline := []saguaro.Vec2{
		{X: 0, Y: 10}, {X: 1, Y: 12}, {X: 2, Y: 9},
		{X: 2, Y: 50}, {X: 0, Y: 50},
	}
	c := saguaro.Color{R: 255, G: 0, B: 0}
	verts, inds := appendOutlineStrip(nil, nil, outline, c)

	if len(verts) != 6 {
		t.Fatalf("verts = %d, want 6", len(verts))
	}
	if len(inds) != 12 {
		t.Fatalf("inds = %d, want 12", len(inds))
	}
	for i := 0; i < 3; i++ {
		top, bot := verts[2*i], verts[2*i+1]
		if top.DstX != float32(outline[i].X) || top.DstY != float32(outline[i].Y) {
			t.Errorf("top %d = (%v,%v)", i, top.DstX, top.DstY)
		}
		if bot.DstX != top.DstX || bot.DstY != 50 {
			t.Errorf("bottom %d = (%v,%v)", i, bot.DstX, bot.DstY)
		}
	}
	if verts[0].ColorR != 1 || verts[0].ColorG != 0 || verts[0].ColorA != 1 {
		t.Errorf("vertex color = %v,%v,%v,%v", verts[0].ColorR, verts[0].ColorG, verts[0].ColorB, verts[0].ColorA)
	}
	want := []uint16{0, 1, 2, 2, 1, 3, 2, 3, 4, 4, 3, 5}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("inds = %v, want %v", inds, want)
		}
	}
}

func TestAppendOutlineStrip_TooShort(t *testing.T) {
	verts, inds := appendOutlineStrip(nil, nil, []saguaro.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, saguaro.Color{})
	if len(verts) != 0 || len(inds) != 0 {
		t.Errorf("got %d verts, %d inds for a degenerate outline", len(verts), len(inds))
	}
}

func TestKeyBindings(t *testing.T) {
	var left, right int
	for _, b := range keyBindings {
		switch b.scene {
		case saguaro.KeyLeft:
			left++
		case saguaro.KeyRight:
			right++
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("bindings: %d left, %d right", left, right)
	}
}
