package termhost

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/saguaro"
)

// keyState synthesises key releases. Terminals report presses and
// autorepeats but never releases, so a key counts as held until it has
// not been seen for releaseAfter.
type keyState struct {
	releaseAfter time.Duration
	lastSeen     [saguaro.KeyPositive + 1]time.Time
}

// press records a sighting of k and reports whether it starts a new hold.
func (s *keyState) press(k saguaro.Key, now time.Time) bool {
	fresh := s.lastSeen[k].IsZero()
	s.lastSeen[k] = now
	return fresh
}

// expire appends every held key not seen since releaseAfter to buf and
// forgets it.
func (s *keyState) expire(buf []saguaro.Key, now time.Time) []saguaro.Key {
	buf = buf[:0]
	for k := saguaro.KeyNegative; k <= saguaro.KeyPositive; k++ {
		seen := s.lastSeen[k]
		if seen.IsZero() || now.Sub(seen) < s.releaseAfter {
			continue
		}
		s.lastSeen[k] = time.Time{}
		buf = append(buf, k)
	}
	return buf
}

// sceneKey maps a terminal key event to a direction key.
func sceneKey(e *tcell.EventKey) (saguaro.Key, bool) {
	switch e.Key() {
	case tcell.KeyLeft:
		return saguaro.KeyLeft, true
	case tcell.KeyRight:
		return saguaro.KeyRight, true
	case tcell.KeyRune:
		switch e.Rune() {
		case 'a', 'A', 'h':
			return saguaro.KeyLeft, true
		case 'd', 'D', 'l':
			return saguaro.KeyRight, true
		}
	}
	return 0, false
}

func isQuit(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
		return true
	}
	if e.Key() != tcell.KeyRune {
		return false
	}
	r := e.Rune()
	return r == 'q' || r == 'Q'
}
