package saguaro

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot queues a labeled capture of the frame painted by the current
// tick. Hosts drain the queue with TakeSnapshots after painting and write
// one PNG per label.
func (a *SceneAnimator) Snapshot(label string) {
	a.snapshotQueue = append(a.snapshotQueue, label)
}

// TakeSnapshots returns the queued labels and clears the queue.
func (a *SceneAnimator) TakeSnapshots() []string {
	if len(a.snapshotQueue) == 0 {
		return nil
	}
	labels := a.snapshotQueue
	a.snapshotQueue = nil
	return labels
}

// SnapshotPath builds a timestamped PNG file name for label inside dir.
func SnapshotPath(dir, label string, at time.Time) string {
	name := fmt.Sprintf("%s_%s.png", at.Format("20060102_150405"), sanitizeLabel(label))
	return filepath.Join(dir, name)
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
