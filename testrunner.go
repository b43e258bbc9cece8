package saguaro

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected key events and snapshots across ticks for
// automated visual testing. Attach to an animator via SetTestRunner.
//
// A script looks like:
//
//	{"steps": [
//	  {"action": "keydown", "key": "right"},
//	  {"action": "wait", "frames": 120},
//	  {"action": "keyup", "key": "right"},
//	  {"action": "snapshot", "label": "after_scroll"}
//	]}
type TestRunner struct {
	steps     []testStep
	keys      []Key
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	keys := make([]Key, len(script.Steps))
	for i, st := range script.Steps {
		switch st.Action {
		case "keydown", "keyup", "tap":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			keys[i] = k
		case "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, keys: keys}, nil
}

// ParseKey maps a key name to a Key. Accepted names are "left", "right",
// "negative", and "positive".
func ParseKey(name string) (Key, error) {
	switch name {
	case "left", "negative":
		return KeyNegative, nil
	case "right", "positive":
		return KeyPositive, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// SetTestRunner attaches a TestRunner. The runner steps at the start of
// every tick, before injected input is processed.
func (a *SceneAnimator) SetTestRunner(runner *TestRunner) {
	a.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(a *SceneAnimator) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	k := r.keys[r.cursor]
	r.cursor++

	switch st.Action {
	case "keydown":
		a.InjectKeyDown(k)
	case "keyup":
		a.InjectKeyUp(k)
	case "tap":
		a.InjectTap(k)
	case "snapshot":
		a.Snapshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 {
		r.done = true
	}
}
