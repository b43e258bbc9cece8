package saguaro

// syntheticKeyEvent is a single injected direction key transition.
type syntheticKeyEvent struct {
	key     Key
	pressed bool
}

// InjectKeyDown queues a key press. Injected events are consumed one per
// tick, at the start of the tick, before anything is painted.
func (a *SceneAnimator) InjectKeyDown(k Key) {
	a.injectQueue = append(a.injectQueue, syntheticKeyEvent{key: k, pressed: true})
}

// InjectKeyUp queues a key release.
func (a *SceneAnimator) InjectKeyUp(k Key) {
	a.injectQueue = append(a.injectQueue, syntheticKeyEvent{key: k, pressed: false})
}

// InjectTap queues a press followed by a release of the same key.
// Consumes two ticks, so the scene scrolls exactly one step.
func (a *SceneAnimator) InjectTap(k Key) {
	a.InjectKeyDown(k)
	a.InjectKeyUp(k)
}

// processInjectedInput pops one event from the queue and applies it.
// Returns true if an event was consumed.
func (a *SceneAnimator) processInjectedInput() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	if evt.pressed {
		a.OnKeyDown(evt.key)
	} else {
		a.OnKeyUp(evt.key)
	}
	return true
}
