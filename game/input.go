package game

// Action is a logical input the simulation reacts to
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionPause
	ActionConfirm

	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionJump:
		return "jump"
	case ActionPause:
		return "pause"
	case ActionConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// InputProvider is polled once per tick
type InputProvider interface {
	// Pressed returns true while the action is asserted
	Pressed(a Action) bool

	// JustPressed returns true only on the tick the action became asserted
	JustPressed(a Action) bool
}

// KeyState is the four-state edge signal of an action
type KeyState int

const (
	KeyReleased KeyState = iota // not held
	KeyDown                     // became held this tick
	KeyHeld                     // held for more than one tick
	KeyUp                       // released this tick
)

// ActionTracker turns per-tick held flags into KeyStates
type ActionTracker struct {
	states [actionCount]KeyState
}

// Update advances every action given whether it is held this tick
func (t *ActionTracker) Update(held func(Action) bool) {
	for a := Action(0); a < actionCount; a++ {
		down := held(a)
		prev := t.states[a] == KeyDown || t.states[a] == KeyHeld
		switch {
		case down && prev:
			t.states[a] = KeyHeld
		case down:
			t.states[a] = KeyDown
		case prev:
			t.states[a] = KeyUp
		default:
			t.states[a] = KeyReleased
		}
	}
}

// State returns the current edge state of a
func (t *ActionTracker) State(a Action) KeyState {
	if a < 0 || a >= actionCount {
		return KeyReleased
	}
	return t.states[a]
}

// Pressed implements InputProvider
func (t *ActionTracker) Pressed(a Action) bool {
	s := t.State(a)
	return s == KeyDown || s == KeyHeld
}

// JustPressed implements InputProvider
func (t *ActionTracker) JustPressed(a Action) bool {
	return t.State(a) == KeyDown
}

// ScriptedInput replays a fixed set of held actions chosen by the caller
// before each tick. Used by the headless runner and tests.
type ScriptedInput struct {
	ActionTracker
}

// Hold sets the actions held for the coming tick; everything else is released
func (s *ScriptedInput) Hold(actions ...Action) {
	var held [actionCount]bool
	for _, a := range actions {
		if a >= 0 && a < actionCount {
			held[a] = true
		}
	}
	s.Update(func(a Action) bool { return held[a] })
}

// NoInput never reports any action
type NoInput struct{}

func (NoInput) Pressed(Action) bool     { return false }
func (NoInput) JustPressed(Action) bool { return false }
