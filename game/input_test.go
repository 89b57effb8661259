package game

import "testing"

// TestActionTrackerEdges walks one action through all four states
func TestActionTrackerEdges(t *testing.T) {
	var in ScriptedInput

	steps := []struct {
		held        bool
		state       KeyState
		pressed     bool
		justPressed bool
	}{
		{false, KeyReleased, false, false},
		{true, KeyDown, true, true},
		{true, KeyHeld, true, false},
		{true, KeyHeld, true, false},
		{false, KeyUp, false, false},
		{false, KeyReleased, false, false},
		{true, KeyDown, true, true},
	}

	for i, s := range steps {
		if s.held {
			in.Hold(ActionJump)
		} else {
			in.Hold()
		}
		if got := in.State(ActionJump); got != s.state {
			t.Errorf("Step %d: expected state %d, got %d", i, s.state, got)
		}
		if in.Pressed(ActionJump) != s.pressed {
			t.Errorf("Step %d: expected pressed=%v", i, s.pressed)
		}
		if in.JustPressed(ActionJump) != s.justPressed {
			t.Errorf("Step %d: expected justPressed=%v", i, s.justPressed)
		}
	}
}

// TestScriptedInputIndependentActions verifies actions do not leak into
// each other
func TestScriptedInputIndependentActions(t *testing.T) {
	var in ScriptedInput
	in.Hold(ActionLeft, ActionUp)

	for a := Action(0); a < actionCount; a++ {
		want := a == ActionLeft || a == ActionUp
		if in.Pressed(a) != want {
			t.Errorf("Action %v: expected pressed=%v", a, want)
		}
	}
	if in.State(Action(-1)) != KeyReleased || in.State(actionCount) != KeyReleased {
		t.Error("Expected out-of-range actions to read as released")
	}
}
