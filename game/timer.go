package game

const ticksPerSecond = 60

// GameTimer counts a round down one tick at a time
type GameTimer struct {
	max       int
	remaining int
}

// NewGameTimer creates a timer of the given length in ticks
func NewGameTimer(ticks int) *GameTimer {
	return &GameTimer{max: ticks, remaining: ticks}
}

// Reset restarts the countdown
func (t *GameTimer) Reset() { t.remaining = t.max }

// Update consumes one tick
func (t *GameTimer) Update() {
	if t.remaining > 0 {
		t.remaining--
	}
}

// Remaining returns the ticks left
func (t *GameTimer) Remaining() int { return t.remaining }

// Elapsed returns the ticks consumed since Reset
func (t *GameTimer) Elapsed() int { return t.max - t.remaining }

// Seconds returns the whole seconds left, for display
func (t *GameTimer) Seconds() int { return t.remaining / ticksPerSecond }

// Expired reports whether the round is over
func (t *GameTimer) Expired() bool { return t.remaining <= 0 }
