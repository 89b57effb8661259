package frontend

import "piratestage/game"

// FadeTicks is the length of each half of a scene transition
const FadeTicks = 30

type fadePhase int

const (
	fadeIdle fadePhase = iota
	fadeOut
	fadeIn
)

// Fader darkens the screen, swaps the scene at full black, then brightens
type Fader struct {
	phase    fadePhase
	tick     int
	duration int
	next     game.Scene
}

// NewFader creates a fader whose halves last duration ticks
func NewFader(duration int) *Fader {
	return &Fader{duration: max(duration, 1)}
}

// Start begins a transition to next. It is ignored while a transition runs.
func (f *Fader) Start(next game.Scene) bool {
	if f.phase != fadeIdle {
		return false
	}
	f.phase = fadeOut
	f.tick = 0
	f.next = next
	return true
}

// Active reports whether a transition is running
func (f *Fader) Active() bool { return f.phase != fadeIdle }

// Update advances the transition. It returns the new scene on the tick the
// screen is fully dark and SceneNone otherwise.
func (f *Fader) Update() game.Scene {
	switch f.phase {
	case fadeOut:
		f.tick++
		if f.tick >= f.duration {
			f.phase = fadeIn
			f.tick = 0
			return f.next
		}
	case fadeIn:
		f.tick++
		if f.tick >= f.duration {
			f.phase = fadeIdle
		}
	}
	return game.SceneNone
}

// Alpha returns the overlay opacity
func (f *Fader) Alpha() uint8 {
	switch f.phase {
	case fadeOut:
		return uint8(255 * f.tick / f.duration)
	case fadeIn:
		return uint8(255 * (f.duration - f.tick) / f.duration)
	default:
		return 0
	}
}
