package game

import (
	"math"
	"testing"
)

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	stage, err := NewStage(DefaultConfig())
	if err != nil {
		t.Fatalf("NewStage failed: %v", err)
	}
	return stage
}

// soundLog records every sound event
type soundLog struct {
	played []Sound
}

func (s *soundLog) Play(snd Sound) { s.played = append(s.played, snd) }

func (s *soundLog) count(snd Sound) int {
	n := 0
	for _, p := range s.played {
		if p == snd {
			n++
		}
	}
	return n
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
