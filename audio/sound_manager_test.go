package audio

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"piratestage/game"
)

var _ game.SoundPlayer = (*SoundManager)(nil)

// TestSoundManagerGracefulDegradation verifies Play is safe without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil, zaptest.NewLogger(t))

	sm.Play(game.SoundShot)
	sm.Play(game.SoundShot)
	sm.Play(game.SoundSplash)
	sm.Cleanup()

	if sm.Played(game.SoundShot) != 2 || sm.Played(game.SoundSplash) != 1 {
		t.Errorf("Expected events counted while silent, got shot=%d splash=%d",
			sm.Played(game.SoundShot), sm.Played(game.SoundSplash))
	}
}

// TestSoundManagerDisabled verifies a disabled config never opens the device
func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg, nil)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Expected no error when disabled, got %v", err)
	}
	if sm.initialized {
		t.Error("Expected the speaker to stay closed")
	}
	sm.Play(game.SoundHit)
}

// TestSoundManagerInitialization may fail without an audio device
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil, zaptest.NewLogger(t))

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got %v", err)
	}
	sm.Play(game.SoundBounce)
	sm.Cleanup()
}

// TestLoadAudioConfig verifies environment overrides and clamping
func TestLoadAudioConfig(t *testing.T) {
	t.Setenv("PIRATESTAGE_AUDIO_ENABLED", "false")
	t.Setenv("PIRATESTAGE_MASTER_VOLUME", "250")

	cfg := LoadAudioConfig()
	if cfg.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", cfg.MasterVolume)
	}

	t.Setenv("PIRATESTAGE_MASTER_VOLUME", "not a number")
	if got := LoadAudioConfig().MasterVolume; got != DefaultAudioConfig().MasterVolume {
		t.Errorf("Expected default volume on bad input, got %f", got)
	}
}
