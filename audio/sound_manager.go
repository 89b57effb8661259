// Package audio synthesizes the simulation's sound events with beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"piratestage/game"
)

// maxVoices caps overlapping effects; extra events are dropped
const maxVoices = 16

// SoundManager mixes sound events into the speaker. It implements
// game.SoundPlayer and is safe to call before Initialize or after Cleanup.
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	logger      *zap.Logger
	mixer       *beep.Mixer
	initialized bool
	played      map[game.Sound]int
	dropped     int
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *AudioConfig, logger *zap.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
		played: make(map[game.Sound]int),
	}
}

// Initialize opens the speaker. A disabled config is not an error.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	sampleRate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized",
		zap.Int("sampleRate", sm.cfg.SampleRate),
		zap.Float64("masterVolume", sm.cfg.MasterVolume),
	)
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
	sm.logger.Debug("audio stopped", zap.Int("dropped", sm.dropped))
}

// Play queues the effect for s. It never blocks on the audio device.
func (sm *SoundManager) Play(s game.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.played[s]++
	if !sm.initialized {
		return
	}

	streamer := GetSoundEffect(s, sm.cfg)
	if streamer == nil {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		sm.dropped++
		return
	}
	sm.mixer.Add(streamer)
}

// Played returns how many times s was raised, including while silent
func (sm *SoundManager) Played(s game.Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[s]
}
