package game

import (
	"fmt"

	"go.uber.org/zap"
)

// EndReason explains why a round finished
type EndReason int

const (
	EndNone EndReason = iota
	EndPlayerDead
	EndTimeUp
	EndMenu
)

func (r EndReason) String() string {
	switch r {
	case EndPlayerDead:
		return "player dead"
	case EndTimeUp:
		return "time up"
	case EndMenu:
		return "menu"
	default:
		return "running"
	}
}

// Session is one round of play: the stage, its entities, the countdown and
// the pause menu
type Session struct {
	config    Config
	stage     *Stage
	input     InputProvider
	logger    *zap.Logger
	manager   *EntityManager
	collision *CollisionSystem
	timer     *GameTimer
	pause     PauseMenu

	ended  bool
	reason EndReason
	next   Scene
}

// NewSession builds a round from cfg. It fails only when the stage geometry
// is unusable.
func NewSession(cfg Config, input InputProvider, sound SoundPlayer, logger *zap.Logger) (*Session, error) {
	stage, err := NewStage(cfg)
	if err != nil {
		return nil, fmt.Errorf("create stage: %w", err)
	}
	if input == nil {
		input = NoInput{}
	}
	if sound == nil {
		sound = NopSound{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	manager := NewEntityManager(stage, input, sound, logger, cfg.Seed)
	s := &Session{
		config:    cfg,
		stage:     stage,
		input:     input,
		logger:    logger,
		manager:   manager,
		collision: NewCollisionSystem(manager, sound, logger),
		timer:     NewGameTimer(cfg.GameTicks),
	}
	s.logger.Info("session created",
		zap.Int64("seed", cfg.Seed),
		zap.Int("ticks", cfg.GameTicks),
		zap.Float64("vanishX", stage.VanishingPoint(VanishCenter).X),
		zap.Float64("vanishY", stage.VanishingPoint(VanishCenter).Y),
	)
	return s, nil
}

// Reset starts a fresh round on the same stage
func (s *Session) Reset() {
	s.manager.Reset()
	s.collision.Reset()
	s.timer.Reset()
	s.pause.Reset()
	s.ended = false
	s.reason = EndNone
	s.next = SceneNone
}

// Update advances the round by one tick
func (s *Session) Update() {
	if s.ended {
		return
	}

	s.pause.Update(s.input)
	if req := s.pause.Request(); req != SceneNone {
		s.finish(EndMenu, req)
		return
	}
	if s.pause.Open() {
		return
	}

	switch {
	case !s.manager.Player().Alive():
		s.finish(EndPlayerDead, SceneEnding)
		return
	case s.timer.Expired():
		s.finish(EndTimeUp, SceneEnding)
		return
	}

	stock := s.manager.Player().Stock()
	s.manager.Update()
	s.collision.CheckCollisions()
	s.timer.Update()

	if now := s.manager.Player().Stock(); now != stock {
		s.logger.Info("stock lost", zap.Int("stock", now), zap.Int("tick", s.timer.Elapsed()))
	}
}

func (s *Session) finish(reason EndReason, next Scene) {
	s.ended = true
	s.reason = reason
	s.next = next
	s.logger.Info("session ended",
		zap.Stringer("reason", reason),
		zap.Stringer("next", next),
		zap.Int("elapsed", s.timer.Elapsed()),
		zap.Int("stock", s.manager.Player().Stock()),
		zap.Int("hits", s.collision.Hits()),
	)
}

// IsEnd reports whether the round is over
func (s *Session) IsEnd() bool { return s.ended }

// Reason returns why the round ended
func (s *Session) Reason() EndReason { return s.reason }

// Next returns the scene to show after the round
func (s *Session) Next() Scene { return s.next }

// Stage returns the stage geometry
func (s *Session) Stage() *Stage { return s.stage }

// Manager returns the entity manager
func (s *Session) Manager() *EntityManager { return s.manager }

// Pause returns the pause menu state
func (s *Session) Pause() *PauseMenu { return &s.pause }

// Timer returns the round countdown
func (s *Session) Timer() *GameTimer { return s.timer }

// Hits returns the number of hits taken this session
func (s *Session) Hits() int { return s.collision.Hits() }

// DrawList returns the depth-sorted entities for this tick
func (s *Session) DrawList() []Entity { return s.manager.DrawList() }

// Stock returns the player's remaining lives
func (s *Session) Stock() int { return s.manager.Player().Stock() }

// BlinkAlpha returns the player's invincibility blink alpha
func (s *Session) BlinkAlpha() uint8 { return s.manager.Player().BlinkAlpha() }

// TimeLeft returns the whole seconds left in the round
func (s *Session) TimeLeft() int { return s.timer.Seconds() }
