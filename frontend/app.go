// Package frontend runs a game.Session inside an ebiten window: scenes,
// fades, keyboard and gamepad input, and vector rendering.
package frontend

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"piratestage/game"
	"piratestage/profiler"
)

// ErrQuit ends the ebiten loop when the player picks Exit from the pause menu
var ErrQuit = errors.New("quit requested")

// Result summarizes a finished round for the ending screen
type Result struct {
	Reason  game.EndReason
	Seconds int
	Hits    int
	Stock   int
}

// Options are the frontend settings not covered by game.Config
type Options struct {
	// Profiler, when set, captures a profile after a slow tick
	Profiler *profiler.Profiler

	// SlowTick is the tick duration that counts as a stall
	SlowTick time.Duration
}

// App implements ebiten.Game
type App struct {
	config   game.Config
	logger   *zap.Logger
	input    *Input
	session  *game.Session
	renderer *Renderer
	flow     *SceneFlow
	debug    DebugState
	spikes   *profiler.SpikeDetector

	ticks int
}

// NewApp builds the session and opens on the title scene
func NewApp(cfg game.Config, sound game.SoundPlayer, logger *zap.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := NewInput()
	session, err := game.NewSession(cfg, input, sound, logger)
	if err != nil {
		return nil, err
	}
	if opts.SlowTick <= 0 {
		opts.SlowTick = 50 * time.Millisecond
	}

	return &App{
		config:   cfg,
		logger:   logger,
		input:    input,
		session:  session,
		renderer: NewRenderer(session.Stage()),
		flow:     NewSceneFlow(session, logger),
		spikes:   profiler.NewSpikeDetector(opts.Profiler, opts.SlowTick, 180),
	}, nil
}

// Scene returns the scene currently shown
func (a *App) Scene() game.Scene { return a.flow.Scene() }

// Update advances the current scene by one tick
func (a *App) Update() error {
	start := time.Now()
	defer func() {
		a.spikes.Observe(time.Since(start), a.spikeReason)
	}()

	a.ticks++
	a.input.Poll()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.debug.Toggle()
	}

	return a.flow.Update(a.input)
}

func (a *App) spikeReason() string {
	m := a.session.Manager()
	return fmt.Sprintf("tick%d-cannons%d-balls%d", m.Ticks(), len(m.Cannons()), len(m.IronBalls()))
}

// Draw renders the current scene
func (a *App) Draw(screen *ebiten.Image) {
	switch a.flow.Scene() {
	case game.SceneTitle:
		a.renderer.RenderTitle(screen, a.ticks)
		a.renderer.RenderDebug(screen, nil, &a.debug)
	case game.SceneGamePlay:
		a.renderer.RenderSession(screen, a.session)
		a.renderer.RenderDebug(screen, a.session, &a.debug)
	case game.SceneEnding:
		a.renderer.RenderEnding(screen, a.flow.Result())
	}
	a.renderer.RenderFade(screen, a.flow.FadeAlpha())
}

// Layout returns the game's screen size
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.ScreenWidth, a.config.ScreenHeight
}
