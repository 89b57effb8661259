package frontend

import (
	"go.uber.org/zap"

	"piratestage/game"
)

// SceneFlow moves between the title, a round of play and the ending, with a
// fade over every change. It reads input but never touches the window.
type SceneFlow struct {
	session *game.Session
	logger  *zap.Logger
	fader   *Fader

	scene  game.Scene
	result Result
}

// NewSceneFlow starts on the title scene
func NewSceneFlow(session *game.Session, logger *zap.Logger) *SceneFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneFlow{
		session: session,
		logger:  logger,
		fader:   NewFader(FadeTicks),
		scene:   game.SceneTitle,
	}
}

// Scene returns the scene currently shown
func (f *SceneFlow) Scene() game.Scene { return f.scene }

// Result returns the summary of the last finished round
func (f *SceneFlow) Result() Result { return f.result }

// FadeAlpha returns the transition overlay opacity
func (f *SceneFlow) FadeAlpha() uint8 { return f.fader.Alpha() }

// Update advances one tick. It returns ErrQuit when Exit was chosen from the
// pause menu.
func (f *SceneFlow) Update(in game.InputProvider) error {
	if f.fader.Active() {
		if next := f.fader.Update(); next != game.SceneNone {
			f.enter(next)
		}
		return nil
	}

	switch f.scene {
	case game.SceneTitle, game.SceneEnding:
		if in.JustPressed(game.ActionJump) || in.JustPressed(game.ActionPause) {
			next := game.SceneGamePlay
			if f.scene == game.SceneEnding {
				next = game.SceneTitle
			}
			f.fader.Start(next)
		}
	case game.SceneGamePlay:
		f.session.Update()
		if !f.session.IsEnd() {
			return nil
		}
		f.result = Result{
			Reason:  f.session.Reason(),
			Seconds: f.session.Timer().Elapsed() / 60,
			Hits:    f.session.Hits(),
			Stock:   f.session.Stock(),
		}
		if f.session.Next() == game.SceneExit {
			f.logger.Info("exit requested from pause menu")
			return ErrQuit
		}
		f.fader.Start(f.session.Next())
	}
	return nil
}

func (f *SceneFlow) enter(scene game.Scene) {
	f.logger.Debug("scene change", zap.Stringer("from", f.scene), zap.Stringer("to", scene))
	if scene == game.SceneGamePlay {
		f.session.Reset()
	}
	f.scene = scene
}
