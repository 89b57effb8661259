package main

import (
	"errors"
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"piratestage/audio"
	"piratestage/frontend"
	"piratestage/game"
	"piratestage/logging"
	"piratestage/profiler"
)

func main() {
	seed := flag.Int64("seed", 1, "random seed for cannon spawns")
	logFile := flag.String("log-file", "", "rotated log file (empty logs to stderr only)")
	logLevel := flag.String("log-level", "info", "minimum log level")
	scale := flag.Float64("scale", 1, "window scale factor")
	audioOn := flag.Bool("audio", true, "enable sound effects")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles and traces here after slow ticks")
	flag.Parse()

	opts := logging.DefaultOptions()
	opts.FilePath = *logFile
	opts.Level = *logLevel
	logger, err := logging.New(opts)
	if err != nil {
		panic(err)
	}
	defer logging.Sync(logger)

	config := game.DefaultConfig()
	config.Seed = *seed
	if err := config.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	audioCfg := audio.LoadAudioConfig()
	audioCfg.Enabled = audioCfg.Enabled && *audioOn
	sound := audio.NewSoundManager(audioCfg, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing silently", zap.Error(err))
	}
	defer sound.Cleanup()

	var prof *profiler.Profiler
	if *profileDir != "" {
		if prof, err = profiler.New(*profileDir, logger); err != nil {
			logger.Fatal("profiler", zap.Error(err))
		}
	}

	app, err := frontend.NewApp(config, sound, logger, frontend.Options{
		Profiler: prof,
		SlowTick: 50 * time.Millisecond,
	})
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	ebiten.SetWindowSize(int(float64(config.ScreenWidth)*(*scale)), int(float64(config.ScreenHeight)*(*scale)))
	ebiten.SetWindowTitle("Pirate Stage")
	ebiten.SetWindowResizable(true)

	logger.Info("starting", zap.Int64("seed", config.Seed), zap.Bool("audio", audioCfg.Enabled))
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, frontend.ErrQuit) {
		logger.Error("game loop", zap.Error(err))
	}
	if prof != nil {
		prof.Wait()
	}
}
