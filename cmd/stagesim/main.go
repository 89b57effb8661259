// Command stagesim runs the stage simulation without a window, driven by a
// seeded random input script, and logs a summary.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"piratestage/game"
	"piratestage/logging"
	"piratestage/profiler"
)

// Bot holds a random set of actions for a random number of ticks
type Bot struct {
	rng   *rand.Rand
	input *game.ScriptedInput
	held  []game.Action
	left  int
}

// NewBot creates a bot feeding input
func NewBot(seed int64, input *game.ScriptedInput) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed)), input: input}
}

// Step picks this tick's actions
func (b *Bot) Step() {
	if b.left <= 0 {
		b.left = 10 + b.rng.Intn(50)
		b.held = b.held[:0]
		if b.rng.Intn(2) == 0 {
			b.held = append(b.held, game.ActionLeft+game.Action(b.rng.Intn(2)))
		}
		if b.rng.Intn(2) == 0 {
			b.held = append(b.held, game.ActionUp+game.Action(b.rng.Intn(2)))
		}
	}
	b.left--

	actions := b.held
	if b.rng.Intn(90) == 0 {
		actions = append(actions[:len(actions):len(actions)], game.ActionJump)
	}
	b.input.Hold(actions...)
}

// runOptions are the parsed command line settings
type runOptions struct {
	Config     game.Config
	Ticks      int
	CPUProfile string
}

// Summary is what a run reports when it finishes
type Summary struct {
	Updates int
	Reason  game.EndReason
	Stock   int
	Hits    int
	Shots   int
}

func main() {
	seed := flag.Int64("seed", 1, "random seed for cannon spawns and the input script")
	ticks := flag.Int("ticks", 6000, "maximum number of ticks to simulate")
	logLevel := flag.String("log-level", "info", "minimum log level")
	logFile := flag.String("log-file", "", "rotated log file")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile of the run to this file")
	flag.Parse()

	opts := logging.DefaultOptions()
	opts.Level = *logLevel
	opts.FilePath = *logFile
	logger, err := logging.New(opts)
	if err != nil {
		panic(err)
	}

	config := game.DefaultConfig()
	config.Seed = *seed

	_, err = run(runOptions{Config: config, Ticks: *ticks, CPUProfile: *cpuProfile}, logger)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
	}
	logging.Sync(logger)
	if err != nil {
		os.Exit(1)
	}
}

// run simulates one session. Deferred cleanup, including the CPU profile,
// completes before it returns, on failure as well.
func run(opts runOptions, logger *zap.Logger) (Summary, error) {
	if opts.CPUProfile != "" {
		stop, err := profiler.StartCPU(opts.CPUProfile)
		if err != nil {
			return Summary{}, err
		}
		defer func() {
			if err := stop(); err != nil {
				logger.Error("cpu profile", zap.Error(err))
			}
		}()
	}

	var input game.ScriptedInput
	sounds := make(map[game.Sound]int)
	session, err := game.NewSession(opts.Config, &input, game.SoundFunc(func(s game.Sound) { sounds[s]++ }), logger)
	if err != nil {
		return Summary{}, fmt.Errorf("create session: %w", err)
	}

	bot := NewBot(opts.Config.Seed, &input)
	start := time.Now()
	n := 0
	for ; n < opts.Ticks && !session.IsEnd(); n++ {
		bot.Step()
		session.Update()
	}

	m := session.Manager()
	logger.Info("simulation finished",
		zap.Int("updates", n),
		zap.Int("ticks", m.Ticks()),
		zap.Stringer("reason", session.Reason()),
		zap.Int("stock", session.Stock()),
		zap.Int("hits", session.Hits()),
		zap.Int("cannons", len(m.Cannons())),
		zap.Int("balls", len(m.IronBalls())),
		zap.Int("shots", sounds[game.SoundShot]),
		zap.Int("splashes", sounds[game.SoundSplash]),
		zap.Duration("wall", time.Since(start)),
	)

	return Summary{
		Updates: n,
		Reason:  session.Reason(),
		Stock:   session.Stock(),
		Hits:    session.Hits(),
		Shots:   sounds[game.SoundShot],
	}, nil
}
