// cmd/autoplay/main.go
package main

import (
	"context"
	"flag"
	"os"
	"sort"
	"time"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
)

// summary is what one autoplay run reports.
type summary struct {
	Ticks        int
	WavesCleared int
	Score        int
	Wave         int
	GameOver     bool
	Cues         map[event.Type]int
}

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), "")

	configPath := flag.String("config", "", "Optional configuration file (.json or .yaml)")
	seed := flag.Uint64("seed", 1, "Simulation seed")
	waves := flag.Int("waves", 5, "Stop after clearing this many waves")
	maxTicks := flag.Int("ticks", 200000, "Stop after this many ticks")
	flag.Parse()

	gameConfig := config.DefaultConfig()
	if *configPath != "" {
		var err error
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	gameConfig.Seed = *seed
	gameConfig.Audio.Enabled = false
	if err := gameConfig.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	game := engine.NewGame(gameConfig, engine.WithContext(ctx), engine.WithLogger(logger))
	start := time.Now()
	s := play(game, *waves, *maxTicks)

	cues := make([]string, 0, len(s.Cues))
	for cue := range s.Cues {
		cues = append(cues, string(cue))
	}
	sort.Strings(cues)
	args := []any{
		"seed", *seed,
		"ticks", s.Ticks,
		"waves_cleared", s.WavesCleared,
		"wave", s.Wave,
		"score", s.Score,
		"game_over", s.GameOver,
		"elapsed", time.Since(start).String(),
	}
	for _, cue := range cues {
		args = append(args, "cue_"+cue, s.Cues[event.Type(cue)])
	}
	logger.Info(ctx, "Autoplay finished", args...)
}

// play drives game with the chasing bot until it clears waves, loses, or runs
// out of ticks.
func play(game *engine.Game, waves, maxTicks int) summary {
	s := summary{Cues: make(map[event.Type]int)}
	subs := game.EventBus.SubscribeAll(event.AllCues, func(e event.Event) {
		s.Cues[e.GetType()]++
	})
	defer func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}()

	game.AssetsLoaded()
	game.Action()

	for s.Ticks < maxTicks {
		state := game.Snapshot()
		s.Score, s.Wave = state.Score, state.Wave

		switch state.Status {
		case engine.StatusGameOver:
			s.GameOver = true
			return s
		case engine.StatusWaveClear:
			s.WavesCleared++
			if s.WavesCleared >= waves {
				return s
			}
			game.Action()
			continue
		case engine.StatusPlaying:
			game.SetShieldTarget(shieldTarget(state))
			if hasRestingBall(state) {
				game.Action()
			}
		}

		game.Update()
		s.Ticks++
	}
	return s
}
