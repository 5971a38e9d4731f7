// cmd/shieldwall/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shieldwall/pkg/audio"
	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
	"github.com/opd-ai/go-shieldwall/pkg/render"
	engorender "github.com/opd-ai/go-shieldwall/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), "")

	configPath := flag.String("config", "shieldwall.json", "Path to configuration file (.json or .yaml)")
	rendererName := flag.String("renderer", "", "Renderer: terminal, engo or headless (overrides config)")
	seed := flag.Uint64("seed", 0, "Simulation seed, 0 picks one from the clock (overrides config)")
	mute := flag.Bool("mute", false, "Disable audio")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	logPath := flag.String("log", "", "Log file for the terminal renderer, which otherwise discards logs")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *rendererName != "" {
		gameConfig.Render.Renderer = *rendererName
	}
	if *seed != 0 {
		gameConfig.Seed = *seed
	}
	if *mute {
		gameConfig.Audio.Enabled = false
	}
	if err := gameConfig.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	gameLogger := logger
	closeLog := func() {}
	if gameConfig.Render.Renderer == config.RendererTerminal {
		gameLogger, closeLog, err = terminalLogger(*logPath)
		if err != nil {
			logger.Error(ctx, "Failed to open log file", err, "log_path", *logPath)
			os.Exit(1)
		}
	}

	err = run(ctx, gameLogger, gameConfig)
	closeLog()
	if err != nil {
		// the terminal is released by now, so this goes to the console
		logger.Error(ctx, "Shieldwall exited with an error", err)
		os.Exit(1)
	}
}

// loadConfig reads path when it exists and falls back to defaults otherwise.
// Environment overrides are applied either way.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "apply environment configuration")
	}
	return gameConfig, nil
}

// terminalLogger keeps logs off the screen tcell draws on: they go to path when one
// is given and are dropped otherwise.
func terminalLogger(path string) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, logging.WrapError(err, "open log file %s", path)
	}
	return logging.NewLoggerTo(f), func() { f.Close() }, nil
}

func run(ctx context.Context, logger *logging.Logger, gameConfig *config.GameConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game := engine.NewGame(gameConfig, engine.WithLogger(logger), engine.WithContext(ctx))

	dispatcher, player, err := audio.Setup(ctx, gameConfig.Audio, game.EventBus, logger)
	if err != nil {
		logger.Warn(ctx, "Audio unavailable, continuing muted", "error", err.Error())
	}
	defer player.Close()
	defer dispatcher.Detach()

	logger.Info(ctx, "Starting shieldwall",
		"renderer", gameConfig.Render.Renderer,
		"seed", gameConfig.Seed,
		"audio", !dispatcher.Muted(),
	)

	switch gameConfig.Render.Renderer {
	case config.RendererEngo:
		engorender.Run(ctx, game, gameConfig, logger)
		return nil
	case config.RendererHeadless:
		return runHeadless(ctx, game, gameConfig, logger)
	default:
		return runTerminal(ctx, game, gameConfig)
	}
}

// runTerminal plays in the terminal until the player quits or a signal arrives.
func runTerminal(ctx context.Context, game *engine.Game, gameConfig *config.GameConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initialize terminal screen")
	}
	if gameConfig.Render.Mouse {
		screen.EnableMouse()
	}
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	game.AssetsLoaded()
	input := render.NewTerminalInput(game, renderer, gameConfig.Render.Mouse, game.Snapshot().Shield.CenterX)
	go input.Listen(ctx, screen, cancel)

	return ignoreCancel(game.Run(ctx, gameConfig.Render.TickRate, renderer.Render))
}

// runHeadless plays without steering: it launches every resting ball, advances
// cleared waves and stops at game over or a signal. Frames go to the debug log.
func runHeadless(ctx context.Context, game *engine.Game, gameConfig *config.GameConfig, logger *logging.Logger) error {
	renderer := render.NewNullRenderer(logger)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	game.AssetsLoaded()
	game.Action()

	err := game.Run(ctx, gameConfig.Render.TickRate, func(state *engine.GameState) {
		renderer.Render(state)
		switch state.Status {
		case engine.StatusGameOver:
			logger.Info(ctx, "Headless game finished", "score", state.Score, "wave", state.Wave)
			cancel()
		case engine.StatusWaveClear:
			game.Action()
		case engine.StatusPlaying:
			for _, b := range state.Balls {
				if !b.Launched {
					game.Action()
					break
				}
			}
		}
	})
	return ignoreCancel(err)
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
