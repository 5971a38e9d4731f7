// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
)

const (
	hudFontURL  = "gomono.ttf"
	hudFontSize = 16
)

// GameScene is the windowed front end. It owns the fixed-step simulation and
// mirrors every snapshot into engo's render system.
type GameScene struct {
	game   *engine.Game
	cfg    *config.GameConfig
	logger *logging.Logger
	ctx    context.Context

	world    *ecs.World
	camera   *Camera
	assets   *AssetManager
	renderer *EngoRenderer
	hud      *HUDSystem
	input    *InputSystem
	sim      *SimulationSystem
}

// NewGameScene creates a scene driving game.
func NewGameScene(ctx context.Context, game *engine.Game, cfg *config.GameConfig, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		game:   game,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		camera: NewCamera(cfg.Playfield.Width, cfg.Playfield.Height),
		assets: NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "ShieldwallScene"
}

// Preload registers the HUD font with engo's file loader.
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		scene.logger.Error(scene.ctx, "HUD font unavailable", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.ctx, "engo updater is not an ecs world, nothing to draw")
		return
	}
	scene.world = world

	common.SetBackground(color.Black)
	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	SetupInputBindings()

	scene.camera.FitGame()
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(scene.ctx, "sprite upload failed, drawing rectangles", err)
	}
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, scene.assets)
	scene.hud = NewHUDSystem(renderSystem, scene.cfg.Scoring.MultMax)

	font := &common.Font{URL: hudFontURL, FG: colorHUDText, Size: hudFontSize}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(scene.ctx, "HUD font failed to load, text disabled", err)
	} else {
		scene.hud.SetFont(font)
	}

	start := scene.game.Snapshot().Shield.CenterX
	scene.input = NewInputSystem(scene.game, scene.camera, scene.cfg.Render.Mouse, start, engo.Exit)
	world.AddSystem(scene.input)

	scene.sim = NewSimulationSystem(scene.game, scene.cfg.Render.TickRate, scene.frame)
	world.AddSystem(scene.sim)

	scene.game.AssetsLoaded()
	scene.logger.Info(scene.ctx, "window scene ready",
		"width", engo.GameWidth(), "height", engo.GameHeight(), "scale", scene.camera.Scale())
}

// frame mirrors one snapshot into the render entities.
func (scene *GameScene) frame(state *engine.GameState) {
	scene.camera.Shake(state.ScreenFlash, scene.cfg.Ship.ScreenFlashTicks, state.Tick)
	scene.renderer.Sync(state)
	scene.hud.Sync(state)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	ticks := uint64(0)
	if scene.sim != nil {
		ticks = scene.sim.Ticks()
	}
	if scene.renderer != nil {
		scene.renderer.Clear()
	}
	scene.logger.Info(scene.ctx, "window closed", "ticks", ticks)
}

// Run opens the window and blocks until it closes.
func Run(ctx context.Context, game *engine.Game, cfg *config.GameConfig, logger *logging.Logger) {
	scale := cfg.Render.Scale
	if scale <= 0 {
		scale = 1
	}
	opts := engo.RunOptions{
		Title:        "Shieldwall",
		Width:        int(cfg.Playfield.Width * scale),
		Height:       int(cfg.Playfield.Height * scale),
		VSync:        true,
		NotResizable: true,
	}
	engo.Run(opts, NewGameScene(ctx, game, cfg, logger))
}
