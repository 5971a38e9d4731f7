package engo

import (
	"context"
	"testing"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/engine"
)

func newPlayingGame(t *testing.T) *engine.Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	g := engine.NewGame(cfg)
	g.AssetsLoaded()
	g.Action()
	if g.CurrentStatus() != engine.StatusPlaying {
		t.Fatalf("status = %v, want playing", g.CurrentStatus())
	}
	return g
}

func TestNewGameScene(t *testing.T) {
	cfg := config.DefaultConfig()
	scene := NewGameScene(context.Background(), engine.NewGame(cfg), cfg, nil)

	if scene.Type() != "ShieldwallScene" {
		t.Errorf("Type() = %q", scene.Type())
	}
	if scene.camera == nil || scene.assets == nil || scene.logger == nil {
		t.Error("scene should build its camera, assets and logger up front")
	}
}

func TestGameScene_ExitBeforeSetup(t *testing.T) {
	cfg := config.DefaultConfig()
	scene := NewGameScene(context.Background(), engine.NewGame(cfg), cfg, nil)
	scene.Exit()
}

func TestGameScene_Frame(t *testing.T) {
	g := newPlayingGame(t)
	cfg := g.Config
	scene := NewGameScene(context.Background(), g, cfg, nil)
	sink := newFakeSink()
	scene.camera.Fit(cfg.Playfield.Width, cfg.Playfield.Height)
	scene.renderer = NewEngoRenderer(sink, scene.camera, scene.assets)
	scene.hud = NewHUDSystem(sink, cfg.Scoring.MultMax)

	state := g.Snapshot()
	scene.frame(state)

	// enemies, blocks, shield, ship and the resting ball
	want := len(state.Enemies) + len(state.Blocks) + 3
	if scene.renderer.Tracked() != want {
		t.Errorf("Tracked() = %d, want %d", scene.renderer.Tracked(), want)
	}
	if scene.hud.hpBar.SpaceComponent.Width != barWidth {
		t.Errorf("full ship should fill the hp bar, got %v", scene.hud.hpBar.SpaceComponent.Width)
	}
}

func TestSimulationSystem_FixedStep(t *testing.T) {
	tests := []struct {
		name      string
		frames    []float32
		wantTicks uint64
	}{
		{"one_tick_per_frame", []float32{1.0 / 60, 1.0 / 60, 1.0 / 60}, 3},
		{"slow_frame_catches_up", []float32{0.05}, 3},
		{"short_frames_accumulate", []float32{0.01, 0.01}, 1},
		{"stall_is_capped", []float32{1.0}, maxCatchUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newPlayingGame(t)
			start := g.Snapshot().Tick
			frames := 0
			sim := NewSimulationSystem(g, 60, func(*engine.GameState) { frames++ })

			for _, dt := range tt.frames {
				sim.Update(dt)
			}

			if sim.Ticks() != tt.wantTicks {
				t.Errorf("Ticks() = %d, want %d", sim.Ticks(), tt.wantTicks)
			}
			if got := g.Snapshot().Tick - start; got != tt.wantTicks {
				t.Errorf("game advanced %d ticks, want %d", got, tt.wantTicks)
			}
			if frames != len(tt.frames) {
				t.Errorf("onFrame ran %d times, want once per frame", frames)
			}
		})
	}
}

func TestSimulationSystem_StallDropsBacklog(t *testing.T) {
	g := newPlayingGame(t)
	sim := NewSimulationSystem(g, 60, nil)

	sim.Update(1.0)
	sim.Update(0)

	if sim.Ticks() != maxCatchUp {
		t.Errorf("Ticks() = %d, want %d after the backlog is dropped", sim.Ticks(), maxCatchUp)
	}
}

func TestSimulationSystem_DefaultRate(t *testing.T) {
	sim := NewSimulationSystem(nil, 0, nil)
	if sim.step <= 0.0166 || sim.step >= 0.0167 {
		t.Errorf("step = %v, want 1/60 s", sim.step)
	}
}
