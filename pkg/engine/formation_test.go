package engine

import (
	"math"
	"testing"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

func TestFormationSpeed(t *testing.T) {
	tests := []struct {
		wave     int
		expected float64
	}{
		{1, 0.6},
		{2, 0.75},
		{5, 1.2},
		{30, 2.5},
	}

	g, _, _ := newPlayingGame(t, nil)
	for _, tt := range tests {
		g.State.Wave = tt.wave
		if got := g.formationSpeed(); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("wave %d: formationSpeed() = %v, want %v", tt.wave, got, tt.expected)
		}
	}
}

func TestFormationStep(t *testing.T) {
	tests := []struct {
		name    string
		xs      []float64
		dir     float64
		wantXs  []float64
		wantDY  float64
		wantDir float64
	}{
		{
			name:    "moves_sideways",
			xs:      []float64{300, 344},
			dir:     1,
			wantXs:  []float64{300.6, 344.6},
			wantDY:  0,
			wantDir: 1,
		},
		{
			name:    "right_edge_reverses_and_drops",
			xs:      []float64{500, 557.7},
			dir:     1,
			wantXs:  []float64{500, 557.7},
			wantDY:  16,
			wantDir: -1,
		},
		{
			name:    "left_edge_reverses_and_drops",
			xs:      []float64{10.3, 100},
			dir:     -1,
			wantXs:  []float64{10.3, 100},
			wantDY:  16,
			wantDir: 1,
		},
		{
			name:    "several_at_edge_drop_once",
			xs:      []float64{557.7, 557.9},
			dir:     1,
			wantXs:  []float64{557.7, 557.9},
			wantDY:  16,
			wantDir: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newPlayingGame(t, nil)
			s := g.State
			s.Enemies = s.Enemies[:0]
			for _, x := range tt.xs {
				s.Enemies = append(s.Enemies, g.newEnemy(entity.Small, physics.Vector2D{X: x, Y: 200}))
			}
			s.FormationDir = tt.dir

			g.formationStep()

			if s.FormationDir != tt.wantDir {
				t.Errorf("FormationDir = %v, want %v", s.FormationDir, tt.wantDir)
			}
			for i, e := range s.Enemies {
				if math.Abs(e.Position.X-tt.wantXs[i]) > 1e-9 {
					t.Errorf("enemy %d X = %v, want %v", i, e.Position.X, tt.wantXs[i])
				}
				if e.Position.Y != 200+tt.wantDY {
					t.Errorf("enemy %d Y = %v, want %v", i, e.Position.Y, 200+tt.wantDY)
				}
			}
		})
	}
}

func TestFormationStep_DeadEnemiesIgnored(t *testing.T) {
	g, _, _ := newPlayingGame(t, nil)
	s := g.State
	dead := g.newEnemy(entity.Small, physics.Vector2D{X: 570, Y: 200})
	dead.Alive = false
	live := g.newEnemy(entity.Small, physics.Vector2D{X: 300, Y: 200})
	s.Enemies = []*entity.Enemy{dead, live}

	g.formationStep()

	if s.FormationDir != 1 {
		t.Error("a dead enemy past the margin must not reverse the formation")
	}
	if dead.Position.X != 570 {
		t.Error("dead enemies should not move")
	}
	if math.Abs(live.Position.X-300.6) > 1e-9 {
		t.Errorf("live enemy X = %v, want 300.6", live.Position.X)
	}
}

func TestAdvanceFormation_Cadence(t *testing.T) {
	g, _, _ := newPlayingGame(t, func(c *config.GameConfig) {
		c.Formation.Cadence = 3
	})
	s := g.State
	e := g.newEnemy(entity.Small, physics.Vector2D{X: 300, Y: 200})
	e.Flash = 5
	s.Enemies = []*entity.Enemy{e}

	g.advanceFormation()
	g.advanceFormation()
	if e.Position.X != 300 {
		t.Fatalf("formation moved before its cadence: X = %v", e.Position.X)
	}
	if e.Flash != 3 {
		t.Errorf("Flash = %d, want 3; flashes tick every call", e.Flash)
	}
	g.advanceFormation()
	if math.Abs(e.Position.X-300.6) > 1e-9 {
		t.Errorf("X = %v, want 300.6 on the third call", e.Position.X)
	}
}

func TestEatBlocks(t *testing.T) {
	g, _, rec := newPlayingGame(t, nil)
	s := g.State
	breakable := entity.NewBlock(entity.Breakable, physics.Vector2D{X: 200, Y: 220}, 48, 16)
	solid := entity.NewBlock(entity.Indestructible, physics.Vector2D{X: 240, Y: 220}, 48, 16)
	clear := entity.NewBlock(entity.Breakable, physics.Vector2D{X: 400, Y: 220}, 48, 16)
	setBlocks(g, breakable, solid, clear)
	e := g.newEnemy(entity.Small, physics.Vector2D{X: 230, Y: 200})
	s.Enemies = []*entity.Enemy{e}
	s.Multiplier.Set(3)

	g.eatBlocks()

	if breakable.Alive || solid.Alive {
		t.Error("blocks under an enemy should be eaten, indestructible included")
	}
	if !clear.Alive {
		t.Error("block away from the enemy was eaten")
	}
	if s.Stats.BlocksEaten != 2 {
		t.Errorf("BlocksEaten = %d, want 2", s.Stats.BlocksEaten)
	}
	if s.Score != 0 || s.Multiplier.Value() != 3 {
		t.Error("eating blocks must not score or touch the multiplier")
	}
	if rec.count(event.CueBlockBreak) != 0 {
		t.Error("eating blocks is silent")
	}
}

func TestFireCooldownAndChance(t *testing.T) {
	tests := []struct {
		wave         int
		wantCooldown int
		wantChance   float64
	}{
		{1, 165, 0.2},
		{4, 120, 0.35},
		{9, 45, 0.6},
		{20, 40, 0.6},
	}

	g, _, _ := newPlayingGame(t, nil)
	for _, tt := range tests {
		g.State.Wave = tt.wave
		if got := g.fireCooldown(); got != tt.wantCooldown {
			t.Errorf("wave %d: fireCooldown() = %d, want %d", tt.wave, got, tt.wantCooldown)
		}
		if got := g.fireChance(); math.Abs(got-tt.wantChance) > 1e-9 {
			t.Errorf("wave %d: fireChance() = %v, want %v", tt.wave, got, tt.wantChance)
		}
	}
}

func TestFireEnemies(t *testing.T) {
	tests := []struct {
		name      string
		cooldown  int
		roll      float64
		preload   int
		wantShots int
	}{
		{name: "cooling_down", cooldown: 10, roll: 0.1, wantShots: 0},
		{name: "expired_and_hit", cooldown: 1, roll: 0.1, wantShots: 1},
		{name: "expired_and_miss", cooldown: 1, roll: 0.9, wantShots: 0},
		{name: "bullet_cap", cooldown: 1, roll: 0.1, preload: 80, wantShots: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rng, rec := newPlayingGame(t, nil)
			s := g.State
			e := g.newEnemy(entity.Small, physics.Vector2D{X: 300, Y: 200})
			e.Cooldown = tt.cooldown
			s.Enemies = []*entity.Enemy{e}
			for i := 0; i < tt.preload; i++ {
				s.Bullets = append(s.Bullets, entity.NewBullet(physics.Vector2D{X: 20, Y: 300}, 4, 10, 1))
			}
			rng.floats = []float64{tt.roll}

			g.fireEnemies()

			if got := s.Stats.ShotsFired; got != tt.wantShots {
				t.Errorf("ShotsFired = %d, want %d", got, tt.wantShots)
			}
			if rec.count(event.CueEnemyShot) != tt.wantShots {
				t.Errorf("enemy_shot cues = %d, want %d", rec.count(event.CueEnemyShot), tt.wantShots)
			}
			if len(s.Bullets) != tt.preload+tt.wantShots {
				t.Errorf("bullets = %d, want %d", len(s.Bullets), tt.preload+tt.wantShots)
			}
			if tt.cooldown == 1 && e.Cooldown != 165 {
				t.Errorf("Cooldown = %d, want reset to 165", e.Cooldown)
			}
			if tt.wantShots == 1 {
				b := s.Bullets[len(s.Bullets)-1]
				if b.Position.X != 314 || b.Position.Y != 224 {
					t.Errorf("bullet at %v, want under the enemy center", b.Position)
				}
				if math.Abs(b.Velocity.Y-2.8) > 1e-9 {
					t.Errorf("bullet speed = %v, want 2.8", b.Velocity.Y)
				}
			}
		})
	}
}

func TestSteerShip(t *testing.T) {
	g, rng, _ := newPlayingGame(t, nil)
	rng.floats = []float64{0.2, 0.5}
	rng.ints = []int{30}

	g.steerShip()

	ship := g.State.Ship
	if ship.Dir != -1 || ship.Speed != 1.0 || ship.Timer != 90 {
		t.Errorf("ship dir=%v speed=%v timer=%d, want -1/1.0/90", ship.Dir, ship.Speed, ship.Timer)
	}
}

func TestStepShip_RetargetsWhenTimerExpires(t *testing.T) {
	g, rng, _ := newPlayingGame(t, nil)
	ship := g.State.Ship
	ship.Steer(1, 1, 1)
	rng.ints = []int{10}

	g.stepShip()

	if ship.Position.X != 301 {
		t.Errorf("ship X = %v, want 301", ship.Position.X)
	}
	if ship.Timer != 70 {
		t.Errorf("Timer = %d, want a fresh 70", ship.Timer)
	}
}
