package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

func TestBallBreaksBlock_ScoresAtCurrentMultiplier(t *testing.T) {
	g, _, rec := newPlayingGame(t, nil)
	s := g.State
	blk := entity.NewBlock(entity.Breakable, physics.Vector2D{X: 100, Y: 300}, 48, 16)
	setBlocks(g, blk)
	ball := launchedBall(physics.Vector2D{X: 124, Y: 325}, physics.Vector2D{X: 0, Y: -4.5})
	s.Balls = []*entity.Ball{ball}
	s.Multiplier.Set(2.0)

	g.Update()

	if blk.Alive {
		t.Fatal("block should be broken")
	}
	if s.Score != 20 {
		t.Errorf("Score = %d, want 20 (10 at x2.0)", s.Score)
	}
	if got := s.Multiplier.Value(); math.Abs(got-2.08) > 1e-9 {
		t.Errorf("multiplier = %v, want 2.08", got)
	}
	if ball.Velocity.Y <= 0 {
		t.Errorf("ball should bounce back down off the block bottom, velocity = %v", ball.Velocity)
	}
	if ball.Bounds().Overlaps(blk.Bounds()) {
		t.Error("ball left overlapping the block")
	}
	if rec.count(event.CueBlockBreak) != 1 {
		t.Error("expected a block_break cue")
	}
	if s.Stats.BlocksBroken != 1 {
		t.Errorf("BlocksBroken = %d, want 1", s.Stats.BlocksBroken)
	}
}

func TestBallHitsIndestructibleBlock(t *testing.T) {
	g, _, rec := newPlayingGame(t, nil)
	s := g.State
	blk := entity.NewBlock(entity.Indestructible, physics.Vector2D{X: 100, Y: 300}, 48, 16)
	setBlocks(g, blk)
	ball := launchedBall(physics.Vector2D{X: 124, Y: 325}, physics.Vector2D{X: 0, Y: -4.5})
	s.Balls = []*entity.Ball{ball}

	g.Update()

	if !blk.Alive {
		t.Error("indestructible block was destroyed")
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0", s.Score)
	}
	if s.Multiplier.Value() != 1 {
		t.Errorf("multiplier = %v, want unchanged 1", s.Multiplier.Value())
	}
	if ball.Velocity.Y <= 0 {
		t.Errorf("ball should still bounce, velocity = %v", ball.Velocity)
	}
	if rec.count(event.CueBlockHit) != 1 || rec.count(event.CueBlockBreak) != 0 {
		t.Error("expected a block_hit cue and no block_break")
	}
}

func TestBallResolvesOneBlockPerTick(t *testing.T) {
	g, _, _ := newPlayingGame(t, nil)
	s := g.State
	first := entity.NewBlock(entity.Breakable, physics.Vector2D{X: 100, Y: 300}, 48, 16)
	second := entity.NewBlock(entity.Breakable, physics.Vector2D{X: 148, Y: 300}, 48, 16)
	setBlocks(g, first, second)
	ball := launchedBall(physics.Vector2D{X: 148, Y: 320}, physics.Vector2D{X: 0, Y: -4.5})
	s.Balls = []*entity.Ball{ball}

	g.resolveBallCollisions()

	if first.Alive {
		t.Error("lowest-index block should break first")
	}
	if !second.Alive {
		t.Error("only one block may be resolved per ball per tick")
	}
	if s.Score != 10 {
		t.Errorf("Score = %d, want 10", s.Score)
	}
}

func TestBallInBlockGap_ClearsBothNeighbours(t *testing.T) {
	g, _, _ := newPlayingGame(t, nil)
	s := g.State
	g.Config.Block.IndestructibleRatio = 1
	g.spawnBlocks()
	left := s.Blocks[0].Bounds()

	// ball dipping into the gap, overlapping the left block's right edge
	r := g.Config.Ball.Radius
	ball := launchedBall(physics.Vector2D{X: left.Right() + r - 1, Y: left.Center().Y}, physics.Vector2D{X: 0, Y: 4.5})
	s.Balls = []*entity.Ball{ball}

	g.resolveBallCollisions()

	for i, blk := range s.Blocks {
		if ball.Bounds().Overlaps(blk.Bounds()) {
			t.Fatalf("ball at %v still inside block %d %v", ball.Position, i, blk.Bounds())
		}
	}
	if ball.Position.X <= left.Right() {
		t.Errorf("ball should be pushed right of the block, x = %v", ball.Position.X)
	}
}

func TestMediumEnemyTakesTwoHits(t *testing.T) {
	g, _, rec := newPlayingGame(t, nil)
	s := g.State
	setBlocks(g)
	e := g.newEnemy(entity.Medium, physics.Vector2D{X: 300, Y: 300})
	s.Enemies = []*entity.Enemy{e, farEnemy(g)}

	hit := func() *entity.Ball {
		ball := launchedBall(physics.Vector2D{X: 316, Y: 329}, physics.Vector2D{X: 0, Y: -4.5})
		s.Balls = []*entity.Ball{ball}
		g.resolveBallCollisions()
		return ball
	}

	if b := hit(); b.Velocity.Y <= 0 {
		t.Errorf("ball should bounce off the enemy, velocity = %v", b.Velocity)
	}
	if !e.Alive || e.HP != 1 {
		t.Fatalf("after one hit alive=%v hp=%d, want alive with 1", e.Alive, e.HP)
	}
	if e.Flash != g.Config.Enemy.HitFlashTicks {
		t.Errorf("Flash = %d, want %d", e.Flash, g.Config.Enemy.HitFlashTicks)
	}
	if s.Score != 0 {
		t.Errorf("a non-lethal hit scored %d", s.Score)
	}
	if got := s.Multiplier.Value(); math.Abs(got-1.08) > 1e-9 {
		t.Errorf("multiplier after first hit = %v, want 1.08", got)
	}

	if b := hit(); b.Velocity.Y <= 0 {
		t.Errorf("ball should bounce off the enemy, velocity = %v", b.Velocity)
	}
	if e.Alive || e.HP != 0 {
		t.Fatalf("after two hits alive=%v hp=%d, want dead", e.Alive, e.HP)
	}
	// 150 at x1.08, awarded before the second gain
	if s.Score != 162 {
		t.Errorf("Score = %d, want 162", s.Score)
	}
	if s.Stats.Kills != 1 {
		t.Errorf("Kills = %d, want 1", s.Stats.Kills)
	}
	if rec.count(event.CueEnemyHit) != 2 {
		t.Errorf("enemy_hit cues = %d, want 2", rec.count(event.CueEnemyHit))
	}

	if b := hit(); b.Velocity.Y >= 0 || s.Score != 162 {
		t.Error("a dead enemy must not be hit again")
	}
}

func TestKillBonus(t *testing.T) {
	tests := []struct {
		name       string
		killsSoFar int
		roll       float64
		wantBonus  bool
	}{
		{name: "fifth_kill_lucky_roll", killsSoFar: 4, roll: 0.1, wantBonus: true},
		{name: "fifth_kill_unlucky_roll", killsSoFar: 4, roll: 0.9, wantBonus: false},
		{name: "fourth_kill", killsSoFar: 3, roll: 0.1, wantBonus: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rng, _ := newPlayingGame(t, nil)
			s := g.State
			setBlocks(g)
			e := g.newEnemy(entity.Small, physics.Vector2D{X: 300, Y: 300})
			s.Enemies = []*entity.Enemy{e, farEnemy(g)}
			s.KillCounter = tt.killsSoFar
			ball := launchedBall(physics.Vector2D{X: 316, Y: 329}, physics.Vector2D{X: 0, Y: -4.5})
			s.Balls = []*entity.Ball{ball}
			rng.floats = []float64{tt.roll}

			g.resolveBallCollisions()

			if e.Alive {
				t.Fatal("small enemy should die in one hit")
			}
			want := 1
			if tt.wantBonus {
				want = 2
			}
			if len(s.Balls) != want {
				t.Errorf("balls = %d, want %d", len(s.Balls), want)
			}
			if tt.wantBonus {
				if !s.Balls[1].Launched {
					t.Error("bonus ball should launch immediately")
				}
				if s.Stats.BonusBalls != 1 {
					t.Errorf("BonusBalls = %d, want 1", s.Stats.BonusBalls)
				}
			}
		})
	}
}

func TestBulletCollisions(t *testing.T) {
	tests := []struct {
		name      string
		pos       physics.Vector2D
		block     *entity.Block
		wantHP    int
		wantBlock bool
		check     func(t *testing.T, s *SimulationState)
	}{
		{
			name:   "absorbed_by_shield",
			pos:    physics.Vector2D{X: 298, Y: 730},
			wantHP: 5,
			check: func(t *testing.T, s *SimulationState) {
				if s.Stats.ShotsBlocked != 1 {
					t.Errorf("ShotsBlocked = %d, want 1", s.Stats.ShotsBlocked)
				}
			},
		},
		{
			name:      "breaks_block_without_score",
			pos:       physics.Vector2D{X: 110, Y: 295},
			block:     entity.NewBlock(entity.Breakable, physics.Vector2D{X: 100, Y: 300}, 48, 16),
			wantHP:    5,
			wantBlock: false,
			check: func(t *testing.T, s *SimulationState) {
				if s.Score != 0 || s.Multiplier.Value() != 1 {
					t.Errorf("bullet breakage scored: score=%d mult=%v", s.Score, s.Multiplier.Value())
				}
			},
		},
		{
			name:      "stopped_by_indestructible_block",
			pos:       physics.Vector2D{X: 110, Y: 295},
			block:     entity.NewBlock(entity.Indestructible, physics.Vector2D{X: 100, Y: 300}, 48, 16),
			wantHP:    5,
			wantBlock: true,
		},
		{
			name:   "ship_band_ignores_x",
			pos:    physics.Vector2D{X: 5, Y: 761},
			wantHP: 4,
			check: func(t *testing.T, s *SimulationState) {
				if s.ScreenFlash == 0 {
					t.Error("ship hit should flash the screen")
				}
			},
		},
		{
			name:   "off_field_sideways",
			pos:    physics.Vector2D{X: -20, Y: 300},
			wantHP: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newPlayingGame(t, nil)
			s := g.State
			if tt.block != nil {
				setBlocks(g, tt.block)
			} else {
				setBlocks(g)
			}
			b := entity.NewBullet(tt.pos, 4, 10, 3)
			s.Bullets = []*entity.Bullet{b}

			g.resolveBulletCollisions()

			if b.Alive {
				t.Error("bullet should be removed")
			}
			if s.Ship.HP != tt.wantHP {
				t.Errorf("ship HP = %d, want %d", s.Ship.HP, tt.wantHP)
			}
			if tt.block != nil && tt.block.Alive != tt.wantBlock {
				t.Errorf("block alive = %v, want %v", tt.block.Alive, tt.wantBlock)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestBulletInFlightSurvives(t *testing.T) {
	g, _, _ := newPlayingGame(t, nil)
	setBlocks(g)
	b := entity.NewBullet(physics.Vector2D{X: 20, Y: 300}, 4, 10, 3)
	g.State.Bullets = []*entity.Bullet{b}

	g.resolveBulletCollisions()

	if !b.Alive {
		t.Error("bullet in open space should keep flying")
	}
}

func TestBounceOff_NoResidualPenetration(t *testing.T) {
	g, _, _ := newPlayingGame(t, nil)
	box := physics.AABB{X: 250, Y: 300, W: 48, H: 16}
	r := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 2000; i++ {
		pos := physics.Vector2D{
			X: box.X - 6 + r.Float64()*(box.W+12),
			Y: box.Y - 6 + r.Float64()*(box.H+12),
		}
		vel := physics.FromUpAngle(r.Float64()*2*math.Pi, 4.5)
		ball := launchedBall(pos, vel)
		if !ball.Bounds().Overlaps(box) {
			continue
		}

		g.bounceOff(ball, box)

		if ball.Bounds().Overlaps(box) {
			t.Fatalf("case %d: ball at %v still overlaps %v", i, ball.Position, box)
		}
		if math.Abs(ball.Velocity.Y) < g.Config.Ball.MinDY {
			t.Fatalf("case %d: dy %v below minimum", i, ball.Velocity.Y)
		}
	}
}
