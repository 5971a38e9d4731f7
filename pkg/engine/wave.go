// pkg/engine/wave.go
package engine

import (
	"math"

	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// gridSize returns the enemy rows, columns and medium rows for a wave.
func (g *Game) gridSize(wave int) (rows, cols, medium int) {
	w := g.Config.Waves
	rows = min(w.BaseRows+(wave-1)/2, w.MaxRows)
	cols = min(w.BaseCols+(wave-1), w.MaxCols)
	frac := math.Min(w.MediumFraction*float64(wave), w.MediumFractionMax)
	medium = int(math.Floor(float64(rows) * frac))
	return rows, cols, medium
}

// buildWave replaces enemies, blocks, ship, balls and bullets for the current
// wave. Score carries over; per-wave counters and the multiplier start fresh.
func (g *Game) buildWave() {
	s := g.State
	cfg := g.Config

	s.Enemies = s.Enemies[:0]
	s.Bullets = s.Bullets[:0]
	s.Balls = s.Balls[:0]
	s.Particles.Clear()
	s.Multiplier.Reset()
	s.Stats = WaveStats{}
	s.KillCounter = 0
	s.ScreenFlash = 0
	s.FormationDir = 1
	s.formationClock = 0

	g.spawnFormation()
	g.spawnBlocks()

	maxHP := cfg.Ship.BaseHP + (s.Wave-1)*cfg.Ship.HPPerWave
	s.Ship = entity.NewShip(cfg.Playfield.Width/2, cfg.ShipTop(), cfg.Ship.Width, cfg.Ship.Height, maxHP)
	g.steerShip()

	g.addBall(false)

	g.Logger.Info(g.ctx, "wave built",
		"wave", s.Wave,
		"enemies", len(s.Enemies),
		"blocks", len(s.Blocks),
		"ship_hp", maxHP)
	g.EventBus.Publish(event.NewWaveEvent(g, s.Wave, len(s.Enemies), len(s.Blocks), maxHP))
}

func (g *Game) spawnFormation() {
	s := g.State
	cfg := g.Config
	rows, cols, medium := g.gridSize(s.Wave)

	gridW := float64(cols-1)*cfg.Formation.SpacingX + cfg.Enemy.Width
	left := (cfg.Playfield.Width - gridW) / 2

	for r := 0; r < rows; r++ {
		kind := entity.Small
		if r < medium {
			kind = entity.Medium
		}
		for c := 0; c < cols; c++ {
			pos := physics.Vector2D{
				X: left + float64(c)*cfg.Formation.SpacingX,
				Y: cfg.Formation.TopOffset + float64(r)*cfg.Formation.SpacingY,
			}
			s.Enemies = append(s.Enemies, g.newEnemy(kind, pos))
		}
	}
}

func (g *Game) newEnemy(kind entity.EnemyKind, pos physics.Vector2D) *entity.Enemy {
	cfg := g.Config.Enemy
	hp := cfg.SmallHP
	if kind == entity.Medium {
		hp = cfg.MediumHP
	}
	return entity.NewEnemy(kind, pos, cfg.Width, cfg.Height, hp, g.fireCooldown())
}

// spawnBlocks lays out the block field and indexes it for the rest of the wave.
func (g *Game) spawnBlocks() {
	s := g.State
	bc := g.Config.Block
	s.Blocks = s.Blocks[:0]

	rowW := float64(bc.Columns)*bc.Width + float64(max(bc.Columns-1, 0))*bc.Gap
	left := (g.Config.Playfield.Width - rowW) / 2

	for r := 0; r < bc.Rows; r++ {
		for c := 0; c < bc.Columns; c++ {
			kind := entity.Breakable
			if g.rng.Float64() < bc.IndestructibleRatio {
				kind = entity.Indestructible
			}
			pos := physics.Vector2D{
				X: left + float64(c)*(bc.Width+bc.Gap),
				Y: bc.Top + float64(r)*(bc.Height+bc.Gap),
			}
			s.Blocks = append(s.Blocks, entity.NewBlock(kind, pos, bc.Width, bc.Height))
		}
	}
	g.indexBlocks()
}

// indexBlocks rebuilds the block quadtree. Blocks never move, so this runs once a
// wave, and also after tests or tools replace the block slice.
func (g *Game) indexBlocks() {
	s := g.State
	bounds := physics.AABB{X: 0, Y: 0, W: g.Config.Playfield.Width, H: g.Config.Playfield.Height}
	for _, b := range s.Blocks {
		bounds = union(bounds, b.Bounds())
	}

	idx := physics.NewQuadTree[int](bounds, 4)
	for i, b := range s.Blocks {
		idx.Insert(b.Bounds(), i)
	}
	s.blockIndex = idx
}

func union(a, b physics.AABB) physics.AABB {
	x0 := math.Min(a.Left(), b.Left())
	y0 := math.Min(a.Top(), b.Top())
	x1 := math.Max(a.Right(), b.Right())
	y1 := math.Max(a.Bottom(), b.Bottom())
	return physics.AABB{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// removeLostBalls drops balls that fell out and applies the ball-loss penalty once
// per tick, after this tick's scoring.
func (g *Game) removeLostBalls() {
	s := g.State
	lost := 0
	kept := s.Balls[:0]
	for _, b := range s.Balls {
		if b.Launched && b.Lost {
			lost++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(s.Balls); i++ {
		s.Balls[i] = nil
	}
	s.Balls = kept

	if lost > 0 {
		g.ballLossPenalty(lost)
	}
}

func (g *Game) ballLossPenalty(lost int) {
	s := g.State
	w := g.Config.Waves

	s.Multiplier.Reset()
	s.Stats.BallsLost += lost
	g.cue(event.CueBallDrop, s.Shield.Position)

	spawn := w.PenaltySpawnMin + intN(g.rng, w.PenaltySpawnJitter)
	spawned := g.spawnPenaltyEnemies(spawn)

	emptied := len(s.Balls) == 0
	if emptied {
		spawned += g.spawnPenaltyEnemies(w.PenaltyBatch)
		g.addBall(false)
	}

	g.Logger.Debug(g.ctx, "ball loss penalty",
		"lost", lost,
		"spawned", spawned,
		"balls_left", len(s.Balls),
		"emptied", emptied)
}

// spawnPenaltyEnemies adds up to n small enemies near the top, stopping silently at
// the live enemy cap. It returns how many were added.
func (g *Game) spawnPenaltyEnemies(n int) int {
	s := g.State
	cfg := g.Config
	living := s.LivingEnemies()
	minX := cfg.Formation.Margin
	maxX := cfg.Playfield.Width - cfg.Formation.Margin - cfg.Enemy.Width

	added := 0
	for ; added < n; added++ {
		if living+added >= cfg.Limits.MaxEnemies {
			g.Logger.Debug(g.ctx, "enemy cap reached", "max_enemies", cfg.Limits.MaxEnemies, "skipped", n-added)
			break
		}
		pos := physics.Vector2D{
			X: rangeF(g.rng, minX, maxX),
			Y: rangeF(g.rng, cfg.Waves.PenaltyMinY, cfg.Waves.PenaltyMaxY),
		}
		s.Enemies = append(s.Enemies, g.newEnemy(entity.Small, pos))
	}
	s.Stats.PenaltySpawns += added
	return added
}
