// pkg/engine/collision.go
package engine

import (
	"sort"

	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// resolveBallCollisions lets each launched ball resolve at most one block and one
// enemy per tick, taking the lowest index on ties.
func (g *Game) resolveBallCollisions() {
	s := g.State
	for _, b := range s.Balls {
		if !b.Launched {
			continue
		}
		if blk := g.firstBlockHit(b.Bounds()); blk != nil {
			g.bounceOff(b, blk.Bounds())
			g.hitBlock(blk)
		}
		if e := g.firstEnemyHit(b.Bounds()); e != nil {
			g.bounceOff(b, e.Bounds())
			g.hitEnemy(e)
		}
	}
}

func (g *Game) bounceOff(b *entity.Ball, box physics.AABB) {
	pos, vel, _, ok := physics.ResolveCircle(b.Position, b.Velocity, b.Radius, box)
	if !ok {
		return
	}
	b.Position, b.Velocity = pos, vel
	g.clampBall(b)
}

// blockCandidates returns indices of blocks whose boxes touch area, in index order.
func (g *Game) blockCandidates(area physics.AABB) []int {
	s := g.State
	if s.blockIndex == nil {
		idx := make([]int, len(s.Blocks))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	found := s.blockIndex.Query(area)
	sort.Ints(found)
	return found
}

func (g *Game) firstBlockHit(box physics.AABB) *entity.Block {
	s := g.State
	for _, i := range g.blockCandidates(box) {
		blk := s.Blocks[i]
		if blk.Alive && blk.Bounds().Overlaps(box) {
			return blk
		}
	}
	return nil
}

func (g *Game) firstEnemyHit(box physics.AABB) *entity.Enemy {
	for _, e := range g.State.Enemies {
		if e.Alive && e.Bounds().Overlaps(box) {
			return e
		}
	}
	return nil
}

// hitBlock scores a breakable block at the current multiplier before raising it.
// Indestructible blocks only make noise.
func (g *Game) hitBlock(blk *entity.Block) {
	s := g.State
	center := blk.Bounds().Center()
	if !blk.Break() {
		g.cue(event.CueBlockHit, center)
		s.Particles.Emit(center, particle.Spark, 2, 1)
		return
	}
	s.Score += s.Multiplier.Award(g.Config.Block.Score)
	s.Multiplier.Add()
	s.Stats.BlocksBroken++
	g.cue(event.CueBlockBreak, center)
	s.Particles.Emit(center, particle.Debris, 8, 2)
}

// hitEnemy damages an enemy. Every hit raises the multiplier; a kill scores by
// kind first and may earn a bonus ball.
func (g *Game) hitEnemy(e *entity.Enemy) {
	s := g.State
	center := e.Bounds().Center()
	died := e.Hit(g.Config.Enemy.HitFlashTicks)
	if died {
		s.Score += s.Multiplier.Award(g.enemyScore(e.Kind))
	}
	s.Multiplier.Add()
	g.cue(event.CueEnemyHit, center)

	if !died {
		s.Particles.Emit(center, particle.Spark, 3, 1.5)
		return
	}
	s.Stats.Kills++
	s.KillCounter++
	s.Particles.Emit(center, particle.Burst, 12, 2.5)
	g.killBonus()
}

func (g *Game) enemyScore(kind entity.EnemyKind) int {
	if kind == entity.Medium {
		return g.Config.Enemy.MediumScore
	}
	return g.Config.Enemy.SmallScore
}

// killBonus rolls for an extra ball every KillsPerBonus kills.
func (g *Game) killBonus() {
	s := g.State
	every := g.Config.Scoring.KillsPerBonus
	if every < 1 || s.KillCounter%every != 0 {
		return
	}
	if g.rng.Float64() >= g.Config.Scoring.BonusBallChance {
		return
	}
	if b := g.addBall(true); b != nil {
		s.Stats.BonusBalls++
		g.Logger.Debug(g.ctx, "bonus ball spawned", "kills", s.KillCounter, "balls", len(s.Balls))
	}
}

// resolveBulletCollisions checks each bullet against the shield, then the blocks,
// then the ship band, then the field edges. The first match removes the bullet.
func (g *Game) resolveBulletCollisions() {
	s := g.State
	shieldBox := s.Shield.Bounds()
	shipTop := s.Ship.Position.Y
	w, h := g.Config.Playfield.Width, g.Config.Playfield.Height

	for _, bullet := range s.Bullets {
		if !bullet.Alive {
			continue
		}
		box := bullet.Bounds()
		center := box.Center()

		if box.Overlaps(shieldBox) {
			bullet.Alive = false
			s.Stats.ShotsBlocked++
			s.Particles.Emit(center, particle.Spark, 4, 1.5)
			continue
		}

		if blk := g.firstBlockHit(box); blk != nil {
			bullet.Alive = false
			if blk.Break() {
				s.Stats.BlocksBroken++
				g.cue(event.CueBlockBreak, blk.Bounds().Center())
				s.Particles.Emit(blk.Bounds().Center(), particle.Debris, 6, 1.5)
			}
			continue
		}

		if bullet.Bottom() >= shipTop {
			bullet.Alive = false
			s.Ship.Damage(1)
			s.Stats.ShipHits++
			s.ScreenFlash = g.Config.Ship.ScreenFlashTicks
			g.cue(event.CueShipDamage, center)
			s.Particles.Emit(center, particle.Burst, 6, 2)
			continue
		}

		if bullet.OffField(w, h) {
			bullet.Alive = false
		}
	}
}

// stepBullets moves every live bullet.
func (g *Game) stepBullets() {
	for _, b := range g.State.Bullets {
		if b.Alive {
			b.Step()
		}
	}
}
