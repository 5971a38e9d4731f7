// pkg/engine/formation.go
package engine

import (
	"math"

	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// formationSpeed is the horizontal distance the formation covers per cadence step.
func (g *Game) formationSpeed() float64 {
	f := g.Config.Formation
	return math.Min(f.Speed+float64(g.State.Wave-1)*f.SpeedPerWave, f.SpeedMax)
}

// advanceFormation ticks hit flashes and, every Cadence ticks, moves the formation.
func (g *Game) advanceFormation() {
	s := g.State
	for _, e := range s.Enemies {
		if e.Alive {
			e.TickFlash()
		}
	}

	s.formationClock++
	if s.formationClock < g.Config.Formation.Cadence {
		return
	}
	s.formationClock = 0
	g.formationStep()
	g.eatBlocks()
}

// formationStep moves every living enemy together. If any of them would cross a
// margin the whole formation reverses and drops instead of moving sideways; the
// drop happens once per step no matter how many enemies touch the edge.
func (g *Game) formationStep() {
	s := g.State
	f := g.Config.Formation
	dx := s.FormationDir * g.formationSpeed()
	left, right := f.Margin, g.Config.Playfield.Width-f.Margin

	edge := false
	for _, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		x := e.Position.X + dx
		if x < left || x+e.Width > right {
			edge = true
			break
		}
	}

	if edge {
		s.FormationDir = -s.FormationDir
		for _, e := range s.Enemies {
			if e.Alive {
				e.Position.Y += f.DropStep
			}
		}
		return
	}

	for _, e := range s.Enemies {
		if e.Alive {
			e.Position.X += dx
		}
	}
}

// eatBlocks removes any block a living enemy now overlaps, silently.
func (g *Game) eatBlocks() {
	s := g.State
	for _, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		box := e.Bounds()
		for _, i := range g.blockCandidates(box) {
			blk := s.Blocks[i]
			if blk.Alive && blk.Bounds().Overlaps(box) {
				blk.Alive = false
				s.Stats.BlocksEaten++
			}
		}
	}
}

// fireCooldown is the randomized reload time for the current wave.
func (g *Game) fireCooldown() int {
	e := g.Config.Enemy
	base := e.FireCooldownBase - g.State.Wave*e.FireCooldownPerWave
	if base < e.FireCooldownMin {
		base = e.FireCooldownMin
	}
	return base + intN(g.rng, e.FireJitter)
}

func (g *Game) fireChance() float64 {
	e := g.Config.Enemy
	return math.Min(e.FireChanceBase+float64(g.State.Wave)*e.FireChancePerWave, e.FireChanceMax)
}

// fireEnemies counts down every living enemy's cooldown and rolls a shot when it
// expires.
func (g *Game) fireEnemies() {
	s := g.State
	for _, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		e.Cooldown--
		if e.Cooldown > 0 {
			continue
		}
		e.Cooldown = g.fireCooldown()
		if g.rng.Float64() >= g.fireChance() {
			continue
		}
		g.fire(e)
	}
}

func (g *Game) fire(e *entity.Enemy) {
	s := g.State
	cfg := g.Config.Enemy
	if s.LiveBullets() >= g.Config.Limits.MaxBullets {
		return
	}
	pos := physics.Vector2D{
		X: e.Position.X + e.Width/2 - cfg.BulletWidth/2,
		Y: e.Bottom(),
	}
	speed := cfg.BulletSpeed + float64(s.Wave)*cfg.BulletSpeedPerWave
	s.Bullets = append(s.Bullets, entity.NewBullet(pos, cfg.BulletWidth, cfg.BulletHeight, speed))
	s.Stats.ShotsFired++
	g.cue(event.CueEnemyShot, pos)
}

// stepShip wanders the ship and picks a new heading when its timer runs out.
func (g *Game) stepShip() {
	if g.State.Ship.Wander(g.Config.Playfield.Width) {
		g.steerShip()
	}
}

func (g *Game) steerShip() {
	sc := g.Config.Ship
	dir := 1.0
	if g.rng.Float64() < 0.5 {
		dir = -1
	}
	speed := rangeF(g.rng, sc.SpeedMin, sc.SpeedMax)
	timer := sc.TurnMin + intN(g.rng, sc.TurnMax-sc.TurnMin+1)
	g.State.Ship.Steer(dir, speed, timer)
}
