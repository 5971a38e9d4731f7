// pkg/engine/ballphysics.go
package engine

import (
	"math"

	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// stepBalls integrates every ball, bounces it off the walls and the shield, and
// marks the ones that fell out of the field.
func (g *Game) stepBalls() {
	s := g.State
	for _, b := range s.Balls {
		if !b.Launched {
			b.PinTo(s.Shield)
			continue
		}
		b.Step()
		g.bounceWalls(b)
		g.bounceShield(b)
		b.Lost = b.BelowField(g.Config.Playfield.Height)
	}
}

// bounceWalls reflects off the left, right and top edges. The bottom is open.
func (g *Game) bounceWalls(b *entity.Ball) {
	w := g.Config.Playfield.Width
	r := b.Radius
	reflected := false

	if b.Position.X < r {
		b.Position.X = r
		b.Velocity.X = math.Abs(b.Velocity.X)
		reflected = true
	} else if b.Position.X > w-r {
		b.Position.X = w - r
		b.Velocity.X = -math.Abs(b.Velocity.X)
		reflected = true
	}
	if b.Position.Y < r {
		b.Position.Y = r
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		reflected = true
	}

	if reflected {
		b.Velocity.Y = physics.EnforceMinDY(b.Velocity.Y, g.Config.Ball.MinDY)
	}
}

// bounceShield reflects a descending ball by where it struck the shield, keeping
// its speed.
func (g *Game) bounceShield(b *entity.Ball) {
	sh := g.State.Shield
	if b.Velocity.Y <= 0 || !b.Bounds().Overlaps(sh.Bounds()) {
		return
	}

	b.Velocity = physics.PaddleReflect(b.Position.X, b.Velocity, sh.Position.X, sh.HalfWidth(), g.Config.Shield.MaxBounceAngle)
	b.Velocity.Y = physics.EnforceMinDY(b.Velocity.Y, g.Config.Ball.MinDY)
	b.Position.Y = sh.SurfaceY(b.Position.X) - b.Radius - physics.SnapEpsilon

	g.cue(event.CueReflect, b.Position)
	g.State.Particles.Emit(b.Position, particle.Spark, 3, 1.5)
}

// clampBall keeps a ball inside the side and top walls after a collision push.
func (g *Game) clampBall(b *entity.Ball) {
	r := b.Radius
	b.Position.X = physics.Clamp(b.Position.X, r, g.Config.Playfield.Width-r)
	if b.Position.Y < r {
		b.Position.Y = r
	}
	b.Velocity.Y = physics.EnforceMinDY(b.Velocity.Y, g.Config.Ball.MinDY)
	b.Lost = b.BelowField(g.Config.Playfield.Height)
}

// launchBalls fires every ball still resting on the shield.
func (g *Game) launchBalls() {
	for _, b := range g.State.Balls {
		if !b.Launched {
			b.Launch(g.launchAngle(), g.Config.Ball.Speed)
		}
	}
}

func (g *Game) launchAngle() float64 {
	j := g.Config.Ball.LaunchJitter
	return rangeF(g.rng, -j, j)
}

// addBall creates a ball on the shield, launched or resting. It returns nil when
// the ball cap is reached.
func (g *Game) addBall(launched bool) *entity.Ball {
	s := g.State
	if len(s.Balls) >= g.Config.Limits.MaxBalls {
		g.Logger.Debug(g.ctx, "ball cap reached", "max_balls", g.Config.Limits.MaxBalls)
		return nil
	}
	b := entity.NewBall(physics.Vector2D{}, g.Config.Ball.Radius)
	b.PinTo(s.Shield)
	if launched {
		b.Launch(g.launchAngle(), g.Config.Ball.Speed)
	}
	s.Balls = append(s.Balls, b)
	return b
}
