// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// GameState is a read-only copy of everything a renderer needs for one frame
type GameState struct {
	Status GameStatus
	Tick   uint64
	Width  float64
	Height float64

	Score           int
	Wave            int
	Multiplier      float64
	MultiplierFlash int
	ScreenFlash     int
	DangerLine      float64
	Stats           WaveStats

	Balls     []BallState
	Shield    ShieldState
	Enemies   []EnemyState
	Blocks    []BlockState
	Bullets   []BulletState
	Ship      ShipState
	Particles []particle.Particle
}

// BallState contains the visible state of a ball
type BallState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Launched bool
}

// ShieldState contains the visible state of the shield
type ShieldState struct {
	ID        entity.ID
	Bounds    physics.AABB
	CenterX   float64
	TopY      float64
	Curvature float64
}

// EnemyState contains the visible state of a living enemy
type EnemyState struct {
	ID     entity.ID
	Bounds physics.AABB
	Kind   entity.EnemyKind
	HP     int
	Flash  int
}

// BlockState contains the visible state of a standing block
type BlockState struct {
	ID     entity.ID
	Bounds physics.AABB
	Kind   entity.BlockKind
}

// BulletState contains the visible state of a bullet in flight
type BulletState struct {
	ID     entity.ID
	Bounds physics.AABB
}

// ShipState contains the visible state of the ship
type ShipState struct {
	ID     entity.ID
	Bounds physics.AABB
	HP     int
	MaxHP  int
}

// Snapshot returns a copy of the current state for rendering
func (g *Game) Snapshot() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// GetGameState is an alias of Snapshot.
func (g *Game) GetGameState() *GameState {
	return g.Snapshot()
}

func (g *Game) createGameStateSnapshot() *GameState {
	s := g.State
	state := &GameState{
		Status:          g.Status,
		Tick:            s.Tick,
		Width:           g.Config.Playfield.Width,
		Height:          g.Config.Playfield.Height,
		Score:           s.Score,
		Wave:            s.Wave,
		Multiplier:      s.Multiplier.Value(),
		MultiplierFlash: s.Multiplier.Flash(),
		ScreenFlash:     s.ScreenFlash,
		DangerLine:      g.Config.DangerLine(),
		Stats:           s.Stats,
		Balls:           g.getBallStates(),
		Shield: ShieldState{
			ID:        s.Shield.GetID(),
			Bounds:    s.Shield.Bounds(),
			CenterX:   s.Shield.Position.X,
			TopY:      s.Shield.Position.Y,
			Curvature: s.Shield.Curvature,
		},
		Enemies:   g.getEnemyStates(),
		Blocks:    g.getBlockStates(),
		Bullets:   g.getBulletStates(),
		Particles: s.Particles.Snapshot(),
	}
	if s.Ship != nil {
		state.Ship = ShipState{
			ID:     s.Ship.GetID(),
			Bounds: s.Ship.Bounds(),
			HP:     s.Ship.HP,
			MaxHP:  s.Ship.MaxHP,
		}
	}
	return state
}

func (g *Game) getBallStates() []BallState {
	out := make([]BallState, 0, len(g.State.Balls))
	for _, b := range g.State.Balls {
		out = append(out, BallState{
			ID:       b.GetID(),
			Position: b.Position,
			Velocity: b.Velocity,
			Radius:   b.Radius,
			Launched: b.Launched,
		})
	}
	return out
}

func (g *Game) getEnemyStates() []EnemyState {
	out := make([]EnemyState, 0, len(g.State.Enemies))
	for _, e := range g.State.Enemies {
		if !e.Alive {
			continue
		}
		out = append(out, EnemyState{
			ID:     e.GetID(),
			Bounds: e.Bounds(),
			Kind:   e.Kind,
			HP:     e.HP,
			Flash:  e.Flash,
		})
	}
	return out
}

func (g *Game) getBlockStates() []BlockState {
	out := make([]BlockState, 0, len(g.State.Blocks))
	for _, b := range g.State.Blocks {
		if !b.Alive {
			continue
		}
		out = append(out, BlockState{
			ID:     b.GetID(),
			Bounds: b.Bounds(),
			Kind:   b.Kind,
		})
	}
	return out
}

func (g *Game) getBulletStates() []BulletState {
	out := make([]BulletState, 0, len(g.State.Bullets))
	for _, b := range g.State.Bullets {
		if !b.Alive {
			continue
		}
		out = append(out, BulletState{
			ID:     b.GetID(),
			Bounds: b.Bounds(),
		})
	}
	return out
}
