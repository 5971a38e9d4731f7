// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
	"github.com/opd-ai/go-shieldwall/pkg/scoring"
)

// GameStatus is the top-level state machine position
type GameStatus int

const (
	StatusLoading GameStatus = iota
	StatusTitle
	StatusPlaying
	StatusWaveClear
	StatusGameOver
)

func (s GameStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusTitle:
		return "title"
	case StatusPlaying:
		return "playing"
	case StatusWaveClear:
		return "waveclear"
	case StatusGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// WaveStats counts what happened during the current wave.
type WaveStats struct {
	Kills         int
	BlocksBroken  int
	BlocksEaten   int
	BallsLost     int
	ShotsFired    int
	ShotsBlocked  int
	ShipHits      int
	PenaltySpawns int
	BonusBalls    int
}

// SimulationState is everything a tick mutates. Only the owning Game writes it.
type SimulationState struct {
	Balls   []*entity.Ball
	Shield  *entity.Shield
	Enemies []*entity.Enemy
	Blocks  []*entity.Block
	Bullets []*entity.Bullet
	Ship    *entity.Ship

	Particles  *particle.System
	Multiplier *scoring.Multiplier

	Score       int
	Wave        int
	Tick        uint64
	ScreenFlash int
	Stats       WaveStats

	// Kills this wave that count toward the multi-ball bonus.
	KillCounter int

	ShieldTarget float64

	FormationDir   float64
	formationClock int

	blockIndex *physics.QuadTree[int]
}

// LivingEnemies counts enemies that are still alive.
func (s *SimulationState) LivingEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// LivingBlocks counts blocks that are still standing.
func (s *SimulationState) LivingBlocks() int {
	n := 0
	for _, b := range s.Blocks {
		if b.Alive {
			n++
		}
	}
	return n
}

// LiveBullets counts bullets still in flight.
func (s *SimulationState) LiveBullets() int {
	n := 0
	for _, b := range s.Bullets {
		if b.Alive {
			n++
		}
	}
	return n
}
