// pkg/render/engo/simulation.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
)

// maxCatchUp bounds how many ticks one slow frame may run. Backlog beyond it is
// dropped so a stall never turns into a burst of fast-forwarded play.
const maxCatchUp = 5

// SimulationSystem advances the game at a fixed tick rate from engo's variable
// frame time and hands each frame's snapshot to onFrame.
type SimulationSystem struct {
	game    *engine.Game
	step    float64
	acc     float64
	onFrame func(*engine.GameState)
	ticks   uint64
}

// NewSimulationSystem creates the system. A tick rate below 1 means 60.
func NewSimulationSystem(game *engine.Game, tickRate int, onFrame func(*engine.GameState)) *SimulationSystem {
	if tickRate < 1 {
		tickRate = 60
	}
	return &SimulationSystem{
		game:    game,
		step:    (time.Second / time.Duration(tickRate)).Seconds(),
		onFrame: onFrame,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update runs every whole tick that dt covers, then publishes one snapshot.
func (s *SimulationSystem) Update(dt float32) {
	s.acc += float64(dt)
	n := 0
	for s.acc >= s.step && n < maxCatchUp {
		s.game.Update()
		s.acc -= s.step
		n++
	}
	if n == maxCatchUp {
		s.acc = 0
	}
	s.ticks += uint64(n)

	if s.onFrame != nil {
		s.onFrame(s.game.Snapshot())
	}
}

// Ticks returns how many simulation ticks the system has run.
func (s *SimulationSystem) Ticks() uint64 {
	return s.ticks
}
