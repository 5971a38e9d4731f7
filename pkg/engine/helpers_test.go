package engine

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// scriptedRandom replays fixed values, then falls back to defaults.
type scriptedRandom struct {
	floats       []float64
	ints         []int
	defaultFloat float64
	defaultInt   int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.defaultFloat
}

func (r *scriptedRandom) IntN(n int) int {
	v := r.defaultInt
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// cueRecorder collects every cue and lifecycle event published on a bus.
type cueRecorder struct {
	mu     sync.Mutex
	events []event.Type
}

func recordCues(bus *event.Bus) *cueRecorder {
	rec := &cueRecorder{}
	types := append([]event.Type{event.StateChanged, event.WaveStarted}, event.AllCues...)
	bus.SubscribeAll(types, func(e event.Event) {
		rec.mu.Lock()
		rec.events = append(rec.events, e.GetType())
		rec.mu.Unlock()
	})
	return rec
}

func (r *cueRecorder) count(t event.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == t {
			n++
		}
	}
	return n
}

func (r *cueRecorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// newPlayingGame returns a game already in the playing state on wave 1 with a
// deterministic random source.
func newPlayingGame(t *testing.T, mutate func(*config.GameConfig)) (*Game, *scriptedRandom, *cueRecorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	if mutate != nil {
		mutate(cfg)
	}
	rng := &scriptedRandom{defaultFloat: 0.5}
	g := NewGame(cfg, WithRandom(rng))
	rec := recordCues(g.EventBus)

	g.AssetsLoaded()
	g.Action()
	if g.Status != StatusPlaying {
		t.Fatalf("expected playing state, got %v", g.Status)
	}
	rec.reset()
	return g, rng, rec
}

// launchedBall returns a launched ball at pos moving at vel.
func launchedBall(pos, vel physics.Vector2D) *entity.Ball {
	b := entity.NewBall(pos, 7)
	b.Velocity = vel
	b.Launched = true
	return b
}

// setBlocks replaces the block field and rebuilds its index.
func setBlocks(g *Game, blocks ...*entity.Block) {
	g.State.Blocks = blocks
	g.indexBlocks()
}

// farEnemy parks a single living enemy where nothing will touch it.
func farEnemy(g *Game) *entity.Enemy {
	e := g.newEnemy(entity.Small, physics.Vector2D{X: 280, Y: 60})
	e.Cooldown = 1000
	return e
}
