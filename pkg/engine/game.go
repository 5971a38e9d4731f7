// pkg/engine/game.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
	"github.com/opd-ai/go-shieldwall/pkg/scoring"
)

// Game owns the simulation state and drives it one tick at a time. Update is the
// only writer; input calls and snapshots take the same lock between ticks.
type Game struct {
	Config     *config.GameConfig
	State      *SimulationState
	Status     GameStatus
	EntityLock sync.RWMutex
	EventBus   *event.Bus
	Logger     *logging.Logger

	ctx       context.Context
	rng       Random
	cosmetic  particle.Source
	startTime time.Time
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRandom replaces the gameplay random source.
func WithRandom(r Random) Option {
	return func(g *Game) { g.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(g *Game) { g.Logger = l }
}

// WithEventBus shares an existing bus with the game.
func WithEventBus(b *event.Bus) Option {
	return func(g *Game) { g.EventBus = b }
}

// WithContext sets the context used for logging, typically carrying a session ID.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewGame creates a game in the loading state.
func NewGame(cfg *config.GameConfig, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	g := &Game{
		Config: cfg,
		Status: StatusLoading,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if g.rng == nil {
		g.rng = NewRandom(seed)
	}
	g.cosmetic = cosmeticSource(seed)
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}
	if g.Logger == nil {
		g.Logger = logging.Discard()
	}

	g.State = g.newState()
	return g
}

func (g *Game) newState() *SimulationState {
	cfg := g.Config
	shield := entity.NewShield(
		cfg.Playfield.Width/2,
		cfg.ShieldTop(),
		cfg.Shield.Width,
		cfg.Shield.Height,
		cfg.Shield.Curvature,
	)
	return &SimulationState{
		Shield:       shield,
		ShieldTarget: shield.Position.X,
		Particles:    particle.NewSystem(g.cosmetic, cfg.Limits.MaxParticles, cfg.Limits.ParticleLife),
		Multiplier: scoring.NewMultiplier(scoring.Settings{
			Max:        cfg.Scoring.MultMax,
			Gain:       cfg.Scoring.MultGain,
			DecayDelay: cfg.Scoring.DecayDelay,
			DecayRate:  cfg.Scoring.DecayRate,
			FlashTicks: cfg.Scoring.FlashTicks,
		}),
		FormationDir: 1,
	}
}

// AssetsLoaded is the asset collaborator's completion callback. It leaves the
// loading state once; later calls do nothing.
func (g *Game) AssetsLoaded() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != StatusLoading {
		return
	}
	g.setStatus(StatusTitle)
}

// Action handles the discrete action input: start, launch, advance or restart
// depending on the current state.
func (g *Game) Action() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	switch g.Status {
	case StatusTitle:
		g.startGame()
	case StatusPlaying:
		g.launchBalls()
	case StatusWaveClear:
		g.nextWave()
	case StatusGameOver:
		g.setStatus(StatusTitle)
	}
}

// SetShieldTarget records where input wants the shield. It is applied on the next
// playing tick.
func (g *Game) SetShieldTarget(x float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.State.ShieldTarget = x
}

// CurrentStatus returns the state machine position.
func (g *Game) CurrentStatus() GameStatus {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.Status
}

// Update advances the simulation by one tick. Outside the playing state it does
// nothing.
func (g *Game) Update() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != StatusPlaying {
		return
	}
	g.step()
}

// step runs one playing tick in a fixed order: physics, formation, collisions,
// ball loss, outcome, cleanup, cosmetics.
func (g *Game) step() {
	s := g.State
	s.Tick++
	if s.ScreenFlash > 0 {
		s.ScreenFlash--
	}

	s.Shield.MoveTo(s.ShieldTarget, g.Config.Playfield.Width)
	g.stepBalls()
	g.stepBullets()
	g.stepShip()

	g.advanceFormation()
	g.fireEnemies()

	g.resolveBallCollisions()
	g.resolveBulletCollisions()

	g.removeLostBalls()
	g.evaluateOutcome()

	if s.Tick%uint64(g.Config.Limits.CleanupInterval) == 0 {
		g.compactEnemies()
	}
	g.compactBullets()

	s.Particles.Update()
	s.Multiplier.Tick()
}

// Run ticks the game at tickRate until ctx is cancelled. onTick, when set, receives
// a snapshot after every tick.
func (g *Game) Run(ctx context.Context, tickRate int, onTick func(*GameState)) error {
	if tickRate < 1 {
		tickRate = 60
	}
	g.startTime = time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	g.Logger.Info(g.ctx, "simulation loop started", "tick_rate", tickRate)
	for {
		select {
		case <-ctx.Done():
			g.Logger.Info(g.ctx, "simulation loop stopped",
				"elapsed", time.Since(g.startTime).String(),
				"ticks", g.tick())
			return ctx.Err()
		case <-ticker.C:
			g.Update()
			if onTick != nil {
				onTick(g.Snapshot())
			}
		}
	}
}

func (g *Game) tick() uint64 {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.State.Tick
}

func (g *Game) setStatus(to GameStatus) {
	from := g.Status
	if from == to {
		return
	}
	g.Status = to
	g.Logger.Info(g.ctx, "game state changed",
		"from", from.String(),
		"to", to.String(),
		"wave", g.State.Wave,
		"score", g.State.Score)
	g.EventBus.Publish(event.NewStateEvent(g, from.String(), to.String(), g.State.Wave))
}

func (g *Game) cue(t event.Type, pos physics.Vector2D) {
	g.EventBus.Publish(event.NewCueEvent(t, g, pos, g.State.Tick))
}

func (g *Game) startGame() {
	s := g.State
	s.Score = 0
	s.Wave = 1
	s.Multiplier.Reset()
	g.buildWave()
	g.setStatus(StatusPlaying)
	g.cue(event.CueStart, s.Shield.Position)
	g.cue(event.CueBgmStart, s.Shield.Position)
}

func (g *Game) nextWave() {
	g.State.Wave++
	g.buildWave()
	g.setStatus(StatusPlaying)
	g.cue(event.CueBgmStart, g.State.Shield.Position)
}

// evaluateOutcome decides whether the wave is lost or won. Loss wins ties. It
// only acts while playing, so repeated calls within a tick are harmless.
func (g *Game) evaluateOutcome() {
	if g.Status != StatusPlaying {
		return
	}
	s := g.State
	danger := g.Config.DangerLine()

	if s.Ship.Destroyed() {
		g.gameOver("ship destroyed")
		return
	}
	for _, e := range s.Enemies {
		if e.Alive && e.Bottom() >= danger {
			g.gameOver("enemy reached danger line")
			return
		}
	}
	if s.LivingEnemies() == 0 {
		g.waveClear()
	}
}

func (g *Game) gameOver(reason string) {
	s := g.State
	g.Logger.Info(g.ctx, "game over", "reason", reason, "wave", s.Wave, "score", s.Score)
	g.setStatus(StatusGameOver)
	g.cue(event.CueGameOver, s.Ship.Position)
	g.cue(event.CueBgmStop, s.Ship.Position)
}

func (g *Game) waveClear() {
	s := g.State
	bonus := s.Wave * g.Config.Scoring.WaveBonus
	s.Score += bonus

	flawless := s.Ship.HP == s.Ship.MaxHP
	g.Logger.Info(g.ctx, "wave cleared",
		"wave", s.Wave,
		"bonus", bonus,
		"flawless", flawless,
		"kills", s.Stats.Kills,
		"balls_lost", s.Stats.BallsLost)
	g.setStatus(StatusWaveClear)
	if flawless {
		g.cue(event.CueWaveClearFlawless, s.Ship.Position)
	} else {
		g.cue(event.CueWaveClear, s.Ship.Position)
	}
	g.cue(event.CueBgmStop, s.Ship.Position)
}

// compactEnemies drops dead enemies. It runs on a fixed cadence rather than on
// death so indices stay stable during a tick.
func (g *Game) compactEnemies() {
	s := g.State
	live := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.Enemies); i++ {
		s.Enemies[i] = nil
	}
	s.Enemies = live
}

func (g *Game) compactBullets() {
	s := g.State
	live := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Alive {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(s.Bullets); i++ {
		s.Bullets[i] = nil
	}
	s.Bullets = live
}
