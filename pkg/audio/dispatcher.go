package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-shieldwall/pkg/config"
	"github.com/opd-ai/go-shieldwall/pkg/event"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
)

// Dispatcher plays a sound for every cue published on a bus. Playback goes through
// a circuit breaker so a failing device is skipped instead of retried every cue.
type Dispatcher struct {
	synth   *Synth
	sink    Sink
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
	ctx     context.Context

	muted   atomic.Bool
	skipped atomic.Uint64

	mu   sync.Mutex
	subs []*event.Subscription
}

// NewDispatcher wires a synth to a sink using the breaker settings in cfg.
func NewDispatcher(ctx context.Context, cfg config.AudioConfig, synth *Synth, sink Sink, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	d := &Dispatcher{
		synth:  synth,
		sink:   sink,
		logger: logger,
		ctx:    ctx,
	}
	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "shieldwall-audio",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(ctx, "audio breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	})
	d.muted.Store(!cfg.Enabled)
	return d
}

// Attach subscribes to every cue on bus.
func (d *Dispatcher) Attach(bus *event.Bus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, bus.SubscribeAll(event.AllCues, d.handle)...)
}

// Detach cancels every subscription made by Attach.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		s.Cancel()
	}
	d.subs = nil
}

// SetMuted turns playback off or on. Music stops immediately when muting.
func (d *Dispatcher) SetMuted(m bool) {
	d.muted.Store(m)
	if m {
		d.sink.StopMusic()
	}
}

// Muted reports whether playback is off.
func (d *Dispatcher) Muted() bool { return d.muted.Load() }

// State returns the breaker state.
func (d *Dispatcher) State() gobreaker.State { return d.breaker.State() }

// Counts returns the breaker counters.
func (d *Dispatcher) Counts() gobreaker.Counts { return d.breaker.Counts() }

// Skipped returns how many cues were dropped while the breaker was open.
func (d *Dispatcher) Skipped() uint64 { return d.skipped.Load() }

func (d *Dispatcher) handle(e event.Event) {
	cue := e.GetType()
	if cue == event.CueBgmStop {
		d.sink.StopMusic()
		return
	}
	if d.muted.Load() {
		return
	}

	err := d.execute(func() error {
		if cue == event.CueBgmStart {
			return d.sink.StartMusic(d.synth.Music())
		}
		s := d.synth.Cue(cue)
		if s == nil {
			return nil
		}
		return d.sink.Play(s)
	})
	if err == nil {
		return
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		d.skipped.Add(1)
		return
	}
	d.logger.Error(d.ctx, "cue playback failed", err, "cue", string(cue))
}

func (d *Dispatcher) execute(play func() error) error {
	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, play()
	})
	if err != nil {
		return fmt.Errorf("audio breaker: %w", err)
	}
	return nil
}

// Setup builds the speaker-backed audio stack for cfg and attaches it to bus. When
// audio is disabled the dispatcher is still returned, muted. A device failure is
// returned along with a muted dispatcher so the game can run silently.
func Setup(ctx context.Context, cfg config.AudioConfig, bus *event.Bus, logger *logging.Logger) (*Dispatcher, *Player, error) {
	player := NewPlayer()
	synth := NewSynth(cfg.SampleRate, cfg.Volume)
	d := NewDispatcher(ctx, cfg, synth, player, logger)
	d.Attach(bus)

	if !cfg.Enabled {
		return d, player, nil
	}
	buffer := time.Duration(cfg.BufferMillis) * time.Millisecond
	if err := player.Init(synth.SampleRate(), buffer); err != nil {
		d.muted.Store(true)
		return d, player, logging.WrapError(err, "initialize speaker", "sample_rate", cfg.SampleRate)
	}
	return d, player, nil
}
