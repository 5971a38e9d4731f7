// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Type represents the type of event
type Type string

// Cue events are fire-and-forget signals for the audio and effects collaborators.
const (
	CueReflect           Type = "reflect"
	CueBlockBreak        Type = "block_break"
	CueBlockHit          Type = "block_hit"
	CueEnemyHit          Type = "enemy_hit"
	CueEnemyShot         Type = "enemy_shot"
	CueShipDamage        Type = "ship_damage"
	CueBallDrop          Type = "ball_drop"
	CueWaveClear         Type = "wave_clear"
	CueWaveClearFlawless Type = "wave_clear_flawless"
	CueGameOver          Type = "game_over"
	CueStart             Type = "start"
	CueBgmStart          Type = "bgm_start"
	CueBgmStop           Type = "bgm_stop"
)

// Lifecycle events
const (
	StateChanged Type = "state_changed"
	WaveStarted  Type = "wave_started"
)

// AllCues lists every cue type in a stable order.
var AllCues = []Type{
	CueReflect, CueBlockBreak, CueBlockHit, CueEnemyHit, CueEnemyShot,
	CueShipDamage, CueBallDrop, CueWaveClear, CueWaveClearFlawless,
	CueGameOver, CueStart, CueBgmStart, CueBgmStop,
}

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id uint64
	fn Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously on the
// publishing goroutine and must not block.
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, fn: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

// SubscribeAll registers one handler for several event types and returns one
// subscription per type.
func (b *Bus) SubscribeAll(types []Type, handler Handler) []*Subscription {
	subs := make([]*Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.Subscribe(t, handler))
	}
	return subs
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	snapshot := make([]registeredHandler, len(handlers))
	copy(snapshot, handlers)
	b.mu.RUnlock()

	for _, h := range snapshot {
		h.fn(event)
	}
}

// CueEvent is published by the simulation for audio and visual feedback.
type CueEvent struct {
	BaseEvent
	Position physics.Vector2D
	Tick     uint64
}

// NewCueEvent creates a cue event at a playfield position.
func NewCueEvent(cue Type, source interface{}, pos physics.Vector2D, tick uint64) *CueEvent {
	return &CueEvent{
		BaseEvent: BaseEvent{
			EventType: cue,
			Source:    source,
		},
		Position: pos,
		Tick:     tick,
	}
}

// StateEvent reports a game state transition by name.
type StateEvent struct {
	BaseEvent
	From string
	To   string
	Wave int
}

// NewStateEvent creates a state transition event
func NewStateEvent(source interface{}, from, to string, wave int) *StateEvent {
	return &StateEvent{
		BaseEvent: BaseEvent{
			EventType: StateChanged,
			Source:    source,
		},
		From: from,
		To:   to,
		Wave: wave,
	}
}

// WaveEvent announces a freshly built wave.
type WaveEvent struct {
	BaseEvent
	Wave    int
	Enemies int
	Blocks  int
	ShipHP  int
}

// NewWaveEvent creates a wave started event
func NewWaveEvent(source interface{}, wave, enemies, blocks, shipHP int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{
			EventType: WaveStarted,
			Source:    source,
		},
		Wave:    wave,
		Enemies: enemies,
		Blocks:  blocks,
		ShipHP:  shipHP,
	}
}
