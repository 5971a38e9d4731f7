// Package scoring holds the score multiplier that every award in the game flows
// through.
package scoring

import "math"

// Settings tune the multiplier's gain and decay.
type Settings struct {
	Max        float64
	Gain       float64
	DecayDelay int
	DecayRate  float64
	FlashTicks int
}

// Multiplier grows on hits, holds for DecayDelay ticks after the last hit, then
// decays linearly back toward 1.0. Its value never leaves [1.0, Max].
type Multiplier struct {
	settings Settings
	value    float64
	delay    int
	flash    int
}

// NewMultiplier returns a multiplier at 1.0.
func NewMultiplier(s Settings) *Multiplier {
	if s.Max < 1 {
		s.Max = 1
	}
	return &Multiplier{settings: s, value: 1}
}

// Value returns the current multiplier.
func (m *Multiplier) Value() float64 { return m.value }

// Delay returns the ticks left before decay resumes.
func (m *Multiplier) Delay() int { return m.delay }

// Flash returns the ticks left on the UI highlight started by the last gain.
func (m *Multiplier) Flash() int { return m.flash }

// Add registers a successful hit.
func (m *Multiplier) Add() {
	m.value = math.Min(m.value+m.settings.Gain, m.settings.Max)
	m.delay = m.settings.DecayDelay
	m.flash = m.settings.FlashTicks
}

// Reset drops straight back to 1.0 and clears the decay delay.
func (m *Multiplier) Reset() {
	m.value = 1
	m.delay = 0
}

// Tick advances the decay clock by one simulation tick.
func (m *Multiplier) Tick() {
	if m.flash > 0 {
		m.flash--
	}
	if m.delay > 0 {
		m.delay--
		return
	}
	if m.value > 1 {
		m.value = math.Max(1, m.value-m.settings.DecayRate)
	}
}

// Award scales base by the current multiplier, truncating toward zero.
func (m *Multiplier) Award(base int) int {
	return int(math.Floor(float64(base) * m.value))
}

// Set forces the multiplier to v, clamped to [1.0, Max]. Used when restoring state
// in tests and tools.
func (m *Multiplier) Set(v float64) {
	m.value = math.Max(1, math.Min(v, m.settings.Max))
}
