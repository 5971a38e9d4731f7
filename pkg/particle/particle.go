// Package particle spawns and ages short-lived cosmetic markers. Nothing in the
// simulation reads particles back; they exist only for renderers.
package particle

import (
	"math"

	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Kind tags a particle with the effect that spawned it so renderers can color it.
type Kind int

const (
	Spark Kind = iota
	Debris
	Burst
)

// Source is the randomness the system draws from. It is kept apart from the
// gameplay source so effects never shift gameplay rolls.
type Source interface {
	Float64() float64
}

// Particle is one cosmetic marker.
type Particle struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Life     int
	MaxLife  int
	Kind     Kind
}

// Alpha returns remaining life as a fraction in [0, 1].
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// System owns every live particle.
type System struct {
	particles []Particle
	rng       Source
	max       int
	life      int
	gravity   float64
}

// NewSystem creates a particle system capped at max live particles.
func NewSystem(rng Source, max, life int) *System {
	return &System{
		particles: make([]Particle, 0, max),
		rng:       rng,
		max:       max,
		life:      life,
		gravity:   0.05,
	}
}

// Emit scatters count particles of kind around pos at up to speed. Particles past
// the cap are dropped.
func (s *System) Emit(pos physics.Vector2D, kind Kind, count int, speed float64) {
	for i := 0; i < count && len(s.particles) < s.max; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		v := speed * (0.3 + 0.7*s.rng.Float64())
		life := s.life/2 + int(s.rng.Float64()*float64(s.life/2+1))
		s.particles = append(s.particles, Particle{
			Position: pos,
			Velocity: physics.Vector2D{X: math.Cos(angle) * v, Y: math.Sin(angle) * v},
			Life:     life,
			MaxLife:  life,
			Kind:     kind,
		})
	}
}

// Update ages every particle by one tick and drops the expired ones.
func (s *System) Update() {
	live := s.particles[:0]
	for _, p := range s.particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Position = p.Position.Add(p.Velocity)
		p.Velocity.Y += s.gravity
		live = append(live, p)
	}
	s.particles = live
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.particles) }

// Clear drops every particle.
func (s *System) Clear() { s.particles = s.particles[:0] }

// Snapshot returns a copy of the live particles.
func (s *System) Snapshot() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}
