// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Ship is the defended vessel below the shield. Position.X is its center and
// Position.Y its top edge.
type Ship struct {
	BaseEntity
	Width  float64
	Height float64
	HP     int
	MaxHP  int

	// Wandering state; Dir is -1 or +1.
	Dir   float64
	Speed float64
	Timer int
}

// NewShip creates a ship at full health.
func NewShip(x, y, width, height float64, maxHP int) *Ship {
	return &Ship{
		BaseEntity: NewBaseEntity(physics.Vector2D{X: x, Y: y}),
		Width:      width,
		Height:     height,
		HP:         maxHP,
		MaxHP:      maxHP,
		Dir:        1,
	}
}

// Bounds returns the ship's bounding box.
func (s *Ship) Bounds() physics.AABB {
	return physics.AABB{X: s.Position.X - s.Width/2, Y: s.Position.Y, W: s.Width, H: s.Height}
}

// Damage removes hit points, never going below zero. It reports whether the ship
// is destroyed.
func (s *Ship) Damage(amount int) bool {
	s.HP -= amount
	if s.HP < 0 {
		s.HP = 0
	}
	return s.HP == 0
}

// Destroyed reports whether the ship has no hit points left.
func (s *Ship) Destroyed() bool {
	return s.HP <= 0
}

// Steer sets a new wandering heading for the next timer ticks.
func (s *Ship) Steer(dir, speed float64, timer int) {
	if dir < 0 {
		s.Dir = -1
	} else {
		s.Dir = 1
	}
	s.Speed = speed
	s.Timer = timer
}

// Wander moves the ship one tick along its heading, bouncing off the field edges.
// It reports whether the heading timer ran out and a new heading is due.
func (s *Ship) Wander(fieldWidth float64) bool {
	s.Position.X += s.Dir * s.Speed
	half := s.Width / 2
	if s.Position.X < half {
		s.Position.X = half
		s.Dir = 1
	} else if s.Position.X > fieldWidth-half {
		s.Position.X = fieldWidth - half
		s.Dir = -1
	}
	if s.Timer > 0 {
		s.Timer--
	}
	return s.Timer == 0
}
