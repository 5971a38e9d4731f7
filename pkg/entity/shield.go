// pkg/entity/shield.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Shield is the player's reflector. Position.X is its center and Position.Y is the
// top of its flat body; the bowed crown rises above that by Curvature*Height.
type Shield struct {
	BaseEntity
	Width     float64
	Height    float64
	Curvature float64
}

// NewShield creates a shield centered at x with its body top at y.
func NewShield(x, y, width, height, curvature float64) *Shield {
	return &Shield{
		BaseEntity: NewBaseEntity(physics.Vector2D{X: x, Y: y}),
		Width:      width,
		Height:     height,
		Curvature:  curvature,
	}
}

// HalfWidth returns half the shield width.
func (s *Shield) HalfWidth() float64 {
	return s.Width / 2
}

// SurfaceY returns the height of the reflective top edge at x.
func (s *Shield) SurfaceY(x float64) float64 {
	return physics.CurvedSurfaceY(x, s.Position.X, s.HalfWidth(), s.Position.Y, s.Height, s.Curvature)
}

// Bounds covers the whole shield including the crown.
func (s *Shield) Bounds() physics.AABB {
	crown := s.Curvature * s.Height
	return physics.AABB{
		X: s.Position.X - s.HalfWidth(),
		Y: s.Position.Y - crown,
		W: s.Width,
		H: s.Height + crown,
	}
}

// MoveTo centers the shield on target, kept fully inside [0, fieldWidth].
func (s *Shield) MoveTo(target, fieldWidth float64) {
	half := s.HalfWidth()
	if fieldWidth <= s.Width {
		s.Position.X = fieldWidth / 2
		return
	}
	s.Position.X = physics.Clamp(target, half, fieldWidth-half)
}
