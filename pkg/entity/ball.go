// pkg/entity/ball.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Ball is a projectile launched from the shield. Position is its center.
type Ball struct {
	BaseEntity
	Radius   float64
	Launched bool
	Lost     bool
}

// NewBall creates an unlaunched ball at position.
func NewBall(position physics.Vector2D, radius float64) *Ball {
	return &Ball{
		BaseEntity: NewBaseEntity(position),
		Radius:     radius,
	}
}

// Bounds returns the ball's bounding box.
func (b *Ball) Bounds() physics.AABB {
	return physics.BoxAround(b.Position, b.Radius)
}

// Speed returns the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 {
	return b.Velocity.Length()
}

// Launch sends the ball off at speed, tilted theta radians from straight up.
func (b *Ball) Launch(theta, speed float64) {
	b.Velocity = physics.FromUpAngle(theta, speed)
	b.Launched = true
}

// PinTo rests an unlaunched ball on the crown of the shield.
func (b *Ball) PinTo(s *Shield) {
	b.Position.X = s.Position.X
	b.Position.Y = s.SurfaceY(s.Position.X) - b.Radius - physics.SnapEpsilon
	b.Velocity = physics.Vector2D{}
}

// BelowField reports whether the ball's top edge has passed the bottom of the field.
func (b *Ball) BelowField(height float64) bool {
	return b.Position.Y-b.Radius > height
}
