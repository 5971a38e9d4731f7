// pkg/entity/bullet.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// Bullet is an enemy shot falling toward the ship. Position is its top-left corner.
type Bullet struct {
	BaseEntity
	Width  float64
	Height float64
	Alive  bool
}

// NewBullet creates a bullet falling at speed.
func NewBullet(position physics.Vector2D, width, height, speed float64) *Bullet {
	b := &Bullet{
		BaseEntity: NewBaseEntity(position),
		Width:      width,
		Height:     height,
		Alive:      true,
	}
	b.Velocity = physics.Vector2D{Y: speed}
	return b
}

// Bounds returns the bullet's bounding box.
func (b *Bullet) Bounds() physics.AABB {
	return physics.AABB{X: b.Position.X, Y: b.Position.Y, W: b.Width, H: b.Height}
}

// Bottom returns the y of the bullet's lower edge.
func (b *Bullet) Bottom() float64 {
	return b.Position.Y + b.Height
}

// OffField reports whether the bullet has left a field of the given size.
func (b *Bullet) OffField(width, height float64) bool {
	return b.Position.Y > height || b.Bottom() < 0 ||
		b.Position.X > width || b.Position.X+b.Width < 0
}
