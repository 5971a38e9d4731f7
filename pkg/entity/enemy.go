// pkg/entity/enemy.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// EnemyKind selects an enemy's toughness and score.
type EnemyKind int

const (
	Small EnemyKind = iota
	Medium
)

func (k EnemyKind) String() string {
	switch k {
	case Small:
		return "small"
	case Medium:
		return "medium"
	default:
		return "unknown"
	}
}

// Enemy is one member of the formation. Position is its top-left corner.
type Enemy struct {
	BaseEntity
	Width    float64
	Height   float64
	Kind     EnemyKind
	HP       int
	Alive    bool
	Cooldown int
	Flash    int
}

// NewEnemy creates a living enemy with full hit points.
func NewEnemy(kind EnemyKind, position physics.Vector2D, width, height float64, hp, cooldown int) *Enemy {
	return &Enemy{
		BaseEntity: NewBaseEntity(position),
		Width:      width,
		Height:     height,
		Kind:       kind,
		HP:         hp,
		Alive:      true,
		Cooldown:   cooldown,
	}
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.AABB {
	return physics.AABB{X: e.Position.X, Y: e.Position.Y, W: e.Width, H: e.Height}
}

// Bottom returns the y of the enemy's lower edge.
func (e *Enemy) Bottom() float64 {
	return e.Position.Y + e.Height
}

// Hit removes one hit point and starts the damage flash. It reports whether the
// enemy died; death happens in the same call that empties its hit points.
func (e *Enemy) Hit(flashTicks int) bool {
	if !e.Alive {
		return false
	}
	e.HP--
	e.Flash = flashTicks
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}

// TickFlash counts the damage flash down.
func (e *Enemy) TickFlash() {
	if e.Flash > 0 {
		e.Flash--
	}
}
