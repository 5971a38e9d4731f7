// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// ID is a unique identifier for an entity. It is the ecs entity ID, so renderers
// can key sprites on it directly.
type ID = uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Bounds() physics.AABB
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ecs.BasicEntity
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// NewBaseEntity allocates a fresh ecs identity at position.
func NewBaseEntity(position physics.Vector2D) BaseEntity {
	return BaseEntity{
		BasicEntity: ecs.NewBasic(),
		Position:    position,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.BasicEntity.ID()
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// Step advances the entity by one tick of its velocity.
func (e *BaseEntity) Step() {
	e.Position = e.Position.Add(e.Velocity)
}
