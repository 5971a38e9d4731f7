// pkg/entity/block.go
package entity

import (
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// BlockKind tells breakable blocks from indestructible ones.
type BlockKind int

const (
	Breakable BlockKind = iota
	Indestructible
)

func (k BlockKind) String() string {
	if k == Indestructible {
		return "indestructible"
	}
	return "breakable"
}

// Block is a static barrier. Position is its top-left corner.
type Block struct {
	BaseEntity
	Width  float64
	Height float64
	Kind   BlockKind
	Alive  bool
}

// NewBlock creates a living block.
func NewBlock(kind BlockKind, position physics.Vector2D, width, height float64) *Block {
	return &Block{
		BaseEntity: NewBaseEntity(position),
		Width:      width,
		Height:     height,
		Kind:       kind,
		Alive:      true,
	}
}

// Bounds returns the block's bounding box.
func (b *Block) Bounds() physics.AABB {
	return physics.AABB{X: b.Position.X, Y: b.Position.Y, W: b.Width, H: b.Height}
}

// Break destroys a breakable block and reports whether it did.
func (b *Block) Break() bool {
	if !b.Alive || b.Kind == Indestructible {
		return false
	}
	b.Alive = false
	return true
}
