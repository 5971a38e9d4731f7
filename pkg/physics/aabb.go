// pkg/physics/aabb.go
package physics

import "math"

// SnapEpsilon is the gap left between a resolved ball and the surface it bounced off.
const SnapEpsilon = 0.01

// AABB is an axis-aligned box anchored at its top-left corner.
type AABB struct {
	X, Y, W, H float64
}

// BoxAround returns the bounding box of a circle.
func BoxAround(center Vector2D, radius float64) AABB {
	return AABB{X: center.X - radius, Y: center.Y - radius, W: radius * 2, H: radius * 2}
}

func (b AABB) Left() float64   { return b.X }
func (b AABB) Right() float64  { return b.X + b.W }
func (b AABB) Top() float64    { return b.Y }
func (b AABB) Bottom() float64 { return b.Y + b.H }

// Center returns the midpoint of the box.
func (b AABB) Center() Vector2D {
	return Vector2D{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports strict overlap; boxes that only share an edge do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Intersects is the inclusive form of Overlaps, used for broad-phase queries.
func (b AABB) Intersects(o AABB) bool {
	return b.X <= o.Right() && b.Right() >= o.X &&
		b.Y <= o.Bottom() && b.Bottom() >= o.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b AABB) ContainsBox(o AABB) bool {
	return o.X >= b.X && o.Right() <= b.Right() &&
		o.Y >= b.Y && o.Bottom() <= b.Bottom()
}

// Side names the face of a box that a mover is pushed out through.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Penetration returns the face of box with the smallest overlap depth against mover.
// Ties resolve in the order top, bottom, left, right. ok is false when the boxes do
// not overlap.
func Penetration(mover, box AABB) (side Side, depth float64, ok bool) {
	if !mover.Overlaps(box) {
		return SideTop, 0, false
	}

	depths := [4]float64{
		SideTop:    mover.Bottom() - box.Top(),
		SideBottom: box.Bottom() - mover.Top(),
		SideLeft:   mover.Right() - box.Left(),
		SideRight:  box.Right() - mover.Left(),
	}

	side, depth = SideTop, depths[SideTop]
	for s := SideBottom; s <= SideRight; s++ {
		if depths[s] < depth {
			side, depth = s, depths[s]
		}
	}
	return side, depth, true
}

// ResolveCircle pushes a circle out of box along the minimum-penetration face and
// points the matching velocity component away from the box. The returned position
// leaves the circle's bounding box clear of box by SnapEpsilon.
func ResolveCircle(pos, vel Vector2D, radius float64, box AABB) (Vector2D, Vector2D, Side, bool) {
	side, _, ok := Penetration(BoxAround(pos, radius), box)
	if !ok {
		return pos, vel, side, false
	}

	switch side {
	case SideTop:
		pos.Y = box.Top() - radius - SnapEpsilon
		vel.Y = -math.Abs(vel.Y)
	case SideBottom:
		pos.Y = box.Bottom() + radius + SnapEpsilon
		vel.Y = math.Abs(vel.Y)
	case SideLeft:
		pos.X = box.Left() - radius - SnapEpsilon
		vel.X = -math.Abs(vel.X)
	case SideRight:
		pos.X = box.Right() + radius + SnapEpsilon
		vel.X = math.Abs(vel.X)
	}
	return pos, vel, side, true
}
