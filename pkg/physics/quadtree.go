// pkg/physics/quadtree.go
package physics

// DefaultMaxDepth bounds subdivision so stacked boxes cannot recurse forever.
const DefaultMaxDepth = 6

type quadItem[T any] struct {
	box   AABB
	value T
}

// QuadTree indexes boxes for broad-phase lookups. Each box lives in the deepest node
// that fully contains it, so a query only has to visit nodes touching the area.
type QuadTree[T any] struct {
	Boundary  AABB
	Capacity  int
	MaxDepth  int
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]

	depth int
	items []quadItem[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary AABB, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		MaxDepth: DefaultMaxDepth,
		items:    make([]quadItem[T], 0, capacity),
	}
}

// Len returns the number of boxes stored in the tree.
func (qt *QuadTree[T]) Len() int {
	n := len(qt.items)
	if qt.Divided {
		for _, c := range qt.children() {
			n += c.Len()
		}
	}
	return n
}

// Insert stores value under box. It returns false when box is not inside the boundary.
func (qt *QuadTree[T]) Insert(box AABB, value T) bool {
	if !qt.Boundary.ContainsBox(box) {
		return false
	}

	if !qt.Divided && (len(qt.items) < qt.Capacity || qt.depth >= qt.MaxDepth) {
		qt.items = append(qt.items, quadItem[T]{box: box, value: value})
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	if child := qt.childFor(box); child != nil {
		return child.Insert(box, value)
	}
	qt.items = append(qt.items, quadItem[T]{box: box, value: value})
	return true
}

// Subdivide splits the quadtree into four quadrants and pushes down every stored box
// that fits entirely inside one of them.
func (qt *QuadTree[T]) Subdivide() {
	b := qt.Boundary
	w := b.W / 2
	h := b.H / 2

	newChild := func(x, y float64) *QuadTree[T] {
		c := NewQuadTree[T](AABB{X: x, Y: y, W: w, H: h}, qt.Capacity)
		c.MaxDepth = qt.MaxDepth
		c.depth = qt.depth + 1
		return c
	}

	qt.NorthWest = newChild(b.X, b.Y)
	qt.NorthEast = newChild(b.X+w, b.Y)
	qt.SouthWest = newChild(b.X, b.Y+h)
	qt.SouthEast = newChild(b.X+w, b.Y+h)
	qt.Divided = true

	kept := qt.items[:0]
	for _, it := range qt.items {
		if child := qt.childFor(it.box); child != nil {
			child.Insert(it.box, it.value)
			continue
		}
		kept = append(kept, it)
	}
	qt.items = kept
}

// Query returns the values whose boxes touch area. Order follows tree layout, so
// callers that need a stable order sort the result.
func (qt *QuadTree[T]) Query(area AABB) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area AABB, found *[]T) {
	if !qt.Boundary.Intersects(area) {
		return
	}

	for _, it := range qt.items {
		if it.box.Intersects(area) {
			*found = append(*found, it.value)
		}
	}

	if !qt.Divided {
		return
	}
	for _, c := range qt.children() {
		c.query(area, found)
	}
}

func (qt *QuadTree[T]) children() [4]*QuadTree[T] {
	return [4]*QuadTree[T]{qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast}
}

func (qt *QuadTree[T]) childFor(box AABB) *QuadTree[T] {
	for _, c := range qt.children() {
		if c.Boundary.ContainsBox(box) {
			return c
		}
	}
	return nil
}
