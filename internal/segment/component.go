package segment

import (
	"errors"
	"fmt"
	"math"
)

// ErrIndexOutOfRange is returned by ComponentSet.At for an index outside the
// set.
var ErrIndexOutOfRange = errors.New("component index out of range")

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is an inclusive bounding box: both corners are pixels of the region.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width returns the number of columns covered by the box.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows covered by the box.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Component is one 8-connected region. Points are in flood-fill visitation
// order; the order carries no meaning beyond being deterministic.
type Component struct {
	Points []Point `json:"points"`
}

// Size returns the number of pixels in the component.
func (c Component) Size() int { return len(c.Points) }

// Bounds returns the bounding box of the component. An empty component has a
// zero Bounds.
func (c Component) Bounds() Bounds {
	if len(c.Points) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: math.MaxInt, MinY: math.MaxInt, MaxX: math.MinInt, MaxY: math.MinInt}
	for _, p := range c.Points {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// ComponentSet is an ordered list of components in seed discovery order.
type ComponentSet []Component

// At returns the i-th component. Indexes outside the set yield an error
// wrapping ErrIndexOutOfRange.
func (s ComponentSet) At(i int) (Component, error) {
	if i < 0 || i >= len(s) {
		return Component{}, fmt.Errorf("component %d of %d: %w", i, len(s), ErrIndexOutOfRange)
	}
	return s[i], nil
}

// TotalSize returns the sum of the sizes of all components.
func (s ComponentSet) TotalSize() int {
	total := 0
	for _, c := range s {
		total += c.Size()
	}
	return total
}

// FilterBySize keeps the components with strictly more than minSize pixels,
// preserving order. The input set is not modified.
func FilterBySize(set ComponentSet, minSize int) ComponentSet {
	kept := make(ComponentSet, 0, len(set))
	for _, c := range set {
		if c.Size() > minSize {
			kept = append(kept, c)
		}
	}
	return kept
}

// Normalize returns a copy of c translated so that its bounding box starts at
// (0, 0). Relative offsets between points are unchanged.
func Normalize(c Component) Component {
	if len(c.Points) == 0 {
		return Component{Points: []Point{}}
	}

	b := c.Bounds()
	points := make([]Point, len(c.Points))
	for i, p := range c.Points {
		points[i] = Point{X: p.X - b.MinX, Y: p.Y - b.MinY}
	}
	return Component{Points: points}
}

// NormalizeAll normalizes every component of set independently.
func NormalizeAll(set ComponentSet) ComponentSet {
	out := make(ComponentSet, len(set))
	for i, c := range set {
		out[i] = Normalize(c)
	}
	return out
}
