package model

// Rect is an axis-aligned integer rectangle. X and Y are the top-left corner.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// NewRect returns a w x h rectangle anchored at the origin.
func NewRect(w, h int) Rect {
	return Rect{W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

func (r Rect) Area() int {
	return r.W * r.H
}

// Rotated returns the rectangle with width and height swapped.
func (r Rect) Rotated() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.H, H: r.W}
}

// Contains reports whether b lies entirely within r. Edges may touch.
func (r Rect) Contains(b Rect) bool {
	return b.X >= r.X && b.Y >= r.Y &&
		b.Right() <= r.Right() && b.Bottom() <= r.Bottom()
}

// Overlaps reports whether r and b share a positive area. Rectangles that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(b Rect) bool {
	return r.X < b.Right() && r.Y < b.Bottom() &&
		r.Right() > b.X && r.Bottom() > b.Y
}

// PackedRect is a committed placement: the final footprint plus the caller's id.
type PackedRect struct {
	ID   int  `json:"id"`
	Rect Rect `json:"rect"`
}
