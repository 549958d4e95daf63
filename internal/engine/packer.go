package engine

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/piwi3910/atlaspack/internal/model"
)

var (
	// ErrInvalidDimensions is returned for negative container or rectangle sizes.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidState is returned when an operation is called outside the state it is valid in.
	ErrInvalidState = errors.New("invalid packer state")
	// ErrIndexOutOfRange is returned by Get for an index outside [0, Count()).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// State is the lifecycle stage of a packing session.
type State int

const (
	StateEmpty      State = iota // No session started
	StateCollecting              // Init called, rectangles may be added
	StatePacked                  // Every rectangle was placed
	StateFailed                  // At least one rectangle did not fit; results discarded
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "Collecting"
	case StatePacked:
		return "Packed"
	case StateFailed:
		return "Failed"
	default:
		return "Empty"
	}
}

// pendingNode is a rectangle waiting to be placed.
type pendingNode struct {
	id        int
	w, h      int
	canRotate bool
}

// Packer packs rectangles into a single fixed-size container.
//
// For every pending rectangle it finds the free region with the smallest
// leftover area (ties broken by the smallest leftover on the tighter axis),
// then commits the single best placement across all pending rectangles. Free
// regions are maintained as maximal rectangles: every region overlapping a
// placement is split into up to four bands, and regions contained in another
// are pruned.
//
// A Packer is not safe for concurrent use. Use one Packer per job.
type Packer struct {
	state  State
	width  int
	height int
	nodes  []pendingNode
	free   []model.Rect
	packed []model.PackedRect
}

// NewPacker creates an empty packer with room for capacity rectangles before
// its internal lists need to grow.
func NewPacker(capacity int) *Packer {
	if capacity < 0 {
		capacity = 0
	}
	return &Packer{
		nodes:  make([]pendingNode, 0, capacity),
		free:   make([]model.Rect, 0, capacity),
		packed: make([]model.PackedRect, 0, capacity),
	}
}

// Init starts a new session with a width x height container, discarding any
// pending, free and placed rectangles from a previous session.
func (p *Packer) Init(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("container %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	p.width = width
	p.height = height
	p.nodes = p.nodes[:0]
	p.packed = p.packed[:0]
	p.free = append(p.free[:0], model.NewRect(width, height))
	p.state = StateCollecting
	return nil
}

// Reset drops the session and returns the packer to StateEmpty.
func (p *Packer) Reset() {
	p.nodes = p.nodes[:0]
	p.packed = p.packed[:0]
	p.free = p.free[:0]
	p.width, p.height = 0, 0
	p.state = StateEmpty
}

// Add queues a rectangle for packing. Rotation is ignored for squares.
func (p *Packer) Add(id, width, height int, canRotate bool) error {
	if p.state != StateCollecting {
		return fmt.Errorf("add in state %s: %w", p.state, ErrInvalidState)
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("rectangle %d (%dx%d): %w", id, width, height, ErrInvalidDimensions)
	}
	p.nodes = append(p.nodes, pendingNode{
		id:        id,
		w:         width,
		h:         height,
		canRotate: canRotate && width != height,
	})
	return nil
}

// Pack places every queued rectangle. It returns true when all of them fit.
// On failure the whole batch is discarded: Count returns 0 and the rectangles
// must be added again to a new session. The pending list is empty afterwards
// in both cases.
func (p *Packer) Pack() (bool, error) {
	if p.state != StateCollecting {
		return false, fmt.Errorf("pack in state %s: %w", p.state, ErrInvalidState)
	}

	for len(p.nodes) > 0 {
		best := candidate{area: math.MaxInt, short: math.MaxInt}
		bestIndex := -1

		for i, node := range p.nodes {
			c, ok := p.findPosition(node)
			if ok && c.better(best) {
				best = c
				bestIndex = i
			}
		}

		if bestIndex < 0 {
			p.nodes = p.nodes[:0]
			p.packed = p.packed[:0]
			p.state = StateFailed
			return false, nil
		}

		p.placeNode(best.rect, p.nodes[bestIndex].id)
		p.nodes = slices.Delete(p.nodes, bestIndex, bestIndex+1)
	}

	p.state = StatePacked
	return true, nil
}

// State returns the current session state.
func (p *Packer) State() State {
	return p.state
}

// Size returns the container dimensions of the current session.
func (p *Packer) Size() (width, height int) {
	return p.width, p.height
}

// Count returns the number of placed rectangles. It is 0 unless the last
// Pack succeeded.
func (p *Packer) Count() int {
	if p.state != StatePacked {
		return 0
	}
	return len(p.packed)
}

// Get returns the index-th placed rectangle, in placement order.
func (p *Packer) Get(index int) (model.PackedRect, error) {
	if index < 0 || index >= p.Count() {
		return model.PackedRect{}, fmt.Errorf("get %d of %d: %w", index, p.Count(), ErrIndexOutOfRange)
	}
	return p.packed[index], nil
}

// Placed returns a copy of all placed rectangles in placement order.
func (p *Packer) Placed() []model.PackedRect {
	if p.state != StatePacked {
		return nil
	}
	return slices.Clone(p.packed)
}

// FreeRegions returns a copy of the current free-region set.
func (p *Packer) FreeRegions() []model.Rect {
	return slices.Clone(p.free)
}

// Bounds returns the extent actually used by the placed rectangles, i.e. the
// largest right and bottom edges.
func (p *Packer) Bounds() (width, height int) {
	for _, r := range p.Placed() {
		width = max(width, r.Rect.Right())
		height = max(height, r.Rect.Bottom())
	}
	return width, height
}

// candidate is a scored placement.
type candidate struct {
	rect  model.Rect
	area  int // leftover area of the free region
	short int // leftover on the tighter-fitting axis
}

// better reports whether c scores strictly lower than o.
func (c candidate) better(o candidate) bool {
	return c.area < o.area || (c.area == o.area && c.short < o.short)
}

// findPosition returns the best placement for node among the free regions.
func (p *Packer) findPosition(node pendingNode) (candidate, bool) {
	best := candidate{area: math.MaxInt, short: math.MaxInt}
	found := false
	area := node.w * node.h

	try := func(f model.Rect, w, h int) {
		if f.W < w || f.H < h {
			return
		}
		c := candidate{
			rect:  model.Rect{X: f.X, Y: f.Y, W: w, H: h},
			area:  f.Area() - area,
			short: min(abs(f.W-w), abs(f.H-h)),
		}
		if c.better(best) {
			best = c
			found = true
		}
	}

	for _, f := range p.free {
		try(f, node.w, node.h)
		if node.canRotate {
			try(f, node.h, node.w)
		}
	}
	return best, found
}

// placeNode records the placement and updates the free-region set.
func (p *Packer) placeNode(r model.Rect, id int) {
	p.packed = append(p.packed, model.PackedRect{ID: id, Rect: r})

	kept := make([]model.Rect, 0, len(p.free)+4)
	var split []model.Rect
	for _, f := range p.free {
		if f.Overlaps(r) {
			split = splitFreeRect(split, f, r)
			continue
		}
		kept = append(kept, f)
	}
	p.free = pruneFreeRects(append(kept, split...))
}

// splitFreeRect appends the parts of free not covered by placed. Each part
// spans the full extent of free on the other axis, so the parts may overlap.
func splitFreeRect(dst []model.Rect, free, placed model.Rect) []model.Rect {
	if placed.X < free.Right() && placed.Right() > free.X {
		// Above
		if placed.Y > free.Y && placed.Y < free.Bottom() {
			r := free
			r.H = placed.Y - free.Y
			dst = append(dst, r)
		}
		// Below
		if placed.Bottom() < free.Bottom() {
			r := free
			r.Y = placed.Bottom()
			r.H = free.Bottom() - placed.Bottom()
			dst = append(dst, r)
		}
	}

	if placed.Y < free.Bottom() && placed.Bottom() > free.Y {
		// Left
		if placed.X > free.X && placed.X < free.Right() {
			r := free
			r.W = placed.X - free.X
			dst = append(dst, r)
		}
		// Right
		if placed.Right() < free.Right() {
			r := free
			r.X = placed.Right()
			r.W = free.Right() - placed.Right()
			dst = append(dst, r)
		}
	}
	return dst
}

// pruneFreeRects removes every rectangle contained in another one. Of two
// identical rectangles the earlier is removed.
func pruneFreeRects(rects []model.Rect) []model.Rect {
	removed := make([]bool, len(rects))
	for i := range rects {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(rects); j++ {
			if removed[j] {
				continue
			}
			if rects[j].Contains(rects[i]) {
				removed[i] = true
				break
			}
			if rects[i].Contains(rects[j]) {
				removed[j] = true
			}
		}
	}

	n := 0
	for i, r := range rects {
		if !removed[i] {
			rects[n] = r
			n++
		}
	}
	return rects[:n]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
