package tool

import "github.com/zyedidia/generic/mapset"

// Cells is the view of the mining grid the resolver needs.
type Cells interface {
	InBounds(x, y int) bool
	Has(idx int) bool
	Cols() int
}

// Stability cost of one action per tool.
const (
	CostTinyHammer   = 75
	CostPickaxeLine  = 25
	CostPickaxeCross = 45
)

type offset struct{ dx, dy int }

var (
	offsetsHammer     = []offset{{0, 0}}
	offsetsHorizontal = []offset{{0, 0}, {-1, 0}, {1, 0}}
	offsetsVertical   = []offset{{0, 0}, {0, -1}, {0, 1}}
	offsetsCross      = []offset{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// offsets returns the candidate cells of t relative to the target.
func (t Tool) offsets() []offset {
	if t.Kind == TinyHammer {
		return offsetsHammer
	}
	switch t.Rotation {
	case Vertical:
		return offsetsVertical
	case Cross:
		return offsetsCross
	default:
		return offsetsHorizontal
	}
}

// Cost returns the stability paid for one action with t that hits anything.
func (t Tool) Cost() int {
	if t.Kind == TinyHammer {
		return CostTinyHammer
	}
	if t.Rotation == Cross {
		return CostPickaxeCross
	}
	return CostPickaxeLine
}

// Action is a resolved tool use: the grid indices to damage by one point
// each and the stability to deduct. An Action with no hits costs nothing.
type Action struct {
	Tool Tool
	Hits []int
	Cost int
}

// Empty reports whether the action hit nothing.
func (a Action) Empty() bool { return len(a.Hits) == 0 }

// Resolve computes the tiles hit by t aimed at (x, y). Negative offsets
// saturate at zero, duplicates are dropped, and only in-bounds cells that
// hold a tile are kept. Hits are ordered by the tool's offset order.
func Resolve(t Tool, x, y int, grid Cells) Action {
	a := Action{Tool: t}
	if !grid.InBounds(x, y) {
		return a
	}
	seen := mapset.New[int]()
	for _, o := range t.offsets() {
		cx, cy := saturatingAdd(x, o.dx), saturatingAdd(y, o.dy)
		if !grid.InBounds(cx, cy) {
			continue
		}
		idx := cx + cy*grid.Cols()
		if seen.Has(idx) {
			continue
		}
		seen.Put(idx)
		if grid.Has(idx) {
			a.Hits = append(a.Hits, idx)
		}
	}
	if len(a.Hits) > 0 {
		a.Cost = t.Cost()
	}
	return a
}

// saturatingAdd adds d to a non-negative coordinate, clamping at zero.
func saturatingAdd(v, d int) int {
	if d < 0 && v < -d {
		return 0
	}
	return v + d
}
