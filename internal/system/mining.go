package system

import "underground-miner/internal/gamemap"

// HitResult is the effect of one point of damage on one tile.
type HitResult struct {
	Index     int
	Before    uint
	Remaining uint
	Destroyed bool // hp reached zero on this hit
}

// Changed reports whether the hit removed any hp.
func (h HitResult) Changed() bool { return h.Remaining < h.Before }

// ApplyHits deals one point of damage to each index, in order.
func ApplyHits(grid *gamemap.Grid, hits []int) []HitResult {
	out := make([]HitResult, 0, len(hits))
	for _, idx := range hits {
		before := grid.HP(idx)
		remaining, destroyed := grid.Damage(idx, 1)
		out = append(out, HitResult{Index: idx, Before: before, Remaining: remaining, Destroyed: destroyed})
	}
	return out
}
