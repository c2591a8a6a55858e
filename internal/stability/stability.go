// Package stability tracks how much more digging the cave can take.
package stability

import "underground-miner/internal/catalog"

// NormalBudget is the starting stability of a "normal" tier level.
const NormalBudget = 1000

// BudgetFor returns the starting stability for tier, and false for a tier
// the engine does not know.
func BudgetFor(tier catalog.Tier) (int, bool) {
	switch tier {
	case catalog.TierNormal:
		return NormalBudget, true
	}
	return 0, false
}

// Meter is the remaining stability of one expedition. It has no floor:
// spending past zero goes negative.
type Meter struct {
	remaining int
}

// New returns a meter holding budget.
func New(budget int) Meter {
	return Meter{remaining: budget}
}

// Spend deducts cost and returns the new remaining value.
func (m *Meter) Spend(cost int) int {
	m.remaining -= cost
	return m.remaining
}

// Remaining returns the current value.
func (m Meter) Remaining() int { return m.remaining }
