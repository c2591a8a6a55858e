package stability

import (
	"testing"

	"underground-miner/internal/catalog"
	"underground-miner/internal/tool"
)

func TestSpendLineActions(t *testing.T) {
	m := New(100)
	want := []int{75, 50, 25}
	for i, w := range want {
		if got := m.Spend(tool.CostPickaxeLine); got != w {
			t.Fatalf("action %d: remaining = %d; want %d", i+1, got, w)
		}
	}
	if m.Remaining() != 25 {
		t.Errorf("Remaining() = %d; want 25", m.Remaining())
	}
}

func TestSpendGoesNegative(t *testing.T) {
	m := New(50)
	m.Spend(tool.CostTinyHammer)
	if m.Remaining() != -25 {
		t.Errorf("Remaining() = %d; want -25", m.Remaining())
	}
	m.Spend(tool.CostPickaxeCross)
	if m.Remaining() != -70 {
		t.Errorf("Remaining() = %d; want -70", m.Remaining())
	}
}

func TestSpendZero(t *testing.T) {
	m := New(10)
	if m.Spend(0) != 10 {
		t.Error("zero-cost spend changed the meter")
	}
}

func TestBudgetFor(t *testing.T) {
	got, ok := BudgetFor(catalog.TierNormal)
	if !ok || got != NormalBudget {
		t.Errorf("BudgetFor(normal) = %d, %v; want %d, true", got, ok, NormalBudget)
	}
	if _, ok := BudgetFor("brutal"); ok {
		t.Error("BudgetFor accepted an unknown tier")
	}
}
