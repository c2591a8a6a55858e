package component

import "underground-miner/internal/ecs"

const (
	CTreasure     ecs.ComponentType = 4
	CTreasurePart ecs.ComponentType = 5
)

// Treasure is a placed polyomino. Cells are grid indices into the mining grid.
// Discovered only ever goes from false to true.
type Treasure struct {
	DefID      int
	Name       string
	Cells      []int
	Discovered bool
}

func (Treasure) Type() ecs.ComponentType { return CTreasure }

// TreasurePart is one visible cell of a treasure. Visual is the shape value
// from the catalog (always >= 0).
type TreasurePart struct {
	Owner  ecs.EntityID
	Visual int
}

func (TreasurePart) Type() ecs.ComponentType { return CTreasurePart }
