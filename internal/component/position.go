package component

import "underground-miner/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position is a cell on the mining grid. Y grows upwards from the bottom row.
type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }
