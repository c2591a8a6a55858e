package component

import "underground-miner/internal/ecs"

const CMiningTile ecs.ComponentType = 2

// MiningTile is one breakable rock. HP 0 means destroyed and passable.
type MiningTile struct {
	HP uint
}

func (MiningTile) Type() ecs.ComponentType { return CMiningTile }
