package expedition

import (
	"fmt"

	"underground-miner/internal/ecs"
)

// EventKind identifies a notification produced by Tick.
type EventKind uint8

const (
	SessionInitialized EventKind = iota + 1
	TileDamaged
	TileDestroyed
	StabilityChanged
	TreasureDiscovered
	ExpeditionCleared
	ExpeditionEnded
)

var eventNames = map[EventKind]string{
	SessionInitialized: "SessionInitialized",
	TileDamaged:        "TileDamaged",
	TileDestroyed:      "TileDestroyed",
	StabilityChanged:   "StabilityChanged",
	TreasureDiscovered: "TreasureDiscovered",
	ExpeditionCleared:  "ExpeditionCleared",
	ExpeditionEnded:    "ExpeditionEnded",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one notification. Only the fields relevant to Kind are set:
//
//	SessionInitialized  SizeX, SizeY
//	TileDamaged         Index, HP (remaining, always > 0)
//	TileDestroyed       Index
//	StabilityChanged    Stability (remaining)
//	TreasureDiscovered  Treasure
type Event struct {
	Kind         EventKind
	SizeX, SizeY int
	Index        int
	HP           uint
	Stability    int
	Treasure     ecs.EntityID
}

func (e Event) String() string {
	switch e.Kind {
	case SessionInitialized:
		return fmt.Sprintf("%s(%d, %d)", e.Kind, e.SizeX, e.SizeY)
	case TileDamaged:
		return fmt.Sprintf("%s(%d, %d)", e.Kind, e.Index, e.HP)
	case TileDestroyed:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Index)
	case StabilityChanged:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Stability)
	case TreasureDiscovered:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Treasure)
	}
	return e.Kind.String()
}
