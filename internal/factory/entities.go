package factory

import (
	"underground-miner/assets"
	"underground-miner/internal/catalog"
	"underground-miner/internal/component"
	"underground-miner/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// OrderTreasure is the render order of treasure parts; lower draws first.
const OrderTreasure = 1

// NewTile creates a rock tile entity at (x, y) with the given hp.
func NewTile(w *ecs.World, x, y int, hp uint) ecs.EntityID {
	return w.Spawn(
		component.Position{X: x, Y: y},
		component.MiningTile{HP: hp},
		component.TagExpedition{},
	)
}

// PartSpawn is one filled shape cell placed on the grid.
type PartSpawn struct {
	X, Y   int
	Index  int // grid index
	Visual int
}

// NewTreasure creates the treasure entity plus one part entity per cell.
func NewTreasure(w *ecs.World, def catalog.TreasureDef, parts []PartSpawn) ecs.EntityID {
	cells := make([]int, len(parts))
	for i, p := range parts {
		cells[i] = p.Index
	}
	id := w.Spawn(
		component.Treasure{DefID: def.ID, Name: def.Name, Cells: cells},
		component.TagExpedition{},
	)
	for _, p := range parts {
		w.Spawn(
			component.Position{X: p.X, Y: p.Y},
			component.TreasurePart{Owner: id, Visual: p.Visual},
			component.Renderable{Glyph: assets.TreasureGlyph(p.Visual), FGColor: tcell.ColorGold, RenderOrder: OrderTreasure},
			component.TagExpedition{},
		)
	}
	return id
}
