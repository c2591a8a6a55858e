package system

import (
	"underground-miner/internal/component"
	"underground-miner/internal/ecs"
	"underground-miner/internal/gamemap"
)

// Uncovered reports whether every cell of t has been mined out.
func Uncovered(grid *gamemap.Grid, t component.Treasure) bool {
	for _, idx := range t.Cells {
		if grid.HP(idx) != 0 {
			return false
		}
	}
	return true
}

// DetectDiscoveries marks every undiscovered treasure whose cells are all at
// zero hp as discovered, returning them in entity order. allFound is true
// when no treasure remains undiscovered afterwards.
func DetectDiscoveries(w *ecs.World, grid *gamemap.Grid) (found []ecs.EntityID, allFound bool) {
	allFound = true
	for _, id := range w.Query(component.CTreasure) {
		t := w.Get(id, component.CTreasure).(component.Treasure)
		if t.Discovered {
			continue
		}
		if !Uncovered(grid, t) {
			allFound = false
			continue
		}
		t.Discovered = true
		w.Add(id, t)
		found = append(found, id)
	}
	return found, allFound
}
