// Package gamemap owns the destructible tile grid of one expedition.
package gamemap

import (
	"math/rand"

	"underground-miner/internal/component"
	"underground-miner/internal/ecs"
	"underground-miner/internal/factory"
)

// MaxTileHP is the hardest rock a freshly built grid can contain.
const MaxTileHP = 4

// Grid holds the tile entities for one expedition. Tiles[i] is NilEntity
// where the cell has no breakable rock.
type Grid struct {
	Width, Height int
	Tiles         []ecs.EntityID

	world *ecs.World
}

// New creates an empty grid of the given size with no tiles.
func New(w *ecs.World, width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]ecs.EntityID, width*height),
		world:  w,
	}
}

// Build creates a grid and fills every cell with a rock tile whose hp is
// drawn uniformly from 1..MaxTileHP.
func Build(w *ecs.World, width, height int, rng *rand.Rand) *Grid {
	g := New(w, width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			hp := uint(rng.Intn(MaxTileHP)) + 1
			g.Tiles[Index(x, y, width)] = factory.NewTile(w, x, y, hp)
		}
	}
	return g
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int { return len(g.Tiles) }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.Width }

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Has reports whether idx holds a tile entity, destroyed or not.
func (g *Grid) Has(idx int) bool {
	return idx >= 0 && idx < len(g.Tiles) && g.Tiles[idx] != ecs.NilEntity
}

// HP returns the remaining hp of the tile at idx, or 0 if there is none.
func (g *Grid) HP(idx int) uint {
	t, ok := g.tile(idx)
	if !ok {
		return 0
	}
	return t.HP
}

// Damage removes amount hp from the tile at idx, saturating at zero.
// destroyed is true only when this call brought the tile to exactly zero.
func (g *Grid) Damage(idx int, amount uint) (remaining uint, destroyed bool) {
	t, ok := g.tile(idx)
	if !ok {
		return 0, false
	}
	before := t.HP
	if amount >= t.HP {
		t.HP = 0
	} else {
		t.HP -= amount
	}
	g.world.Add(g.Tiles[idx], t)
	return t.HP, before > 0 && t.HP == 0
}

func (g *Grid) tile(idx int) (component.MiningTile, bool) {
	if !g.Has(idx) {
		return component.MiningTile{}, false
	}
	c := g.world.Get(g.Tiles[idx], component.CMiningTile)
	if c == nil {
		return component.MiningTile{}, false
	}
	return c.(component.MiningTile), true
}
