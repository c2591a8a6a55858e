// Package generate places treasures on a freshly built mining grid.
package generate

import (
	"errors"
	"math/rand"

	"underground-miner/internal/catalog"
	"underground-miner/internal/ecs"
	"underground-miner/internal/factory"
	"underground-miner/internal/gamemap"
)

// ErrPlacementExhausted is returned when Config.MaxAttempts draws did not
// produce Config.Count treasures. The treasures placed so far are kept.
var ErrPlacementExhausted = errors.New("treasure placement exhausted")

// ErrNoTreasures is returned when treasures are requested from an empty catalog.
var ErrNoTreasures = errors.New("no treasure definitions")

// Config drives treasure placement for one expedition.
type Config struct {
	Count int // treasures to place
	// MaxAttempts caps the number of anchor/shape draws. Zero means no cap:
	// placement retries until Count treasures fit, and never returns if the
	// grid cannot hold them.
	MaxAttempts int
	Treasures   catalog.Treasures
	Rand        *rand.Rand
}

// Occupancy records which treasure owns each grid cell. It always has the
// same dimensions as the mining grid it was made for.
type Occupancy struct {
	Width, Height int
	Cells         []ecs.EntityID
}

// NewOccupancy creates an empty occupancy grid.
func NewOccupancy(width, height int) *Occupancy {
	return &Occupancy{Width: width, Height: height, Cells: make([]ecs.EntityID, width*height)}
}

// Owner returns the treasure occupying idx, or NilEntity.
func (o *Occupancy) Owner(idx int) ecs.EntityID {
	if idx < 0 || idx >= len(o.Cells) {
		return ecs.NilEntity
	}
	return o.Cells[idx]
}

// Placement is one committed treasure.
type Placement struct {
	ID           ecs.EntityID
	Def          catalog.TreasureDef
	Left, Bottom int
	Parts        []factory.PartSpawn
}

// Result is the outcome of PlaceTreasures.
type Result struct {
	Placements []Placement
	Occupancy  *Occupancy
	Attempts   int // total anchor/shape draws, accepted or rejected
}

// Project maps every filled cell of def onto the grid with the shape's left
// edge at left and its first row at bottom, extending downwards. ok is false
// if any cell falls off the grid or onto a claimed cell.
func Project(occ *Occupancy, def catalog.TreasureDef, left, bottom int) (parts []factory.PartSpawn, ok bool) {
	for i, v := range def.Shape {
		if v == catalog.EmptyCell {
			continue
		}
		tx, ty := gamemap.LocalXY(i, def.Width)
		if ty > bottom {
			return nil, false
		}
		x, y := left+tx, bottom-ty
		if x < 0 || x >= occ.Width || y < 0 || y >= occ.Height {
			return nil, false
		}
		idx := gamemap.Index(x, y, occ.Width)
		if occ.Cells[idx] != ecs.NilEntity {
			return nil, false
		}
		parts = append(parts, factory.PartSpawn{X: x, Y: y, Index: idx, Visual: v})
	}
	return parts, true
}

// Fits reports whether def can be placed with its anchor at (left, bottom).
func Fits(occ *Occupancy, def catalog.TreasureDef, left, bottom int) bool {
	_, ok := Project(occ, def, left, bottom)
	return ok
}

// PlaceTreasures packs cfg.Count non-overlapping treasures onto grid by
// rejection sampling: draw an anchor, draw a shape, keep it if every cell
// fits, otherwise draw again.
func PlaceTreasures(w *ecs.World, grid *gamemap.Grid, cfg *Config) (Result, error) {
	res := Result{Occupancy: NewOccupancy(grid.Width, grid.Height)}
	if cfg.Count <= 0 {
		return res, nil
	}
	if len(cfg.Treasures) == 0 {
		return res, ErrNoTreasures
	}

	for len(res.Placements) < cfg.Count {
		if cfg.MaxAttempts > 0 && res.Attempts >= cfg.MaxAttempts {
			return res, ErrPlacementExhausted
		}
		res.Attempts++

		left := cfg.Rand.Intn(grid.Width)
		bottom := cfg.Rand.Intn(grid.Height)
		def := cfg.Treasures[cfg.Rand.Intn(len(cfg.Treasures))]

		parts, ok := Project(res.Occupancy, def, left, bottom)
		if !ok {
			continue
		}
		id := factory.NewTreasure(w, def, parts)
		for _, p := range parts {
			res.Occupancy.Cells[p.Index] = id
		}
		res.Placements = append(res.Placements, Placement{
			ID:     id,
			Def:    def,
			Left:   left,
			Bottom: bottom,
			Parts:  parts,
		})
	}
	return res, nil
}
