// Package catalog holds the read-only reference data every expedition is
// built from: the level sizes per area and the treasure shape definitions.
// A Catalog is constructed once at startup and shared by value thereafter;
// nothing in it is mutated after Load returns.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/agnivade/levenshtein"
)

// ErrInvalid is wrapped by every validation failure from Load.
var ErrInvalid = errors.New("invalid catalog")

// EmptyCell marks a shape cell that the treasure does not occupy.
const EmptyCell = -1

// Tier names a stability budget class for a level.
type Tier string

const TierNormal Tier = "normal"

// LevelInfo describes one level of an area.
type LevelInfo struct {
	Name      string `json:"name"`
	Size      [2]int `json:"size"` // width, height
	Stability Tier   `json:"stability"`
}

// Width returns the level's grid width.
func (l LevelInfo) Width() int { return l.Size[0] }

// Height returns the level's grid height.
func (l LevelInfo) Height() int { return l.Size[1] }

// AreaInfo is the ordered level list of one area.
type AreaInfo struct {
	Levels []LevelInfo `json:"levels"`
}

// TreasureDef is one treasure shape. Shape is row-major in the shape's own
// width; EmptyCell entries are holes, values >= 0 are visual indices.
type TreasureDef struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Shape  []int  `json:"shape"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Filled returns the number of occupied shape cells.
func (d TreasureDef) Filled() int {
	n := 0
	for _, v := range d.Shape {
		if v != EmptyCell {
			n++
		}
	}
	return n
}

// Levels maps area name to its levels.
type Levels map[string]AreaInfo

// Level looks up the level at idx within area.
func (l Levels) Level(area string, idx int) (LevelInfo, bool) {
	info, ok := l[area]
	if !ok || idx < 0 || idx >= len(info.Levels) {
		return LevelInfo{}, false
	}
	return info.Levels[idx], true
}

// Areas returns the area names in sorted order.
func (l Levels) Areas() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the known area name closest to area by edit distance.
// ok is false when no area is within a third of the longer name's length.
func (l Levels) Suggest(area string) (string, bool) {
	best, bestDist := "", -1
	for _, name := range l.Areas() {
		dist := levenshtein.ComputeDistance(area, name)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	if bestDist < 0 {
		return "", false
	}
	limit := max(len(area), len(best)) / 3
	if bestDist > limit {
		return "", false
	}
	return best, true
}

// Treasures is the ordered list of treasure definitions.
type Treasures []TreasureDef

// Len returns the number of definitions.
func (t Treasures) Len() int { return len(t) }

// At returns the i-th definition in catalog order.
func (t Treasures) At(i int) TreasureDef { return t[i] }

// ByID returns the definition with the given id.
func (t Treasures) ByID(id int) (TreasureDef, bool) {
	i := slices.IndexFunc(t, func(d TreasureDef) bool { return d.ID == id })
	if i < 0 {
		return TreasureDef{}, false
	}
	return t[i], true
}

// Catalog bundles both reference tables.
type Catalog struct {
	Levels    Levels
	Treasures Treasures
}

// Load parses and validates the level and treasure tables.
func Load(levelsJSON, treasuresJSON []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(levelsJSON, &c.Levels); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	if err := json.Unmarshal(treasuresJSON, &c.Treasures); err != nil {
		return nil, fmt.Errorf("parse treasures: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFiles reads the two tables from disk and calls Load.
func LoadFiles(levelsPath, treasuresPath string) (*Catalog, error) {
	lv, err := os.ReadFile(levelsPath)
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	tr, err := os.ReadFile(treasuresPath)
	if err != nil {
		return nil, fmt.Errorf("read treasures: %w", err)
	}
	return Load(lv, tr)
}

// Validate checks every structural rule the engine relies on.
func (c *Catalog) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no areas", ErrInvalid)
	}
	for _, area := range c.Levels.Areas() {
		info := c.Levels[area]
		if len(info.Levels) == 0 {
			return fmt.Errorf("%w: area %q has no levels", ErrInvalid, area)
		}
		for i, lv := range info.Levels {
			if lv.Width() <= 0 || lv.Height() <= 0 {
				return fmt.Errorf("%w: %s level %d: size %dx%d", ErrInvalid, area, i, lv.Width(), lv.Height())
			}
			if lv.Stability != TierNormal {
				return fmt.Errorf("%w: %s level %d: unknown stability tier %q", ErrInvalid, area, i, lv.Stability)
			}
		}
	}

	if len(c.Treasures) == 0 {
		return fmt.Errorf("%w: no treasures", ErrInvalid)
	}
	seen := make(map[int]bool, len(c.Treasures))
	for _, d := range c.Treasures {
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate treasure id %d", ErrInvalid, d.ID)
		}
		seen[d.ID] = true
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("%w: treasure %d: size %dx%d", ErrInvalid, d.ID, d.Width, d.Height)
		}
		if len(d.Shape) != d.Width*d.Height {
			return fmt.Errorf("%w: treasure %d: shape has %d cells, want %d", ErrInvalid, d.ID, len(d.Shape), d.Width*d.Height)
		}
		for _, v := range d.Shape {
			if v < EmptyCell {
				return fmt.Errorf("%w: treasure %d: shape value %d", ErrInvalid, d.ID, v)
			}
		}
		if d.Filled() == 0 {
			return fmt.Errorf("%w: treasure %d: empty shape", ErrInvalid, d.ID)
		}
	}
	return nil
}
