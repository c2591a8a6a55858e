// Package assets embeds the default level and treasure catalogs and the
// glyphs the terminal frontend draws them with.
package assets

import (
	_ "embed"
	"fmt"
	"os"

	"underground-miner/internal/catalog"
)

//go:embed levels.json
var levelsJSON []byte

//go:embed treasures.json
var treasuresJSON []byte

// DefaultArea is the area shown first in the level picker.
const DefaultArea = "The Caves"

// Catalog parses the embedded catalogs.
func Catalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(levelsJSON, treasuresJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// Load returns the catalog with the embedded tables replaced by the files
// at levelsPath and treasuresPath. An empty path keeps the embedded table.
func Load(levelsPath, treasuresPath string) (*catalog.Catalog, error) {
	if levelsPath == "" && treasuresPath == "" {
		return Catalog()
	}
	lv, tr := levelsJSON, treasuresJSON
	var err error
	if levelsPath != "" {
		if lv, err = os.ReadFile(levelsPath); err != nil {
			return nil, fmt.Errorf("read levels: %w", err)
		}
	}
	if treasuresPath != "" {
		if tr, err = os.ReadFile(treasuresPath); err != nil {
			return nil, fmt.Errorf("read treasures: %w", err)
		}
	}
	return catalog.Load(lv, tr)
}
