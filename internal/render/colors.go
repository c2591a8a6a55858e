package render

import (
	"underground-miner/assets"
	"underground-miner/internal/tool"

	"github.com/gdamore/tcell/v2"
)

// StabilityColor shades the stability readout from green to red as the
// remaining share of the budget drops.
func StabilityColor(remaining, budget int) tcell.Color {
	switch {
	case remaining <= 0 || budget <= 0:
		return tcell.ColorRed
	case remaining*4 <= budget:
		return tcell.ColorOrangeRed
	case remaining*2 <= budget:
		return tcell.ColorYellow
	}
	return tcell.ColorGreen
}

// ToolGlyph returns the HUD glyph for t.
func ToolGlyph(t tool.Tool) string {
	if t.Kind == tool.TinyHammer {
		return assets.GlyphHammer
	}
	return assets.GlyphPickaxe
}
