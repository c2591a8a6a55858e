package render

import (
	"fmt"

	"underground-miner/assets"
	"underground-miner/internal/tool"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUD is the status shown under the grid.
type HUD struct {
	Area, Level string
	Stability   int
	Budget      int
	Tool        tool.Tool
	Found       int
	Total       int
	Cleared     bool
}

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(h HUD, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	// Separator line.
	r.drawHLine(hudY, tcell.ColorGray)

	x := r.drawText(0, hudY+1, fmt.Sprintf("%s: %s  ", h.Area, h.Level), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	x = r.drawText(x, hudY+1, fmt.Sprintf("%s %d/%d", assets.GlyphStability, h.Stability, h.Budget),
		tcell.StyleDefault.Foreground(StabilityColor(h.Stability, h.Budget)))
	x = r.drawText(x, hudY+1, fmt.Sprintf("  %s %s", ToolGlyph(h.Tool), h.Tool), tcell.StyleDefault.Foreground(tcell.ColorAqua))
	found := fmt.Sprintf("  %s %d/%d", assets.GlyphTreasure, h.Found, h.Total)
	if h.Cleared {
		found += "  CLEARED"
	}
	r.drawText(x, hudY+1, found, tcell.StyleDefault.Foreground(tcell.ColorGold))

	// Message log (last 3 messages).
	start := max(len(messages)-3, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
