package game

import (
	"fmt"

	"underground-miner/internal/catalog"

	"github.com/gdamore/tcell/v2"
)

// runLevelSelect shows the area viewer and blocks until the player picks a
// level. Returns false if the player quits without selecting.
func (g *Game) runLevelSelect() bool {
	for {
		g.drawLevelSelect()
		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if done, ok := g.levelSelectKey(ev); done {
				return ok
			}
		}
	}
}

// levelSelectKey applies one key press in the area viewer. done is true when
// the picker should close; ok then tells whether a level was chosen.
func (g *Game) levelSelectKey(ev *tcell.EventKey) (done, ok bool) {
	levels := g.currentLevels()
	switch ev.Key() {
	case tcell.KeyUp:
		g.level = (g.level - 1 + len(levels)) % len(levels)
	case tcell.KeyDown:
		g.level = (g.level + 1) % len(levels)
	case tcell.KeyLeft:
		g.switchArea(-1)
	case tcell.KeyRight:
		g.switchArea(1)
	case tcell.KeyEnter:
		return true, true
	case tcell.KeyEscape:
		return true, false
	}
	switch ev.Rune() {
	case 'k', 'K':
		g.level = (g.level - 1 + len(levels)) % len(levels)
	case 'j', 'J':
		g.level = (g.level + 1) % len(levels)
	case 'h', 'H':
		g.switchArea(-1)
	case 'l', 'L':
		g.switchArea(1)
	case 'q', 'Q':
		return true, false
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		idx := int(ev.Rune() - '1')
		if idx < len(levels) {
			g.level = idx
			return true, true
		}
	}
	return false, false
}

func (g *Game) switchArea(d int) {
	g.area = (g.area + d + len(g.areas)) % len(g.areas)
	g.level = 0
}

func (g *Game) currentLevels() []catalog.LevelInfo {
	return g.ctrl.Catalog().Levels[g.areas[g.area]].Levels
}

// drawLevelSelect renders the full area viewer UI to the screen.
func (g *Game) drawLevelSelect() {
	g.screen.Clear()
	w, h := g.screen.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 170, 60)).Bold(true)
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(230, 170, 60))
	statStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))

	centerText := func(y int, text string, style tcell.Style) {
		x := max((w-len([]rune(text)))/2, 0)
		drawScreenText(g.screen, x, y, text, style)
	}

	centerText(1, "⛏ UNDERGROUND MINER ⛏", titleStyle)
	if g.name != "" {
		centerText(2, "Welcome, "+g.name, dimStyle)
	}
	centerText(3, fmt.Sprintf("◄ %s ►", g.areas[g.area]), normalStyle)

	startY := 5
	for i, lv := range g.currentLevels() {
		y := startY + i*2
		prefix := "  "
		lineStyle := normalStyle
		if i == g.level {
			prefix = "► "
			lineStyle = highlightStyle
		}
		drawScreenText(g.screen, 2, y, fmt.Sprintf("%s[%d] %s", prefix, i+1, lv.Name), lineStyle)
		drawScreenText(g.screen, 2, y+1, fmt.Sprintf("      %dx%d  stability: %s", lv.Width(), lv.Height(), lv.Stability), statStyle)
	}

	u := g.ctrl.Unlocks()
	drawScreenText(g.screen, 2, h-4, fmt.Sprintf("Tools unlocked: %d", u.Total()), dimStyle)
	if n := len(g.messages); n > 0 {
		drawScreenText(g.screen, 2, h-3, g.messages[n-1], tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	centerText(h-2, "[j/k] Level   [h/l] Area   [1-9] Quick-select   [Enter] Dig   [q] Quit", dimStyle)

	g.screen.Show()
}

// drawScreenText writes a string to the screen at (x, y) with the given style.
func drawScreenText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
