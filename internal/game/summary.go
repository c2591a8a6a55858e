package game

import (
	"fmt"

	"underground-miner/internal/tool"

	"github.com/gdamore/tcell/v2"
)

// rewardOrder is the pickaxe rotation unlocked by each cleared expedition.
var rewardOrder = []tool.Tool{tool.PickaxeOf(tool.Vertical), tool.PickaxeOf(tool.Cross)}

// reward queues the next locked pickaxe rotation after a cleared expedition.
// It is applied on the next tick, while the controller is in the area viewer.
func (g *Game) reward() (tool.Tool, bool) {
	if !g.stats.Cleared {
		return tool.Tool{}, false
	}
	u := g.ctrl.Unlocks()
	for _, t := range rewardOrder {
		if !u.IsUnlocked(t) {
			g.ctrl.UnlockTool(t)
			return t, true
		}
	}
	return tool.Tool{}, false
}

// showSummary renders the expedition summary and returns true if the player
// wants to pick another level, false to quit.
func (g *Game) showSummary() bool {
	unlocked, ok := g.reward()
	if ok {
		g.addMessage(fmt.Sprintf("New tool: %s.", unlocked))
	}

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		g.putText(2, y, "BACK AT THE SURFACE", gold)
		if g.stats.Cleared {
			badge := "[CLEARED]"
			g.putText(sw-len(badge)-1, y, badge, green)
		} else {
			badge := "[LEFT EARLY]"
			g.putText(sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Level:", fmt.Sprintf("%s: %s", g.stats.Area, g.stats.Level))
		y++
		label(y, "Treasures:", fmt.Sprintf("%d/%d", g.stats.Found, g.stats.Total))
		y++
		label(y, "Swings:", fmt.Sprintf("%d", g.stats.Actions))
		y++
		label(y, "Tiles Broken:", fmt.Sprintf("%d", g.stats.TilesBroken))
		y++
		label(y, "Stability Left:", fmt.Sprintf("%d/%d", g.stats.Stability, g.stats.Budget))
		y += 2

		if ok {
			g.putText(2, y, fmt.Sprintf("You can now swing the %s.", unlocked), green)
			y += 2
		}

		sep(y)
		y += 2

		g.putText(2, y, "[Enter] Choose Level", green)
		g.putText(26, y, "[Q] Quit", red)

		g.screen.Show()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			continue // redraw on resize
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return true
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
