// Package game is the terminal frontend: a level picker, the mining screen
// and an expedition summary, all drawn with tcell and driven by an
// expedition.Controller.
package game

import (
	"fmt"
	"log/slog"
	"slices"

	"underground-miner/assets"
	"underground-miner/internal/catalog"
	"underground-miner/internal/component"
	"underground-miner/internal/expedition"
	"underground-miner/internal/render"
	"underground-miner/internal/tool"

	"github.com/gdamore/tcell/v2"
)

// Options configures a Game.
type Options struct {
	Catalog *catalog.Catalog
	Config  expedition.Config
	Logger  *slog.Logger // nil uses slog.Default()
	Name    string       // player name shown in the picker title
	Area    string       // area shown first; empty uses assets.DefaultArea
}

// runStats summarises one expedition for the summary screen.
type runStats struct {
	Area, Level string
	Actions     int
	TilesBroken int
	Found       int
	Total       int
	Stability   int
	Budget      int
	Cleared     bool
}

// Game is the top-level orchestrator.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	ctrl     *expedition.Controller
	log      *slog.Logger
	name     string

	areas    []string
	area     int
	level    int
	cursorX  int
	cursorY  int
	mouseBtn tcell.ButtonMask
	messages []string
	stats    runStats
}

// New creates and returns a Game on the process terminal.
func New(opts Options) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, opts), nil
}

// NewWithScreen creates a Game drawing on an already initialised screen.
func NewWithScreen(screen tcell.Screen, opts Options) *Game {
	screen.EnableMouse()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		ctrl:     expedition.New(opts.Catalog, opts.Config, logger),
		log:      logger,
		name:     opts.Name,
		areas:    opts.Catalog.Levels.Areas(),
	}
	area := opts.Area
	if area == "" {
		area = assets.DefaultArea
	}
	if i := slices.Index(g.areas, area); i >= 0 {
		g.area = i
	}
	return g
}

// Run is the main loop: pick a level, mine it, review the summary, repeat
// until the player quits.
func (g *Game) Run() {
	defer g.screen.Fini()

	for {
		if !g.runLevelSelect() {
			return
		}
		if !g.begin() {
			continue
		}
		if !g.play() {
			g.log.Info("player quit during expedition", "player", g.name)
			return
		}
		if !g.showSummary() {
			return
		}
	}
}

// begin starts the selected level and reports whether an expedition is running.
func (g *Game) begin() bool {
	g.ctrl.StartExpedition(g.areas[g.area], g.level)
	g.step()
	if g.ctrl.Context() != expedition.Expedition {
		g.addMessage("That level cannot be entered.")
		return false
	}
	return true
}

// play runs the mining screen until the expedition ends. It returns false
// if the player quit the program instead of leaving.
func (g *Game) play() bool {
	for g.ctrl.Context() == expedition.Expedition {
		g.draw()
		if quit := g.handleEvent(g.screen.PollEvent()); quit {
			return false
		}
	}
	return true
}

// draw renders the mining screen.
func (g *Game) draw() {
	grid := g.ctrl.Grid()
	if grid == nil {
		return
	}
	g.renderer.DrawFrame(g.ctrl.World(), grid, g.cursorX, g.cursorY)
	found, total := g.ctrl.Found()
	g.renderer.DrawHUD(render.HUD{
		Area:      g.stats.Area,
		Level:     g.stats.Level,
		Stability: g.ctrl.Stability(),
		Budget:    g.stats.Budget,
		Tool:      g.ctrl.ActiveTool(),
		Found:     found,
		Total:     total,
		Cleared:   g.ctrl.Status() == expedition.Cleared,
	}, g.messages)
}

// handleEvent turns one terminal event into controller commands, ticks the
// controller and reports whether the player asked to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		if grid := g.ctrl.Grid(); grid != nil {
			g.renderer.Fit(grid.Width, grid.Height)
		}
	case *tcell.EventMouse:
		btn := ev.Buttons()
		pressed := btn&tcell.Button1 != 0 && g.mouseBtn&tcell.Button1 == 0
		g.mouseBtn = btn
		if !pressed {
			return false
		}
		x, y := g.renderer.ScreenToWorld(ev.Position())
		if grid := g.ctrl.Grid(); grid == nil || !grid.InBounds(x, y) {
			return false
		}
		g.cursorX, g.cursorY = x, y
		g.ctrl.ApplyToolAction(x, y)
		g.step()
	case *tcell.EventKey:
		action := keyToAction(ev)
		switch action {
		case ActionQuit:
			return true
		case ActionMine:
			g.ctrl.ApplyToolAction(g.cursorX, g.cursorY)
		case ActionHammer:
			g.ctrl.SwitchActiveTool(tool.Hammer())
		case ActionPickaxe:
			g.ctrl.CycleTool()
		case ActionLeave:
			g.ctrl.LeaveExpedition()
		default:
			dx, dy := actionToDelta(action)
			g.moveCursor(dx, dy)
			return false
		}
		g.step()
	}
	return false
}

func (g *Game) moveCursor(dx, dy int) {
	grid := g.ctrl.Grid()
	if grid == nil || (dx == 0 && dy == 0) {
		return
	}
	x, y := g.cursorX+dx, g.cursorY+dy
	if grid.InBounds(x, y) {
		g.cursorX, g.cursorY = x, y
	}
}

// step advances the controller by one tick and reacts to its events.
func (g *Game) step() {
	events := g.ctrl.Tick()
	started, swung := false, false
	for _, e := range events {
		g.notify(e)
		switch e.Kind {
		case expedition.SessionInitialized:
			started = true
		case expedition.StabilityChanged:
			swung = true
		}
	}
	// The opening StabilityChanged reports the budget, not a swing.
	if swung && !started {
		g.stats.Actions++
	}
	if g.ctrl.Context() == expedition.Expedition {
		g.stats.Found, g.stats.Total = g.ctrl.Found()
		g.stats.Stability = g.ctrl.Stability()
	}
}

func (g *Game) notify(e expedition.Event) {
	switch e.Kind {
	case expedition.SessionInitialized:
		area, lv := g.ctrl.Level()
		g.stats = runStats{Area: area, Level: lv.Name, Budget: g.ctrl.Stability()}
		g.renderer.Fit(e.SizeX, e.SizeY)
		g.cursorX, g.cursorY = e.SizeX/2, e.SizeY/2
		g.addMessage(fmt.Sprintf("You enter %s (%dx%d). Click or press space to dig.", lv.Name, e.SizeX, e.SizeY))
	case expedition.TileDestroyed:
		g.stats.TilesBroken++
	case expedition.StabilityChanged:
		if e.Stability <= 0 && g.stats.Stability > 0 {
			g.addMessage("The cave groans. Stability is spent.")
		}
		g.stats.Stability = e.Stability
	case expedition.TreasureDiscovered:
		name := "treasure"
		if t, ok := g.ctrl.World().Get(e.Treasure, component.CTreasure).(component.Treasure); ok {
			name = t.Name
		}
		g.addMessage(fmt.Sprintf("You uncover the %s! %s", name, assets.GlyphTreasure))
	case expedition.ExpeditionCleared:
		g.stats.Cleared = true
		g.addMessage("Every treasure is uncovered. Press Backspace to leave.")
	case expedition.ExpeditionEnded:
		g.addMessage("You climb back to the surface.")
	}
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	drawScreenText(g.screen, x, y, s, style)
}
