package render

import (
	"sort"

	"underground-miner/assets"
	"underground-miner/internal/component"
	"underground-miner/internal/ecs"
	"underground-miner/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved at the bottom for the HUD.
const HUDRows = 5

// Renderer draws the mining grid onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, h-HUDRows, 0),
	}
}

// Fit resizes the viewport to the screen and centers a grid of the given size.
func (r *Renderer) Fit(width, height int) {
	sw, sh := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = sw, sh-HUDRows
	r.camera.Fit(width, height)
}

// WorldToScreen converts grid coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// ScreenToWorld converts a screen cell, such as a mouse click, to grid coordinates.
func (r *Renderer) ScreenToWorld(sx, sy int) (int, int) {
	return r.camera.ScreenToWorld(sx, sy)
}

// DrawFrame renders the grid, uncovered treasure parts and the cursor.
func (r *Renderer) DrawFrame(w *ecs.World, grid *gamemap.Grid, cursorX, cursorY int) {
	r.screen.Clear()
	r.drawBorder(grid)
	r.drawGrid(grid)
	r.drawEntities(w, grid)
	if sx, sy, ok := r.camera.WorldToScreen(cursorX, cursorY); ok && grid.InBounds(cursorX, cursorY) {
		r.putGlyph(sx, sy, assets.GlyphCursor, tcell.StyleDefault.Background(tcell.ColorDarkOrange))
	}
}

// drawGrid renders every tile: rock by remaining hp, ground once destroyed.
func (r *Renderer) drawGrid(grid *gamemap.Grid) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			idx := gamemap.Index(x, y, grid.Width)
			glyph := assets.GlyphGround
			if grid.Has(idx) {
				glyph = assets.RockGlyph(grid.HP(idx))
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// drawBorder frames the grid one cell outside its edges.
func (r *Renderer) drawBorder(grid *gamemap.Grid) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	put := func(x, y int, ch rune) {
		sx, sy, ok := r.camera.WorldToScreen(x, y)
		if !ok {
			return
		}
		r.screen.SetContent(sx, sy, ch, nil, style)
		r.screen.SetContent(sx+1, sy, ch, nil, style)
	}
	for x := -1; x <= grid.Width; x++ {
		put(x, -1, '▀')
		put(x, grid.Height, '▄')
	}
	for y := 0; y < grid.Height; y++ {
		put(-1, y, '▐')
		put(grid.Width, y, '▌')
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position, ordered by
// RenderOrder. Entities are only visible once the rock above them is gone.
func (r *Renderer) drawEntities(w *ecs.World, grid *gamemap.Grid) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		posComp := w.Get(id, component.CPosition)
		rendComp := w.Get(id, component.CRenderable)
		if posComp == nil || rendComp == nil {
			continue
		}
		pos := posComp.(component.Position)
		rend := rendComp.(component.Renderable)
		if !grid.InBounds(pos.X, pos.Y) || grid.HP(gamemap.Index(pos.X, pos.Y, grid.Width)) > 0 {
			continue
		}
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Sort ascending by render order (lower = drawn first / behind).
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
