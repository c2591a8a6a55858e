// Package expedition runs one mining session at a time: it owns the grid,
// the treasures, the stability meter and the active tool, and advances them
// in fixed-order ticks driven by queued player commands.
//
// A Controller is not safe for concurrent use.
package expedition

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"underground-miner/internal/catalog"
	"underground-miner/internal/component"
	"underground-miner/internal/ecs"
	"underground-miner/internal/gamemap"
	"underground-miner/internal/generate"
	"underground-miner/internal/stability"
	"underground-miner/internal/system"
	"underground-miner/internal/tool"
)

// ErrUnknownLevel is returned by Lookup for an area or level index the
// catalog does not contain.
var ErrUnknownLevel = errors.New("unknown level")

// Config tunes expedition generation.
type Config struct {
	TreasureCount int // treasures placed per expedition
	// MaxPlacementAttempts caps treasure placement draws; 0 retries forever.
	MaxPlacementAttempts int
	// StabilityBudget overrides the level tier's starting stability when > 0.
	StabilityBudget int
	Seed            int64 // 0 seeds from the clock
}

// DefaultConfig returns the settings the binaries start with.
func DefaultConfig() Config {
	return Config{
		TreasureCount:        5,
		MaxPlacementAttempts: 10000,
	}
}

// Controller drives the expedition lifecycle.
type Controller struct {
	cat *catalog.Catalog
	cfg Config
	log *slog.Logger
	rng *rand.Rand

	world *ecs.World
	ctx   Context
	state Status

	area      string
	level     catalog.LevelInfo
	grid      *gamemap.Grid
	occupancy *generate.Occupancy
	treasures []ecs.EntityID
	meter     stability.Meter

	active  tool.Tool
	unlocks tool.Unlocks

	buf buffer
}

// New creates a controller in the area viewer. logger may be nil.
func New(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		cat:     cat,
		cfg:     cfg,
		log:     logger,
		rng:     rand.New(rand.NewSource(seed)),
		world:   ecs.NewWorld(),
		active:  tool.Hammer(),
		unlocks: tool.DefaultUnlocks(),
	}
}

// Lookup returns the level at levelIndex of area.
func (c *Controller) Lookup(area string, levelIndex int) (catalog.LevelInfo, error) {
	lv, ok := c.cat.Levels.Level(area, levelIndex)
	if !ok {
		return catalog.LevelInfo{}, fmt.Errorf("%w: %q level %d", ErrUnknownLevel, area, levelIndex)
	}
	return lv, nil
}

// Tick processes the queued commands and returns the resulting events in
// order. Commands are checked against the context the controller was in
// when the tick began, so a start and a leave queued together never both run.
func (c *Controller) Tick() []Event {
	buf := c.take()
	var events []Event

	if c.ctx == AreaViewer {
		for _, t := range buf.unlocks {
			c.unlocks.Unlock(t)
			c.log.Debug("tool unlocked", "tool", t)
		}
		if buf.swap != nil || buf.action != nil || buf.leave {
			c.log.Debug("dropped commands outside expedition", "switch", buf.swap != nil, "action", buf.action != nil, "leave", buf.leave)
		}
		if buf.start != nil {
			events = c.start(events, *buf.start)
		}
		return events
	}

	if buf.start != nil {
		c.log.Debug("dropped start during expedition", "area", buf.start.area, "level", buf.start.level)
	}
	if len(buf.unlocks) > 0 {
		c.log.Debug("dropped unlocks during expedition", "count", len(buf.unlocks))
	}
	if buf.swap != nil {
		c.swapTool(*buf.swap)
	}
	if buf.action != nil {
		events = c.mine(events, *buf.action)
	}
	if buf.leave {
		events = c.leave(events)
	}
	return events
}

func (c *Controller) start(events []Event, cmd startCmd) []Event {
	lv, err := c.Lookup(cmd.area, cmd.level)
	if err != nil {
		attrs := []any{"area", cmd.area, "level", cmd.level}
		if s, ok := c.cat.Levels.Suggest(cmd.area); ok && s != cmd.area {
			attrs = append(attrs, "did_you_mean", s)
		}
		c.log.Warn("no level found", attrs...)
		return events
	}
	budget, ok := stability.BudgetFor(lv.Stability)
	if !ok {
		c.log.Warn("unknown stability tier", "area", cmd.area, "level", lv.Name, "tier", lv.Stability)
		return events
	}
	if c.cfg.StabilityBudget > 0 {
		budget = c.cfg.StabilityBudget
	}

	c.area, c.level = cmd.area, lv
	c.grid = gamemap.Build(c.world, lv.Width(), lv.Height(), c.rng)
	res, err := generate.PlaceTreasures(c.world, c.grid, &generate.Config{
		Count:       c.cfg.TreasureCount,
		MaxAttempts: c.cfg.MaxPlacementAttempts,
		Treasures:   c.cat.Treasures,
		Rand:        c.rng,
	})
	if err != nil {
		c.log.Warn("treasure placement incomplete", "error", err,
			"placed", len(res.Placements), "wanted", c.cfg.TreasureCount, "attempts", res.Attempts)
	}
	c.occupancy = res.Occupancy
	c.treasures = c.treasures[:0]
	for _, p := range res.Placements {
		c.treasures = append(c.treasures, p.ID)
		c.log.Debug("treasure placed", "id", p.ID, "name", p.Def.Name, "left", p.Left, "bottom", p.Bottom)
	}

	c.meter = stability.New(budget)
	c.state = Mining
	c.ctx = Expedition
	c.log.Info("expedition started", "area", cmd.area, "level", lv.Name,
		"width", lv.Width(), "height", lv.Height(), "treasures", len(c.treasures), "stability", budget)

	return append(events,
		Event{Kind: SessionInitialized, SizeX: lv.Width(), SizeY: lv.Height()},
		Event{Kind: StabilityChanged, Stability: budget},
	)
}

func (c *Controller) swapTool(cmd switchCmd) {
	if cmd.cycle {
		c.active = tool.Cycle(c.active, c.unlocks)
		return
	}
	t, err := tool.Switch(c.active, cmd.tool, c.unlocks)
	if err != nil {
		c.log.Debug("tool switch refused", "error", err)
	}
	c.active = t
}

func (c *Controller) mine(events []Event, at target) []Event {
	if c.state != Mining {
		return events
	}
	a := tool.Resolve(c.active, at.x, at.y, c.grid)
	if a.Empty() {
		return events
	}

	for _, h := range system.ApplyHits(c.grid, a.Hits) {
		switch {
		case h.Destroyed:
			events = append(events, Event{Kind: TileDestroyed, Index: h.Index})
		case h.Changed():
			events = append(events, Event{Kind: TileDamaged, Index: h.Index, HP: h.Remaining})
		}
	}

	remaining := c.meter.Spend(a.Cost)
	events = append(events, Event{Kind: StabilityChanged, Stability: remaining})

	found, allFound := system.DetectDiscoveries(c.world, c.grid)
	for _, id := range found {
		c.log.Info("treasure discovered", "id", id)
		events = append(events, Event{Kind: TreasureDiscovered, Treasure: id})
	}
	if allFound {
		c.state = Cleared
		c.log.Info("expedition cleared", "level", c.level.Name, "stability", remaining)
		events = append(events, Event{Kind: ExpeditionCleared})
	}
	return events
}

func (c *Controller) leave(events []Event) []Event {
	from := c.state
	c.state = Leaving
	removed := c.world.DestroyWith(component.CTagExpedition)
	c.grid = nil
	c.occupancy = nil
	c.treasures = c.treasures[:0]
	c.ctx = AreaViewer
	c.log.Info("expedition ended", "level", c.level.Name, "from", from, "entities", removed)
	return append(events, Event{Kind: ExpeditionEnded})
}

// Status returns the lifecycle stage of the current or most recent expedition.
func (c *Controller) Status() Status { return c.state }

// Context returns the outer screen the controller is in.
func (c *Controller) Context() Context { return c.ctx }

// Stability returns the remaining stability of the current expedition.
func (c *Controller) Stability() int { return c.meter.Remaining() }

// Grid returns the current mining grid, or nil outside an expedition.
func (c *Controller) Grid() *gamemap.Grid { return c.grid }

// Occupancy returns which treasure owns each grid cell, or nil outside an expedition.
func (c *Controller) Occupancy() *generate.Occupancy { return c.occupancy }

// World returns the entity store holding the expedition's entities.
func (c *Controller) World() *ecs.World { return c.world }

// Treasures returns the current expedition's treasures in placement order.
func (c *Controller) Treasures() []component.Treasure {
	out := make([]component.Treasure, 0, len(c.treasures))
	for _, id := range c.treasures {
		if t, ok := c.world.Get(id, component.CTreasure).(component.Treasure); ok {
			out = append(out, t)
		}
	}
	return out
}

// Found returns how many treasures have been discovered out of the total.
func (c *Controller) Found() (found, total int) {
	for _, t := range c.Treasures() {
		if t.Discovered {
			found++
		}
	}
	return found, len(c.treasures)
}

// ActiveTool returns the selected tool.
func (c *Controller) ActiveTool() tool.Tool { return c.active }

// Unlocks returns which tools may be selected.
func (c *Controller) Unlocks() tool.Unlocks { return c.unlocks }

// Level returns the area and level of the current or most recent expedition.
func (c *Controller) Level() (string, catalog.LevelInfo) { return c.area, c.level }

// Catalog returns the reference data the controller was built with.
func (c *Controller) Catalog() *catalog.Catalog { return c.cat }
