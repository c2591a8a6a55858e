package expedition

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"underground-miner/internal/catalog"
	"underground-miner/internal/ecs"
	"underground-miner/internal/gamemap"
	"underground-miner/internal/stability"
	"underground-miner/internal/tool"
)

const (
	levelPocket  = 0 // 1x1
	levelChamber = 1 // 10x8
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Levels: catalog.Levels{
			"The Caves": {Levels: []catalog.LevelInfo{
				{Name: "Pocket", Size: [2]int{1, 1}, Stability: catalog.TierNormal},
				{Name: "Chamber", Size: [2]int{10, 8}, Stability: catalog.TierNormal},
			}},
		},
		Treasures: catalog.Treasures{
			{ID: 0, Name: "Pebble", Shape: []int{0}, Width: 1, Height: 1},
		},
	}
}

func newController(t *testing.T, cfg Config) (*Controller, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	return New(testCatalog(), cfg, logger), &logs
}

func started(t *testing.T, cfg Config, level int) *Controller {
	t.Helper()
	c, _ := newController(t, cfg)
	require.True(t, c.StartExpedition("The Caves", level))
	events := c.Tick()
	require.Equal(t, Expedition, c.Context())
	require.Len(t, events, 2)
	return c
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// freeRow returns a row of the grid that holds no treasure cell.
func freeRow(t *testing.T, c *Controller) int {
	t.Helper()
	occ := c.Occupancy()
	for y := range occ.Height {
		free := true
		for x := range occ.Width {
			if occ.Owner(gamemap.Index(x, y, occ.Width)) != ecs.NilEntity {
				free = false
				break
			}
		}
		if free {
			return y
		}
	}
	t.Fatal("no free row")
	return -1
}

func TestStartInitializesSession(t *testing.T) {
	c, _ := newController(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100})
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, AreaViewer, c.Context())

	c.StartExpedition("The Caves", levelChamber)
	events := c.Tick()
	require.Equal(t, []Event{
		{Kind: SessionInitialized, SizeX: 10, SizeY: 8},
		{Kind: StabilityChanged, Stability: stability.NormalBudget},
	}, events)

	assert.Equal(t, Mining, c.Status())
	assert.Equal(t, Expedition, c.Context())
	assert.Equal(t, stability.NormalBudget, c.Stability())
	require.NotNil(t, c.Grid())
	assert.Equal(t, 80, c.Grid().Len())
	for i := range c.Grid().Len() {
		hp := c.Grid().HP(i)
		assert.True(t, hp >= 1 && hp <= gamemap.MaxTileHP, "tile %d hp %d", i, hp)
	}
	area, lv := c.Level()
	assert.Equal(t, "The Caves", area)
	assert.Equal(t, "Chamber", lv.Name)
	found, total := c.Found()
	assert.Equal(t, 0, found)
	assert.Equal(t, 1, total)
}

func TestLineActionsDrainStability(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100, StabilityBudget: 100}, levelChamber)
	require.Equal(t, 100, c.Stability())

	c.SwitchActiveTool(tool.PickaxeOf(tool.Horizontal))
	c.Tick()
	require.Equal(t, tool.PickaxeOf(tool.Horizontal), c.ActiveTool())

	y := freeRow(t, c)
	var got []int
	for range 3 {
		c.ApplyToolAction(5, y)
		for _, e := range c.Tick() {
			if e.Kind == StabilityChanged {
				got = append(got, e.Stability)
			}
		}
	}
	assert.Equal(t, []int{75, 50, 25}, got)
	assert.Equal(t, Mining, c.Status())
}

func TestLeaveWhileMiningSkipsCleared(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100}, levelChamber)
	require.Equal(t, Mining, c.Status())

	c.LeaveExpedition()
	events := c.Tick()
	assert.Equal(t, []EventKind{ExpeditionEnded}, kinds(events))
	assert.Equal(t, Leaving, c.Status())
	assert.Equal(t, AreaViewer, c.Context())
	assert.Nil(t, c.Grid())
	assert.Zero(t, c.World().Len(), "expedition entities left behind")
	assert.Empty(t, c.Treasures())
}

func TestClearedFiresOnce(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100}, levelPocket)
	hp := c.Grid().HP(0)
	require.NotZero(t, hp)
	treasure := c.Occupancy().Owner(0)
	require.NotEqual(t, ecs.NilEntity, treasure)

	var all []Event
	for i := uint(1); i <= hp; i++ {
		c.ApplyToolAction(0, 0)
		events := c.Tick()
		budget := stability.NormalBudget - int(i)*tool.CostTinyHammer
		if i < hp {
			assert.Equal(t, []Event{
				{Kind: TileDamaged, Index: 0, HP: hp - i},
				{Kind: StabilityChanged, Stability: budget},
			}, events)
		} else {
			assert.Equal(t, []Event{
				{Kind: TileDestroyed, Index: 0},
				{Kind: StabilityChanged, Stability: budget},
				{Kind: TreasureDiscovered, Treasure: treasure},
				{Kind: ExpeditionCleared},
			}, events)
		}
		all = append(all, events...)
	}
	require.Equal(t, Cleared, c.Status())

	// Actions are ignored once cleared.
	before := c.Stability()
	c.ApplyToolAction(0, 0)
	assert.Empty(t, c.Tick())
	assert.Equal(t, before, c.Stability())

	cleared := 0
	for _, e := range all {
		if e.Kind == ExpeditionCleared {
			cleared++
		}
	}
	assert.Equal(t, 1, cleared)

	found, total := c.Found()
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, total)

	c.LeaveExpedition()
	assert.Equal(t, []EventKind{ExpeditionEnded}, kinds(c.Tick()))
	assert.Equal(t, Leaving, c.Status())
}

func TestDuplicateCommandsDropped(t *testing.T) {
	c, _ := newController(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100})
	require.True(t, c.StartExpedition("The Caves", levelChamber))
	assert.False(t, c.StartExpedition("The Caves", levelPocket))
	c.Tick()
	_, lv := c.Level()
	require.Equal(t, "Chamber", lv.Name)

	y := freeRow(t, c)
	assert.True(t, c.SwitchActiveTool(tool.PickaxeOf(tool.Horizontal)))
	assert.False(t, c.SwitchActiveTool(tool.Hammer()))
	assert.False(t, c.CycleTool())
	assert.True(t, c.ApplyToolAction(4, y))
	assert.False(t, c.ApplyToolAction(0, y))
	assert.True(t, c.LeaveExpedition())
	assert.False(t, c.LeaveExpedition())

	events := c.Tick()
	assert.Equal(t, tool.PickaxeOf(tool.Horizontal), c.ActiveTool())
	var stab []int
	for _, e := range events {
		if e.Kind == StabilityChanged {
			stab = append(stab, e.Stability)
		}
	}
	assert.Equal(t, []int{stability.NormalBudget - tool.CostPickaxeLine}, stab)
	assert.Equal(t, ExpeditionEnded, events[len(events)-1].Kind)
}

func TestSwitchAppliesBeforeAction(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100}, levelChamber)
	y := freeRow(t, c)
	c.SwitchActiveTool(tool.PickaxeOf(tool.Horizontal))
	c.ApplyToolAction(5, y)
	events := c.Tick()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, StabilityChanged, last.Kind)
	assert.Equal(t, stability.NormalBudget-tool.CostPickaxeLine, last.Stability)
}

func TestCommandsCheckedAgainstTickStart(t *testing.T) {
	c, _ := newController(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100})

	// No session: leave, switch and action are dropped.
	c.LeaveExpedition()
	c.SwitchActiveTool(tool.PickaxeOf(tool.Horizontal))
	c.ApplyToolAction(0, 0)
	assert.Empty(t, c.Tick())
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, tool.Hammer(), c.ActiveTool())

	// Start and leave together: only the start runs.
	c.StartExpedition("The Caves", levelChamber)
	c.LeaveExpedition()
	assert.Equal(t, []EventKind{SessionInitialized, StabilityChanged}, kinds(c.Tick()))
	assert.Equal(t, Mining, c.Status())
	assert.Equal(t, Expedition, c.Context())

	// A start during an expedition is dropped.
	c.StartExpedition("The Caves", levelPocket)
	assert.Empty(t, c.Tick())
	_, lv := c.Level()
	assert.Equal(t, "Chamber", lv.Name)
}

func TestEmptyActionCostsNothing(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100}, levelChamber)
	c.ApplyToolAction(-1, 3)
	assert.Empty(t, c.Tick())
	c.ApplyToolAction(10, 0)
	assert.Empty(t, c.Tick())
	assert.Equal(t, stability.NormalBudget, c.Stability())
}

func TestUnknownLevel(t *testing.T) {
	c, logs := newController(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100})

	c.StartExpedition("The Cavez", 0)
	assert.Empty(t, c.Tick())
	assert.Equal(t, AreaViewer, c.Context())
	assert.Equal(t, Idle, c.Status())
	assert.Contains(t, logs.String(), "no level found")
	assert.Contains(t, logs.String(), `did_you_mean="The Caves"`)

	c.StartExpedition("The Caves", 9)
	assert.Empty(t, c.Tick())
	assert.Equal(t, AreaViewer, c.Context())

	_, err := c.Lookup("Nowhere", 0)
	assert.ErrorIs(t, err, ErrUnknownLevel)
	lv, err := c.Lookup("The Caves", levelPocket)
	require.NoError(t, err)
	assert.Equal(t, "Pocket", lv.Name)
}

func TestUnlockOnlyInAreaViewer(t *testing.T) {
	c, _ := newController(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100})
	c.UnlockTool(tool.PickaxeOf(tool.Cross))
	c.Tick()
	require.True(t, c.Unlocks().IsUnlocked(tool.PickaxeOf(tool.Cross)))

	c.StartExpedition("The Caves", levelChamber)
	c.Tick()
	c.UnlockTool(tool.PickaxeOf(tool.Vertical))
	c.Tick()
	assert.False(t, c.Unlocks().IsUnlocked(tool.PickaxeOf(tool.Vertical)))

	c.SwitchActiveTool(tool.PickaxeOf(tool.Vertical))
	c.Tick()
	assert.Equal(t, tool.Hammer(), c.ActiveTool(), "locked tool selected")

	c.CycleTool()
	c.Tick()
	assert.Equal(t, tool.PickaxeOf(tool.Horizontal), c.ActiveTool())
	c.CycleTool()
	c.Tick()
	assert.Equal(t, tool.PickaxeOf(tool.Cross), c.ActiveTool())
}

func TestPlacementExhaustionKeepsSession(t *testing.T) {
	c, logs := newController(t, Config{TreasureCount: 3, MaxPlacementAttempts: 50})
	c.StartExpedition("The Caves", levelPocket)
	c.Tick()
	assert.Equal(t, Mining, c.Status())
	assert.Len(t, c.Treasures(), 1)
	assert.Contains(t, logs.String(), "treasure placement incomplete")
}

func TestNextExpeditionStartsClean(t *testing.T) {
	c := started(t, Config{TreasureCount: 1, MaxPlacementAttempts: 100}, levelChamber)
	c.LeaveExpedition()
	c.Tick()

	c.StartExpedition("The Caves", levelChamber)
	c.Tick()
	assert.Equal(t, Mining, c.Status())
	// 80 tiles, one treasure and its single part.
	assert.Equal(t, 82, c.World().Len())
	assert.Equal(t, stability.NormalBudget, c.Stability())
}

func TestSameSeedSameSession(t *testing.T) {
	cfg := Config{TreasureCount: 3, MaxPlacementAttempts: 1000, Seed: 42}
	a := started(t, cfg, levelChamber)
	b := started(t, cfg, levelChamber)

	for i := range a.Grid().Len() {
		require.Equal(t, a.Grid().HP(i), b.Grid().HP(i), "tile %d", i)
	}
	assert.Equal(t, a.Treasures(), b.Treasures())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.TreasureCount)
	assert.Equal(t, 10000, cfg.MaxPlacementAttempts)
	assert.Zero(t, cfg.StabilityBudget)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "SessionInitialized(10, 8)", Event{Kind: SessionInitialized, SizeX: 10, SizeY: 8}.String())
	assert.Equal(t, "TileDamaged(33, 2)", Event{Kind: TileDamaged, Index: 33, HP: 2}.String())
	assert.Equal(t, "ExpeditionCleared", Event{Kind: ExpeditionCleared}.String())
}
