package expedition

import "underground-miner/internal/tool"

type startCmd struct {
	area  string
	level int
}

type switchCmd struct {
	cycle bool
	tool  tool.Tool
}

type target struct{ x, y int }

// buffer holds the commands queued since the last Tick. Each kind has a
// single slot: the first command of a kind is kept and later ones are
// refused. Unlocks are the exception and accumulate.
type buffer struct {
	start   *startCmd
	leave   bool
	swap    *switchCmd
	action  *target
	unlocks []tool.Tool
}

// StartExpedition queues entering level levelIndex of area. It is processed
// on the next Tick only if no expedition is running at that point.
// It reports false if a start was already queued this tick.
func (c *Controller) StartExpedition(area string, levelIndex int) bool {
	if c.buf.start != nil {
		c.log.Debug("dropped duplicate command", "command", "start", "area", area, "level", levelIndex)
		return false
	}
	c.buf.start = &startCmd{area: area, level: levelIndex}
	return true
}

// LeaveExpedition queues ending the current expedition.
func (c *Controller) LeaveExpedition() bool {
	if c.buf.leave {
		c.log.Debug("dropped duplicate command", "command", "leave")
		return false
	}
	c.buf.leave = true
	return true
}

// SwitchActiveTool queues selecting t. Locked tools are refused when the
// command is processed.
func (c *Controller) SwitchActiveTool(t tool.Tool) bool {
	if c.buf.swap != nil {
		c.log.Debug("dropped duplicate command", "command", "switch", "tool", t)
		return false
	}
	c.buf.swap = &switchCmd{tool: t}
	return true
}

// CycleTool queues advancing to the next unlocked pickaxe rotation. It
// shares a slot with SwitchActiveTool.
func (c *Controller) CycleTool() bool {
	if c.buf.swap != nil {
		c.log.Debug("dropped duplicate command", "command", "cycle")
		return false
	}
	c.buf.swap = &switchCmd{cycle: true}
	return true
}

// ApplyToolAction queues one use of the active tool aimed at grid cell (x, y).
func (c *Controller) ApplyToolAction(x, y int) bool {
	if c.buf.action != nil {
		c.log.Debug("dropped duplicate command", "command", "action", "x", x, "y", y)
		return false
	}
	c.buf.action = &target{x: x, y: y}
	return true
}

// UnlockTool queues making t selectable. Unlocks are only applied while in
// the area viewer.
func (c *Controller) UnlockTool(t tool.Tool) {
	c.buf.unlocks = append(c.buf.unlocks, t)
}

// take returns the queued commands and empties the buffer.
func (c *Controller) take() buffer {
	b := c.buf
	c.buf = buffer{}
	return b
}
