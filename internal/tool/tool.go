// Package tool models the player's mining tools: which one is active, which
// are unlocked, and which tiles an action with each one hits.
package tool

import (
	"errors"
	"fmt"
)

// ErrLocked is returned when switching to a tool that is not unlocked.
var ErrLocked = errors.New("tool locked")

// Kind identifies the tool family.
type Kind uint8

const (
	TinyHammer Kind = iota
	Pickaxe
)

// Rotation is the swing pattern of a pickaxe.
type Rotation uint8

const (
	Horizontal Rotation = iota
	Vertical
	Cross
)

var rotationOrder = [...]Rotation{Horizontal, Vertical, Cross}

func (r Rotation) String() string {
	switch r {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Cross:
		return "cross"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// Tool is the active tool. Rotation is only meaningful for a Pickaxe; the
// constructors keep it zero for the hammer so values compare with ==.
type Tool struct {
	Kind     Kind
	Rotation Rotation
}

// Hammer returns the tiny hammer.
func Hammer() Tool { return Tool{Kind: TinyHammer} }

// PickaxeOf returns a pickaxe swung with rotation r.
func PickaxeOf(r Rotation) Tool { return Tool{Kind: Pickaxe, Rotation: r} }

func (t Tool) String() string {
	if t.Kind == TinyHammer {
		return "tiny hammer"
	}
	return "pickaxe (" + t.Rotation.String() + ")"
}

// slot is the tool's position in Unlocks.
func (t Tool) slot() int {
	if t.Kind == TinyHammer {
		return 0
	}
	return 1 + int(t.Rotation)
}

const slotCount = 1 + len(rotationOrder)

// Unlocks records which tool variants the player may select.
type Unlocks struct {
	unlocked [slotCount]bool
}

// DefaultUnlocks has the hammer and the horizontal pickaxe available.
func DefaultUnlocks() Unlocks {
	var u Unlocks
	u.Unlock(Hammer())
	u.Unlock(PickaxeOf(Horizontal))
	return u
}

// Unlock makes t selectable.
func (u *Unlocks) Unlock(t Tool) {
	u.unlocked[t.slot()] = true
}

// IsUnlocked reports whether t may be selected.
func (u Unlocks) IsUnlocked(t Tool) bool {
	return u.unlocked[t.slot()]
}

// Total returns the number of unlocked variants.
func (u Unlocks) Total() int {
	n := 0
	for _, ok := range u.unlocked {
		if ok {
			n++
		}
	}
	return n
}

// Switch selects requested if it is unlocked; otherwise current is kept and
// ErrLocked returned.
func Switch(current, requested Tool, u Unlocks) (Tool, error) {
	if requested.Kind == TinyHammer {
		requested = Hammer()
	}
	if !u.IsUnlocked(requested) {
		return current, fmt.Errorf("%w: %s", ErrLocked, requested)
	}
	return requested, nil
}

// Cycle advances the pickaxe rotation Horizontal → Vertical → Cross →
// Horizontal, skipping locked rotations. From the hammer it picks the first
// unlocked rotation. If no other rotation is unlocked, current is returned.
func Cycle(current Tool, u Unlocks) Tool {
	start := 0
	if current.Kind == Pickaxe {
		start = int(current.Rotation) + 1
	}
	for i := range len(rotationOrder) {
		next := PickaxeOf(rotationOrder[(start+i)%len(rotationOrder)])
		if next == current {
			continue
		}
		if u.IsUnlocked(next) {
			return next
		}
	}
	return current
}
