package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionCursorN
	ActionCursorS
	ActionCursorE
	ActionCursorW
	ActionMine
	ActionHammer
	ActionPickaxe
	ActionLeave
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionCursorN
	case tcell.KeyDown:
		return ActionCursorS
	case tcell.KeyRight:
		return ActionCursorE
	case tcell.KeyLeft:
		return ActionCursorW
	case tcell.KeyEnter:
		return ActionMine
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionLeave
	case tcell.KeyEscape:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K':
		return ActionCursorN
	case 'j', 'J':
		return ActionCursorS
	case 'l', 'L':
		return ActionCursorE
	case 'h', 'H':
		return ActionCursorW
	case ' ':
		return ActionMine
	case '1':
		return ActionHammer
	case '2':
		return ActionPickaxe
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a cursor action to (dx, dy). Grid Y grows upwards.
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionCursorN:
		return 0, 1
	case ActionCursorS:
		return 0, -1
	case ActionCursorE:
		return 1, 0
	case ActionCursorW:
		return -1, 0
	}
	return 0, 0
}
