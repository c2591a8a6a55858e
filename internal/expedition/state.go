package expedition

import "fmt"

// Status is the lifecycle stage of the current expedition. It only moves
// forward: Mining, then optionally Cleared, then Leaving.
type Status uint8

const (
	Idle    Status = iota // no expedition has been started
	Mining                // tool actions are accepted
	Cleared               // every treasure is uncovered; waiting for the player to leave
	Leaving               // the expedition has been torn down
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Mining:
		return "mining"
	case Cleared:
		return "cleared"
	case Leaving:
		return "leaving"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Context is the outer application screen the controller is in.
type Context uint8

const (
	AreaViewer Context = iota // choosing a level
	Expedition                // inside a session
)

func (c Context) String() string {
	if c == Expedition {
		return "expedition"
	}
	return "area viewer"
}
