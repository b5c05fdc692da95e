package core

// ControlSignal is the player's current directional intent.
// Exactly one value is held at any time.
type ControlSignal int

const (
	SignalNeutral ControlSignal = iota
	SignalLeft
	SignalRight
)

// Value returns the engine wire value of the signal (-1, 0 or 1).
func (s ControlSignal) Value() int64 {
	switch s {
	case SignalLeft:
		return -1
	case SignalRight:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the signal.
func (s ControlSignal) String() string {
	switch s {
	case SignalNeutral:
		return "Neutral"
	case SignalLeft:
		return "Left"
	case SignalRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// SignalFromValue converts an engine wire value back to a signal.
// Anything other than -1 or 1 is Neutral.
func SignalFromValue(v int64) ControlSignal {
	switch v {
	case -1:
		return SignalLeft
	case 1:
		return SignalRight
	default:
		return SignalNeutral
	}
}
