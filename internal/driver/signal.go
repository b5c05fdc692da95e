package driver

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Key is a keyboard key code as delivered by a host.
type Key int

// Key codes the driver understands. Hosts translate their own key events
// into these; every other code is unrecognized.
const (
	KeySpace Key = 32
	KeyLeft  Key = 37
	KeyUp    Key = 38
	KeyRight Key = 39
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeySpace:
		return "space"
	case KeyLeft:
		return "left"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// InputTranslator turns key events into a held control signal.
// Only the latest signal is kept; there is no queue.
type InputTranslator struct {
	held     core.ControlSignal
	onChange func(core.ControlSignal)
}

// NewInputTranslator creates a translator holding Neutral. onChange, if not
// nil, is called whenever the held signal actually changes.
func NewInputTranslator(onChange func(core.ControlSignal)) *InputTranslator {
	return &InputTranslator{onChange: onChange}
}

// Signal returns the held signal.
func (t *InputTranslator) Signal() core.ControlSignal {
	return t.held
}

// Set replaces the held signal and reports whether it changed.
// Setting the value already held notifies nobody.
func (t *InputTranslator) Set(sig core.ControlSignal) bool {
	if sig == t.held {
		return false
	}
	t.held = sig
	if t.onChange != nil {
		t.onChange(sig)
	}
	return true
}

// KeyDown applies a key press. Space is not directional and leaves the
// signal untouched; unrecognized keys mean Neutral.
func (t *InputTranslator) KeyDown(k Key) {
	switch k {
	case KeySpace:
		return
	case KeyLeft:
		t.Set(core.SignalLeft)
	case KeyRight:
		t.Set(core.SignalRight)
	default: // KeyUp and anything unrecognized
		t.Set(core.SignalNeutral)
	}
}

// KeyUp applies a key release. Releasing any key means Neutral.
func (t *InputTranslator) KeyUp(Key) {
	t.Set(core.SignalNeutral)
}
