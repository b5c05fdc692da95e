package driver

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

type keyEvent struct {
	down bool
	key  Key
}

func down(k Key) keyEvent { return keyEvent{down: true, key: k} }
func up(k Key) keyEvent   { return keyEvent{key: k} }

func TestInputTranslatorSequences(t *testing.T) {
	tests := []struct {
		name     string
		events   []keyEvent
		expected core.ControlSignal
	}{
		{"no events", nil, core.SignalNeutral},
		{"left", []keyEvent{down(KeyLeft)}, core.SignalLeft},
		{"right", []keyEvent{down(KeyRight)}, core.SignalRight},
		{"last direction wins", []keyEvent{down(KeyLeft), down(KeyRight)}, core.SignalRight},
		{"release clears", []keyEvent{down(KeyRight), up(KeyRight)}, core.SignalNeutral},
		{"release of other key clears", []keyEvent{down(KeyLeft), up(KeySpace)}, core.SignalNeutral},
		{"up arrow is neutral", []keyEvent{down(KeyLeft), down(KeyUp)}, core.SignalNeutral},
		{"unrecognized is neutral", []keyEvent{down(KeyRight), down(Key(65))}, core.SignalNeutral},
		{"space keeps direction", []keyEvent{down(KeyLeft), down(KeySpace)}, core.SignalLeft},
		{"press after release", []keyEvent{down(KeyLeft), up(KeyLeft), down(KeyRight)}, core.SignalRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewInputTranslator(nil)
			for _, ev := range tt.events {
				if ev.down {
					tr.KeyDown(ev.key)
				} else {
					tr.KeyUp(ev.key)
				}
			}
			if got := tr.Signal(); got != tt.expected {
				t.Errorf("Signal() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestInputTranslatorIdempotent(t *testing.T) {
	var notified []core.ControlSignal
	tr := NewInputTranslator(func(sig core.ControlSignal) {
		notified = append(notified, sig)
	})

	if tr.Set(core.SignalNeutral) {
		t.Error("Set(Neutral) on a fresh translator reported a change")
	}
	tr.KeyDown(KeyLeft)
	tr.KeyDown(KeyLeft) // key repeat
	tr.Set(core.SignalLeft)
	tr.KeyUp(KeyLeft)
	tr.KeyUp(KeyLeft)

	expected := []core.ControlSignal{core.SignalLeft, core.SignalNeutral}
	if len(notified) != len(expected) {
		t.Fatalf("notifications = %v, expected %v", notified, expected)
	}
	for i := range expected {
		if notified[i] != expected[i] {
			t.Errorf("notification %d = %v, expected %v", i, notified[i], expected[i])
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeySpace, "space"},
		{KeyLeft, "left"},
		{KeyUp, "up"},
		{KeyRight, "right"},
		{Key(13), "key(13)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expected {
			t.Errorf("Key(%d).String() = %q, expected %q", int(tt.key), got, tt.expected)
		}
	}
}
