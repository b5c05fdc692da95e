// Package tui hosts the frame driver in a Bubble Tea program, locally or
// over SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/driver"
)

// TickMsg delivers one frame clock firing back to the driver.
type TickMsg struct {
	ID uint64
}

// releaseMsg synthesizes a key release; only the newest press counts.
type releaseMsg struct {
	key driver.Key
	gen uint64
}

// tickQueue is the driver's Scheduler inside Update: the driver asks for a
// timer synchronously and the model turns each request into a tea.Tick.
type tickQueue struct {
	pending []tea.Cmd
}

var _ driver.Scheduler = (*tickQueue)(nil)

// After implements driver.Scheduler.
func (q *tickQueue) After(d time.Duration, id uint64) {
	q.pending = append(q.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	}))
}

// drain returns the queued timers as one command.
func (q *tickQueue) drain() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	cmds := q.pending
	q.pending = nil
	return tea.Batch(cmds...)
}

// Len returns the number of queued timers.
func (q *tickQueue) Len() int {
	return len(q.pending)
}

func releaseCmd(d time.Duration, k driver.Key, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseMsg{key: k, gen: gen}
	})
}
