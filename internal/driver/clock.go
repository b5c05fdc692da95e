package driver

import "time"

// Scheduler is the host timer primitive. After must arrange for the host
// loop to call FrameClock.Fire(id) once, no sooner than d from now, on the
// same goroutine that delivers key events. It must not block.
type Scheduler interface {
	After(d time.Duration, id uint64)
}

// FrameClock arranges single delayed callbacks at a fixed rate.
// It never re-arms itself; a callback that wants another tick schedules it.
// At most one callback is pending at a time.
type FrameClock struct {
	sched    Scheduler
	interval time.Duration
	lastID   uint64
	pending  *Handle
}

// Handle identifies one scheduled callback.
type Handle struct {
	clock *FrameClock
	id    uint64
	fn    func()
}

// NewFrameClock creates a clock ticking rateHz times per second.
// Non-positive rates are treated as 1 Hz.
func NewFrameClock(s Scheduler, rateHz int) *FrameClock {
	if rateHz <= 0 {
		rateHz = 1
	}
	return &FrameClock{
		sched:    s,
		interval: time.Second / time.Duration(rateHz),
	}
}

// Interval returns the delay between a Schedule call and its callback.
func (c *FrameClock) Interval() time.Duration {
	return c.interval
}

// Schedule arranges for fn to run once after one interval. A callback that
// is still pending is cancelled first.
func (c *FrameClock) Schedule(fn func()) *Handle {
	c.Stop()
	c.lastID++
	h := &Handle{clock: c, id: c.lastID, fn: fn}
	c.pending = h
	c.sched.After(c.interval, h.id)
	return h
}

// Fire runs the callback scheduled under id and reports whether it ran.
// Cancelled, superseded and already fired ids are ignored.
func (c *FrameClock) Fire(id uint64) bool {
	h := c.pending
	if h == nil || h.id != id {
		return false
	}
	c.pending = nil
	h.fn()
	return true
}

// Pending reports whether a callback is waiting to fire.
func (c *FrameClock) Pending() bool {
	return c.pending != nil
}

// Stop cancels the pending callback, if any.
func (c *FrameClock) Stop() {
	c.pending = nil
}

// ID returns the id passed to the Scheduler for this callback.
func (h *Handle) ID() uint64 {
	return h.id
}

// Active reports whether the callback is still waiting to fire.
func (h *Handle) Active() bool {
	return h != nil && h.clock.pending == h
}

// Cancel prevents the callback from running. Cancelling a fired or
// superseded handle does nothing.
func (h *Handle) Cancel() {
	if h.Active() {
		h.clock.pending = nil
	}
}
