package engine

import "time"

// Gravity describes how fast pieces fall at each level.
type Gravity struct {
	Base time.Duration // Interval at level 1
	Step time.Duration // Reduction per level
	Min  time.Duration // Lower bound
}

// DefaultGravity is 800ms at level 1, 50ms faster per level, never below 100ms.
var DefaultGravity = Gravity{
	Base: 800 * time.Millisecond,
	Step: 50 * time.Millisecond,
	Min:  100 * time.Millisecond,
}

// Interval returns the time between gravity ticks at the given level.
// The result is always positive.
func (g Gravity) Interval(level int) time.Duration {
	level = max(level, 1)
	d := g.Base - time.Duration(level-1)*g.Step
	floor := max(g.Min, time.Millisecond)
	return max(d, floor)
}

// Driver turns elapsed wall time into gravity ticks using an accumulator.
// Several ticks may run in one frame when the frame was long.
type Driver struct {
	engine  *Engine
	gravity Gravity

	acc     time.Duration
	last    time.Time
	started bool
}

// NewDriver wraps e with the given gravity curve.
func NewDriver(e *Engine, g Gravity) *Driver {
	return &Driver{engine: e, gravity: g}
}

// Engine returns the driven engine.
func (d *Driver) Engine() *Engine {
	return d.engine
}

// Gravity returns the gravity curve.
func (d *Driver) Gravity() Gravity {
	return d.gravity
}

// Advance adds elapsed time and runs every tick that became due. Time is
// discarded while paused or after game over. The interval is taken from the
// level at the start of the frame. It returns the number of ticks run.
func (d *Driver) Advance(elapsed time.Duration) int {
	e := d.engine
	if e.Paused() || e.GameOver() {
		d.acc = 0
		return 0
	}
	if elapsed > 0 {
		d.acc += elapsed
	}

	interval := d.gravity.Interval(e.Level())
	ticks := 0
	for d.acc >= interval {
		e.Tick()
		d.acc -= interval
		ticks++
		if e.GameOver() {
			d.acc = 0
			break
		}
	}
	return ticks
}

// Frame advances by the time since the previous frame. The first frame
// only records its instant.
func (d *Driver) Frame(now time.Time) int {
	if !d.started {
		d.started = true
		d.last = now
		return 0
	}
	elapsed := now.Sub(d.last)
	d.last = now
	return d.Advance(elapsed)
}

// TogglePause pauses or resumes the engine. On resume the frame baseline
// moves to now so the paused time does not turn into a burst of ticks.
func (d *Driver) TogglePause(now time.Time) bool {
	if !d.engine.TogglePause() {
		return false
	}
	if !d.engine.Paused() {
		d.rebase(now)
	}
	return true
}

// Restart restarts the engine and resets the clock.
func (d *Driver) Restart(now time.Time) {
	d.engine.Restart()
	d.rebase(now)
}

func (d *Driver) rebase(now time.Time) {
	d.acc = 0
	d.last = now
	d.started = true
}
