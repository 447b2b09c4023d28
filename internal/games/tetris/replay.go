package tetris

import (
	"slices"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// InputEvent is one applied action and the tick it was applied on.
type InputEvent struct {
	Tick   uint64
	Action core.Action
}

// Recorder collects applied actions in order.
type Recorder struct {
	events []InputEvent
}

// Record appends an event.
func (r *Recorder) Record(tick uint64, a core.Action) {
	r.events = append(r.events, InputEvent{Tick: tick, Action: a})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []InputEvent {
	return slices.Clone(r.events)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Reset drops all events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}

// Playback feeds recorded events back as input frames, one tick at a time.
type Playback struct {
	events []InputEvent
	pos    int
}

// NewPlayback creates a playback over events. Events are ordered by tick;
// events sharing a tick keep their recorded order.
func NewPlayback(events []InputEvent) *Playback {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b InputEvent) int {
		switch {
		case a.Tick < b.Tick:
			return -1
		case a.Tick > b.Tick:
			return 1
		default:
			return 0
		}
	})
	return &Playback{events: sorted}
}

// Frame returns the actions recorded for tick. Ticks must be requested in
// increasing order; events for skipped ticks are dropped.
func (p *Playback) Frame(tick uint64) core.InputFrame {
	in := core.NewInputFrame()
	for p.pos < len(p.events) && p.events[p.pos].Tick < tick {
		p.pos++
	}
	for p.pos < len(p.events) && p.events[p.pos].Tick == tick {
		in.Set(p.events[p.pos].Action)
		p.pos++
	}
	return in
}

// Done reports whether every event has been played.
func (p *Playback) Done() bool {
	return p.pos >= len(p.events)
}

// Remaining returns the number of events not yet played.
func (p *Playback) Remaining() int {
	return len(p.events) - p.pos
}

// Simulate replays events against a fresh game without a terminal and
// returns the game after ticks steps. It is used to check that a stored
// replay still reproduces its recorded result.
func Simulate(s Settings, seed int64, tickRate int, events []InputEvent, ticks uint64) *Game {
	g := NewWithSettings(s)
	g.SetPlayback(true)
	g.Reset(core.RuntimeConfig{
		ScreenW:  minScreenW,
		ScreenH:  minScreenH,
		TickRate: tickRate,
		Seed:     seed,
	})
	p := NewPlayback(events)
	for g.Tick() < ticks {
		g.Step(p.Frame(g.Tick()))
	}
	return g
}
