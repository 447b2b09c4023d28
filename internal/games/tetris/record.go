package tetris

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ErrWrongGame is returned when a stored replay belongs to another game.
var ErrWrongGame = errors.New("tetris: replay was not recorded by tetris")

// Record converts the current session into a storable replay.
func (g *Game) Record() storage.Replay {
	s := g.State()
	events := g.recorder.Events()
	out := make([]storage.Event, len(events))
	for i, e := range events {
		out[i] = storage.Event{Tick: int64(e.Tick), Action: e.Action.String()}
	}
	return storage.Replay{
		GameID:        GameID,
		Seed:          g.seed,
		TickRate:      g.tickRate,
		GravityBaseMS: int(g.settings.Gravity.Base / time.Millisecond),
		GravityStepMS: int(g.settings.Gravity.Step / time.Millisecond),
		GravityMinMS:  int(g.settings.Gravity.Min / time.Millisecond),
		Preview:       g.settings.Preview,
		Ghost:         g.settings.Ghost,
		Preset:        string(g.settings.Preset),
		Ticks:         int64(g.tick),
		Score:         s.Score,
		Level:         s.Level,
		Lines:         s.Lines,
		Events:        out,
	}
}

// Loaded is a stored replay decoded for playback.
type Loaded struct {
	Settings Settings
	Seed     int64
	TickRate int
	Ticks    uint64
	Events   []InputEvent
}

// LoadRecord decodes a stored replay. Unknown action names are an error
// since skipping one would desync the rest of the replay.
func LoadRecord(r *storage.Replay) (Loaded, error) {
	if r.GameID != GameID {
		return Loaded{}, fmt.Errorf("%w: %q", ErrWrongGame, r.GameID)
	}

	events := make([]InputEvent, len(r.Events))
	for i, e := range r.Events {
		a, ok := core.ParseAction(e.Action)
		if !ok {
			return Loaded{}, fmt.Errorf("tetris: replay event %d: unknown action %q", i, e.Action)
		}
		if e.Tick < 0 {
			return Loaded{}, fmt.Errorf("tetris: replay event %d: negative tick %d", i, e.Tick)
		}
		events[i] = InputEvent{Tick: uint64(e.Tick), Action: a}
	}

	preset := config.DifficultyPreset(r.Preset)
	return Loaded{
		Settings: Settings{
			Gravity: engine.Gravity{
				Base: time.Duration(r.GravityBaseMS) * time.Millisecond,
				Step: time.Duration(r.GravityStepMS) * time.Millisecond,
				Min:  time.Duration(r.GravityMinMS) * time.Millisecond,
			},
			Preview: max(r.Preview, 1),
			Ghost:   r.Ghost,
			Preset:  preset,
		},
		Seed:     r.Seed,
		TickRate: r.TickRate,
		Ticks:    uint64(max(r.Ticks, 0)),
		Events:   events,
	}, nil
}

// Verify replays l headlessly and reports whether it reaches the recorded
// score, level and lines.
func (l Loaded) Verify(want core.GameState) (core.GameState, bool) {
	got := Simulate(l.Settings, l.Seed, l.TickRate, l.Events, l.Ticks).State()
	return got, got.Score == want.Score && got.Level == want.Level && got.Lines == want.Lines
}
