package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Seed   int64
	State  GameStateType
	Events int
	Engine engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{State: StatePlaying}
	}

	state := StatePlaying
	switch {
	case g.eng.GameOver():
		state = StateGameOver
	case g.tooSmall && g.eng.Paused():
		state = StatePausedSmall
	case g.eng.Paused():
		state = StatePaused
	}

	return Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		State:  state,
		Events: g.recorder.Len(),
		Engine: g.eng.Snapshot(g.settings.Preview),
	}
}
