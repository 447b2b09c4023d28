package engine

// Snapshot is a self-contained copy of everything a renderer needs.
// Mutating it never affects the engine.
type Snapshot struct {
	Board     Board
	Active    Piece
	HasActive bool
	GhostY    int
	Hold      Kind
	HasHold   bool
	CanHold   bool
	Next      []Kind
	Score     int
	Level     int
	Lines     int
	GameOver  bool
	Paused    bool
	Stats     Stats
}

// Snapshot captures the current state with up to preview upcoming kinds.
func (e *Engine) Snapshot(preview int) Snapshot {
	ghost, _ := e.GhostY()
	return Snapshot{
		Board:     e.board,
		Active:    e.active,
		HasActive: e.hasActive,
		GhostY:    ghost,
		Hold:      e.hold,
		HasHold:   e.hasHold,
		CanHold:   e.CanHold(),
		Next:      e.Next(preview),
		Score:     e.score,
		Level:     e.level,
		Lines:     e.lines,
		GameOver:  e.gameOver,
		Paused:    e.paused,
		Stats:     e.stats,
	}
}
