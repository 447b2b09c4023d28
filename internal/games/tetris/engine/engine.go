package engine

import "math/rand"

// basePoints maps the number of rows cleared by one lock to its base score.
var basePoints = [5]int{0, 40, 100, 300, 1200}

// LinesPerLevel is the number of cleared rows needed to gain a level.
const LinesPerLevel = 10

// Options configures a new Engine.
type Options struct {
	Seed    int64 // Randomizer seed; equal seeds give equal piece streams
	Preview int   // Minimum number of upcoming kinds kept queued
}

// Stats counts events since the last restart.
type Stats struct {
	PiecesLocked int
	Spawned      [KindCount]int
	Tetrises     int
	LastClear    int // Rows cleared by the most recent lock
	HardDrops    int
}

// Engine holds the complete state of one game session.
// It is not safe for concurrent use.
type Engine struct {
	board Board
	bag   *Bag

	active    Piece
	hasActive bool

	hold     Kind
	hasHold  bool
	holdUsed bool

	score    int
	level    int
	lines    int
	gameOver bool
	paused   bool

	stats Stats
}

// New creates an engine and spawns the first piece.
func New(opts Options) *Engine {
	rng := rand.New(rand.NewSource(opts.Seed))
	e := &Engine{
		bag: NewBag(rng, opts.Preview),
	}
	e.Restart()
	return e
}

// Restart clears the session and spawns a fresh piece. The randomizer
// continues from its current position, so restarts stay reproducible.
func (e *Engine) Restart() bool {
	e.board.Reset()
	e.bag.Reset()
	e.active = Piece{}
	e.hasActive = false
	e.hold = 0
	e.hasHold = false
	e.holdUsed = false
	e.score = 0
	e.level = 1
	e.lines = 0
	e.gameOver = false
	e.paused = false
	e.stats = Stats{}
	e.spawn()
	return true
}

// canAct reports whether piece commands are currently accepted.
func (e *Engine) canAct() bool {
	return e.hasActive && !e.paused && !e.gameOver
}

func (e *Engine) spawn() {
	k := e.bag.Next()
	e.stats.Spawned[k]++
	e.place(NewPiece(k))
}

// place makes p the active piece, or ends the game if it does not fit.
func (e *Engine) place(p Piece) {
	if !e.board.Fits(p) {
		e.active = Piece{}
		e.hasActive = false
		e.gameOver = true
		e.paused = true
		return
	}
	e.active = p
	e.hasActive = true
}

func (e *Engine) lock() {
	e.board.Lock(e.active)
	e.hasActive = false
	e.stats.PiecesLocked++

	n := e.board.ClearRows()
	e.stats.LastClear = n
	if n > 0 {
		e.score += basePoints[min(n, 4)] * e.level
		e.lines += n
		e.level = max(e.level, e.lines/LinesPerLevel+1)
		if n == 4 {
			e.stats.Tetrises++
		}
	}

	e.holdUsed = false
	e.spawn()
}

func (e *Engine) shift(dx, dy int) bool {
	if !e.canAct() {
		return false
	}
	next := e.active.Moved(dx, dy)
	if !e.board.Fits(next) {
		return false
	}
	e.active = next
	return true
}

// MoveLeft shifts the active piece one column left if legal.
func (e *Engine) MoveLeft() bool {
	return e.shift(-1, 0)
}

// MoveRight shifts the active piece one column right if legal.
func (e *Engine) MoveRight() bool {
	return e.shift(1, 0)
}

// SoftDrop moves the active piece one row down if legal. It never locks.
func (e *Engine) SoftDrop() bool {
	return e.shift(0, 1)
}

// Rotate turns the active piece clockwise, trying each kick offset in order.
// When no offset fits the piece is left unchanged.
func (e *Engine) Rotate() bool {
	if !e.canAct() {
		return false
	}
	turned := e.active.Rotated()
	for _, dx := range kickOffsets {
		next := turned.Moved(dx, 0)
		if e.board.Fits(next) {
			e.active = next
			return true
		}
	}
	return false
}

// HardDrop drops the active piece as far as it goes and locks it.
// It returns the number of rows the piece fell.
func (e *Engine) HardDrop() (int, bool) {
	if !e.canAct() {
		return 0, false
	}
	rows := 0
	for e.board.Fits(e.active.Moved(0, 1)) {
		e.active.Y++
		rows++
	}
	e.stats.HardDrops++
	e.lock()
	return rows, true
}

// Hold stores the active kind in the hold slot. With an empty slot the next
// kind is spawned; otherwise the held kind comes back at the spawn position
// without consuming the queue. Allowed once per locked piece.
func (e *Engine) Hold() bool {
	if !e.canAct() || e.holdUsed {
		return false
	}
	current := e.active.Kind
	e.holdUsed = true
	if !e.hasHold {
		e.hold = current
		e.hasHold = true
		e.hasActive = false
		e.spawn()
		return true
	}
	swapped := e.hold
	e.hold = current
	e.place(NewPiece(swapped))
	return true
}

// TogglePause flips the paused flag. It does nothing after game over.
func (e *Engine) TogglePause() bool {
	if e.gameOver {
		return false
	}
	e.paused = !e.paused
	return true
}

// Tick applies one step of gravity: the active piece falls one row, or locks
// when it cannot.
func (e *Engine) Tick() bool {
	if !e.canAct() {
		return false
	}
	if e.board.Fits(e.active.Moved(0, 1)) {
		e.active.Y++
		return true
	}
	e.lock()
	return true
}

// Board returns a copy of the locked cells.
func (e *Engine) Board() Board {
	return e.board
}

// Active returns the falling piece, if any.
func (e *Engine) Active() (Piece, bool) {
	return e.active, e.hasActive
}

// GhostY returns the row where the active piece would land.
func (e *Engine) GhostY() (int, bool) {
	if !e.hasActive {
		return 0, false
	}
	p := e.active
	for e.board.Fits(p.Moved(0, 1)) {
		p.Y++
	}
	return p.Y, true
}

// HeldKind returns the kind in the hold slot, if any.
func (e *Engine) HeldKind() (Kind, bool) {
	return e.hold, e.hasHold
}

// CanHold reports whether Hold would currently be accepted.
func (e *Engine) CanHold() bool {
	return e.canAct() && !e.holdUsed
}

// Next returns up to n upcoming kinds without consuming them.
func (e *Engine) Next(n int) []Kind {
	return e.bag.Peek(n)
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool { return e.gameOver }

// Paused reports whether the session is paused. Game over implies paused.
func (e *Engine) Paused() bool { return e.paused }

// Stats returns the event counters.
func (e *Engine) Stats() Stats { return e.stats }
