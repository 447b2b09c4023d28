package engine

// SpawnX is the column where new pieces appear.
const SpawnX = (Cols - MatrixSize) / 2

// kickOffsets are the horizontal shifts tried, in order, after a rotation.
// There are no vertical kicks.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// Piece is a tetromino with its current orientation and position.
// X and Y locate the matrix's top-left corner on the board.
type Piece struct {
	Kind   Kind
	Matrix Matrix
	X, Y   int
}

// NewPiece creates a piece in spawn orientation at the spawn position.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, Matrix: k.Shape(), X: SpawnX, Y: 0}
}

// Moved returns a copy translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy rotated clockwise in place, without kicks.
func (p Piece) Rotated() Piece {
	p.Matrix = Rotate(p.Matrix)
	return p
}

// Cells calls fn with the board coordinates of every occupied cell.
func (p Piece) Cells(fn func(col, row int)) {
	for r := range MatrixSize {
		for c := range MatrixSize {
			if p.Matrix[r][c] != 0 {
				fn(p.X+c, p.Y+r)
			}
		}
	}
}
