package engine

import "strings"

// Playfield dimensions.
const (
	Rows = 20
	Cols = 10
)

// Board is the locked-cell grid, indexed [row][col] with row 0 at the top.
// A cell holds 0 when empty, otherwise Kind.Cell() of the piece that filled it.
type Board [Rows][Cols]uint8

// CanPosition reports whether matrix m placed with its top-left corner at
// column x, row y is legal. Cells above the top edge count as empty.
func (b *Board) CanPosition(m Matrix, x, y int) bool {
	for r := range MatrixSize {
		for c := range MatrixSize {
			if m[r][c] == 0 {
				continue
			}
			col, row := x+c, y+r
			if col < 0 || col >= Cols || row >= Rows {
				return false
			}
			if row >= 0 && b[row][col] != 0 {
				return false
			}
		}
	}
	return true
}

// Fits reports whether the piece can occupy its current position.
func (b *Board) Fits(p Piece) bool {
	return b.CanPosition(p.Matrix, p.X, p.Y)
}

// Lock writes the piece into the grid. Cells outside the grid are dropped.
func (b *Board) Lock(p Piece) {
	v := p.Kind.Cell()
	p.Cells(func(col, row int) {
		if row >= 0 && row < Rows && col >= 0 && col < Cols {
			b[row][col] = v
		}
	})
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for _, v := range b[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := range Rows {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes every full row at once and shifts the remaining rows
// down, keeping their order. It returns the number of rows removed.
func (b *Board) ClearRows() int {
	dst := Rows - 1
	for src := Rows - 1; src >= 0; src-- {
		if b.RowFull(src) {
			continue
		}
		if dst != src {
			b[dst] = b[src]
		}
		dst--
	}
	cleared := dst + 1
	for y := 0; y <= dst; y++ {
		b[y] = [Cols]uint8{}
	}
	return cleared
}

// Reset empties the grid.
func (b *Board) Reset() {
	*b = Board{}
}

// Rows returns a copy of the grid as slices.
func (b *Board) Rows() [][]uint8 {
	out := make([][]uint8, Rows)
	for y := range Rows {
		out[y] = append([]uint8(nil), b[y][:]...)
	}
	return out
}

// String renders the grid one row per line, '.' for empty cells and the
// kind letter otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range b[y] {
			if k, ok := KindFromCell(v); ok {
				sb.WriteString(k.String())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
