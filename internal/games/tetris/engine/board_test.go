package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseBoard builds a board from rows of '.' and kind letters, aligned to
// the bottom. Missing top rows are empty.
func parseBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	require.LessOrEqual(t, len(rows), Rows)
	var b Board
	offset := Rows - len(rows)
	for y, row := range rows {
		require.Len(t, row, Cols, "row %d", y)
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			k := Kind(strings.IndexRune("IOTSZJL", ch))
			require.True(t, k.Valid(), "bad cell %q", ch)
			b[offset+y][x] = k.Cell()
		}
	}
	return b
}

func TestCanPositionBounds(t *testing.T) {
	vertical := Rotate(KindI.Shape())

	tests := []struct {
		name     string
		m        Matrix
		x, y     int
		expected bool
	}{
		{"spawn", KindT.Shape(), SpawnX, 0, true},
		{"left wall", KindO.Shape(), -1, 5, false},
		{"touching left wall", KindO.Shape(), 0, 5, true},
		{"horizontal I at right edge", KindI.Shape(), 6, 5, true},
		{"horizontal I past right edge", KindI.Shape(), 7, 5, false},
		{"vertical I empty columns outside", vertical, -2, 5, true},
		{"vertical I past right edge", vertical, 8, 5, false},
		{"above top is empty", KindT.Shape(), 3, -2, true},
		{"partly above top", KindI.Shape(), 3, -1, true},
		{"floor", KindO.Shape(), 3, Rows - 2, true},
		{"below floor", KindO.Shape(), 3, Rows - 1, false},
	}

	var b Board
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, b.CanPosition(tc.m, tc.x, tc.y))
		})
	}
}

func TestCanPositionLockedCells(t *testing.T) {
	b := parseBoard(t, "....Z.....")

	assert.False(t, b.CanPosition(KindO.Shape(), 3, Rows-2), "overlaps locked cell")
	assert.True(t, b.CanPosition(KindO.Shape(), 5, Rows-2))
	// Empty matrix cells may overlap locked cells.
	assert.True(t, b.CanPosition(KindT.Shape(), 3, Rows-3))
}

func TestLockIgnoresOutsideCells(t *testing.T) {
	var b Board
	b.Lock(Piece{Kind: KindI, Matrix: Rotate(KindI.Shape()), X: 0, Y: -2})

	assert.Equal(t, KindI.Cell(), b[0][2])
	assert.Equal(t, KindI.Cell(), b[1][2])
	assert.Zero(t, b[2][2])
}

func TestClearRowsSimultaneous(t *testing.T) {
	b := parseBoard(t,
		"T.........",
		"IIIIIIIIII",
		"..S.......",
		"LLLLLLLLLL",
		"JJJJJJJJJJ",
		"O........O",
	)
	require.Equal(t, []int{Rows - 5, Rows - 3, Rows - 2}, b.FullRows())

	n := b.ClearRows()
	assert.Equal(t, 3, n)

	want := parseBoard(t,
		"T.........",
		"..S.......",
		"O........O",
	)
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("board after clear mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, b.FullRows())
	assert.Zero(t, b.ClearRows())
}

func TestClearRowsKeepsCellRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var b Board
	for y := range Rows {
		for x := range Cols {
			if rng.Intn(4) > 0 {
				b[y][x] = uint8(rng.Intn(KindCount) + 1)
			}
		}
	}
	b.ClearRows()
	for y := range Rows {
		for x := range Cols {
			assert.LessOrEqual(t, b[y][x], uint8(KindCount))
		}
	}
}

func TestBoardString(t *testing.T) {
	b := parseBoard(t, "I........L")
	lines := strings.Split(b.String(), "\n")
	require.Len(t, lines, Rows)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "I........L", lines[Rows-1])

	rows := b.Rows()
	rows[Rows-1][0] = 0
	assert.Equal(t, KindI.Cell(), b[Rows-1][0], "Rows must return a copy")
}

func TestBagPermutationWindows(t *testing.T) {
	for _, seed := range []int64{1, 42, 2024, -9} {
		bag := NewBag(rand.New(rand.NewSource(seed)), 3)
		for w := range 100 {
			seen := make(map[Kind]bool, KindCount)
			for range KindCount {
				seen[bag.Next()] = true
			}
			require.Len(t, seen, KindCount, "seed %d window %d", seed, w)
			require.GreaterOrEqual(t, bag.Len(), 3)
		}
	}
}

func TestBagDeterministic(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(99)), 5)
	b := NewBag(rand.New(rand.NewSource(99)), 5)
	for i := range 50 {
		require.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestBagPeek(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(3)), 0)
	assert.Empty(t, bag.Peek(3), "Peek never refills")

	first := bag.Next()
	peeked := bag.Peek(3)
	require.Len(t, peeked, 3)
	assert.NotContains(t, peeked, first)

	peeked[0] = KindO
	assert.Equal(t, bag.Peek(1)[0], bag.Next(), "Peek must not consume or alias")

	bag.Reset()
	assert.Zero(t, bag.Len())
}
