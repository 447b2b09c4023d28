package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	blockRunes = "██"
	ghostRunes = "░░"
	emptyRunes = " ·"
	holdBoxH   = 6
	previewH   = 3 // Rows per queued piece in the NEXT box
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.eng == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.eng.Snapshot(g.settings.Preview)

	left := (g.screenW - minScreenW) / 2
	top := (g.screenH - minScreenH) / 2
	wellX := left + sideW + 1
	wellY := top + 1

	dst.DrawTextColored(wellX+(wellW-6)/2, top, "TETRIS", core.ColorBrightWhite)

	g.renderWell(dst, snap, wellX, wellY)
	g.renderHold(dst, snap, left, wellY)
	g.renderHUD(dst, snap, left, wellY+holdBoxH+1)
	g.renderNext(dst, snap, wellX+wellW+1, wellY)
	g.renderOverlays(dst, snap, wellX, wellY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minScreenW, minScreenH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// drawCell paints one board cell at well column col and row row.
func drawCell(dst *core.Screen, x0, y0, col, row int, runes string, c core.Color) {
	dst.DrawTextColored(x0+col*cellW, y0+row, runes, c)
}

func (g *Game) renderWell(dst *core.Screen, snap engine.Snapshot, x, y int) {
	dst.DrawBoxColored(core.NewRect(x, y, wellW, wellH), core.ColorGray)
	innerX, innerY := x+1, y+1

	for row := range engine.Rows {
		for col := range engine.Cols {
			if k, ok := engine.KindFromCell(snap.Board[row][col]); ok {
				drawCell(dst, innerX, innerY, col, row, blockRunes, k.Color())
			} else {
				drawCell(dst, innerX, innerY, col, row, emptyRunes, core.ColorDarkGray)
			}
		}
	}

	if !snap.HasActive {
		return
	}
	color := snap.Active.Kind.Color()

	if g.settings.Ghost && snap.GhostY > snap.Active.Y {
		ghost := snap.Active
		ghost.Y = snap.GhostY
		ghost.Cells(func(col, row int) {
			if row >= 0 {
				drawCell(dst, innerX, innerY, col, row, ghostRunes, color)
			}
		})
	}

	snap.Active.Cells(func(col, row int) {
		if row >= 0 {
			drawCell(dst, innerX, innerY, col, row, blockRunes, color)
		}
	})
}

// drawMini draws the top two rows of a kind's spawn shape.
func drawMini(dst *core.Screen, x, y int, k engine.Kind, c core.Color) {
	m := k.Shape()
	for row := range 2 {
		for col := range engine.MatrixSize {
			if m[row][col] != 0 {
				dst.DrawTextColored(x+col*cellW, y+row, blockRunes, c)
			}
		}
	}
}

func (g *Game) renderHold(dst *core.Screen, snap engine.Snapshot, x, y int) {
	dst.DrawBoxColored(core.NewRect(x, y, sideW, holdBoxH), core.ColorGray)
	dst.DrawText(x+2, y, " HOLD ")
	if !snap.HasHold {
		return
	}
	c := snap.Hold.Color()
	if !snap.CanHold {
		c = core.ColorDarkGray
	}
	drawMini(dst, x+3, y+2, snap.Hold, c)
}

func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot, x, y int) {
	rows := []struct {
		label string
		value int
	}{
		{"SCORE", snap.Score},
		{"LEVEL", snap.Level},
		{"LINES", snap.Lines},
		{"PIECES", snap.Stats.PiecesLocked},
		{"TETRIS", snap.Stats.Tetrises},
	}
	for i, r := range rows {
		dst.DrawTextColored(x+1, y+i*2, r.label, core.ColorGray)
		dst.DrawTextColored(x+1, y+i*2+1, fmt.Sprintf("%d", r.value), core.ColorBrightWhite)
	}
}

func (g *Game) renderNext(dst *core.Screen, snap engine.Snapshot, x, y int) {
	h := min(len(snap.Next)*previewH+1, wellH)
	dst.DrawBoxColored(core.NewRect(x, y, sideW, h), core.ColorGray)
	dst.DrawText(x+2, y, " NEXT ")
	for i, k := range snap.Next {
		py := y + 1 + i*previewH
		if py+1 >= y+h-1 {
			break
		}
		drawMini(dst, x+3, py, k, k.Color())
	}
}

func (g *Game) renderOverlays(dst *core.Screen, snap engine.Snapshot, x, y int) {
	var lines []string
	switch {
	case snap.GameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", snap.Score), "R to restart"}
	case snap.Paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	cy := y + wellH/2 - len(lines)/2
	for i, line := range lines {
		w := len([]rune(line))
		lx := x + (wellW-w)/2
		dst.DrawRect(core.NewRect(lx-1, cy+i, w+2, 1), ' ')
		dst.DrawTextColored(lx, cy+i, line, core.ColorBrightYellow)
	}
}
