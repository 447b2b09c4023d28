package core

import (
	"strings"
	"testing"
)

func TestNewScreenBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(6, 6)

	s.SetCell(2, 3, '█', ColorCyan)
	c := s.GetCell(2, 3)
	if c.Rune != '█' || c.Color != ColorCyan {
		t.Errorf("GetCell(2, 3) = %+v, expected cyan block", c)
	}

	// Set clears the color.
	s.Set(2, 3, 'x')
	if c := s.GetCell(2, 3); c.Color != ColorDefault {
		t.Errorf("color after Set = %v, expected default", c.Color)
	}

	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(6, 0, 'A', ColorRed)
	s.SetCell(0, 6, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(6, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(4, 3)
	s.Fill('#')
	if s.Row(1) != "####" {
		t.Errorf("Row(1) after Fill = %q", s.Row(1))
	}

	s.SetCell(0, 0, 'Z', ColorRed)
	s.Clear()
	if c := s.GetCell(0, 0); c != blankCell {
		t.Errorf("cell after Clear = %+v, expected blank", c)
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(7, 0, "LINES", ColorYellow)

	if s.Row(0) != "       LIN" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(8, 0).Color != ColorYellow {
		t.Errorf("text color = %v, expected yellow", s.GetCell(8, 0).Color)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "PAUSED")

	if s.Row(0) != "  PAUSED   " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRect(NewRect(1, 1, 2, 2), '░')

	expected := "     \n ░░  \n ░░  \n     "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenDrawBoxColored(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxColored(NewRect(0, 0, 6, 4), ColorGray)

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}, "\n")
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(5, 3).Color != ColorGray {
		t.Errorf("border color = %v, expected gray", s.GetCell(5, 3).Color)
	}

	// Degenerate boxes draw nothing.
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 4))
	if s.Get(0, 0) != ' ' {
		t.Error("DrawBox with width 1 should be a no-op")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawTextColored(0, 0, "SCORE", ColorWhite)
	s.DrawText(0, 3, "gone")

	s.Resize(3, 2)
	if s.Row(0) != "SCO" {
		t.Errorf("Row(0) after shrink = %q", s.Row(0))
	}

	s.Resize(8, 5)
	if !strings.HasPrefix(s.Row(0), "SCO ") {
		t.Errorf("Row(0) after grow = %q", s.Row(0))
	}
	if s.GetCell(1, 0).Color != ColorWhite {
		t.Error("Resize should keep cell colors")
	}
	if strings.TrimSpace(s.Row(3)) != "" {
		t.Errorf("Row(3) = %q, expected blank after shrink and grow", s.Row(3))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Row(-1) != "    " || s.Row(2) != "    " {
		t.Error("out of bounds Row should be spaces")
	}
}
