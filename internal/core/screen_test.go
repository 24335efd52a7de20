package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(26, 15)

	if s.Width() != 26 || s.Height() != 15 {
		t.Fatalf("size = %dx%d, expected 26x15", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(3, 2, '#', ColorGray)

	cell := s.GetCell(3, 2)
	if cell.Rune != '#' || cell.Color != ColorGray {
		t.Errorf("GetCell = %+v, expected '#' gray", cell)
	}

	// Out of bounds is ignored and reads as blank
	s.SetColored(-1, 0, 'x', ColorRed)
	s.SetColored(10, 0, 'x', ColorRed)
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, expected space", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawText(2, 1, "Score:10")

	if row := s.Row(1); row != "  Score:10  " {
		t.Errorf("Row(1) = %q", row)
	}

	// Clipped at the right edge
	s.DrawText(9, 0, "P1:30")
	if row := s.Row(0); row != "         P1:" {
		t.Errorf("Row(0) = %q", row)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "GO")

	if row := s.Row(0); row != "    GO    " {
		t.Errorf("Row(0) = %q", row)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))

	expected := []string{"┌───┐", "│   │", "└───┘"}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenResizeAndString(t *testing.T) {
	s := NewScreen(3, 2)
	s.FillRect(NewRect(0, 0, 3, 2), '.')
	if got := s.String(); got != "...\n..." {
		t.Errorf("String() = %q", got)
	}

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("resize failed: %dx%d", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Error("resized screen should be cleared")
	}
}
