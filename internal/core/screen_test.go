package core

import (
	"strings"
	"testing"
)

func runeAt(s *Screen, x, y int) rune {
	return s.GetCell(x, y).Rune
}

func rowOf(s *Screen, y int) string {
	rows := strings.Split(s.String(), "\n")
	if y < 0 || y >= len(rows) {
		return ""
	}
	return rows[y]
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if runeAt(s, x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", runeAt(s, x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorDefault)
	if runeAt(s, 5, 5) != 'X' {
		t.Errorf("GetCell(5, 5).Rune = %q, expected 'X'", runeAt(s, 5, 5))
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorDefault)  // Should not panic
	s.SetColored(100, 0, 'A', ColorDefault) // Should not panic
	s.SetColored(0, -1, 'A', ColorDefault)  // Should not panic
	s.SetColored(0, 100, 'A', ColorDefault) // Should not panic

	// Out of bounds get should return space
	if runeAt(s, -1, 0) != ' ' {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
	if runeAt(s, 100, 0) != ' ' {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	// Fill with some characters
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorDefault)
		}
	}

	s.Clear()

	// Should all be spaces now
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if runeAt(s, x, y) != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, runeAt(s, x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorDefault)

	expected := "Hello"
	for i, ch := range expected {
		if runeAt(s, 2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, runeAt(s, 2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawTextColored(18, 0, "Hello", ColorDefault) // Only "He" should fit
	if runeAt(s, 18, 0) != 'H' || runeAt(s, 19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	text := "Hi"
	s.DrawTextCentered(2, text, ColorHUD)

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	x := (20 - 2) / 2
	if runeAt(s, x, 2) != 'H' || runeAt(s, x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
	if s.GetCell(x, 2).Color != ColorHUD {
		t.Errorf("DrawTextCentered color = %v, expected ColorHUD", s.GetCell(x, 2).Color)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	r := NewRect(1, 1, 5, 4)
	s.DrawBox(r, ColorBorder)

	// Check corners
	if runeAt(s, 1, 1) != '┌' {
		t.Errorf("Top-left corner should be '┌', got %q", runeAt(s, 1, 1))
	}
	if runeAt(s, 5, 1) != '┐' {
		t.Errorf("Top-right corner should be '┐', got %q", runeAt(s, 5, 1))
	}
	if runeAt(s, 1, 4) != '└' {
		t.Errorf("Bottom-left corner should be '└', got %q", runeAt(s, 1, 4))
	}
	if runeAt(s, 5, 4) != '┘' {
		t.Errorf("Bottom-right corner should be '┘', got %q", runeAt(s, 5, 4))
	}
	if s.GetCell(1, 1).Color != ColorBorder {
		t.Errorf("Box color = %v, expected ColorBorder", s.GetCell(1, 1).Color)
	}

	// Check horizontal edges
	for x := 2; x < 5; x++ {
		if runeAt(s, x, 1) != '─' {
			t.Errorf("Top edge should be '─' at x=%d, got %q", x, runeAt(s, x, 1))
		}
		if runeAt(s, x, 4) != '─' {
			t.Errorf("Bottom edge should be '─' at x=%d, got %q", x, runeAt(s, x, 4))
		}
	}

	// Check vertical edges
	for y := 2; y < 4; y++ {
		if runeAt(s, 1, y) != '│' {
			t.Errorf("Left edge should be '│' at y=%d, got %q", y, runeAt(s, 1, y))
		}
		if runeAt(s, 5, y) != '│' {
			t.Errorf("Right edge should be '│' at y=%d, got %q", y, runeAt(s, 5, y))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawTextColored(0, 0, "AAAAA", ColorDefault)
	s.DrawTextColored(0, 1, "BBBBB", ColorDefault)
	s.DrawTextColored(0, 2, "CCCCC", ColorDefault)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorDefault)
	s.DrawTextColored(0, 5, "World", ColorDefault)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := rowOf(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = rowOf(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '@', ColorHead)

	cell := s.GetCell(1, 2)
	if cell.Rune != '@' || cell.Color != ColorHead {
		t.Errorf("GetCell(1, 2) = %+v, expected '@' in ColorHead", cell)
	}
	if s.GetCell(9, 9) != blank {
		t.Errorf("Out of bounds GetCell should be blank, got %+v", s.GetCell(9, 9))
	}

	s.Clear()
	if s.GetCell(1, 2) != blank {
		t.Errorf("Clear should reset color too, got %+v", s.GetCell(1, 2))
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Point
		cells [][2]int
	}{
		{"horizontal", Pt(1, 1), Pt(4, 1), [][2]int{{1, 1}, {2, 1}, {3, 1}, {4, 1}}},
		{"vertical reversed", Pt(2, 4), Pt(2, 2), [][2]int{{2, 2}, {2, 3}, {2, 4}}},
		{"diagonal", Pt(0, 0), Pt(3, 3), [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"rounded endpoints", Pt(0.6, 0.4), Pt(2.4, 0.2), [][2]int{{1, 0}, {2, 0}}},
		{"single point", Pt(3, 3), Pt(3.2, 2.9), [][2]int{{3, 3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(6, 6)
			s.DrawLine(tc.a, tc.b, '#', ColorBody)

			want := make(map[[2]int]bool)
			for _, c := range tc.cells {
				want[c] = true
			}
			for y := 0; y < s.Height(); y++ {
				for x := 0; x < s.Width(); x++ {
					got := runeAt(s, x, y) == '#'
					if got != want[[2]int{x, y}] {
						t.Errorf("cell (%d, %d) drawn = %v, expected %v\n%s", x, y, got, !got, s.String())
					}
				}
			}
		})
	}
}

func TestScreenDrawLineClips(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawLine(Pt(-5, 1), Pt(10, 1), '#', ColorBody) // Should not panic

	if rowOf(s, 1) != "###" {
		t.Errorf("Row(1) = %q, expected clipped line", rowOf(s, 1))
	}
}
