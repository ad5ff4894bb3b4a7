package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, want 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, want 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen cell (%d, %d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, want 'X'", s.Get(5, 5))
	}

	// Out of bounds writes are ignored.
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '●', ColorRed)
	s.DrawTextColored(3, 2, "ok", ColorGreen)

	if got := s.GetCell(1, 1); got != (Cell{Rune: '●', Color: ColorRed}) {
		t.Errorf("GetCell(1, 1) = %+v, want red ball", got)
	}
	if got := s.GetCell(4, 2); got.Rune != 'k' || got.Color != ColorGreen {
		t.Errorf("GetCell(4, 2) = %+v, want green 'k'", got)
	}

	s.Clear()
	if got := s.GetCell(1, 1); got.Color != ColorDefault || got.Rune != ' ' {
		t.Errorf("after Clear GetCell(1, 1) = %+v, want blank", got)
	}
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#')

	for y := range 5 {
		for x := range 5 {
			if s.Get(x, y) != '#' {
				t.Errorf("after Fill, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: got %q at (%d, 1), want %q", s.Get(2+i, 1), 2+i, ch)
		}
	}

	// Only "He" fits.
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "●·x")

	if s.Get(0, 0) != '●' || s.Get(1, 0) != '·' || s.Get(2, 0) != 'x' {
		t.Errorf("Row(0) = %q, want runes laid out one per cell", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorYellow)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered: row = %q", s.Row(2))
	}
	if s.GetCell(x, 2).Color != ColorYellow {
		t.Errorf("DrawTextCentered color = %v, want yellow", s.GetCell(x, 2).Color)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, want %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Errorf("box color = %v, want gray", s.GetCell(1, 1).Color)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorCyan)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize got %dx%d, want 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content lost, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content lost after enlarging, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("resize should keep cell colors")
	}
	if s.Get(14, 7) != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) = %q, want prefix Test", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length = %d, want 10", len(row))
	}
	if got := s.Row(-1); got != "          " {
		t.Errorf("out of bounds row = %q, want spaces", got)
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorWhite, "7"},
		{ColorBrightBlack, "8"},
		{ColorBrightWhite, "15"},
		{ColorGray, "245"},
		{Color(200), ""},
	}
	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
