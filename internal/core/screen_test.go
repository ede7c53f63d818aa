package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '@', ColorRed)
	c := s.GetCell(3, 4)
	if c.Rune != '@' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected red @", c)
	}
	if s.Get(3, 4) != '@' {
		t.Errorf("Get(3, 4) = %q, expected '@'", s.Get(3, 4))
	}

	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(100, 0, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(100, 0) != blank {
		t.Error("out of bounds reads should return a blank cell")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.Fill('#', ColorGreen)
	s.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Errorf("after Clear cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextColored(2, 1, "COINS", ColorYellow)

	if got := strings.TrimSpace(s.Row(1)); got != "COINS" {
		t.Errorf("Row(1) = %q, expected COINS", got)
	}
	if s.GetCell(2, 1).Color != ColorYellow {
		t.Errorf("text color = %v, expected yellow", s.GetCell(2, 1).Color)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 2), '=', ColorBrown)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 4
			if got := s.Get(x, y) == '='; got != inside {
				t.Errorf("cell (%d, %d) filled = %v, expected %v", x, y, got, inside)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X')
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should discard previous content")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cde")

	if got := s.String(); got != "ab \ncde" {
		t.Errorf("String() = %q", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Hold(ActionRight)

	if !f.Has(ActionJump) || f.Has(ActionRight) {
		t.Error("Has should only report pressed actions")
	}
	if !f.IsHeld(ActionRight) || f.IsHeld(ActionJump) {
		t.Error("IsHeld should only report held actions")
	}

	c := f.Clone()
	f.Clear()
	if f.Has(ActionJump) || f.IsHeld(ActionRight) {
		t.Error("Clear should drop all actions")
	}
	if !c.Has(ActionJump) || !c.IsHeld(ActionRight) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionJump) || zero.IsHeld(ActionJump) {
		t.Error("zero frame should report nothing")
	}
}
