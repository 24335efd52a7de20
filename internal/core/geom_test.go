package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 32, 32), NewRect(28, 12, 8, 8), true},
		{"touching edge", NewRect(0, 0, 32, 32), NewRect(32, 0, 32, 32), false},
		{"touching bottom", NewRect(0, 0, 32, 32), NewRect(0, 32, 8, 8), false},
		{"disjoint", NewRect(0, 0, 8, 8), NewRect(64, 64, 8, 8), false},
		{"contained", NewRect(0, 0, 32, 32), NewRect(12, 12, 8, 8), true},
		{"single pixel", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSquareAndEdges(t *testing.T) {
	r := Square(Point{X: 64, Y: 32}, 32)

	if r.Right() != 96 || r.Bottom() != 64 {
		t.Errorf("edges = (%d, %d), expected (96, 64)", r.Right(), r.Bottom())
	}
	cx, cy := r.Center()
	if cx != 80 || cy != 48 {
		t.Errorf("Center() = (%d, %d), expected (80, 48)", cx, cy)
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: -2}.Add(Point{X: -1, Y: 5})
	if p != (Point{X: 2, Y: 3}) {
		t.Errorf("Add() = %+v", p)
	}
	if d := p.Sub(Point{X: 2, Y: 2}); d != (Point{X: 0, Y: 1}) {
		t.Errorf("Sub() = %+v", d)
	}
	if s := p.Scale(32); s != (Point{X: 64, Y: 96}) {
		t.Errorf("Scale() = %+v", s)
	}
}

func TestInputFrameFirst(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionFire)
	f.Set(ActionUp)

	if got := f.First(ActionFire, ActionUp); got != ActionUp {
		t.Errorf("First() = %v, expected Up", got)
	}
	f.Clear()
	if got := f.First(ActionUp); got != ActionNone {
		t.Errorf("First() after Clear = %v, expected None", got)
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Set(Player2, ActionFire)

	if !m.Player2().Has(ActionFire) {
		t.Error("player 2 should have Fire")
	}
	if m.Player1().Has(ActionFire) {
		t.Error("player 1 should not have Fire")
	}
	if !m.Has(ActionFire) {
		t.Error("Has should see any player's action")
	}
	m.Clear()
	if m.Has(ActionFire) {
		t.Error("Clear should drop all actions")
	}
}
