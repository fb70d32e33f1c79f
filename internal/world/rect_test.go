package world

import (
	"math/rand"
	"testing"
)

func TestNewRect(t *testing.T) {
	r := NewRect(3, 4, 5, 6)
	if r.X1 != 3 || r.Y1 != 4 || r.X2 != 8 || r.Y2 != 10 {
		t.Fatalf("NewRect(3,4,5,6) = %v, want x1=3 y1=4 x2=8 y2=10", r)
	}
	if r.Width() != 5 || r.Height() != 6 {
		t.Errorf("Width/Height = %d/%d, want 5/6", r.Width(), r.Height())
	}
}

func TestRectCenterTruncates(t *testing.T) {
	cx, cy := NewRect(1, 2, 4, 5).Center()
	// (1+5)/2 = 3, (2+7)/2 = 4.5 -> 4
	if cx != 3 || cy != 4 {
		t.Errorf("Center = (%d,%d), want (3,4)", cx, cy)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 2, 3, 3)
	if !r.Contains(2, 2) || !r.Contains(4, 4) {
		t.Error("corners inside the rect should be contained")
	}
	if r.Contains(5, 2) || r.Contains(2, 5) {
		t.Error("x2/y2 are exclusive and should not be contained")
	}
}

func TestRectOverlapsTouchingEdges(t *testing.T) {
	a := NewRect(0, 0, 4, 4)

	// b starts exactly on a's exclusive edge: shares a boundary line.
	b := NewRect(4, 0, 4, 4)
	if !a.OverlapsWith(b) {
		t.Error("rects sharing an edge should overlap")
	}

	// One cell of separation.
	c := NewRect(5, 0, 4, 4)
	if a.OverlapsWith(c) {
		t.Error("rects separated by a cell should not overlap")
	}

	d := NewRect(0, 5, 4, 4)
	if a.OverlapsWith(d) {
		t.Error("rects separated vertically should not overlap")
	}

	inner := NewRect(1, 1, 1, 1)
	if !a.OverlapsWith(inner) {
		t.Error("contained rect should overlap")
	}
}

func TestRectOverlapSymmetricAndReflexive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rects := make([]Rect, 50)
	for i := range rects {
		rects[i] = NewRect(rng.Intn(30), rng.Intn(30), rng.Intn(10), rng.Intn(10))
	}

	for _, a := range rects {
		if !a.OverlapsWith(a) {
			t.Errorf("%v should overlap itself", a)
		}
		for _, b := range rects {
			if a.OverlapsWith(b) != b.OverlapsWith(a) {
				t.Errorf("overlap not symmetric for %v and %v", a, b)
			}
		}
	}
}
