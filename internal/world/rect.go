package world

import "fmt"

// Rect is an axis-aligned rectangle. X2 and Y2 are exclusive.
type Rect struct {
	X1, Y1 int // Top-left corner
	X2, Y2 int // Bottom-right corner
}

// NewRect creates a rectangle at (x, y) with the given width and height.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Center returns the integer midpoint of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// OverlapsWith returns true if this rectangle overlaps another.
// Bounds are compared inclusively, so rectangles that share an edge overlap.
// This keeps at least one wall cell between placed rooms.
func (r Rect) OverlapsWith(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 &&
		r.Y2 >= other.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{x1: %d, y1: %d, x2: %d, y2: %d}", r.X1, r.Y1, r.X2, r.Y2)
}
