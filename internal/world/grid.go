package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Grid is a rectangular tile map stored as a flat, row-major buffer.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid creates a grid with the given dimensions and an empty tile buffer.
// The buffer is sized by Reset, which generation calls first.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
	}
}

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

// Generated returns true once the tile buffer has been sized.
func (g *Grid) Generated() bool {
	return len(g.tiles) > 0
}

// CoordinateToIndex maps (x, y) to its position in the tile buffer.
// Callers are responsible for bounds checking.
func (g *Grid) CoordinateToIndex(x, y int) int {
	return y*g.width + x
}

// Reset fills the grid with walls.
func (g *Grid) Reset() {
	g.tiles = make([]Tile, g.width*g.height)
	for i := range g.tiles {
		g.tiles[i] = TileWall
	}
	g.checkSize()
}

// checkSize panics if the buffer no longer matches the grid dimensions.
func (g *Grid) checkSize() {
	if len(g.tiles) != g.width*g.height {
		panic(fmt.Sprintf("world: tile buffer has %d cells, want %d (%dx%d)",
			len(g.tiles), g.width*g.height, g.width, g.height))
	}
}

// TileAt returns the tile at the given position.
// Positions outside the grid, or on a grid that was never generated, read as walls.
func (g *Grid) TileAt(x, y int) Tile {
	if x < 0 || x >= g.width || y < 0 || y >= g.height || !g.Generated() {
		return TileWall
	}
	return g.tiles[g.CoordinateToIndex(x, y)]
}

// Tiles returns a copy of the tile buffer in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(x, y int, t Tile)) {
	for i, t := range g.tiles {
		fn(i%g.width, i/g.width, t)
	}
}

// CarveRoom sets every tile inside the rectangle to floor.
// The rectangle must lie within the grid.
func (g *Grid) CarveRoom(r Rect) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			g.tiles[g.CoordinateToIndex(x, y)] = TileEmpty
		}
	}
}

// CarveHorizontalCorridor carves floor along row y from xStart to xEnd inclusive.
func (g *Grid) CarveHorizontalCorridor(xStart, xEnd, y int) {
	if xStart > xEnd {
		xStart, xEnd = xEnd, xStart
	}
	for x := xStart; x <= xEnd; x++ {
		g.carveCorridorCell(g.CoordinateToIndex(x, y))
	}
}

// CarveVerticalCorridor carves floor along column x from yStart to yEnd inclusive.
func (g *Grid) CarveVerticalCorridor(yStart, yEnd, x int) {
	if yStart > yEnd {
		yStart, yEnd = yEnd, yStart
	}
	for y := yStart; y <= yEnd; y++ {
		g.carveCorridorCell(g.CoordinateToIndex(x, y))
	}
}

// carveCorridorCell carves a single cell unless it is the first or last cell of the buffer.
// The guard is on the linear index only: a run past the left or right edge wraps onto
// the neighbouring row instead of being clipped.
func (g *Grid) carveCorridorCell(idx int) {
	if idx > 0 && idx < len(g.tiles)-1 {
		g.tiles[idx] = TileEmpty
	}
}

// ReachableFrom returns the number of floor tiles 4-connected to (x, y), including
// the starting tile. It returns 0 if the start is not floor.
func (g *Grid) ReachableFrom(x, y int) int {
	if !g.TileAt(x, y).IsFloor() {
		return 0
	}

	start := g.CoordinateToIndex(x, y)
	visited := mapset.New[int]()
	visited.Put(start)
	pending := queue.New[int]()
	pending.Enqueue(start)

	for !pending.Empty() {
		idx := pending.Dequeue()
		cx, cy := idx%g.width, idx/g.width

		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, ny := cx+d[0], cy+d[1]
			if !g.TileAt(nx, ny).IsFloor() {
				continue
			}
			n := g.CoordinateToIndex(nx, ny)
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			pending.Enqueue(n)
		}
	}

	return visited.Size()
}
