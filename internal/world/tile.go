// Package world provides the tile grid, room rectangles and the room-and-corridor generator.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents a solid wall tile.
	TileWall Tile = '#'
	// TileEmpty represents a carved floor tile.
	TileEmpty Tile = '.'
)

// IsFloor returns true if the tile has been carved out.
func (t Tile) IsFloor() bool {
	return t == TileEmpty
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
