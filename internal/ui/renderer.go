package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roomcarver/internal/gamedata"
	"github.com/samdwyer/roomcarver/internal/world"
)

// Renderer handles drawing a generated grid to the screen.
type Renderer struct {
	screen     *Screen
	wallStyle  tcell.Style
	floorStyle tcell.Style
}

// NewRenderer creates a renderer for the given screen using the palette's colors.
func NewRenderer(screen *Screen, palette gamedata.PaletteDef) (*Renderer, error) {
	wall, err := gamedata.ParseHexColor(palette.Wall)
	if err != nil {
		return nil, err
	}
	floor, err := gamedata.ParseHexColor(palette.Floor)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		screen:     screen,
		wallStyle:  tcell.StyleDefault.Foreground(wall).Background(tcell.ColorBlack),
		floorStyle: tcell.StyleDefault.Foreground(floor).Background(tcell.ColorBlack),
	}, nil
}

// Render draws the grid with the status line beneath it.
func (r *Renderer) Render(grid *world.Grid, status string) {
	r.screen.Clear()

	grid.Each(func(x, y int, tile world.Tile) {
		r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(tile))
	})

	_, height := grid.Dimensions()
	r.RenderMessage(status, height)

	r.screen.Show()
}

// tileStyle returns the appropriate style for a tile type.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return r.wallStyle
	case world.TileEmpty:
		return r.floorStyle
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
