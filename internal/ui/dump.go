package ui

import (
	"bufio"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/roomcarver/internal/gamedata"
	"github.com/samdwyer/roomcarver/internal/world"
)

// Dump writes the grid as text, one line per row. When colored is set, runs of equal
// tiles are wrapped in the palette's truecolor codes; otherwise only glyphs are written.
func Dump(w io.Writer, grid *world.Grid, palette gamedata.PaletteDef, colored bool) error {
	wall := color.HEX(palette.Wall)
	floor := color.HEX(palette.Floor)

	width, height := grid.Dimensions()
	out := bufio.NewWriter(w)

	for y := 0; y < height; y++ {
		for x := 0; x < width; {
			tile := grid.TileAt(x, y)
			run := 1
			for x+run < width && grid.TileAt(x+run, y) == tile {
				run++
			}

			glyphs := strings.Repeat(string(tile.Rune()), run)
			switch {
			case !colored:
			case tile.IsFloor():
				glyphs = floor.Sprint(glyphs)
			default:
				glyphs = wall.Sprint(glyphs)
			}
			if _, err := out.WriteString(glyphs); err != nil {
				return err
			}
			x += run
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}

	return out.Flush()
}
