// Package game provides the interactive loop that generates and displays maps.
package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/roomcarver/internal/telemetry"
	"github.com/samdwyer/roomcarver/internal/ui"
	"github.com/samdwyer/roomcarver/internal/world"
)

// Game holds the current map and display state.
type Game struct {
	cfg      Config
	seed     int64
	rng      *rand.Rand
	grid     *world.Grid
	rooms    []world.Rect
	maps     int
	screen   *ui.Screen
	renderer *ui.Renderer
	running  bool
}

// New creates a game for the given config. No screen is opened until Run.
func New(cfg Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
		grid: world.NewGrid(cfg.Width, cfg.Height),
	}
}

// Seed returns the seed the game's random source was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Grid returns the most recently generated map.
func (g *Game) Grid() *world.Grid {
	return g.grid
}

// Rooms returns the rooms placed on the most recent map.
func (g *Game) Rooms() []world.Rect {
	return g.rooms
}

// Generate produces a new map, continuing the game's random sequence.
func (g *Game) Generate(ctx context.Context) error {
	gen := world.NewGenerator(g.rng, world.WithCorridors(g.cfg.Corridors))
	rooms, err := gen.GenerateRoomsAndCorridors(ctx, g.grid, g.cfg.MaxRooms, g.cfg.MinRoomSize, g.cfg.MaxRoomSize)
	if err != nil {
		return fmt.Errorf("generate map: %w", err)
	}
	g.rooms = rooms
	g.maps++
	return nil
}

// Dump generates a single map and writes it to w.
func (g *Game) Dump(ctx context.Context, w io.Writer) error {
	if err := g.Generate(ctx); err != nil {
		return err
	}
	return ui.Dump(w, g.grid, g.cfg.Palette, g.cfg.Color)
}

// Run opens the terminal screen and executes the main loop.
func (g *Game) Run(ctx context.Context) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	return g.RunOn(ctx, screen)
}

// RunOn executes the main loop on an already initialized screen, closing it on return.
func (g *Game) RunOn(ctx context.Context, screen *ui.Screen) error {
	defer screen.Close()

	renderer, err := ui.NewRenderer(screen, g.cfg.Palette)
	if err != nil {
		return err
	}
	g.screen = screen
	g.renderer = renderer

	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	err = g.Generate(ctx)
	initSpan.SetAttributes(
		attribute.Int64("game.seed", g.seed),
		attribute.String("game.preset", g.cfg.Preset),
		attribute.Int("game.rooms", len(g.rooms)),
	)
	if err != nil {
		initSpan.RecordError(err)
		initSpan.SetStatus(codes.Error, err.Error())
		initSpan.End()
		return err
	}
	initSpan.End()

	g.running = true
	for g.running {
		g.renderer.Render(g.grid, g.Status())

		// Handle input (blocking)
		if err := g.handleInput(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Status returns the line shown beneath the map.
func (g *Game) Status() string {
	corridors := "on"
	if !g.cfg.Corridors {
		corridors = "off"
	}
	return fmt.Sprintf("%s seed=%d map=%d rooms=%d/%d corridors=%s  [r]egenerate [c]orridors [q]uit",
		g.cfg.Preset, g.seed, g.maps, len(g.rooms), g.cfg.MaxRooms, corridors)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return nil
	case tcell.KeyRune:
		return g.handleRune(ctx, ev.Rune())
	}
	return nil
}

// handleRune processes character keys.
func (g *Game) handleRune(ctx context.Context, r rune) error {
	switch r {
	case 'q', 'Q':
		g.running = false
	case 'r', 'R':
		return g.Generate(ctx)
	case 'c', 'C':
		g.cfg.Corridors = !g.cfg.Corridors
		return g.Generate(ctx)
	}
	return nil
}
