package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/roomcarver/internal/gamedata"
	"github.com/samdwyer/roomcarver/internal/ui"
	"github.com/samdwyer/roomcarver/internal/world"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func testConfig(t *testing.T, env map[string]string) Config {
	t.Helper()
	cfg, err := LoadConfig(gamedata.MustLoadPresetRegistry(), envMap(env))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := testConfig(t, nil)

	if cfg.Preset != gamedata.DefaultPresetID {
		t.Errorf("Preset = %q, want %q", cfg.Preset, gamedata.DefaultPresetID)
	}
	if cfg.Width != world.DefaultWidth || cfg.Height != world.DefaultHeight {
		t.Errorf("dimensions = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MaxRooms != world.DefaultMaxRooms || cfg.MinRoomSize != world.DefaultMinRoomSize || cfg.MaxRoomSize != world.DefaultMaxRoomSize {
		t.Errorf("room params = %d/%d/%d", cfg.MaxRooms, cfg.MinRoomSize, cfg.MaxRoomSize)
	}
	if !cfg.Corridors || cfg.Dump || cfg.Seed != 0 {
		t.Errorf("unexpected flags: corridors=%v dump=%v seed=%d", cfg.Corridors, cfg.Dump, cfg.Seed)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		EnvPreset:      "sparse",
		EnvSeed:        "42",
		EnvWidth:       "40",
		EnvMaxRoomSize: "8",
		EnvCorridors:   "false",
		EnvDump:        "1",
	})

	if cfg.Preset != "sparse" || cfg.Seed != 42 || cfg.Width != 40 || cfg.Height != 50 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.MaxRooms != 6 || cfg.MinRoomSize != 4 || cfg.MaxRoomSize != 8 {
		t.Errorf("room params = %d/%d/%d, want 6/4/8", cfg.MaxRooms, cfg.MinRoomSize, cfg.MaxRoomSize)
	}
	if cfg.Corridors || !cfg.Dump {
		t.Errorf("corridors=%v dump=%v, want false/true", cfg.Corridors, cfg.Dump)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	registry := gamedata.MustLoadPresetRegistry()
	tests := map[string]map[string]string{
		"unknown preset": {EnvPreset: "nope"},
		"bad seed":       {EnvSeed: "abc"},
		"bad width":      {EnvWidth: "wide"},
		"bad bool":       {EnvCorridors: "maybe"},
		"room too big":   {EnvWidth: "12"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(registry, envMap(env)); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := LoadConfig(registry, envMap(map[string]string{EnvMinRoomSize: "10"}))
	if !errors.Is(err, world.ErrInvalidParams) {
		t.Errorf("min >= max: err = %v, want ErrInvalidParams", err)
	}
}

func TestGameGenerate(t *testing.T) {
	cfg := testConfig(t, map[string]string{EnvSeed: "7"})
	g := New(cfg)

	if g.Seed() != 7 {
		t.Errorf("Seed = %d, want 7", g.Seed())
	}
	if err := g.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(g.Rooms()) == 0 {
		t.Error("expected rooms")
	}
	if !g.Grid().Generated() {
		t.Error("grid should be generated")
	}
	if !strings.Contains(g.Status(), "seed=7") {
		t.Errorf("status %q should mention the seed", g.Status())
	}
}

func TestGameRandomSeed(t *testing.T) {
	g := New(testConfig(t, nil))
	if g.Seed() == 0 {
		t.Error("a zero seed should be replaced")
	}
}

func TestGameKeys(t *testing.T) {
	ctx := context.Background()
	g := New(testConfig(t, map[string]string{EnvSeed: "11"}))
	if err := g.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	first := g.Grid().Tiles()

	if err := g.handleRune(ctx, 'r'); err != nil {
		t.Fatal(err)
	}
	second := g.Grid().Tiles()
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("regenerating should produce a different map")
	}

	if err := g.handleRune(ctx, 'c'); err != nil {
		t.Fatal(err)
	}
	if g.cfg.Corridors {
		t.Error("'c' should turn corridors off")
	}
	if !strings.Contains(g.Status(), "corridors=off") {
		t.Errorf("status %q should report corridors off", g.Status())
	}

	// The regenerated map holds rooms only.
	area, floor := 0, 0
	for _, r := range g.Rooms() {
		area += r.Width() * r.Height()
	}
	g.Grid().Each(func(_, _ int, tile world.Tile) {
		if tile.IsFloor() {
			floor++
		}
	})
	if len(g.Rooms()) < 2 {
		t.Fatalf("want several rooms to tell corridors apart, got %d", len(g.Rooms()))
	}
	if floor != area {
		t.Errorf("floor tiles after toggle = %d, want room area %d", floor, area)
	}

	g.running = true
	if err := g.handleRune(ctx, 'q'); err != nil {
		t.Fatal(err)
	}
	if g.running {
		t.Error("'q' should stop the loop")
	}
}

func TestGameDump(t *testing.T) {
	cfg := testConfig(t, map[string]string{EnvPreset: "crypt", EnvSeed: "3"})
	var buf bytes.Buffer
	if err := New(cfg).Dump(context.Background(), &buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(color.ClearCode(buf.String()), "\n"), "\n")
	if len(lines) != cfg.Height {
		t.Fatalf("got %d lines, want %d", len(lines), cfg.Height)
	}
	for i, line := range lines {
		if len(line) != cfg.Width {
			t.Errorf("line %d has %d columns, want %d", i, len(line), cfg.Width)
		}
	}
	if !strings.Contains(buf.String(), ".") {
		t.Error("dump should contain floor tiles")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("dump without color should contain no escape codes")
	}
}

func TestRunOnRecordsGenerateError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))

	screen, err := ui.NewScreenFrom(tcell.NewSimulationScreen("UTF-8"))
	if err != nil {
		t.Fatalf("NewScreenFrom: %v", err)
	}

	// Rooms this large cannot fit on the grid.
	cfg := testConfig(t, map[string]string{EnvSeed: "1"})
	cfg.MaxRoomSize = cfg.Width

	err = New(cfg).RunOn(context.Background(), screen)
	if !errors.Is(err, world.ErrInvalidParams) {
		t.Fatalf("RunOn err = %v, want ErrInvalidParams", err)
	}

	var initSpan sdktrace.ReadOnlySpan
	for _, span := range sr.Ended() {
		if span.Name() == "game.init" {
			initSpan = span
		}
	}
	if initSpan == nil {
		t.Fatal("game.init span not recorded")
	}
	if initSpan.Status().Code != codes.Error {
		t.Errorf("game.init status = %v, want error", initSpan.Status().Code)
	}
	if len(initSpan.Events()) == 0 {
		t.Error("game.init should carry the recorded error event")
	}
}
