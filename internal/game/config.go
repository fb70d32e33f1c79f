package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samdwyer/roomcarver/internal/gamedata"
	"github.com/samdwyer/roomcarver/internal/world"
)

// Environment variables read by LoadConfig.
const (
	EnvPreset      = "ROOMCARVER_PRESET"
	EnvSeed        = "ROOMCARVER_SEED"
	EnvWidth       = "ROOMCARVER_WIDTH"
	EnvHeight      = "ROOMCARVER_HEIGHT"
	EnvMaxRooms    = "ROOMCARVER_MAX_ROOMS"
	EnvMinRoomSize = "ROOMCARVER_MIN_ROOM_SIZE"
	EnvMaxRoomSize = "ROOMCARVER_MAX_ROOM_SIZE"
	EnvCorridors   = "ROOMCARVER_CORRIDORS"
	EnvDump        = "ROOMCARVER_DUMP"
)

// Config holds generation and display options.
type Config struct {
	// Seed for random number generation. Used for reproducible maps.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Preset      string
	Width       int
	Height      int
	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int
	Corridors   bool
	Palette     gamedata.PaletteDef

	// Dump prints a single map to stdout instead of opening the interactive screen.
	Dump bool

	// Color enables escape codes in dumped maps. Set when stdout is a terminal.
	Color bool
}

// ConfigFromPreset returns a config carrying the preset's parameters.
func ConfigFromPreset(p *gamedata.PresetDef) Config {
	return Config{
		Preset:      p.ID,
		Width:       p.Width,
		Height:      p.Height,
		MaxRooms:    p.MaxRooms,
		MinRoomSize: p.MinRoomSize,
		MaxRoomSize: p.MaxRoomSize,
		Corridors:   p.Corridors,
		Palette:     p.Palette,
	}
}

// LoadConfig builds a config from the requested preset and any environment overrides.
// getenv is usually os.Getenv.
func LoadConfig(registry *gamedata.PresetRegistry, getenv func(string) string) (Config, error) {
	preset := registry.Default()
	if id := getenv(EnvPreset); id != "" {
		preset = registry.GetByID(id)
		if preset == nil {
			return Config{}, fmt.Errorf("unknown preset %q", id)
		}
	}
	if preset == nil {
		return Config{}, errors.New("no presets available")
	}

	cfg := ConfigFromPreset(preset)

	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvMaxRooms, &cfg.MaxRooms},
		{EnvMinRoomSize, &cfg.MinRoomSize},
		{EnvMaxRoomSize, &cfg.MaxRoomSize},
	}
	for _, field := range ints {
		v := getenv(field.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvCorridors, &cfg.Corridors},
		{EnvDump, &cfg.Dump},
	}
	for _, field := range bools {
		v := getenv(field.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = b
	}

	if err := world.ValidateParams(cfg.Width, cfg.Height, cfg.MaxRooms, cfg.MinRoomSize, cfg.MaxRoomSize); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
