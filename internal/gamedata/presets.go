package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/roomcarver/internal/world"
)

// DefaultPresetID is the preset used when none is requested.
const DefaultPresetID = "classic"

// PaletteDef holds the hex colors used to draw each tile type.
type PaletteDef struct {
	Wall  string `json:"wall"`  // Hex color for wall tiles (e.g., "#4D4D4D")
	Floor string `json:"floor"` // Hex color for floor tiles
}

// PresetDef defines a named set of generation parameters loaded from JSON.
type PresetDef struct {
	ID          string     `json:"id"`          // Unique identifier (e.g., "classic")
	Name        string     `json:"name"`        // Display name
	Width       int        `json:"width"`       // Grid width in tiles
	Height      int        `json:"height"`      // Grid height in tiles
	MaxRooms    int        `json:"maxRooms"`    // Number of placement attempts
	MinRoomSize int        `json:"minRoomSize"` // Smallest room side (inclusive)
	MaxRoomSize int        `json:"maxRoomSize"` // Largest room side (exclusive)
	Corridors   bool       `json:"corridors"`   // Link consecutive rooms with corridors
	Palette     PaletteDef `json:"palette"`
}

// Validate checks that the preset can be generated and drawn.
func (p *PresetDef) Validate() error {
	if p.ID == "" {
		return errors.New("preset with empty id")
	}
	if err := world.ValidateParams(p.Width, p.Height, p.MaxRooms, p.MinRoomSize, p.MaxRoomSize); err != nil {
		return fmt.Errorf("preset %s: %w", p.ID, err)
	}
	if _, _, _, err := ParseHexRGB(p.Palette.Wall); err != nil {
		return fmt.Errorf("preset %s wall color: %w", p.ID, err)
	}
	if _, _, _, err := ParseHexRGB(p.Palette.Floor); err != nil {
		return fmt.Errorf("preset %s floor color: %w", p.ID, err)
	}
	return nil
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []PresetDef `json:"presets"`
}

// Validate checks every preset and rejects duplicate ids.
func (f *PresetsFile) Validate() error {
	seen := make(map[string]bool, len(f.Presets))
	for i := range f.Presets {
		p := &f.Presets[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate preset id %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]PresetDef, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}
