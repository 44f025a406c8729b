// Package config persists viewer preferences across runs.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the preferences file, relative to the process working directory.
const Path = "config/simview.json"

// Prefs holds viewer-only preferences (overlays, grid, display hints).
// Which model to open is chosen per run and never stored here.
type Prefs struct {
	ShowFPS     bool `json:"show_fps"`
	ShowStats   bool `json:"show_stats"`
	GridVisible bool `json:"grid_visible"`
	ShowFrames  bool `json:"show_frames"`
	Wireframe   bool `json:"wireframe"`
}

// Default returns the preferences of a fresh checkout (grid on, overlays off).
func Default() Prefs {
	return Prefs{GridVisible: true}
}

// Load reads preferences from config/simview.json. If the file is missing or
// invalid, returns Default() and does not create a file.
func Load() (Prefs, error) {
	data, err := os.ReadFile(Path)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to config/simview.json, creating the config
// directory if needed.
func Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}
