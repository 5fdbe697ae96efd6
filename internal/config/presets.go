package config

import (
	"sort"
	"time"

	"github.com/san-kum/cellsim/internal/sim"
)

var Presets = map[string]*Config{
	"classic": {
		Width: sim.DefaultWidth, Height: sim.DefaultHeight, Predator: true, Delay: sim.DefaultDelay,
	},
	"peaceful": {
		Width: sim.DefaultWidth, Height: sim.DefaultHeight, Predator: false, Delay: sim.DefaultDelay,
	},
	"arena": {
		Width: 40, Height: 40, Predator: true, Delay: 15 * time.Millisecond,
	},
	"tiny": {
		Width: 5, Height: 5, Predator: true, Delay: 100 * time.Millisecond,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
