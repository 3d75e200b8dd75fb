package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the per-run options read from settings.yaml.
type Settings struct {
	Seed    int64           `yaml:"seed"`
	Rounds  RoundSettings   `yaml:"rounds"`
	Data    DataSettings    `yaml:"data"`
	Display DisplaySettings `yaml:"display"`
}

type RoundSettings struct {
	AutoStart      bool    `yaml:"auto_start"`
	AutoStartDelay float64 `yaml:"auto_start_delay"`
	StartDelay     float64 `yaml:"start_delay"`
	Endless        bool    `yaml:"endless"`
}

// DataSettings selects the data directory and level. An empty Wave uses the
// level's own wave.
type DataSettings struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
	Wave  string `yaml:"wave"`
	Watch bool   `yaml:"watch"`
}

type DisplaySettings struct {
	WindowTitle string `yaml:"window_title"`
	TickRate    int    `yaml:"tick_rate"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Seed: 1,
		Rounds: RoundSettings{
			AutoStartDelay: DefaultAutoStartDelay,
			StartDelay:     DefaultStartDelay,
		},
		Data: DataSettings{
			Dir:   "assets/data",
			Level: "meadow",
		},
		Display: DisplaySettings{
			WindowTitle: "Elemental TD",
			TickRate:    60,
		},
	}
}

// LoadSettings reads a yaml settings file over the defaults. A missing file
// is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if s.Rounds.AutoStartDelay < 0 {
		s.Rounds.AutoStartDelay = 0
	}
	if s.Display.TickRate <= 0 {
		s.Display.TickRate = 60
	}
	return s, nil
}
