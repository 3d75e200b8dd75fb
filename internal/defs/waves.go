// internal/defs/waves.go
package defs

import (
	"fmt"

	"go-elemental-td/pkg/currency"
)

// WaveEnemy is one enemy template a round can draw from.
type WaveEnemy struct {
	ID     string  `yaml:"id"`
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	// AcidMultiplier scales incoming damage while Acid is present.
	AcidMultiplier float64 `yaml:"acid_multiplier"`
	// Difficulty is 0 (trivial) to 99 (extremely hard).
	Difficulty uint              `yaml:"difficulty"`
	Weight     int               `yaml:"weight"`
	Reward     currency.Currency `yaml:"reward"`
}

// WaveData describes how rounds scale for one level.
type WaveData struct {
	ID                     string            `yaml:"id"`
	PlayerLives            int               `yaml:"player_lives"`
	PlayerStartingCurrency currency.Currency `yaml:"player_starting_currency"`
	MaxRounds              int               `yaml:"max_rounds"`
	MinEnemies             int               `yaml:"min_enemies"`
	MaxEnemies             int               `yaml:"max_enemies"`
	InitialSpeedMultiplier float64           `yaml:"initial_speed_multiplier"`
	MaxSpeedMultiplier     float64           `yaml:"max_speed_multiplier"`
	MaxAdditionalHealth    float64           `yaml:"max_additional_health"`
	InitialSpawnInterval   float64           `yaml:"initial_spawn_interval"`
	MinSpawnInterval       float64           `yaml:"min_spawn_interval"`
	DifficultyCurve        Curve             `yaml:"difficulty_curve"`
	PotentialEnemies       []WaveEnemy       `yaml:"potential_enemies"`
}

// DefaultWaveData returns the values a wave file starts from before its own
// fields are applied.
func DefaultWaveData() WaveData {
	return WaveData{
		PlayerLives:            50,
		PlayerStartingCurrency: currency.New(100),
		MaxRounds:              10,
		MinEnemies:             5,
		MaxEnemies:             30,
		InitialSpeedMultiplier: 1.0,
		MaxSpeedMultiplier:     10.0,
		MaxAdditionalHealth:    2.5,
		InitialSpawnInterval:   1.0,
		MinSpawnInterval:       0.1,
		DifficultyCurve:        LinearCurve(Keyframe{0, 0}, Keyframe{1, 1}),
	}
}

// Validate checks the fields the spawner divides by or indexes into.
func (w *WaveData) Validate() error {
	if w.MaxRounds <= 0 {
		return fmt.Errorf("wave %q: max_rounds must be positive", w.ID)
	}
	if w.MinEnemies < 0 || w.MaxEnemies < w.MinEnemies {
		return fmt.Errorf("wave %q: need 0 <= min_enemies <= max_enemies", w.ID)
	}
	if w.MinSpawnInterval <= 0 {
		return fmt.Errorf("wave %q: min_spawn_interval must be positive", w.ID)
	}
	if len(w.PotentialEnemies) == 0 {
		return fmt.Errorf("wave %q: no potential enemies", w.ID)
	}
	for i, e := range w.PotentialEnemies {
		if e.Health <= 0 {
			return fmt.Errorf("wave %q: enemy %d has no health", w.ID, i)
		}
		if e.Difficulty > 99 {
			return fmt.Errorf("wave %q: enemy %d difficulty %d exceeds 99", w.ID, i, e.Difficulty)
		}
	}
	return nil
}

// Easiest returns the index of the enemy with the lowest difficulty.
func (w *WaveData) Easiest() int {
	best := 0
	for i, e := range w.PotentialEnemies {
		if e.Difficulty < w.PotentialEnemies[best].Difficulty {
			best = i
		}
	}
	return best
}
