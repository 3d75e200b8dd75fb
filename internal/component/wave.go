package component

import "go-elemental-td/internal/types"

// SpawnerState is the round state of the wave spawner.
type SpawnerState int

const (
	SpawnerIdle SpawnerState = iota
	SpawnerSpawning
	SpawnerWaiting
	SpawnerAutoStartDelay
	SpawnerGameEnded
)

func (s SpawnerState) String() string {
	switch s {
	case SpawnerSpawning:
		return "spawning"
	case SpawnerWaiting:
		return "waiting"
	case SpawnerAutoStartDelay:
		return "auto start"
	case SpawnerGameEnded:
		return "game ended"
	}
	return "idle"
}

// Wave is the spawner's mutable state.
type Wave struct {
	State SpawnerState
	Round int
	// Alive counts spawned enemies that have not been destroyed yet.
	Alive int
	// ToSpawn is what remains to be spawned this round.
	ToSpawn int
	Victory bool

	// Round parameters, fixed when the round starts.
	Difficulty      float64
	SpawnInterval   float64
	SpeedMultiplier float64
	HealthScale     float64

	// Entity owning the spawner's scheduled tasks.
	Owner types.EntityID
}
