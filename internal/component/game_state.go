package component

// PlayState is the player's speed setting.
type PlayState int

const (
	// Building: no wave is running.
	Building PlayState = iota
	Play
	// Play2x runs the simulation at double speed.
	Play2x
)

func (s PlayState) String() string {
	switch s {
	case Play:
		return "play"
	case Play2x:
		return "play x2"
	}
	return "building"
}

// TimeScale is the simulation speed factor for the state.
func (s PlayState) TimeScale() float64 {
	if s == Play2x {
		return 2
	}
	return 1
}
