package component

import (
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/types"
)

// Zone applies an element to enemies that enter it. With ElementTime <= 0
// an instant stack is held while the enemy stays inside.
type Zone struct {
	Element     defs.Element
	ElementTime float64
	Radius      float64
	Inside      map[types.EntityID]bool
}

// Slower scales the speed of enemies inside it.
type Slower struct {
	Multiplier float64
	Radius     float64
	Inside     map[types.EntityID]bool
}
