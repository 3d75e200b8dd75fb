// internal/component/turret.go
package component

import (
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/types"
)

// Turret aims a barrel at one enemy and fires projectiles at it.
type Turret struct {
	Heading       float64 // barrel yaw in radians
	RotationSpeed float64
	Cooldown      float64
	Target        types.EntityID
	Policy        defs.TargetPolicy
	// InRange is refreshed by the periodic scan; Target is chosen from it.
	InRange []types.EntityID
}
