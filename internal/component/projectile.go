// internal/component/projectile.go
package component

import (
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/types"
)

// Projectile homes on a target and applies damage and an element on hit.
type Projectile struct {
	Source      types.EntityID
	Target      types.EntityID
	Speed       float64
	Damage      float64
	Element     defs.Element
	ElementTime float64
	Lifetime    float64
}
