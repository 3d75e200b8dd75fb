package entity

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/types"
)

// Capabilities is the set of optional behaviours an entity exposes to
// zones, projectiles and status rules. Fields are nil when the entity
// lacks the capability.
type Capabilities struct {
	Damageable component.Damageable
	Modifiers  *component.ModifierHolder
	Walker     *component.PathWalker
}

// Resolve builds and stores the capability set of id from its current
// components. Call it once after the entity is fully assembled.
func (ecs *ECS) Resolve(id types.EntityID) *Capabilities {
	caps := &Capabilities{}
	if h, ok := ecs.Healths[id]; ok {
		caps.Damageable = h
	}
	if m, ok := ecs.Modifiers[id]; ok {
		caps.Modifiers = m
	}
	if w, ok := ecs.Walkers[id]; ok {
		caps.Walker = w
	}
	ecs.Caps[id] = caps
	return caps
}

// CapabilitiesOf returns the stored set of id.
func (ecs *ECS) CapabilitiesOf(id types.EntityID) (*Capabilities, bool) {
	c, ok := ecs.Caps[id]
	return c, ok
}
