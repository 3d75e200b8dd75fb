// internal/entity/ecs.go
package entity

import (
	"cmp"
	"slices"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/types"
)

type ECS struct {
	GameTime      float64
	NextID        types.EntityID
	Positions     map[types.EntityID]*component.Position
	Walkers       map[types.EntityID]*component.PathWalker
	Healths       map[types.EntityID]*component.Health
	Modifiers     map[types.EntityID]*component.ModifierHolder
	Enemies       map[types.EntityID]*component.Enemy
	Towers        map[types.EntityID]*component.Tower
	Turrets       map[types.EntityID]*component.Turret
	Zones         map[types.EntityID]*component.Zone
	Slowers       map[types.EntityID]*component.Slower
	Projectiles   map[types.EntityID]*component.Projectile
	Renderables   map[types.EntityID]*component.Renderable
	DamageFlashes map[types.EntityID]*component.DamageFlash
	Caps          map[types.EntityID]*Capabilities
	Player        *component.Player
	Wave          *component.Wave
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Positions:     make(map[types.EntityID]*component.Position),
		Walkers:       make(map[types.EntityID]*component.PathWalker),
		Healths:       make(map[types.EntityID]*component.Health),
		Modifiers:     make(map[types.EntityID]*component.ModifierHolder),
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Towers:        make(map[types.EntityID]*component.Tower),
		Turrets:       make(map[types.EntityID]*component.Turret),
		Zones:         make(map[types.EntityID]*component.Zone),
		Slowers:       make(map[types.EntityID]*component.Slower),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		Renderables:   make(map[types.EntityID]*component.Renderable),
		DamageFlashes: make(map[types.EntityID]*component.DamageFlash),
		Caps:          make(map[types.EntityID]*Capabilities),
		Player:        &component.Player{PlayState: component.Building},
		Wave:          &component.Wave{State: component.SpawnerIdle},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity deletes every component of id.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Walkers, id)
	delete(ecs.Healths, id)
	delete(ecs.Modifiers, id)
	delete(ecs.Enemies, id)
	delete(ecs.Towers, id)
	delete(ecs.Turrets, id)
	delete(ecs.Zones, id)
	delete(ecs.Slowers, id)
	delete(ecs.Projectiles, id)
	delete(ecs.Renderables, id)
	delete(ecs.DamageFlashes, id)
	delete(ecs.Caps, id)
}

// Exists reports whether id still has a position, which every live entity
// carries.
func (ecs *ECS) Exists(id types.EntityID) bool {
	_, ok := ecs.Positions[id]
	return ok
}

// SortedIDs returns the keys of a component map in ascending order so
// systems visit entities deterministically.
func SortedIDs[V any](m map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b types.EntityID) int { return cmp.Compare(a, b) })
	return ids
}
