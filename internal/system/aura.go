// internal/system/aura.go
package system

import (
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/types"
)

// AuraSystem runs slowing auras. An enemy inside one carries the aura's
// factor as a "slower" entry in its walker's multipliers, so overlapping
// auras with the same factor stack and leave independently.
type AuraSystem struct {
	ecs     *entity.ECS
	physics *PhysicsSystem
}

func NewAuraSystem(ecs *entity.ECS, physics *PhysicsSystem) *AuraSystem {
	return &AuraSystem{ecs: ecs, physics: physics}
}

func (s *AuraSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Slowers) {
		slower := s.ecs.Slowers[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		current := make(map[types.EntityID]bool)
		for _, enemyID := range s.physics.QueryRadius(pos.Vec(), slower.Radius) {
			if _, isEnemy := s.ecs.Enemies[enemyID]; !isEnemy {
				continue
			}
			current[enemyID] = true
			if slower.Inside[enemyID] {
				continue
			}
			slower.Inside[enemyID] = true
			if caps, ok := s.ecs.CapabilitiesOf(enemyID); ok && caps.Walker != nil {
				caps.Walker.Multipliers.Add(config.MultiplierSlower, slower.Multiplier)
			}
		}
		for _, enemyID := range entity.SortedIDs(slower.Inside) {
			if !current[enemyID] {
				s.exit(id, enemyID)
			}
		}
	}
}

func (s *AuraSystem) exit(slowerID, enemyID types.EntityID) {
	slower := s.ecs.Slowers[slowerID]
	delete(slower.Inside, enemyID)
	if caps, ok := s.ecs.CapabilitiesOf(enemyID); ok && caps.Walker != nil {
		caps.Walker.Multipliers.Remove(config.MultiplierSlower, slower.Multiplier)
	}
}

// Release lifts the aura from every enemy still inside.
func (s *AuraSystem) Release(slowerID types.EntityID) {
	slower, ok := s.ecs.Slowers[slowerID]
	if !ok {
		return
	}
	for _, enemyID := range entity.SortedIDs(slower.Inside) {
		s.exit(slowerID, enemyID)
	}
}
