// internal/system/area_attack_system.go
package system

import (
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/types"
)

// AreaAttackSystem applies element zones to enemies that walk into them.
// A timed zone adds time once per entry; an instant zone holds one stack on
// the enemy while it stays inside.
type AreaAttackSystem struct {
	ecs     *entity.ECS
	physics *PhysicsSystem
}

func NewAreaAttackSystem(ecs *entity.ECS, physics *PhysicsSystem) *AreaAttackSystem {
	return &AreaAttackSystem{ecs: ecs, physics: physics}
}

func (s *AreaAttackSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Zones) {
		zone := s.ecs.Zones[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		current := make(map[types.EntityID]bool)
		for _, enemyID := range s.physics.QueryRadius(pos.Vec(), zone.Radius) {
			if _, isEnemy := s.ecs.Enemies[enemyID]; !isEnemy {
				continue
			}
			current[enemyID] = true
			if !zone.Inside[enemyID] {
				s.enter(id, enemyID)
			}
		}
		for _, enemyID := range entity.SortedIDs(zone.Inside) {
			if !current[enemyID] {
				s.exit(id, enemyID)
			}
		}
	}
}

func (s *AreaAttackSystem) enter(zoneID, enemyID types.EntityID) {
	zone := s.ecs.Zones[zoneID]
	zone.Inside[enemyID] = true
	caps, ok := s.ecs.CapabilitiesOf(enemyID)
	if !ok || caps.Modifiers == nil {
		return
	}
	if zone.ElementTime > 0 {
		caps.Modifiers.AddTimed(zone.Element, zone.ElementTime)
	} else {
		caps.Modifiers.AddInstant(zone.Element)
	}
}

func (s *AreaAttackSystem) exit(zoneID, enemyID types.EntityID) {
	zone := s.ecs.Zones[zoneID]
	delete(zone.Inside, enemyID)
	if zone.ElementTime > 0 {
		return
	}
	if caps, ok := s.ecs.CapabilitiesOf(enemyID); ok && caps.Modifiers != nil {
		caps.Modifiers.RemoveInstant(zone.Element)
	}
}

// Release takes back every stack a zone is holding. Call it before the
// zone is removed.
func (s *AreaAttackSystem) Release(zoneID types.EntityID) {
	zone, ok := s.ecs.Zones[zoneID]
	if !ok {
		return
	}
	for _, enemyID := range entity.SortedIDs(zone.Inside) {
		s.exit(zoneID, enemyID)
	}
}
