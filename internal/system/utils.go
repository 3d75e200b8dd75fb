// internal/system/utils.go
package system

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/types"
)

// ApplyDamage hurts an entity through its capability set. Acid scales the
// damage by the enemy's acid multiplier. Entities that are not damageable
// are ignored.
func ApplyDamage(ecs *entity.ECS, entityID types.EntityID, damage float64, dealer types.EntityID, cause component.DamageCause) {
	caps, ok := ecs.CapabilitiesOf(entityID)
	if !ok || caps.Damageable == nil || damage <= 0 {
		return
	}
	if caps.Modifiers != nil && caps.Modifiers.Has(defs.Acid) {
		if enemy, isEnemy := ecs.Enemies[entityID]; isEnemy && enemy.AcidMultiplier > 0 {
			damage *= enemy.AcidMultiplier
		}
	}
	caps.Damageable.ApplyDamage(damage, dealer, cause)
	if cause == component.CauseAttack {
		ecs.DamageFlashes[entityID] = &component.DamageFlash{
			Remaining: config.DamageFlashDuration,
			Duration:  config.DamageFlashDuration,
		}
	}
}
