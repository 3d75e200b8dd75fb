// internal/system/visual_effect.go
package system

import (
	"go-elemental-td/internal/entity"
)

// VisualEffectSystem counts down short lived presentation state such as
// damage flashes. It never changes gameplay.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.DamageFlashes {
		flash.Remaining -= deltaTime
		if flash.Remaining <= 0 || !s.ecs.Exists(id) {
			delete(s.ecs.DamageFlashes, id)
		}
	}
}
