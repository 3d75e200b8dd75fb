package system

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
)

// ProjectileSystem moves homing projectiles and resolves their hits.
type ProjectileSystem struct {
	ecs *entity.ECS
}

func NewProjectileSystem(ecs *entity.ECS) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			s.ecs.RemoveEntity(id)
			continue
		}
		proj.Lifetime -= deltaTime
		targetPos, targetExists := s.ecs.Positions[proj.Target]
		if !targetExists || proj.Lifetime <= 0 {
			s.ecs.RemoveEntity(id)
			continue
		}

		toTarget := targetPos.Vec().Sub(pos.Vec())
		dist := toTarget.Length()
		step := proj.Speed * deltaTime
		if dist <= step || dist < config.ProjectileHitRadius {
			s.hit(proj)
			s.ecs.RemoveEntity(id)
			continue
		}
		pos.Set(pos.Vec().Add(toTarget.Normalized().Scale(step)))
	}
}

// hit applies a projectile's damage and element to its target. Ground
// deals reduced damage to iced targets and grounds out Electricity instead
// of stacking.
func (s *ProjectileSystem) hit(proj *component.Projectile) {
	damage := proj.Damage
	caps, ok := s.ecs.CapabilitiesOf(proj.Target)
	if ok && caps.Modifiers != nil {
		applyElement(caps.Modifiers, proj.Element, proj.ElementTime, &damage)
	}
	ApplyDamage(s.ecs, proj.Target, damage, proj.Source, component.CauseAttack)
}

func applyElement(h *component.ModifierHolder, e defs.Element, seconds float64, damage *float64) {
	if e == defs.Ground {
		if h.Has(defs.Ice) {
			*damage *= config.GroundIceDamageFactor
		}
		h.Remove(defs.Electricity)
		return
	}
	if seconds > 0 {
		h.AddTimed(e, seconds)
	} else {
		h.AddInstant(e)
	}
}
