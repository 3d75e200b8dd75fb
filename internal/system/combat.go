package system

import (
	"math"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/schedule"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/utils"
	vec "go-elemental-td/pkg/utils"
)

// CombatSystem aims turrets and fires projectiles. The list of enemies in
// range is refreshed by a per-turret scheduler task; aiming and firing run
// every step.
type CombatSystem struct {
	ecs       *entity.ECS
	physics   *PhysicsSystem
	scheduler *schedule.Scheduler
}

func NewCombatSystem(ecs *entity.ECS, physics *PhysicsSystem, scheduler *schedule.Scheduler) *CombatSystem {
	return &CombatSystem{ecs: ecs, physics: physics, scheduler: scheduler}
}

// Register scans once right away and then every TurretScanInterval.
func (s *CombatSystem) Register(id types.EntityID) {
	s.Scan(id)
	s.scheduler.Every(id, config.TurretScanInterval, func() { s.Scan(id) })
}

// Radius returns the turret's current vision radius, upgrades included.
func (s *CombatSystem) Radius(tower *component.Tower) float64 {
	return tower.Value(defs.UpgradeVisionRadius, tower.Def.VisionRadius) / 2
}

// Scan refreshes the enemies a turret can choose from.
func (s *CombatSystem) Scan(id types.EntityID) {
	turret, ok := s.ecs.Turrets[id]
	if !ok {
		return
	}
	pos, hasPos := s.ecs.Positions[id]
	tower, hasTower := s.ecs.Towers[id]
	if !hasPos || !hasTower {
		return
	}
	turret.InRange = turret.InRange[:0]
	for _, enemyID := range s.physics.QueryRadius(pos.Vec(), s.Radius(tower)) {
		if _, isEnemy := s.ecs.Enemies[enemyID]; isEnemy {
			turret.InRange = append(turret.InRange, enemyID)
		}
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Turrets) {
		turret := s.ecs.Turrets[id]
		tower, ok := s.ecs.Towers[id]
		if !ok || tower.Def.Turret == nil {
			continue
		}
		pos := s.ecs.Positions[id]
		if turret.Cooldown > 0 {
			turret.Cooldown -= deltaTime
		}

		turret.Target = s.selectTarget(pos.Vec(), turret, s.Radius(tower))
		if turret.Target == 0 {
			continue
		}
		targetPos := s.ecs.Positions[turret.Target].Vec()
		desired := targetPos.Sub(pos.Vec()).Yaw()
		turret.Heading = utils.RotateTowards(turret.Heading, desired, turret.RotationSpeed*deltaTime)

		aim := math.Abs(utils.AngleDiff(turret.Heading, desired)) * 180 / math.Pi
		if turret.Cooldown > 0 || aim >= config.TurretFireAngle {
			continue
		}
		s.fire(id, pos.Vec(), tower)
		rate := tower.Value(defs.UpgradeFireRate, tower.Def.Turret.FireRate)
		turret.Cooldown = 1 / math.Max(rate, config.MinFireRate)
	}
}

// selectTarget applies the turret's policy to the enemies from the last
// scan that are still alive and in range.
func (s *CombatSystem) selectTarget(from vec.Vec3, turret *component.Turret, radius float64) types.EntityID {
	var best types.EntityID
	bestScore := math.Inf(1)
	for _, enemyID := range turret.InRange {
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if h, hasHealth := s.ecs.Healths[enemyID]; hasHealth && h.Dead() {
			continue
		}
		dist := vec.Distance(from, enemyPos.Vec())
		if dist > radius {
			continue
		}
		if turret.Policy != defs.TargetClosestNoSight && !s.physics.LineOfSight(from, enemyPos.Vec()) {
			continue
		}

		score := dist
		if turret.Policy == defs.TargetFirst {
			w, isWalker := s.ecs.Walkers[enemyID]
			if !isWalker {
				continue
			}
			score = w.DistanceFromEnd
		}
		if score < bestScore {
			best, bestScore = enemyID, score
		}
	}
	return best
}

func (s *CombatSystem) fire(towerID types.EntityID, from vec.Vec3, tower *component.Tower) {
	stats := tower.Def.Turret
	target := s.ecs.Turrets[towerID].Target
	speed := stats.ProjectileSpeed
	if speed <= 0 {
		speed = config.ProjectileSpeed
	}

	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: from.X, Y: from.Y, Z: from.Z}
	s.ecs.Projectiles[id] = &component.Projectile{
		Source:      towerID,
		Target:      target,
		Speed:       speed,
		Damage:      stats.Damage * tower.Value(defs.UpgradeDamageMultiplier, 1),
		Element:     stats.Element,
		ElementTime: stats.ElementTime,
		Lifetime:    config.ProjectileLifetime,
	}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:  config.ElementColors[stats.Element],
		Radius: float32(config.ProjectileHitRadius),
	}
}
