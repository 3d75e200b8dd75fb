// internal/app/tower_management.go
package app

import (
	"fmt"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/currency"
	"go-elemental-td/pkg/utils"
)

// PlaceTower buys and places a buildable at pos.
func (g *Game) PlaceTower(defID string, pos utils.Vec3) (types.EntityID, error) {
	if g.Ended() {
		return 0, ErrGameEnded
	}
	def, ok := g.Library.Buildable(defID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBuildable, defID)
	}
	if !g.CanBuildAt(pos) {
		return 0, ErrNotBuildable
	}
	if !g.PlayerSystem.Spend(def.Cost) {
		return 0, fmt.Errorf("%w: %s costs %s", ErrInsufficientFunds, def.ID, def.Cost)
	}

	id := g.createTowerEntity(def, pos)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.TowerData{Tower: id, DefID: def.ID}})
	return id, nil
}

// CanBuildAt reports whether a buildable may stand at pos: inside the level
// bounds, off the path, outside obstacles and clear of other buildables.
func (g *Game) CanBuildAt(pos utils.Vec3) bool {
	bounds := g.Level.Bounds
	if bounds.Max != bounds.Min && !bounds.Contains(pos) {
		return false
	}
	for _, b := range g.Level.Obstacles {
		if b.Contains(pos) {
			return false
		}
	}
	for _, e := range g.Graph.Edges() {
		if utils.SegmentDistance(pos, e.From.Position, e.To.Position) < config.PathClearance {
			return false
		}
	}
	if len(g.Graph.Root()) == 1 && utils.Distance(pos, g.Graph.Root()[0].Position) < config.PathClearance {
		return false
	}
	for id := range g.ECS.Towers {
		if p, ok := g.ECS.Positions[id]; ok && utils.Distance(pos, p.Vec()) < config.TowerSpacing {
			return false
		}
	}
	return true
}

func (g *Game) createTowerEntity(def *defs.BuildableDefinition, pos utils.Vec3) types.EntityID {
	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{X: pos.X, Y: pos.Y, Z: pos.Z}
	g.ECS.Towers[id] = component.NewTower(def)
	render := &component.Renderable{Radius: float32(config.TowerRadius), HasStroke: true}
	g.ECS.Renderables[id] = render

	switch def.Kind {
	case defs.KindTurret:
		g.ECS.Turrets[id] = &component.Turret{
			RotationSpeed: def.Turret.RotationSpeed,
			Policy:        def.Turret.Targeting,
		}
		render.Color = config.ElementColors[def.Turret.Element]
		g.CombatSystem.Register(id)
	case defs.KindZone:
		g.ECS.Zones[id] = &component.Zone{
			Element:     def.Zone.Element,
			ElementTime: def.Zone.ElementTime,
			Radius:      def.Radius(),
			Inside:      make(map[types.EntityID]bool),
		}
		render.Color = config.ElementColors[def.Zone.Element]
	case defs.KindSlower:
		g.ECS.Slowers[id] = &component.Slower{
			Multiplier: def.Slower.Multiplier,
			Radius:     def.Radius(),
			Inside:     make(map[types.EntityID]bool),
		}
		render.Color = config.ZoneColor
	}
	return id
}

// SellTower removes a buildable and refunds its sell value.
func (g *Game) SellTower(id types.EntityID) error {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return ErrNoSuchTower
	}
	g.AreaAttackSystem.Release(id)
	g.AuraSystem.Release(id)
	g.PlayerSystem.Earn(tower.Def.SellValue)
	g.removeEntity(id)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: event.TowerData{Tower: id, DefID: tower.DefID}})
	return nil
}

// UpgradeCost returns the price of the next level of an upgrade.
func (g *Game) UpgradeCost(id types.EntityID, u defs.UpgradeType) (currency.Currency, error) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return currency.Currency{}, ErrNoSuchTower
	}
	path, ok := tower.Def.Upgrade(u)
	if !ok {
		return currency.Currency{}, ErrNoUpgrade
	}
	if tower.IsUpgradeMax(u) {
		return currency.Currency{}, ErrMaxUpgrade
	}
	return path.CostFor(tower.UpgradeLevel(u) + 1), nil
}

// TryUpgrade buys the next level of an upgrade path.
func (g *Game) TryUpgrade(id types.EntityID, u defs.UpgradeType) error {
	if g.Ended() {
		return ErrGameEnded
	}
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return ErrNoSuchTower
	}
	path, ok := tower.Def.Upgrade(u)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNoUpgrade, u, tower.DefID)
	}
	if tower.IsUpgradeMax(u) {
		return ErrMaxUpgrade
	}
	cost := path.CostFor(tower.UpgradeLevel(u) + 1)
	if !g.PlayerSystem.Spend(cost) {
		return fmt.Errorf("%w: upgrade costs %s", ErrInsufficientFunds, cost)
	}
	tower.Upgrades[u]++

	if u == defs.UpgradeVisionRadius {
		radius := tower.Value(defs.UpgradeVisionRadius, tower.Def.VisionRadius) / 2
		if zone, isZone := g.ECS.Zones[id]; isZone {
			zone.Radius = radius
		}
		if slower, isSlower := g.ECS.Slowers[id]; isSlower {
			slower.Radius = radius
		}
		g.CombatSystem.Scan(id)
	}
	g.EventDispatcher.Dispatch(event.Event{
		Type: event.TowerUpgraded,
		Data: event.TowerData{Tower: id, DefID: tower.DefID, UpgradeLevel: tower.Upgrades[u]},
	})
	return nil
}

// TowerAt returns the buildable whose footprint covers pos.
func (g *Game) TowerAt(pos utils.Vec3) (types.EntityID, bool) {
	for _, id := range entity.SortedIDs(g.ECS.Towers) {
		if utils.Distance(pos, g.ECS.Positions[id].Vec()) <= config.TowerRadius {
			return id, true
		}
	}
	return 0, false
}
