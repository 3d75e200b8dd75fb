// internal/defs/towers.go
package defs

import (
	"fmt"
	"math"

	"go-elemental-td/pkg/currency"
)

// BuildableDefinition holds the static data for something the player can
// place. Exactly one of Turret, Zone and Slower is set, matching Kind.
type BuildableDefinition struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Kind         BuildableKind     `yaml:"kind"`
	Cost         currency.Currency `yaml:"cost"`
	SellValue    currency.Currency `yaml:"sell_value"`
	VisionRadius float64           `yaml:"vision_radius"`
	Hotkey       string            `yaml:"hotkey,omitempty"`

	Turret *TurretStats `yaml:"turret,omitempty"`
	Zone   *ZoneStats   `yaml:"zone,omitempty"`
	Slower *SlowerStats `yaml:"slower,omitempty"`

	Upgrades map[UpgradeType]*UpgradePath `yaml:"upgrades,omitempty"`
}

// TurretStats describes a turret that fires homing projectiles.
type TurretStats struct {
	Damage          float64      `yaml:"damage"`
	FireRate        float64      `yaml:"fire_rate"` // shots per second
	ProjectileSpeed float64      `yaml:"projectile_speed"`
	RotationSpeed   float64      `yaml:"rotation_speed"`
	Element         Element      `yaml:"element"`
	ElementTime     float64      `yaml:"element_time"`
	Targeting       TargetPolicy `yaml:"targeting"`
}

// ZoneStats describes an area that applies an element to enemies inside.
// ElementTime <= 0 keeps an instant stack on the enemy until it leaves.
type ZoneStats struct {
	Element     Element `yaml:"element"`
	ElementTime float64 `yaml:"element_time"`
}

// SlowerStats describes an area that scales enemy speed while inside.
type SlowerStats struct {
	Multiplier float64 `yaml:"multiplier"`
}

// UpgradePath pairs a value curve with a cost curve, both sampled at the
// upgrade level.
type UpgradePath struct {
	Values Curve `yaml:"values"`
	Costs  Curve `yaml:"costs"`
}

// MaxUpgrades is the time of the last cost key.
func (u *UpgradePath) MaxUpgrades() int {
	return int(u.Costs.LastTime())
}

// CostFor returns the cost of buying the given level.
func (u *UpgradePath) CostFor(level int) currency.Currency {
	return currency.New(int64(math.Round(u.Costs.Evaluate(float64(level)))))
}

// ValueFor returns the upgraded value at the given level.
func (u *UpgradePath) ValueFor(level int) float64 {
	return u.Values.Evaluate(float64(level))
}

// Upgrade returns the path for t, if the buildable has one.
func (d *BuildableDefinition) Upgrade(t UpgradeType) (*UpgradePath, bool) {
	u, ok := d.Upgrades[t]
	return u, ok && u != nil
}

// Radius is half the vision diameter.
func (d *BuildableDefinition) Radius() float64 {
	return d.VisionRadius / 2
}

// Validate checks that the kind and its stats agree.
func (d *BuildableDefinition) Validate() error {
	switch d.Kind {
	case KindTurret:
		if d.Turret == nil {
			return fmt.Errorf("buildable %q: kind turret needs turret stats", d.ID)
		}
		if d.Turret.Targeting == "" {
			d.Turret.Targeting = TargetClosest
		}
		if !d.Turret.Targeting.Valid() {
			return fmt.Errorf("buildable %q: unknown targeting %q", d.ID, d.Turret.Targeting)
		}
	case KindZone:
		if d.Zone == nil {
			return fmt.Errorf("buildable %q: kind zone needs zone stats", d.ID)
		}
	case KindSlower:
		if d.Slower == nil {
			return fmt.Errorf("buildable %q: kind slower needs slower stats", d.ID)
		}
	default:
		return fmt.Errorf("buildable %q: unknown kind %q", d.ID, d.Kind)
	}
	if d.VisionRadius <= 0 {
		return fmt.Errorf("buildable %q: vision_radius must be positive", d.ID)
	}
	return nil
}
