// internal/component/tower.go
package component

import (
	"go-elemental-td/internal/defs"
)

// Tower is any placed buildable.
type Tower struct {
	DefID     string
	Def       *defs.BuildableDefinition
	Upgrades  map[defs.UpgradeType]int
	KillCount int
}

func NewTower(def *defs.BuildableDefinition) *Tower {
	return &Tower{DefID: def.ID, Def: def, Upgrades: make(map[defs.UpgradeType]int)}
}

// UpgradeLevel returns how many times t has been bought.
func (t *Tower) UpgradeLevel(u defs.UpgradeType) int { return t.Upgrades[u] }

// HasUpgrade reports whether t was bought at least once.
func (t *Tower) HasUpgrade(u defs.UpgradeType) bool { return t.Upgrades[u] > 0 }

// Value returns the current value of an upgradeable stat, or fallback when
// the tower has never bought that upgrade.
func (t *Tower) Value(u defs.UpgradeType, fallback float64) float64 {
	path, ok := t.Def.Upgrade(u)
	if !ok || !t.HasUpgrade(u) {
		return fallback
	}
	return path.ValueFor(t.Upgrades[u])
}

// IsUpgradeMax reports whether no further level of u can be bought.
func (t *Tower) IsUpgradeMax(u defs.UpgradeType) bool {
	path, ok := t.Def.Upgrade(u)
	if !ok {
		return true
	}
	return t.Upgrades[u] >= path.MaxUpgrades()
}

// TotalUpgrades is the sum of every upgrade level bought.
func (t *Tower) TotalUpgrades() int {
	n := 0
	for _, lvl := range t.Upgrades {
		n += lvl
	}
	return n
}
