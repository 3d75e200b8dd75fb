package interfaces

import (
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/utils"
)

// Game is the set of player commands a front end can issue.
type Game interface {
	StartRound() error
	TogglePlaySpeed()
	PlaceTower(defID string, pos utils.Vec3) (types.EntityID, error)
	SellTower(id types.EntityID) error
	TryUpgrade(id types.EntityID, u defs.UpgradeType) error
}
