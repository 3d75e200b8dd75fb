// internal/event/types.go
package event

import (
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/currency"
)

const (
	EnemySpawned     EventType = "EnemySpawned"
	EnemyDestroyed   EventType = "EnemyDestroyed"
	PathCompleted    EventType = "PathCompleted" // walker ran out of candidates
	ElementAdded     EventType = "ElementAdded"
	ElementRemoved   EventType = "ElementRemoved"
	StatusChanged    EventType = "StatusChanged"
	WaveStarted      EventType = "WaveStarted"
	WaveEnded        EventType = "WaveEnded"
	LivesChanged     EventType = "LivesChanged"
	CurrencyChanged  EventType = "CurrencyChanged"
	GameEnded        EventType = "GameEnded"
	TowerPlaced      EventType = "TowerPlaced"
	TowerRemoved     EventType = "TowerRemoved"
	TowerUpgraded    EventType = "TowerUpgraded"
	PlayStateChanged EventType = "PlayStateChanged"

	// Requests raised by the interface, handled by the game state.
	UpgradeRequested EventType = "UpgradeRequested"
	SellRequested    EventType = "SellRequested"
)

// EnemyDestroyedData describes a removed enemy. Killer is zero when the
// enemy was not killed by a buildable.
type EnemyDestroyedData struct {
	Enemy      types.EntityID
	Killer     types.EntityID
	ReachedEnd bool
}

// ElementData is the payload of ElementAdded, ElementRemoved and
// StatusChanged.
type ElementData struct {
	Entity  types.EntityID
	Element defs.Element
	Present bool
}

type WaveData struct {
	Round   int
	Enemies int
}

type LivesData struct {
	Lives int
	Delta int
}

type CurrencyData struct {
	Currency currency.Currency
}

// GameEndedData reports the outcome. Victory is false when lives ran out.
type GameEndedData struct {
	Victory bool
	Round   int
}

type TowerData struct {
	Tower        types.EntityID
	DefID        string
	UpgradeLevel int
}

// UpgradeRequest asks to buy the next level of an upgrade path. It is the
// payload of UpgradeRequested; SellRequested carries a bare tower id.
type UpgradeRequest struct {
	Tower   types.EntityID
	Upgrade defs.UpgradeType
}
