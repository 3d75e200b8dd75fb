package component

import "go-elemental-td/pkg/currency"

// Enemy carries the template data an enemy was spawned from.
type Enemy struct {
	DefID          string
	Reward         currency.Currency
	AcidMultiplier float64
	Round          int
	ReachedEnd     bool
}
