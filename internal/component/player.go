// internal/component/player.go
package component

import "go-elemental-td/pkg/currency"

// Player holds the lives, money and speed setting of the person playing.
type Player struct {
	Lives     int
	Currency  currency.Currency
	PlayState PlayState
}
