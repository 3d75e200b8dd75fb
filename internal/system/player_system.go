// internal/system/player_system.go
package system

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/pkg/currency"
)

// PlayerSystem owns the player's lives, money and play state, and pays out
// rewards for destroyed enemies.
type PlayerSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewPlayerSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *PlayerSystem {
	s := &PlayerSystem{ecs: ecs, dispatcher: dispatcher}
	dispatcher.Subscribe(event.EnemyDestroyed, s)
	return s
}

// Reset sets the starting lives and money.
func (s *PlayerSystem) Reset(lives int, money currency.Currency) {
	p := s.ecs.Player
	p.Lives = lives
	p.Currency = money
	p.PlayState = component.Building
	s.dispatcher.Dispatch(event.Event{Type: event.LivesChanged, Data: event.LivesData{Lives: lives}})
	s.dispatcher.Dispatch(event.Event{Type: event.CurrencyChanged, Data: event.CurrencyData{Currency: money}})
}

// OnEvent rewards kills. Enemies that walked off the end pay nothing.
func (s *PlayerSystem) OnEvent(e event.Event) {
	if e.Type != event.EnemyDestroyed {
		return
	}
	data, ok := e.Data.(event.EnemyDestroyedData)
	if !ok || data.ReachedEnd {
		return
	}
	if enemy, isEnemy := s.ecs.Enemies[data.Enemy]; isEnemy {
		s.Earn(enemy.Reward)
	}
	if tower, isTower := s.ecs.Towers[data.Killer]; isTower {
		tower.KillCount++
	}
}

func (s *PlayerSystem) Earn(amount currency.Currency) {
	p := s.ecs.Player
	p.Currency = p.Currency.Add(amount)
	s.dispatcher.Dispatch(event.Event{Type: event.CurrencyChanged, Data: event.CurrencyData{Currency: p.Currency}})
}

// Spend takes cost from the player if they can afford it.
func (s *PlayerSystem) Spend(cost currency.Currency) bool {
	p := s.ecs.Player
	if !p.Currency.CanAfford(cost) {
		return false
	}
	p.Currency = p.Currency.Sub(cost)
	s.dispatcher.Dispatch(event.Event{Type: event.CurrencyChanged, Data: event.CurrencyData{Currency: p.Currency}})
	return true
}

// LoseLife removes one life and returns how many are left, never below
// zero.
func (s *PlayerSystem) LoseLife() int {
	p := s.ecs.Player
	if p.Lives > 0 {
		p.Lives--
	}
	s.dispatcher.Dispatch(event.Event{Type: event.LivesChanged, Data: event.LivesData{Lives: p.Lives, Delta: -1}})
	return p.Lives
}

// SetPlayState changes the speed setting, dispatching on change.
func (s *PlayerSystem) SetPlayState(state component.PlayState) {
	p := s.ecs.Player
	if p.PlayState == state {
		return
	}
	p.PlayState = state
	s.dispatcher.Dispatch(event.Event{Type: event.PlayStateChanged, Data: state})
}
