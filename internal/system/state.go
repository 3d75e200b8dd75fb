// internal/system/state.go
package system

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
)

// StateSystem keeps the player's play state in step with the rounds:
// a starting round leaves Building, a finished one returns to it unless
// rounds start on their own.
type StateSystem struct {
	ecs       *entity.ECS
	player    *PlayerSystem
	autoStart bool
}

func NewStateSystem(ecs *entity.ECS, player *PlayerSystem, eventDispatcher *event.Dispatcher, autoStart bool) *StateSystem {
	ss := &StateSystem{ecs: ecs, player: player, autoStart: autoStart}
	eventDispatcher.SubscribeAll(ss, event.WaveStarted, event.WaveEnded, event.GameEnded)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveStarted:
		if s.ecs.Player.PlayState == component.Building {
			s.player.SetPlayState(component.Play)
		}
	case event.WaveEnded:
		if !s.autoStart {
			s.player.SetPlayState(component.Building)
		}
	case event.GameEnded:
		s.player.SetPlayState(component.Building)
	}
}

// Current returns the play state.
func (s *StateSystem) Current() component.PlayState {
	return s.ecs.Player.PlayState
}
