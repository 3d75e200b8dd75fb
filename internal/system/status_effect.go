// internal/system/status_effect.go
package system

import (
	"math"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/schedule"
	"go-elemental-td/internal/types"
)

// StatusEffectSystem runs element decay and interaction rules. Continuous
// rules run every frame; the tick rules run on the scheduler every
// ModifierTickInterval seconds per entity.
type StatusEffectSystem struct {
	ecs        *entity.ECS
	scheduler  *schedule.Scheduler
	dispatcher *event.Dispatcher
}

func NewStatusEffectSystem(ecs *entity.ECS, scheduler *schedule.Scheduler, dispatcher *event.Dispatcher) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs, scheduler: scheduler, dispatcher: dispatcher}
}

// Register wires presence notifications for a holder and starts its tick.
// The tick task is owned by the entity and dies with it.
func (s *StatusEffectSystem) Register(id types.EntityID, holder *component.ModifierHolder) {
	holder.Notify = func(e defs.Element, present bool) {
		t := event.ElementRemoved
		if present {
			t = event.ElementAdded
		}
		data := event.ElementData{Entity: id, Element: e, Present: present}
		s.dispatcher.Dispatch(event.Event{Type: t, Data: data})
		s.dispatcher.Dispatch(event.Event{Type: event.StatusChanged, Data: data})
	}
	s.scheduler.Every(id, config.ModifierTickInterval, func() { s.Tick(id) })
}

func (s *StatusEffectSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Modifiers) {
		holder := s.ecs.Modifiers[id]
		holder.Decay(deltaTime)
		s.applyContinuous(id, holder)
		holder.Sync()
	}
}

func (s *StatusEffectSystem) applyContinuous(id types.EntityID, h *component.ModifierHolder) {
	if h.Has(defs.Water) {
		h.Remove(defs.Fire)
	}
	if h.Has(defs.Ground) {
		h.Remove(defs.Electricity)
	}

	caps, ok := s.ecs.CapabilitiesOf(id)
	if !ok || caps.Walker == nil {
		return
	}
	mult := &caps.Walker.Multipliers
	if h.Has(defs.Ice) {
		mult.Set(config.MultiplierIce, IceMultiplier(h.IceStacks(), h.Has(defs.Water)))
	} else {
		mult.Clear(config.MultiplierIce)
	}
	if h.Has(defs.Electricity) {
		mult.Set(config.MultiplierElectricity, 0)
	} else {
		mult.Clear(config.MultiplierElectricity)
	}
}

// IceMultiplier is the speed factor for a number of ice stacks. Stacks
// saturate at MaxIceStacks.
func IceMultiplier(stacks int, wet bool) float64 {
	if stacks > config.MaxIceStacks {
		stacks = config.MaxIceStacks
	}
	m := math.Pow(config.IceSlowFactor, float64(stacks))
	if wet {
		m *= config.WaterAmplification
	}
	return m
}

// Tick applies the periodic interaction rules to one entity.
func (s *StatusEffectSystem) Tick(id types.EntityID) {
	h, ok := s.ecs.Modifiers[id]
	if !ok {
		return
	}

	// Ice drinks water.
	if h.Has(defs.Ice) && h.Has(defs.Water) {
		if !h.RemoveInstant(defs.Water) {
			h.Timed[defs.Water] = math.Max(0, h.Timed[defs.Water]-config.WaterDrinkTickMultiple*config.ModifierTickInterval)
		}
	}

	switch {
	case h.Has(defs.Fire) && h.Has(defs.Ice):
		water := h.Timed[defs.Ice] + float64(h.InstantCount(defs.Ice))*config.IceToWaterPerStack
		h.Remove(defs.Fire)
		h.Remove(defs.Ice)
		h.AddTimed(defs.Water, water)
	case h.Has(defs.Fire):
		ApplyDamage(s.ecs, id, config.FireTickDamage, 0, component.CauseFire)
	}
}
