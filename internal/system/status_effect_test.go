package system

import (
	"math"
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/event"
	vec "go-elemental-td/pkg/utils"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestIceStacksCompound(t *testing.T) {
	tests := []struct {
		name  string
		water bool
		want  float64
	}{
		{"Dry", false, 0.65 * 0.65 * 0.65},
		{"Wet", true, 0.65 * 0.65 * 0.65 * 0.85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
			id := w.addEnemy(vec.Vec3{}, 10)
			h := w.ecs.Modifiers[id]
			for i := 0; i < 3; i++ {
				h.AddInstant(defs.Ice)
			}
			if tt.water {
				h.AddInstant(defs.Water)
			}
			s.Update(0)
			got := w.ecs.Walkers[id].EffectiveSpeed()
			if !approx(got, tt.want) {
				t.Fatalf("speed = %v, want %v", got, tt.want)
			}
		})
	}
	if !approx(IceMultiplier(3, false), 0.274625) {
		t.Errorf("IceMultiplier(3) = %v", IceMultiplier(3, false))
	}
}

func TestIceKeepsOtherMultipliers(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	walker := w.ecs.Walkers[id]
	walker.Multipliers.Add("slower", 0.5)
	w.ecs.Modifiers[id].AddTimed(defs.Ice, 1)

	s.Update(0)
	if got := walker.EffectiveSpeed(); !approx(got, 0.5*0.65) {
		t.Fatalf("speed = %v, want %v", got, 0.5*0.65)
	}
	// The timer runs out and only the slower remains.
	s.Update(2)
	if got := walker.EffectiveSpeed(); !approx(got, 0.5) {
		t.Fatalf("speed after ice = %v, want 0.5", got)
	}
}

func TestElectricityHaltsUntilGrounded(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	h := w.ecs.Modifiers[id]
	h.AddTimed(defs.Electricity, 5)
	h.AddInstant(defs.Ice)

	s.Update(0)
	if got := w.ecs.Walkers[id].EffectiveSpeed(); got != 0 {
		t.Fatalf("electrified speed = %v, want 0", got)
	}
	h.AddInstant(defs.Ground)
	s.Update(0)
	if h.Has(defs.Electricity) {
		t.Fatal("ground should remove electricity")
	}
	if got := w.ecs.Walkers[id].EffectiveSpeed(); !approx(got, 0.65) {
		t.Fatalf("speed = %v, want ice only", got)
	}
}

func TestWaterPutsOutFireImmediately(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	h := w.ecs.Modifiers[id]
	s.Register(id, h)

	h.AddTimed(defs.Fire, 3)
	s.Update(0)
	h.AddInstant(defs.Water)
	s.Update(0)

	if h.Has(defs.Fire) {
		t.Fatal("fire should be gone")
	}
	removed := 0
	for _, e := range w.recorder.Events {
		if data, ok := e.Data.(event.ElementData); ok && e.Type == event.ElementRemoved && data.Element == defs.Fire {
			removed++
		}
	}
	if removed != 1 {
		t.Fatalf("fire removed events = %d, want 1", removed)
	}
}

func TestFireAndIceTurnIntoWater(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	h := w.ecs.Modifiers[id]
	h.AddTimed(defs.Fire, 1)
	h.AddTimed(defs.Ice, 2)
	h.AddInstant(defs.Ice)

	s.Tick(id)

	if h.Has(defs.Fire) || h.Has(defs.Ice) {
		t.Fatal("fire and ice should both be removed")
	}
	if !approx(h.Timed[defs.Water], 3) {
		t.Fatalf("water = %v, want 3", h.Timed[defs.Water])
	}
	if hp := w.ecs.Healths[id].Value; hp != 10 {
		t.Fatalf("steam must not burn, health = %v", hp)
	}
}

func TestIceDrinksWater(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	h := w.ecs.Modifiers[id]
	h.AddTimed(defs.Ice, 5)
	h.AddInstant(defs.Water)
	h.AddTimed(defs.Water, 3)

	s.Tick(id)
	if h.InstantCount(defs.Water) != 0 || h.Timed[defs.Water] != 3 {
		t.Fatalf("first tick should take the instant stack, got %d / %v", h.InstantCount(defs.Water), h.Timed[defs.Water])
	}
	s.Tick(id)
	if !approx(h.Timed[defs.Water], 2) {
		t.Fatalf("second tick should take two tick lengths, got %v", h.Timed[defs.Water])
	}
}

func TestFireTicksOnSchedule(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.addEnemy(vec.Vec3{}, 10)
	h := w.ecs.Modifiers[id]
	s.Register(id, h)
	h.AddTimed(defs.Fire, 10)

	w.scheduler.Advance(1.0)

	health := w.ecs.Healths[id]
	if !approx(health.Value, 6) {
		t.Fatalf("health = %v, want 6 after two ticks", health.Value)
	}
	if health.Cause != component.CauseFire || health.LastDealer != 0 {
		t.Fatalf("fire damage has no dealer, got %v / %v", health.Cause, health.LastDealer)
	}

	w.scheduler.CancelOwner(id)
	w.scheduler.Advance(5)
	if !approx(health.Value, 6) {
		t.Fatal("cancelled entity kept ticking")
	}
}

func TestAcidScalesDamage(t *testing.T) {
	w := newTestWorld()
	id := w.addEnemy(vec.Vec3{}, 10)
	w.ecs.Enemies[id].AcidMultiplier = 2
	w.ecs.Modifiers[id].AddInstant(defs.Acid)

	ApplyDamage(w.ecs, id, 3, 0, component.CauseAttack)
	if hp := w.ecs.Healths[id].Value; hp != 4 {
		t.Fatalf("health = %v, want 4", hp)
	}
}

func TestMissingWalkerIsTolerated(t *testing.T) {
	w := newTestWorld()
	s := NewStatusEffectSystem(w.ecs, w.scheduler, w.dispatcher)
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{}
	w.ecs.Modifiers[id] = component.NewModifierHolder()
	w.ecs.Resolve(id)
	w.ecs.Modifiers[id].AddInstant(defs.Ice)
	w.ecs.Modifiers[id].AddInstant(defs.Fire)

	s.Update(0.1)
	s.Tick(id)
}
