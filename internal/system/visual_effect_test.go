package system

import (
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	vec "go-elemental-td/pkg/utils"
)

func TestAttackFlashFadesOut(t *testing.T) {
	w := newTestWorld()
	s := NewVisualEffectSystem(w.ecs)
	id := w.addEnemy(vec.Vec3{}, 10)

	ApplyDamage(w.ecs, id, 1, 0, component.CauseFire)
	if _, ok := w.ecs.DamageFlashes[id]; ok {
		t.Fatal("burn ticks should not flash")
	}

	ApplyDamage(w.ecs, id, 1, 0, component.CauseAttack)
	flash, ok := w.ecs.DamageFlashes[id]
	if !ok || flash.Intensity() != 1 {
		t.Fatalf("flash = %+v after a hit", flash)
	}
	s.Update(config.DamageFlashDuration / 2)
	if got := flash.Intensity(); got < 0.49 || got > 0.51 {
		t.Fatalf("intensity = %v halfway through", got)
	}
	s.Update(config.DamageFlashDuration)
	if _, ok := w.ecs.DamageFlashes[id]; ok {
		t.Fatal("flash should be gone")
	}
}

func TestFlashDroppedWithEntity(t *testing.T) {
	w := newTestWorld()
	s := NewVisualEffectSystem(w.ecs)
	id := w.addEnemy(vec.Vec3{}, 10)
	ApplyDamage(w.ecs, id, 1, 0, component.CauseAttack)

	delete(w.ecs.Positions, id)
	s.Update(0.01)
	if len(w.ecs.DamageFlashes) != 0 {
		t.Fatal("flash of a removed enemy should be dropped")
	}
}
