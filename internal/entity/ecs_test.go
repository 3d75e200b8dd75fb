package entity

import (
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/types"
)

func TestResolveOnlySetsPresentCapabilities(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{}
	ecs.Modifiers[id] = component.NewModifierHolder()

	caps := ecs.Resolve(id)
	if caps.Damageable != nil {
		t.Error("entity without health must not be damageable")
	}
	if caps.Modifiers == nil {
		t.Error("modifier holder should be resolved")
	}
	if caps.Walker != nil {
		t.Error("entity without walker must not expose one")
	}
	if stored, ok := ecs.CapabilitiesOf(id); !ok || stored != caps {
		t.Error("capabilities should be stored")
	}
}

func TestRemoveEntity(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{}
	ecs.Healths[id] = component.NewHealth(10)
	ecs.Walkers[id] = &component.PathWalker{}
	ecs.Resolve(id)

	ecs.RemoveEntity(id)
	if ecs.Exists(id) || len(ecs.Healths) != 0 || len(ecs.Walkers) != 0 || len(ecs.Caps) != 0 {
		t.Fatal("components left behind")
	}
}

func TestSortedIDs(t *testing.T) {
	m := map[types.EntityID]int{5: 0, 1: 0, 3: 0}
	got := SortedIDs(m)
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("SortedIDs = %v", got)
	}
}
