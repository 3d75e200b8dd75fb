package schedule

import (
	"testing"

	"go-elemental-td/internal/types"
)

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	fired := 0
	s.After(1, 1.0, func() { fired++ })

	s.Advance(0.5)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	s.Advance(0.5)
	s.Advance(5)
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", s.Pending())
	}
}

func TestEveryCatchesUpOnLargeStep(t *testing.T) {
	s := New()
	var at []float64
	s.Every(1, 0.5, func() { at = append(at, s.Now()) })

	s.Advance(1.6)
	want := []float64{0.5, 1.0, 1.5}
	if len(at) != len(want) {
		t.Fatalf("fired at %v, want %v", at, want)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("firing %d at %v, want %v", i, at[i], want[i])
		}
	}
	if s.Now() != 1.6 {
		t.Errorf("Now() = %v, want 1.6", s.Now())
	}
}

func TestOrderIsDueThenScheduled(t *testing.T) {
	s := New()
	var order []string
	s.After(1, 1, func() { order = append(order, "b") })
	s.After(2, 0.5, func() { order = append(order, "a") })
	s.After(3, 1, func() { order = append(order, "c") })
	s.Advance(2)

	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order = %v, want [a b c]", order)
	}
}

func TestCancelOwner(t *testing.T) {
	s := New()
	fired := map[types.EntityID]int{}
	for _, owner := range []types.EntityID{1, 2} {
		owner := owner
		s.Every(owner, 0.5, func() { fired[owner]++ })
		s.After(owner, 0.75, func() { fired[owner] += 10 })
	}
	s.CancelOwner(1)
	if s.PendingFor(1) != 0 {
		t.Fatalf("owner 1 still has %d tasks", s.PendingFor(1))
	}
	s.Advance(1)
	if fired[1] != 0 {
		t.Errorf("cancelled owner fired %d", fired[1])
	}
	if fired[2] != 12 {
		t.Errorf("owner 2 fired %d, want 12", fired[2])
	}
}

func TestCallbackCanCancelItself(t *testing.T) {
	s := New()
	fired := 0
	var id TaskID
	id = s.Every(1, 0.25, func() {
		fired++
		if fired == 2 {
			s.Cancel(id)
		}
	})
	s.Advance(2)
	if fired != 2 {
		t.Fatalf("fired %d times, want 2", fired)
	}
}

func TestCallbackCanSchedule(t *testing.T) {
	s := New()
	var chain []float64
	s.After(1, 0.5, func() {
		chain = append(chain, s.Now())
		s.After(1, 0.25, func() { chain = append(chain, s.Now()) })
	})
	s.Advance(1)
	if len(chain) != 2 || chain[1] != 0.75 {
		t.Fatalf("chain = %v, want [0.5 0.75]", chain)
	}
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	s := New()
	if id := s.Every(1, 0, func() {}); id != 0 {
		t.Fatalf("got id %d, want 0", id)
	}
}
