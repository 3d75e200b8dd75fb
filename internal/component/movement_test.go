package component

import (
	"math"
	"testing"
)

func TestMultiplierSetIsAMultiset(t *testing.T) {
	var m MultiplierSet
	m.Add("slower", 0.5)
	m.Add("slower", 0.5)
	m.Add("ice", 0.65)

	if got := m.Product(); math.Abs(got-0.5*0.5*0.65) > 1e-12 {
		t.Fatalf("Product() = %v", got)
	}
	if !m.Remove("slower", 0.5) {
		t.Fatal("expected one slower entry to be removed")
	}
	if got := m.Get("slower"); got != 0.5 {
		t.Fatalf("one slower entry should remain, got %v", got)
	}
	if m.Remove("slower", 0.4) {
		t.Fatal("removal must match the value exactly")
	}

	m.Set("ice", 0.2)
	m.Set("ice", 0.3)
	if got := m.Get("ice"); got != 0.3 {
		t.Fatalf("Set should replace, got %v", got)
	}
	m.Clear("ice")
	m.Clear("slower")
	if m.Len() != 0 || m.Product() != 1 {
		t.Fatalf("empty set should have product 1, got %v with %d entries", m.Product(), m.Len())
	}
}

func TestEffectiveSpeed(t *testing.T) {
	w := PathWalker{Speed: 4}
	w.Multipliers.Add("slower", 0.5)
	w.Multipliers.Set("electricity", 0)
	if got := w.EffectiveSpeed(); got != 0 {
		t.Fatalf("electricity should halt, got %v", got)
	}
	w.Multipliers.Clear("electricity")
	if got := w.EffectiveSpeed(); got != 2 {
		t.Fatalf("EffectiveSpeed() = %v, want 2", got)
	}
}
