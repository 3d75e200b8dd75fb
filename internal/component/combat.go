package component

import "go-elemental-td/internal/types"

// DamageCause records what last hurt an entity.
type DamageCause int

const (
	CauseNone DamageCause = iota
	CauseAttack
	CauseFire
	CauseReachedEnd
)

// Damageable is anything that can lose health.
type Damageable interface {
	Current() float64
	Maximum() float64
	ApplyDamage(amount float64, dealer types.EntityID, cause DamageCause)
}

// Health is the default Damageable.
type Health struct {
	Value      float64
	Max        float64
	LastDealer types.EntityID
	Cause      DamageCause
}

func NewHealth(max float64) *Health {
	return &Health{Value: max, Max: max}
}

func (h *Health) Current() float64 { return h.Value }
func (h *Health) Maximum() float64 { return h.Max }

// ApplyDamage lowers health, clamped at zero. Negative amounts are ignored.
func (h *Health) ApplyDamage(amount float64, dealer types.EntityID, cause DamageCause) {
	if amount <= 0 || h.Value <= 0 {
		return
	}
	h.Value -= amount
	h.LastDealer = dealer
	h.Cause = cause
	if h.Value < 0 {
		h.Value = 0
	}
}

// Dead reports whether health has run out.
func (h *Health) Dead() bool { return h.Value <= 0 }
