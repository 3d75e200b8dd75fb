// internal/component/status_effect.go
package component

import (
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
)

// ModifierHolder tracks the elements applied to an entity. Instant entries
// are stacks with no timer; timed entries count down.
type ModifierHolder struct {
	Instant []defs.Element
	Timed   map[defs.Element]float64

	// Notify is called on every presence change reported by Remove or Sync.
	Notify func(element defs.Element, present bool)

	present map[defs.Element]bool
}

func NewModifierHolder() *ModifierHolder {
	h := &ModifierHolder{
		Timed:   make(map[defs.Element]float64, len(defs.Elements)),
		present: make(map[defs.Element]bool, len(defs.Elements)),
	}
	for _, e := range defs.Elements {
		h.Timed[e] = 0
		h.present[e] = false
	}
	return h
}

// AddInstant pushes one stack of e.
func (h *ModifierHolder) AddInstant(e defs.Element) {
	h.Instant = append(h.Instant, e)
}

// AddTimed extends the remaining time of e.
func (h *ModifierHolder) AddTimed(e defs.Element, seconds float64) {
	if seconds <= 0 {
		return
	}
	h.Timed[e] += seconds
}

// Has reports whether e is present as a stack or with time left.
func (h *ModifierHolder) Has(e defs.Element) bool {
	return h.Timed[e] > 0 || h.InstantCount(e) > 0
}

// InstantCount returns the number of instant stacks of e.
func (h *ModifierHolder) InstantCount(e defs.Element) int {
	n := 0
	for _, el := range h.Instant {
		if el == e {
			n++
		}
	}
	return n
}

// RemoveInstant drops one stack of e. Presence changes are picked up by
// the next Sync.
func (h *ModifierHolder) RemoveInstant(e defs.Element) bool {
	for i, el := range h.Instant {
		if el == e {
			h.Instant = append(h.Instant[:i], h.Instant[i+1:]...)
			return true
		}
	}
	return false
}

// Remove clears every stack and the timer of e, notifying if it was
// present.
func (h *ModifierHolder) Remove(e defs.Element) {
	kept := h.Instant[:0]
	for _, el := range h.Instant {
		if el != e {
			kept = append(kept, el)
		}
	}
	h.Instant = kept
	h.Timed[e] = 0
	if h.present[e] {
		h.present[e] = false
		h.notify(e, false)
	}
}

// DecayRate returns how fast the timer of e runs down right now.
func (h *ModifierHolder) DecayRate(e defs.Element) float64 {
	switch {
	case e == defs.Electricity && h.Has(defs.Water):
		return config.ElectricityWaterDecay
	case e == defs.Acid && h.Has(defs.Water):
		return config.AcidWaterDecay
	}
	return 1
}

// Decay counts every timer down by dt, clamped at zero.
func (h *ModifierHolder) Decay(dt float64) {
	rates := make(map[defs.Element]float64, len(defs.Elements))
	for _, e := range defs.Elements {
		rates[e] = h.DecayRate(e)
	}
	for _, e := range defs.Elements {
		remaining := h.Timed[e] - dt*rates[e]
		if remaining < 0 {
			remaining = 0
		}
		h.Timed[e] = remaining
	}
}

// Sync compares presence with the last known state and notifies once per
// change.
func (h *ModifierHolder) Sync() {
	for _, e := range defs.Elements {
		now := h.Has(e)
		if now == h.present[e] {
			continue
		}
		h.present[e] = now
		h.notify(e, now)
	}
}

// IceStacks counts instant Ice plus one for a running Ice timer.
func (h *ModifierHolder) IceStacks() int {
	stacks := h.InstantCount(defs.Ice)
	if h.Timed[defs.Ice] > 0 {
		stacks++
	}
	return stacks
}

func (h *ModifierHolder) notify(e defs.Element, present bool) {
	if h.Notify != nil {
		h.Notify(e, present)
	}
}
