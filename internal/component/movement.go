// internal/component/movement.go
package component

import (
	"go-elemental-td/pkg/pathgraph"
	"go-elemental-td/pkg/utils"
)

// Position is a point in world space. Y is up.
type Position struct {
	X, Y, Z float64
}

func (p *Position) Vec() utils.Vec3 { return utils.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

func (p *Position) Set(v utils.Vec3) { p.X, p.Y, p.Z = v.X, v.Y, v.Z }

// PathWalker moves an entity along a path graph.
type PathWalker struct {
	Target       *pathgraph.Node
	SegmentStart utils.Vec3
	Speed        float64 // world units per second before multipliers
	RotateSpeed  float64
	Heading      float64 // yaw in radians

	DistanceFromStart float64
	DistanceFromEnd   float64

	Multipliers MultiplierSet
	Finished    bool
}

// EffectiveSpeed is the base speed scaled by every active multiplier.
func (w *PathWalker) EffectiveSpeed() float64 {
	return w.Speed * w.Multipliers.Product()
}

type multiplier struct {
	source string
	value  float64
}

// MultiplierSet is a multiset of speed multipliers tagged by source. Equal
// values from the same source are tracked separately, so two overlapping
// slow zones need two removals.
type MultiplierSet struct {
	entries []multiplier
}

// Add records one more multiplier for source.
func (m *MultiplierSet) Add(source string, value float64) {
	m.entries = append(m.entries, multiplier{source, value})
}

// Remove drops a single entry matching source and value exactly. It
// reports whether one was found.
func (m *MultiplierSet) Remove(source string, value float64) bool {
	for i, e := range m.entries {
		if e.source == source && e.value == value {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Set replaces every entry of source with a single value.
func (m *MultiplierSet) Set(source string, value float64) {
	m.Clear(source)
	m.Add(source, value)
}

// Clear drops every entry of source.
func (m *MultiplierSet) Clear(source string) {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.source != source {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

// Get returns the combined multiplier of one source, 1 if absent.
func (m *MultiplierSet) Get(source string) float64 {
	p := 1.0
	for _, e := range m.entries {
		if e.source == source {
			p *= e.value
		}
	}
	return p
}

// Product multiplies every entry together. An empty set is 1.
func (m *MultiplierSet) Product() float64 {
	p := 1.0
	for _, e := range m.entries {
		p *= e.value
	}
	return p
}

func (m *MultiplierSet) Len() int { return len(m.entries) }
