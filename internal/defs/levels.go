// internal/defs/levels.go
package defs

import (
	"fmt"
	"math"

	"go-elemental-td/pkg/pathgraph"
	"go-elemental-td/pkg/utils"
)

// Box is an axis-aligned obstacle on the ground plane. It blocks line of
// sight but not walking.
type Box struct {
	Min utils.Vec3 `yaml:"min"`
	Max utils.Vec3 `yaml:"max"`
}

// LevelDefinition is the authored layout of one map.
type LevelDefinition struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Wave      string            `yaml:"wave"`
	Path      []*pathgraph.Node `yaml:"path"`
	Obstacles []Box             `yaml:"obstacles,omitempty"`
	Bounds    Box               `yaml:"bounds"`
}

func (l *LevelDefinition) Validate() error {
	if len(l.Path) == 0 {
		return fmt.Errorf("level %q: empty path", l.ID)
	}
	for i, b := range l.Obstacles {
		if b.Max.X < b.Min.X || b.Max.Z < b.Min.Z {
			return fmt.Errorf("level %q: obstacle %d has max below min", l.ID, i)
		}
	}
	return nil
}

// BuildGraph turns the authored path into a graph. Each call builds from the
// same nodes, so call it once per level start.
func (l *LevelDefinition) BuildGraph() *pathgraph.Graph {
	return pathgraph.Build(l.Path)
}

// Contains reports whether p lies within the box on the ground plane.
func (b Box) Contains(p utils.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the middle of the box.
func (b Box) Center() utils.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the area worth showing: the authored bounds, or the box
// around the path and obstacles when no bounds are set.
func (l *LevelDefinition) Extent() (utils.Vec3, utils.Vec3) {
	if l.Bounds.Max != l.Bounds.Min {
		return l.Bounds.Min, l.Bounds.Max
	}
	lo := utils.Vec3{X: math.Inf(1), Z: math.Inf(1)}
	hi := utils.Vec3{X: math.Inf(-1), Z: math.Inf(-1)}
	grow := func(p utils.Vec3) {
		lo.X, lo.Z = math.Min(lo.X, p.X), math.Min(lo.Z, p.Z)
		hi.X, hi.Z = math.Max(hi.X, p.X), math.Max(hi.Z, p.Z)
	}
	var walk func(nodes []*pathgraph.Node)
	walk = func(nodes []*pathgraph.Node) {
		for _, n := range nodes {
			grow(n.Position)
			walk(n.Branch)
		}
	}
	walk(l.Path)
	for _, b := range l.Obstacles {
		grow(b.Min)
		grow(b.Max)
	}
	if math.IsInf(lo.X, 1) {
		return utils.Vec3{}, utils.Vec3{}
	}
	return lo, hi
}
