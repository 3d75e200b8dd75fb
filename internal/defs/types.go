// internal/defs/types.go
package defs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Element is an elemental status an enemy can carry.
type Element uint8

const (
	Water Element = iota
	Ice
	Fire
	Acid
	Electricity
	Ground
)

// Elements lists every element in declaration order.
var Elements = []Element{Water, Ice, Fire, Acid, Electricity, Ground}

var elementNames = map[Element]string{
	Water:       "water",
	Ice:         "ice",
	Fire:        "fire",
	Acid:        "acid",
	Electricity: "electricity",
	Ground:      "ground",
}

func (e Element) String() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return fmt.Sprintf("element(%d)", uint8(e))
}

// ParseElement maps a name such as "ice" to its Element.
func ParseElement(s string) (Element, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for e, name := range elementNames {
		if name == s {
			return e, true
		}
	}
	return 0, false
}

func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	parsed, ok := ParseElement(node.Value)
	if !ok {
		return fmt.Errorf("unknown element %q at line %d", node.Value, node.Line)
	}
	*e = parsed
	return nil
}

func (e Element) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// TargetPolicy decides which enemy in range a turret aims at.
type TargetPolicy string

const (
	// TargetFirst picks the enemy furthest along the path that is in sight.
	TargetFirst TargetPolicy = "first"
	// TargetClosest picks the nearest enemy in sight.
	TargetClosest TargetPolicy = "closest"
	// TargetClosestNoSight picks the nearest enemy, ignoring obstacles.
	TargetClosestNoSight TargetPolicy = "closest_no_sight"
)

// Valid reports whether p is a known policy.
func (p TargetPolicy) Valid() bool {
	switch p {
	case TargetFirst, TargetClosest, TargetClosestNoSight:
		return true
	}
	return false
}

// BuildableKind selects which behaviour a buildable has once placed.
type BuildableKind string

const (
	KindTurret BuildableKind = "turret"
	KindZone   BuildableKind = "zone"
	KindSlower BuildableKind = "slower"
)

// UpgradeType names an upgrade path.
type UpgradeType string

const (
	UpgradeDamageMultiplier UpgradeType = "damage_multiplier"
	UpgradeFireRate         UpgradeType = "fire_rate"
	UpgradeVisionRadius     UpgradeType = "vision_radius"
)
