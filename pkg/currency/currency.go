// Package currency implements the player's money: a value in [0, 1000)
// paired with a magnitude unit (K, M, B, T). Every operation renormalizes.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit is the magnitude of a Currency value.
type Unit uint8

const (
	None Unit = iota
	Thousand
	Million
	Billion
	Trillion
)

// MaxUnit is the largest unit; values saturate there.
const MaxUnit = Trillion

var unitChars = map[Unit]string{
	None:     "",
	Thousand: "K",
	Million:  "M",
	Billion:  "B",
	Trillion: "T",
}

func (u Unit) String() string {
	return unitChars[u]
}

// ParseUnit maps a display char back to its unit.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for u, c := range unitChars {
		if c == s {
			return u, true
		}
	}
	return None, false
}

// Currency is an immutable normalized (value, unit) pair.
type Currency struct {
	value float64
	unit  Unit
}

// New returns the currency for an absolute whole amount.
func New(amount int64) Currency {
	return FromAmount(float64(amount))
}

// FromAmount returns the currency for an absolute amount.
func FromAmount(amount float64) Currency {
	c := Currency{value: amount, unit: None}
	c.normalize()
	return c
}

// NewWithUnit builds a currency from an already-scaled value.
func NewWithUnit(value float64, unit Unit) Currency {
	if unit > MaxUnit {
		unit = MaxUnit
	}
	c := Currency{value: value, unit: unit}
	c.normalize()
	return c
}

func (c *Currency) normalize() {
	if math.IsNaN(c.value) {
		c.value = 0
	}
	for c.value >= 1000 && c.unit < MaxUnit {
		c.value /= 1000
		c.unit++
	}
	for c.value < 0 && c.unit > None {
		c.value += 1000
		c.unit--
	}
	if c.value >= 1000 && c.unit == MaxUnit {
		c.value = 999
	}
	if c.value < 0 && c.unit == None {
		c.value = 0
	}
}

// Value returns the scaled value in [0, 1000).
func (c Currency) Value() float64 { return c.value }

// Unit returns the magnitude unit.
func (c Currency) Unit() Unit { return c.unit }

// Amount returns the absolute amount.
func (c Currency) Amount() float64 {
	return c.value * math.Pow(1000, float64(c.unit))
}

func (c Currency) Add(o Currency) Currency { return FromAmount(c.Amount() + o.Amount()) }
func (c Currency) Sub(o Currency) Currency { return FromAmount(c.Amount() - o.Amount()) }
func (c Currency) Mul(o Currency) Currency { return FromAmount(c.Amount() * o.Amount()) }

// Div divides by o. Division by zero leaves c unchanged.
func (c Currency) Div(o Currency) Currency {
	if o.Amount() == 0 {
		return c
	}
	return FromAmount(c.Amount() / o.Amount())
}

func (c Currency) AddInt(n int64) Currency { return FromAmount(c.Amount() + float64(n)) }

// Scale multiplies by a plain factor.
func (c Currency) Scale(f float64) Currency { return FromAmount(c.Amount() * f) }

// Cmp returns -1, 0 or 1.
func (c Currency) Cmp(o Currency) int {
	a, b := c.Amount(), o.Amount()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c Currency) Less(o Currency) bool  { return c.Cmp(o) < 0 }
func (c Currency) Equal(o Currency) bool { return c.Cmp(o) == 0 }

// CanAfford reports whether c covers cost.
func (c Currency) CanAfford(cost Currency) bool { return c.Cmp(cost) >= 0 }

// IsZero reports whether the amount is zero.
func (c Currency) IsZero() bool { return c.value == 0 }

// displayEpsilon absorbs float error from unit scaling before truncation.
const displayEpsilon = 1e-9

// String renders the display value: whole numbers without a unit, one
// decimal place otherwise ("150", "1.5K").
func (c Currency) String() string {
	if c.unit == None {
		return strconv.FormatFloat(math.Floor(c.value+displayEpsilon), 'f', 0, 64)
	}
	return strconv.FormatFloat(math.Floor(c.value*10+displayEpsilon)/10, 'f', 1, 64) + c.unit.String()
}

// Parse accepts "150", "1.5K", "2M".
func Parse(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Currency{}, nil
	}
	unit := None
	last := s[len(s)-1:]
	if u, ok := ParseUnit(last); ok && last != "" {
		unit = u
		s = strings.TrimSpace(s[:len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Currency{}, fmt.Errorf("invalid currency %q: %w", s, err)
	}
	return NewWithUnit(v, unit), nil
}

// UnmarshalYAML accepts a number, a display string or a {value, unit} map.
func (c *Currency) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.MappingNode:
		var raw struct {
			Value float64 `yaml:"value"`
			Unit  string  `yaml:"unit"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode currency: %w", err)
		}
		unit, ok := ParseUnit(raw.Unit)
		if !ok {
			return fmt.Errorf("unknown currency unit %q", raw.Unit)
		}
		*c = NewWithUnit(raw.Value, unit)
		return nil
	}
	return fmt.Errorf("unexpected yaml node for currency at line %d", node.Line)
}

// MarshalYAML writes the display form.
func (c Currency) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
