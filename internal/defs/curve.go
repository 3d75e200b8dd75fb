// internal/defs/curve.go
package defs

import (
	"fmt"
	"log"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"gopkg.in/yaml.v3"
)

// Keyframe is one authored point of a Curve.
type Keyframe struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// Interpolation between keyframes.
type Interpolation string

const (
	Linear Interpolation = "linear"
	Smooth Interpolation = "smooth" // cubic Hermite with automatic tangents
)

// Curve maps a time to a value. It is either a list of keyframes or a tengo
// script that assigns `value` from the input variable `t`, for example
//
//	script: "math := import(\"math\"); value = math.pow(t, 2)"
//
// Keyframe curves clamp outside their first and last key.
type Curve struct {
	Keys          []Keyframe    `yaml:"keys,omitempty"`
	Interpolation Interpolation `yaml:"interpolation,omitempty"`
	Script        string        `yaml:"script,omitempty"`
	// End is the last meaningful time of a script curve.
	End float64 `yaml:"end,omitempty"`

	compiled *tengo.Compiled
	failed   bool
}

// ConstantCurve returns a curve that is v everywhere.
func ConstantCurve(v float64) Curve {
	return Curve{Keys: []Keyframe{{Time: 0, Value: v}}}
}

// LinearCurve returns a curve through the given (time, value) pairs.
func LinearCurve(points ...Keyframe) Curve {
	c := Curve{Keys: points, Interpolation: Linear}
	c.sortKeys()
	return c
}

// ScriptCurve compiles a tengo expression curve.
func ScriptCurve(src string, end float64) (Curve, error) {
	c := Curve{Script: src, End: end}
	if err := c.compile(); err != nil {
		return Curve{}, err
	}
	return c, nil
}

func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	type plain Curve
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode curve: %w", err)
	}
	*c = Curve(raw)
	if c.Interpolation == "" {
		c.Interpolation = Linear
	}
	if c.Interpolation != Linear && c.Interpolation != Smooth {
		return fmt.Errorf("unknown interpolation %q at line %d", c.Interpolation, node.Line)
	}
	c.sortKeys()
	if c.Script != "" {
		return c.compile()
	}
	if len(c.Keys) == 0 {
		return fmt.Errorf("curve at line %d has neither keys nor script", node.Line)
	}
	return nil
}

func (c *Curve) sortKeys() {
	sort.SliceStable(c.Keys, func(i, j int) bool { return c.Keys[i].Time < c.Keys[j].Time })
}

func (c *Curve) compile() error {
	script := tengo.NewScript([]byte(c.Script))
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, name := range []string{"t", "value"} {
		if err := script.Add(name, 0.0); err != nil {
			return fmt.Errorf("failed to bind curve variable %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile curve script: %w", err)
	}
	c.compiled = compiled
	return nil
}

// IsScript reports whether the curve is driven by a script.
func (c *Curve) IsScript() bool { return c.compiled != nil }

// LastTime returns the time of the last key, or End for a script curve.
func (c *Curve) LastTime() float64 {
	if c.IsScript() || len(c.Keys) == 0 {
		return c.End
	}
	return c.Keys[len(c.Keys)-1].Time
}

// Evaluate samples the curve at t. A failing script logs once and then
// falls back to the keyframes, or zero when there are none.
func (c *Curve) Evaluate(t float64) float64 {
	if c.compiled != nil && !c.failed {
		v, err := c.runScript(t)
		if err == nil {
			return v
		}
		log.Printf("curve: script failed at t=%.3f, using keyframes: %v", t, err)
		c.failed = true
	}
	return c.evaluateKeys(t)
}

func (c *Curve) runScript(t float64) (float64, error) {
	run := c.compiled.Clone()
	if err := run.Set("t", t); err != nil {
		return 0, err
	}
	if err := run.Run(); err != nil {
		return 0, err
	}
	v := run.Get("value")
	switch v.ValueType() {
	case "float", "int":
		return v.Float(), nil
	}
	return 0, fmt.Errorf("value has type %s, want a number", v.ValueType())
}

func (c *Curve) evaluateKeys(t float64) float64 {
	keys := c.Keys
	switch {
	case len(keys) == 0:
		return 0
	case len(keys) == 1 || t <= keys[0].Time:
		return keys[0].Value
	case t >= keys[len(keys)-1].Time:
		return keys[len(keys)-1].Value
	}

	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t }) - 1
	a, b := keys[i], keys[i+1]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	u := (t - a.Time) / span
	if c.Interpolation != Smooth {
		return a.Value + (b.Value-a.Value)*u
	}

	m0 := c.tangent(i) * span
	m1 := c.tangent(i+1) * span
	u2, u3 := u*u, u*u*u
	return (2*u3-3*u2+1)*a.Value + (u3-2*u2+u)*m0 + (-2*u3+3*u2)*b.Value + (u3-u2)*m1
}

// tangent is the finite-difference slope at key i.
func (c *Curve) tangent(i int) float64 {
	keys := c.Keys
	prev, next := i-1, i+1
	if prev < 0 {
		prev = i
	}
	if next >= len(keys) {
		next = i
	}
	dt := keys[next].Time - keys[prev].Time
	if dt == 0 {
		return 0
	}
	return (keys[next].Value - keys[prev].Value) / dt
}
