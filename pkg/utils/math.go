// pkg/utils/math.go
package utils

import "math"

// Vec3 is a position or direction in world space. Y is up; the ground
// plane is XZ.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector, or the zero vector for a zero input.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance returns the straight-line distance between two points.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// Yaw returns the heading, in radians, of a direction projected on the
// ground plane. Zero faces +Z.
func (v Vec3) Yaw() float64 {
	return math.Atan2(v.X, v.Z)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates between a and b without clamping t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b Vec3) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y + ab.Z*ab.Z
	if lenSq == 0 {
		return Distance(p, a)
	}
	ap := p.Sub(a)
	t := Clamp((ap.X*ab.X+ap.Y*ab.Y+ap.Z*ab.Z)/lenSq, 0, 1)
	return Distance(p, a.Add(ab.Scale(t)))
}
