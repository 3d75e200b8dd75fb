// internal/utils/math.go
package utils

import "math"

// LerpAngle interpolates between two angles along the shortest arc.
func LerpAngle(from, to, t float64) float64 {
	from = NormalizeAngle(from)
	to = NormalizeAngle(to)
	return NormalizeAngle(from + AngleDiff(from, to)*t)
}

// AngleDiff returns the signed shortest difference to - from in [-π, π].
func AngleDiff(from, to float64) float64 {
	diff := NormalizeAngle(to) - NormalizeAngle(from)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

// RotateTowards turns from toward to by at most maxStep radians.
func RotateTowards(from, to, maxStep float64) float64 {
	diff := AngleDiff(from, to)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(to)
	}
	return NormalizeAngle(from + math.Copysign(maxStep, diff))
}

// NormalizeAngle wraps an angle into [-π, π].
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
