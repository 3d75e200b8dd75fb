// pkg/render/color.go
package render

import (
	"image/color"
	"math"
)

// MapColors holds the colors of the static map layer.
type MapColors struct {
	BackgroundColor color.RGBA
	PathColor       color.RGBA
	ObstacleColor   color.RGBA
	EntryColor      color.RGBA
	ExitColor       color.RGBA
	TextLightColor  color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// HealthColor fades from green at full health to red at none.
func HealthColor(fraction float64) color.RGBA {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return color.RGBA{R: uint8(255 * (1 - fraction)), G: uint8(200 * fraction), B: 40, A: 255}
}

// Blend mixes a toward b by t in [0, 1]. Alpha is taken from a.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: a.A}
}
