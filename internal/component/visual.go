// internal/component/visual.go
package component

// DamageFlash marks an enemy that was just hit by an attack.
type DamageFlash struct {
	Remaining float64
	Duration  float64
}

// Intensity fades from 1 right after the hit to 0 when the flash ends.
func (f *DamageFlash) Intensity() float64 {
	if f.Duration <= 0 || f.Remaining <= 0 {
		return 0
	}
	return f.Remaining / f.Duration
}
