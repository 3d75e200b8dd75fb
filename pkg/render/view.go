// pkg/render/view.go
package render

import (
	"math"

	"go-elemental-td/pkg/utils"
)

// View maps the ground plane (X right, Z down the screen) onto a pixel or
// character grid.
type View struct {
	Scale   float64 // grid cells per world unit
	OffsetX float64
	OffsetY float64
	// Aspect stretches X relative to Z. Terminal cells are about twice as
	// tall as they are wide, so a terminal view uses 2.
	Aspect float64
}

// FitView returns a view that shows the box [min, max] centered inside a
// width x height grid, leaving margin cells on every side.
func FitView(min, max utils.Vec3, width, height int, margin, aspect float64) View {
	if aspect <= 0 {
		aspect = 1
	}
	spanX := (max.X - min.X) * aspect
	spanZ := max.Z - min.Z
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin

	scale := 1.0
	switch {
	case spanX > 0 && spanZ > 0:
		scale = math.Min(availW/spanX, availH/spanZ)
	case spanX > 0:
		scale = availW / spanX
	case spanZ > 0:
		scale = availH / spanZ
	}
	if scale <= 0 {
		scale = 1
	}
	v := View{Scale: scale, Aspect: aspect}
	v.OffsetX = (float64(width)-spanX*scale)/2 - min.X*aspect*scale
	v.OffsetY = (float64(height)-spanZ*scale)/2 - min.Z*scale
	return v
}

// ToScreen converts a world position to grid coordinates.
func (v View) ToScreen(p utils.Vec3) (float64, float64) {
	return p.X*v.aspect()*v.Scale + v.OffsetX, p.Z*v.Scale + v.OffsetY
}

// ToWorld converts grid coordinates back to the ground plane.
func (v View) ToWorld(x, y float64) utils.Vec3 {
	if v.Scale == 0 {
		return utils.Vec3{}
	}
	return utils.Vec3{
		X: (x - v.OffsetX) / (v.Scale * v.aspect()),
		Z: (y - v.OffsetY) / v.Scale,
	}
}

// Length converts a world distance along Z to grid cells.
func (v View) Length(d float64) float64 { return d * v.Scale }

func (v View) aspect() float64 {
	if v.Aspect <= 0 {
		return 1
	}
	return v.Aspect
}
