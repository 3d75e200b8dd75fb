// internal/component/render.go
package component

import "image/color"

// Renderable describes how to draw an entity from above.
type Renderable struct {
	Color     color.RGBA
	Radius    float32
	HasStroke bool
}
