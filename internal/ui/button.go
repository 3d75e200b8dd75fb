// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor         = color.RGBA{R: 60, G: 90, B: 120, A: 255}
	buttonDisabledColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	buttonBorderColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// Button is a clickable rectangle with a centered label.
type Button struct {
	Rect     image.Rectangle
	Text     string
	Disabled bool
	Color    color.RGBA
}

// Contains reports whether the point lies on the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Clicked reports whether an enabled button was hit.
func (b *Button) Clicked(x, y int) bool {
	return !b.Disabled && b.Contains(x, y)
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	if b.Rect.Empty() {
		return
	}
	bg := b.Color
	if bg == (color.RGBA{}) {
		bg = buttonColor
	}
	fg := color.Color(color.White)
	if b.Disabled {
		bg = buttonDisabledColor
		fg = color.Gray{Y: 140}
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 1, buttonBorderColor, true)

	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(screen, b.Text, face, textX, textY, fg)
}
