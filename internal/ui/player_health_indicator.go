// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	healthBarWidth  = 160
	healthBarHeight = 10
)

var (
	healthFullColor = color.RGBA{60, 120, 255, 255}
	healthLowColor  = color.RGBA{220, 60, 60, 255}
)

// PlayerHealthIndicator shows the remaining lives as a bar. It turns red
// below half.
type PlayerHealthIndicator struct {
	X, Y float32
}

func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, face font.Face, lives, maxLives int) {
	vector.StrokeRect(screen, i.X, i.Y, healthBarWidth, healthBarHeight, 1, color.White, true)
	if maxLives > 0 && lives > 0 {
		fraction := float32(lives) / float32(maxLives)
		if fraction > 1 {
			fraction = 1
		}
		fill := healthFullColor
		if lives*2 <= maxLives {
			fill = healthLowColor
		}
		vector.DrawFilledRect(screen, i.X+1, i.Y+1, (healthBarWidth-2)*fraction, healthBarHeight-2, fill, true)
	}
	label := fmt.Sprintf("%d/%d", lives, maxLives)
	text.Draw(screen, label, face, int(i.X)+healthBarWidth+8, int(i.Y)+healthBarHeight, color.White)
}
