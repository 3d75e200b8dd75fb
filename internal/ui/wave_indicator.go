package ui

import (
	"image/color"
	"strings"

	"go-elemental-td/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator shows the current round in roman numerals.
type WaveIndicator struct {
	X, Y         int
	Color        color.RGBA
	OutlineColor color.Color
}

func NewWaveIndicator(x, y int) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        config.BuildStateColor,
		OutlineColor: color.White,
	}
}

// toRoman converts a positive integer to roman numerals.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw shows round (1-based) out of last. The final round is drawn red.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, round, last int) {
	if round <= 0 {
		return
	}
	s := toRoman(round)
	textColor := i.Color
	if round == last {
		textColor = config.WaveStateColor
	}
	x := i.X - text.BoundString(face, s).Dx()/2

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				text.Draw(screen, s, face, x+dx, i.Y+dy, i.OutlineColor)
			}
		}
	}
	text.Draw(screen, s, face, x, i.Y, textColor)
}
