// internal/ui/build_menu.go
package ui

import (
	"fmt"
	"image/color"

	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/pkg/currency"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// BuildMenu lists the buildables with their hotkeys and costs. Entries the
// player cannot afford are grayed out.
type BuildMenu struct {
	X, Y     float32
	Width    float32
	fontFace font.Face
}

func NewBuildMenu(x, y, width float32, fontFace font.Face) *BuildMenu {
	return &BuildMenu{X: x, Y: y, Width: width, fontFace: fontFace}
}

func (m *BuildMenu) Draw(screen *ebiten.Image, lib *defs.Library, money currency.Currency) {
	whiteColor := color.RGBA{255, 255, 255, 255}
	grayColor := color.RGBA{100, 100, 100, 255}

	lineHeight := float32(m.fontFace.Metrics().Height.Ceil()) + 4
	height := lineHeight*float32(len(lib.BuildOrder)) + 12
	vector.DrawFilledRect(screen, m.X, m.Y, m.Width, height, color.RGBA{R: 20, G: 20, B: 30, A: 200}, false)
	vector.StrokeRect(screen, m.X, m.Y, m.Width, height, 1, config.PathColor, false)

	y := m.Y + lineHeight
	for _, id := range lib.BuildOrder {
		def := lib.Buildables[id]
		c := whiteColor
		if !money.CanAfford(def.Cost) {
			c = grayColor
		}
		swatch := config.ZoneColor
		switch {
		case def.Turret != nil:
			swatch = config.ElementColors[def.Turret.Element]
		case def.Zone != nil:
			swatch = config.ElementColors[def.Zone.Element]
		}
		vector.DrawFilledRect(screen, m.X+8, y-9, 8, 8, swatch, false)
		label := fmt.Sprintf("[%s] %-14s %6s", def.Hotkey, def.Name, def.Cost)
		text.Draw(screen, label, m.fontFace, int(m.X)+22, int(y), c)
		y += lineHeight
	}
}
