// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 130
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	buttonWidth    = 170
	buttonHeight   = 28
)

var upgradeOrder = []defs.UpgradeType{
	defs.UpgradeDamageMultiplier,
	defs.UpgradeFireRate,
	defs.UpgradeVisionRadius,
}

// InfoPanel slides up from the bottom with details of the selected
// buildable. Its buttons raise upgrade and sell requests.
type InfoPanel struct {
	IsVisible       bool
	TargetEntity    types.EntityID
	fontFace        font.Face
	currentY        float64
	targetY         float64
	upgradeButtons  map[defs.UpgradeType]*Button
	sellButton      Button
	eventDispatcher *event.Dispatcher
}

func NewInfoPanel(fontFace font.Face, dispatcher *event.Dispatcher) *InfoPanel {
	return &InfoPanel{
		fontFace:        fontFace,
		currentY:        config.ScreenHeight,
		targetY:         config.ScreenHeight,
		upgradeButtons:  make(map[defs.UpgradeType]*Button),
		eventDispatcher: dispatcher,
	}
}

func (p *InfoPanel) SetTarget(id types.EntityID) {
	p.TargetEntity = id
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether a point is on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Update animates the panel and hides it when its target disappears.
func (p *InfoPanel) Update(g *app.Game) {
	if p.IsVisible {
		if _, ok := g.ECS.Towers[p.TargetEntity]; !ok {
			p.Hide()
		}
	}
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		switch {
		case math.Abs(diff) < animationSpeed:
			p.currentY = p.targetY
		case diff > 0:
			p.currentY += animationSpeed
		default:
			p.currentY -= animationSpeed
		}
		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetEntity = 0
		}
	}
	p.layout(g)
}

// HandleClick dispatches a request for the button under the cursor. It
// reports whether the click landed on the panel.
func (p *InfoPanel) HandleClick(x, y int) bool {
	if !p.Contains(x, y) {
		return false
	}
	for _, u := range upgradeOrder {
		if b, ok := p.upgradeButtons[u]; ok && b.Clicked(x, y) {
			p.eventDispatcher.Dispatch(event.Event{
				Type: event.UpgradeRequested,
				Data: event.UpgradeRequest{Tower: p.TargetEntity, Upgrade: u},
			})
			return true
		}
	}
	if p.sellButton.Clicked(x, y) {
		p.eventDispatcher.Dispatch(event.Event{Type: event.SellRequested, Data: p.TargetEntity})
		p.Hide()
	}
	return true
}

func (p *InfoPanel) panelRect() image.Rectangle {
	return image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
}

// layout refreshes button positions, labels and affordability.
func (p *InfoPanel) layout(g *app.Game) {
	for k := range p.upgradeButtons {
		delete(p.upgradeButtons, k)
	}
	p.sellButton = Button{}
	tower, ok := g.ECS.Towers[p.TargetEntity]
	if !p.IsVisible || !ok {
		return
	}
	rect := p.panelRect()
	x := rect.Max.X - buttonWidth - 15
	y := rect.Min.Y + 12
	for _, u := range upgradeOrder {
		if _, has := tower.Def.Upgrade(u); !has {
			continue
		}
		b := &Button{Rect: image.Rect(x, y, x+buttonWidth, y+buttonHeight)}
		cost, err := g.UpgradeCost(p.TargetEntity, u)
		if err != nil {
			b.Text = fmt.Sprintf("%s max", upgradeLabel(u))
			b.Disabled = true
		} else {
			b.Text = fmt.Sprintf("%s %s", upgradeLabel(u), cost)
			b.Disabled = !g.ECS.Player.Currency.CanAfford(cost)
		}
		p.upgradeButtons[u] = b
		y += buttonHeight + 6
	}
	sx := x - buttonWidth - 15
	p.sellButton = Button{
		Rect:  image.Rect(sx, rect.Max.Y-buttonHeight-12, sx+buttonWidth, rect.Max.Y-12),
		Text:  fmt.Sprintf("Sell %s", tower.Def.SellValue),
		Color: color.RGBA{R: 120, G: 60, B: 60, A: 255},
	}
}

func upgradeLabel(u defs.UpgradeType) string {
	switch u {
	case defs.UpgradeDamageMultiplier:
		return "Damage"
	case defs.UpgradeFireRate:
		return "Fire rate"
	case defs.UpgradeVisionRadius:
		return "Range"
	}
	return string(u)
}

func (p *InfoPanel) Draw(screen *ebiten.Image, g *app.Game) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}
	rect := p.panelRect()
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), 2, borderColor, true)

	tower, ok := g.ECS.Towers[p.TargetEntity]
	if !ok {
		return
	}
	x, y := rect.Min.X+15, rect.Min.Y+15+lineHeight/2
	def := tower.Def
	text.Draw(screen, def.Name, p.fontFace, x, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, def.Description, p.fontFace, x, y, color.Gray{Y: 180})
	y += lineHeight

	radius := tower.Value(defs.UpgradeVisionRadius, def.VisionRadius) / 2
	switch {
	case def.Turret != nil:
		damage := def.Turret.Damage * tower.Value(defs.UpgradeDamageMultiplier, 1)
		rate := tower.Value(defs.UpgradeFireRate, def.Turret.FireRate)
		text.Draw(screen, fmt.Sprintf("Damage %.1f  Rate %.2f/s  Range %.1f  Element %s",
			damage, rate, radius, def.Turret.Element), p.fontFace, x, y, config.TextLightColor)
		y += lineHeight
		text.Draw(screen, fmt.Sprintf("Targeting %s  Kills %d", def.Turret.Targeting, tower.KillCount),
			p.fontFace, x, y, config.TextLightColor)
	case def.Zone != nil:
		text.Draw(screen, fmt.Sprintf("Element %s  Range %.1f", def.Zone.Element, radius), p.fontFace, x, y, config.TextLightColor)
	case def.Slower != nil:
		text.Draw(screen, fmt.Sprintf("Speed x%.2f  Range %.1f", def.Slower.Multiplier, radius), p.fontFace, x, y, config.TextLightColor)
	}

	for _, u := range upgradeOrder {
		if b, ok := p.upgradeButtons[u]; ok {
			b.Draw(screen, p.fontFace)
		}
	}
	p.sellButton.Draw(screen, p.fontFace)
}
