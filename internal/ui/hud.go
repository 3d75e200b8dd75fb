// internal/ui/hud.go
package ui

import (
	"fmt"
	"image/color"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// HUD is the bar across the top of the window plus the build menu.
type HUD struct {
	Face      font.Face
	Indicator *StateIndicator
	Speed     *SpeedButton
	Waves     *WaveIndicator
	Lives     *PlayerHealthIndicator
	Build     *BuildMenu

	maxLives int
}

func NewHUD(maxLives int) *HUD {
	face := basicfont.Face7x13
	mid := float32(config.HUDHeight) / 2
	return &HUD{
		Face:      face,
		Indicator: NewStateIndicator(float32(config.ScreenWidth-config.IndicatorOffsetX), mid, config.IndicatorRadius),
		Speed: NewSpeedButton(float32(config.ScreenWidth-config.IndicatorOffsetX*3), mid, config.IndicatorRadius*0.8,
			[]color.RGBA{config.BuildStateColor, config.WaveStateColor, config.TwoXStateColor}),
		Waves:    NewWaveIndicator(config.ScreenWidth/2, int(mid)+5),
		Lives:    NewPlayerHealthIndicator(15, mid-5),
		Build:    NewBuildMenu(config.ScreenWidth-250, config.HUDHeight+8, 240, face),
		maxLives: maxLives,
	}
}

// StateColor is the indicator color for the current round state.
func StateColor(g *app.Game) color.RGBA {
	switch g.ECS.Wave.State {
	case component.SpawnerSpawning, component.SpawnerWaiting:
		return config.WaveStateColor
	case component.SpawnerGameEnded:
		return config.EndedStateColor
	}
	return config.BuildStateColor
}

func (h *HUD) Draw(screen *ebiten.Image, g *app.Game) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.HUDHeight, color.RGBA{R: 15, G: 15, B: 22, A: 255}, false)
	vector.StrokeLine(screen, 0, config.HUDHeight, config.ScreenWidth, config.HUDHeight, 1, config.PathColor, false)

	player := g.ECS.Player
	h.Lives.Draw(screen, h.Face, player.Lives, h.maxLives)
	text.Draw(screen, "$ "+player.Currency.String(), h.Face, 240, config.HUDHeight/2+5, config.TextLightColor)

	wave := g.ECS.Wave
	last := g.WaveSystem.Data().MaxRounds + 1
	h.Waves.Draw(screen, h.Face, wave.Round+1, last)
	status := wave.State.String()
	if wave.State == component.SpawnerSpawning || wave.State == component.SpawnerWaiting {
		status = fmt.Sprintf("%s, %d alive", status, wave.Alive)
	}
	text.Draw(screen, status, h.Face, config.ScreenWidth/2+40, config.HUDHeight/2+5, color.Gray{Y: 180})

	h.Speed.SetState(int(player.PlayState))
	h.Speed.Draw(screen)
	h.Indicator.Draw(screen, StateColor(g))
	h.Build.Draw(screen, g.Library, player.Currency)

	if g.Ended() {
		h.drawBanner(screen, wave.Victory)
	}
}

func (h *HUD) drawBanner(screen *ebiten.Image, victory bool) {
	msg, c := "DEFEAT", config.WaveStateColor
	if victory {
		msg, c = "VICTORY", config.BuildStateColor
	}
	w := float32(260)
	x := float32(config.ScreenWidth)/2 - w/2
	y := float32(config.ScreenHeight)/2 - 30
	vector.DrawFilledRect(screen, x, y, w, 60, color.RGBA{A: 200}, false)
	vector.StrokeRect(screen, x, y, w, 60, 2, c, false)
	bounds := text.BoundString(h.Face, msg)
	text.Draw(screen, msg, h.Face, config.ScreenWidth/2-bounds.Dx()/2, int(y)+35, c)
}

// Contains reports whether a point is on one of the HUD controls.
func (h *HUD) Contains(x, y int) bool {
	return y <= config.HUDHeight || h.Indicator.Contains(x, y) || h.Speed.Contains(x, y)
}
