// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/interfaces"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/ui"
	"go-elemental-td/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const messageDuration = 2 * time.Second

var _ interfaces.Game = (*app.Game)(nil)

// GameState plays one level.
type GameState struct {
	sm        *StateMachine
	game      *app.Game
	renderer  *ui.WorldRenderer
	hud       *ui.HUD
	infoPanel *ui.InfoPanel
	selected  types.EntityID

	// Optional hot reload of the data directory.
	watcher *defs.Watcher
	dataDir string

	message      string
	messageUntil time.Time
}

func NewGameState(sm *StateMachine, g *app.Game, watcher *defs.Watcher, dataDir string) *GameState {
	mapColors := render.MapColors{
		BackgroundColor: config.BackgroundColor,
		PathColor:       config.PathColor,
		ObstacleColor:   config.ObstacleColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}
	hud := ui.NewHUD(g.WaveSystem.Data().PlayerLives)
	gs := &GameState{
		sm:        sm,
		game:      g,
		renderer:  ui.NewWorldRenderer(g.Level, g.Graph, mapColors),
		hud:       hud,
		infoPanel: ui.NewInfoPanel(hud.Face, g.EventDispatcher),
		watcher:   watcher,
		dataDir:   dataDir,
	}
	g.EventDispatcher.Subscribe(event.UpgradeRequested, gs)
	g.EventDispatcher.Subscribe(event.SellRequested, gs)
	return gs
}

func (s *GameState) Enter() {}

func (s *GameState) Exit() {}

// Game returns the running game.
func (s *GameState) Game() *app.Game { return s.game }

// OnEvent handles requests raised by the info panel.
func (s *GameState) OnEvent(e event.Event) {
	switch e.Type {
	case event.UpgradeRequested:
		req, ok := e.Data.(event.UpgradeRequest)
		if !ok {
			return
		}
		s.report(s.game.TryUpgrade(req.Tower, req.Upgrade))
	case event.SellRequested:
		id, ok := e.Data.(types.EntityID)
		if !ok {
			return
		}
		s.report(s.game.SellTower(id))
		if id == s.selected {
			s.selected = 0
		}
	}
}

func (s *GameState) report(err error) {
	if err == nil {
		return
	}
	s.flash(err.Error())
	if !errors.Is(err, app.ErrInsufficientFunds) && !errors.Is(err, app.ErrNotBuildable) {
		log.Printf("game: %v", err)
	}
}

func (s *GameState) flash(msg string) {
	s.message = msg
	s.messageUntil = time.Now().Add(messageDuration)
}

func (s *GameState) Update(deltaTime float64) {
	if pausePressed() {
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	}
	s.reloadIfChanged()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.startRound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		s.game.TogglePlaySpeed()
	}
	s.handleHotkeys()

	s.game.Update(deltaTime)
	s.infoPanel.Update(s.game)
	if _, ok := s.game.ECS.Towers[s.selected]; !ok {
		s.selected = 0
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.handleLeftClick(ebiten.CursorPosition())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.selected = 0
		s.infoPanel.Hide()
	}
}

func (s *GameState) reloadIfChanged() {
	if s.watcher == nil {
		return
	}
	changed := s.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("game: data changed: %v", changed)
	if err := s.game.ReloadFrom(s.dataDir); err != nil {
		log.Printf("game: %v", err)
		s.flash("reload failed, see log")
		return
	}
	s.flash("definitions reloaded")
}

func (s *GameState) startRound() {
	if err := s.game.StartRound(); err != nil {
		s.flash(err.Error())
		return
	}
	s.hud.Indicator.HandleClick()
}

// handleHotkeys places the buildable bound to a typed key at the cursor.
func (s *GameState) handleHotkeys() {
	chars := ebiten.AppendInputChars(nil)
	if len(chars) == 0 {
		return
	}
	pos := s.renderer.ScreenToWorld(ebiten.CursorPosition())
	for _, ch := range chars {
		for _, id := range s.game.Library.BuildOrder {
			def := s.game.Library.Buildables[id]
			if def.Hotkey == "" || def.Hotkey != string(ch) {
				continue
			}
			tower, err := s.game.PlaceTower(id, pos)
			if err != nil {
				s.report(err)
				continue
			}
			s.selected = tower
			s.infoPanel.SetTarget(tower)
		}
	}
}

func (s *GameState) handleLeftClick(x, y int) {
	switch {
	case s.hud.Indicator.Contains(x, y):
		s.startRound()
		return
	case s.hud.Speed.Contains(x, y):
		s.game.TogglePlaySpeed()
		return
	case s.hud.Contains(x, y):
		return
	case s.infoPanel.HandleClick(x, y):
		return
	}
	if id, ok := s.game.TowerAt(s.renderer.ScreenToWorld(x, y)); ok {
		s.selected = id
		s.infoPanel.SetTarget(id)
		return
	}
	s.selected = 0
	s.infoPanel.Hide()
}

func (s *GameState) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.game.ECS, s.selected)
	s.drawPlacementPreview(screen)
	s.hud.Draw(screen, s.game)
	s.infoPanel.Draw(screen, s.game)

	if s.message != "" && time.Now().Before(s.messageUntil) {
		ebitenutil.DebugPrintAt(screen, s.message, 10, config.HUDHeight+8)
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s  t=%.1fs  [Space] round  [F] speed  [P] pause", s.game.ECS.Player.PlayState, s.game.GameTime()),
		10, config.ScreenHeight-18)
}

// drawPlacementPreview marks whether the cursor is a valid build spot.
func (s *GameState) drawPlacementPreview(screen *ebiten.Image) {
	x, y := ebiten.CursorPosition()
	if y <= config.HUDHeight || s.infoPanel.Contains(x, y) {
		return
	}
	c := color.RGBA{R: 220, G: 60, B: 60, A: 120}
	if s.game.CanBuildAt(s.renderer.ScreenToWorld(x, y)) {
		c = color.RGBA{R: 60, G: 220, B: 90, A: 120}
	}
	radius := float32(s.renderer.View().Length(config.TowerRadius))
	vector.StrokeCircle(screen, float32(x), float32(y), radius, 2, c, true)
}
