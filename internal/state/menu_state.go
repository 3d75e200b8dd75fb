// internal/state/menu_state.go
package state

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// GameFactory starts a game on the named level.
type GameFactory func(levelID string) (State, error)

// MenuState lists the levels of the library.
type MenuState struct {
	sm       *StateMachine
	levels   []string
	names    map[string]string
	cursor   int
	newGame  GameFactory
	errorMsg string
}

func NewMenuState(sm *StateMachine, lib *defs.Library, newGame GameFactory) *MenuState {
	m := &MenuState{sm: sm, names: make(map[string]string), newGame: newGame}
	for id, level := range lib.Levels {
		m.levels = append(m.levels, id)
		m.names[id] = level.Name
	}
	sort.Strings(m.levels)
	return m
}

func (m *MenuState) Enter() {}

func (m *MenuState) Exit() {}

func (m *MenuState) Update(deltaTime float64) {
	if len(m.levels) == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		m.cursor = (m.cursor + len(m.levels) - 1) % len(m.levels)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		m.cursor = (m.cursor + 1) % len(m.levels)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		next, err := m.newGame(m.levels[m.cursor])
		if err != nil {
			log.Printf("menu: %v", err)
			m.errorMsg = err.Error()
			return
		}
		m.sm.SetState(next)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	x, y := config.ScreenWidth/2-120, config.ScreenHeight/3
	text.Draw(screen, "Select a level", face, x, y, config.TextLightColor)
	y += 30
	for i, id := range m.levels {
		c := color.Color(color.Gray{Y: 160})
		prefix := "  "
		if i == m.cursor {
			c, prefix = config.SelectionColor, "> "
		}
		name := m.names[id]
		if name == "" {
			name = id
		}
		text.Draw(screen, fmt.Sprintf("%s%s", prefix, name), face, x, y, c)
		y += 20
	}
	if m.errorMsg != "" {
		text.Draw(screen, m.errorMsg, face, x, y+20, config.WaveStateColor)
	}
	text.Draw(screen, "[Up/Down] choose  [Enter] play", face, x, config.ScreenHeight-40, color.Gray{Y: 140})
}
