// Package terminal draws a running game as text in a tcell screen.
package terminal

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/interfaces"
	"go-elemental-td/pkg/render"
	"go-elemental-td/pkg/utils"

	"github.com/gdamore/tcell/v2"
)

const (
	logLines  = 2
	statusRow = 0
	// Terminal cells are about twice as tall as they are wide.
	cellAspect = 2.0
)

// Spectator renders the map, enemies and buildables of a game and turns
// key presses into player commands.
type Spectator struct {
	screen   tcell.Screen
	game     *app.Game
	controls interfaces.Game
	view     render.View
	width    int
	height   int
	log      []string

	watcher *defs.Watcher
	dataDir string
}

// NewSpectator draws g on screen. The screen must already be initialised.
func NewSpectator(screen tcell.Screen, g *app.Game) *Spectator {
	s := &Spectator{screen: screen, game: g, controls: g}
	g.EventDispatcher.SubscribeAll(s,
		event.WaveStarted, event.WaveEnded, event.GameEnded,
		event.TowerPlaced, event.TowerRemoved, event.TowerUpgraded)
	s.resize()
	return s
}

// View returns the world to cell mapping.
func (s *Spectator) View() render.View { return s.view }

// Log returns the most recent messages, oldest first.
func (s *Spectator) Log() []string { return s.log }

func (s *Spectator) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.WaveData:
		if e.Type == event.WaveStarted {
			s.push(fmt.Sprintf("round %d started, %d enemies", data.Round+1, data.Enemies))
		} else {
			s.push(fmt.Sprintf("round %d cleared", data.Round))
		}
	case event.GameEndedData:
		if data.Victory {
			s.push("victory")
		} else {
			s.push(fmt.Sprintf("defeat in round %d", data.Round+1))
		}
	case event.TowerData:
		switch e.Type {
		case event.TowerPlaced:
			s.push(fmt.Sprintf("placed %s", data.DefID))
		case event.TowerRemoved:
			s.push(fmt.Sprintf("sold %s", data.DefID))
		default:
			s.push(fmt.Sprintf("upgraded %s to level %d", data.DefID, data.UpgradeLevel))
		}
	}
}

func (s *Spectator) push(msg string) {
	s.log = append(s.log, msg)
	if len(s.log) > logLines {
		s.log = s.log[len(s.log)-logLines:]
	}
}

func (s *Spectator) resize() {
	s.width, s.height = s.screen.Size()
	lo, hi := s.game.Level.Extent()
	mapHeight := s.height - 1 - logLines
	if mapHeight < 1 {
		mapHeight = 1
	}
	s.view = render.FitView(lo, hi, s.width, mapHeight, 1, cellAspect)
	s.view.OffsetY++
}

// Watch reloads definitions from dir whenever w reports a change.
func (s *Spectator) Watch(w *defs.Watcher, dir string) {
	s.watcher = w
	s.dataDir = dir
}

func (s *Spectator) reloadIfChanged() {
	if s.watcher == nil || len(s.watcher.Drain()) == 0 {
		return
	}
	if err := s.game.ReloadFrom(s.dataDir); err != nil {
		s.push(err.Error())
		return
	}
	s.push("definitions reloaded")
}

// HandleEvent applies a terminal event. It returns false when the user
// asked to quit.
func (s *Spectator) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.resize()
		s.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if err := s.controls.StartRound(); err != nil {
				s.push(err.Error())
			}
		case 'f':
			s.controls.TogglePlaySpeed()
		}
	}
	return true
}

func (s *Spectator) cell(p utils.Vec3) (int, int) {
	x, y := s.view.ToScreen(p)
	return int(math.Round(x)), int(math.Round(y))
}

func (s *Spectator) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y <= statusRow || x >= s.width || y >= s.height-logLines {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Spectator) text(x, y int, msg string, style tcell.Style) {
	for i, r := range []rune(msg) {
		if x+i >= s.width {
			return
		}
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func styleOf(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw renders one frame and shows it.
func (s *Spectator) Draw() {
	s.screen.Clear()
	s.drawMap()

	ecs := s.game.ECS
	for _, id := range entity.SortedIDs(ecs.Towers) {
		pos, ok := ecs.Positions[id]
		if !ok {
			continue
		}
		glyph, c := 'T', config.TowerStrokeColor
		if rend, ok := ecs.Renderables[id]; ok {
			c = rend.Color
		}
		switch {
		case ecs.Zones[id] != nil:
			glyph = 'Z'
		case ecs.Slowers[id] != nil:
			glyph = 'W'
		}
		x, y := s.cell(pos.Vec())
		s.put(x, y, glyph, styleOf(c).Bold(true))
	}
	for _, id := range entity.SortedIDs(ecs.Enemies) {
		pos, ok := ecs.Positions[id]
		if !ok {
			continue
		}
		fraction := 1.0
		if h, ok := ecs.Healths[id]; ok && h.Max > 0 {
			fraction = h.Value / h.Max
		}
		x, y := s.cell(pos.Vec())
		s.put(x, y, 'o', styleOf(render.HealthColor(fraction)))
	}
	for _, id := range entity.SortedIDs(ecs.Projectiles) {
		if pos, ok := ecs.Positions[id]; ok {
			x, y := s.cell(pos.Vec())
			s.put(x, y, '*', styleOf(config.TextLightColor))
		}
	}

	s.drawStatus()
	for i, msg := range s.log {
		s.text(0, s.height-logLines+i, msg, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	s.screen.Show()
}

func (s *Spectator) drawMap() {
	pathStyle := styleOf(config.PathColor)
	for _, e := range s.game.Graph.Edges() {
		x0, y0 := s.cell(e.From.Position)
		x1, y1 := s.cell(e.To.Position)
		steps := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= steps; i++ {
			t := 0.0
			if steps > 0 {
				t = float64(i) / float64(steps)
			}
			x := x0 + int(math.Round(float64(x1-x0)*t))
			y := y0 + int(math.Round(float64(y1-y0)*t))
			s.put(x, y, '.', pathStyle)
		}
	}
	obstacleStyle := styleOf(config.ObstacleColor)
	for _, b := range s.game.Level.Obstacles {
		x0, y0 := s.cell(b.Min)
		x1, y1 := s.cell(b.Max)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				s.put(x, y, '#', obstacleStyle)
			}
		}
	}
	if entry := s.game.Graph.Entry(); entry != nil {
		x, y := s.cell(entry.Position)
		s.put(x, y, 'S', styleOf(config.EntryColor))
	}
	for _, exit := range s.game.Graph.Exits() {
		x, y := s.cell(exit.Position)
		s.put(x, y, 'E', styleOf(config.ExitColor))
	}
}

func (s *Spectator) drawStatus() {
	g := s.game
	player := g.ECS.Player
	wave := g.ECS.Wave
	status := fmt.Sprintf("%s | round %d/%d %s | lives %d | $ %s | %s | t=%.1fs",
		g.Level.Name, wave.Round+1, g.WaveSystem.Data().MaxRounds+1, wave.State,
		player.Lives, player.Currency, player.PlayState, g.GameTime())
	s.text(0, statusRow, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Run drives the game from a ticker until the user quits or, when
// exitOnEnd is set, the game ends.
func (s *Spectator) Run(tickRate int, exitOnEnd bool) {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !s.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			s.reloadIfChanged()
			s.game.Update(now.Sub(last).Seconds())
			last = now
			s.Draw()
			if exitOnEnd && s.game.Ended() {
				return
			}
		}
	}
}
