// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("settings", "assets/settings.yaml", "Path to the settings file")
	devMode := flag.Bool("dev", false, "Start directly on the configured level")
	watch := flag.Bool("watch", false, "Reload definitions when data files change")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	lib, err := defs.LoadLibrary(settings.Data.Dir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	var watcher *defs.Watcher
	if *watch || settings.Data.Watch {
		watcher, err = defs.NewWatcher(settings.Data.Dir)
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	sm := state.NewStateMachine()
	newGame := func(levelID string) (state.State, error) {
		s := settings
		s.Data.Level = levelID
		g, err := app.NewGame(lib, s)
		if err != nil {
			return nil, err
		}
		return state.NewGameState(sm, g, watcher, s.Data.Dir), nil
	}

	if *devMode {
		log.Printf("Dev mode: starting level %q directly", settings.Data.Level)
		gs, err := newGame(settings.Data.Level)
		if err != nil {
			log.Fatalf("Failed to start game: %v", err)
		}
		sm.SetState(gs)
	} else {
		sm.SetState(state.NewMenuState(sm, lib, newGame))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(settings.Display.WindowTitle)
	ebiten.SetTPS(settings.Display.TickRate)
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
