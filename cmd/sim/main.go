// cmd/sim/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"go-elemental-td/internal/app"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/terminal"
	"go-elemental-td/pkg/utils"

	"github.com/gdamore/tcell/v2"
)

// maxSimSeconds stops a headless run whose rounds never finish.
const maxSimSeconds = 3600.0

// summary logs one line per finished round.
type summary struct {
	game   *app.Game
	kills  int
	leaked int
}

func (s *summary) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyDestroyed:
		data, ok := e.Data.(event.EnemyDestroyedData)
		if !ok {
			return
		}
		if data.ReachedEnd {
			s.leaked++
		} else {
			s.kills++
		}
	case event.WaveEnded:
		data, _ := e.Data.(event.WaveData)
		player := s.game.ECS.Player
		log.Printf("round %d: %d enemies, %d killed, %d leaked, %d lives, %s currency, t=%.1fs",
			data.Round, data.Enemies, s.kills, s.leaked, player.Lives, player.Currency, s.game.GameTime())
		s.kills, s.leaked = 0, 0
	case event.GameEnded:
		data, _ := e.Data.(event.GameEndedData)
		outcome := "defeat"
		if data.Victory {
			outcome = "victory"
		}
		log.Printf("game over: %s in round %d after %.1fs", outcome, data.Round+1, s.game.GameTime())
	}
}

// parseBuild reads "def:x:z,def:x:z".
func parseBuild(list string) ([]placement, error) {
	var out []placement
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad placement %q, want def:x:z", item)
		}
		x, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad x in %q: %w", item, err)
		}
		z, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad z in %q: %w", item, err)
		}
		out = append(out, placement{defID: parts[0], pos: utils.Vec3{X: x, Z: z}})
	}
	return out, nil
}

type placement struct {
	defID string
	pos   utils.Vec3
}

func main() {
	settingsPath := flag.String("settings", "assets/settings.yaml", "Path to the settings file")
	level := flag.String("level", "", "Level id, overrides the settings file")
	rounds := flag.Int("rounds", 0, "Stop after this many rounds (0 runs until the game ends)")
	seed := flag.Int64("seed", 0, "Random seed, overrides the settings file")
	build := flag.String("build", "", "Buildables to place before the first round, as def:x:z,...")
	tui := flag.Bool("tui", false, "Watch the run in the terminal")
	watch := flag.Bool("watch", false, "Reload definitions when data files change")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *level != "" {
		settings.Data.Level = *level
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	settings.Rounds.AutoStart = true

	lib, err := defs.LoadLibrary(settings.Data.Dir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}
	g, err := app.NewGame(lib, settings)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	placements, err := parseBuild(*build)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range placements {
		if _, err := g.PlaceTower(p.defID, p.pos); err != nil {
			log.Printf("skipping %s at (%.1f, %.1f): %v", p.defID, p.pos.X, p.pos.Z, err)
		}
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

	if *tui {
		runTerminal(g, settings, watcher)
		return
	}

	s := &summary{game: g}
	g.EventDispatcher.SubscribeAll(s, event.EnemyDestroyed, event.WaveEnded, event.GameEnded)
	if err := g.StartRound(); err != nil {
		log.Fatal(err)
	}
	for !g.Ended() && g.GameTime() < maxSimSeconds {
		if *rounds > 0 && g.ECS.Wave.Round >= *rounds {
			break
		}
		g.RunFor(1)
		if watcher != nil && len(watcher.Drain()) > 0 {
			if err := g.ReloadFrom(settings.Data.Dir); err != nil {
				log.Printf("reload: %v", err)
			}
		}
	}
	if !g.Ended() {
		log.Printf("stopped after %d rounds, %.1fs", g.ECS.Wave.Round, g.GameTime())
	}
}

func runTerminal(g *app.Game, settings config.Settings, watcher *defs.Watcher) {
	// The terminal owns stdout and stderr while the spectator runs.
	log.SetOutput(io.Discard)
	if f, err := os.OpenFile("sim.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	spectator := terminal.NewSpectator(screen, g)
	if watcher != nil {
		spectator.Watch(watcher, settings.Data.Dir)
	}
	spectator.Run(settings.Display.TickRate, false)
}
