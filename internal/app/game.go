// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/schedule"
	"go-elemental-td/internal/system"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/utils"
	"go-elemental-td/pkg/pathgraph"
)

var (
	ErrInsufficientFunds = errors.New("not enough currency")
	ErrUnknownBuildable  = errors.New("unknown buildable")
	ErrNotBuildable      = errors.New("cannot build here")
	ErrNoSuchTower       = errors.New("no such tower")
	ErrNoUpgrade         = errors.New("tower has no such upgrade")
	ErrMaxUpgrade        = errors.New("upgrade already at max level")
	ErrRoundInProgress   = errors.New("a round is already in progress")
	ErrGameEnded         = errors.New("game has ended")
)

// Game owns the world and every system. It is passed explicitly to the
// presentation layer; nothing in the simulation reaches it globally.
type Game struct {
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	Scheduler       *schedule.Scheduler
	Rng             *utils.PRNGService
	Library         *defs.Library
	Level           *defs.LevelDefinition
	Graph           *pathgraph.Graph
	Settings        config.Settings

	PhysicsSystem      *system.PhysicsSystem
	MovementSystem     *system.MovementSystem
	AreaAttackSystem   *system.AreaAttackSystem
	AuraSystem         *system.AuraSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	StatusEffectSystem *system.StatusEffectSystem
	VisualEffectSystem *system.VisualEffectSystem
	PlayerSystem       *system.PlayerSystem
	WaveSystem         *system.WaveSystem
	StateSystem        *system.StateSystem

	waveID      string
	accumulator float64
	gameTime    float64
}

// NewGame builds a game for the level named in settings.
func NewGame(lib *defs.Library, settings config.Settings) (*Game, error) {
	level, ok := lib.Level(settings.Data.Level)
	if !ok {
		return nil, fmt.Errorf("unknown level %q", settings.Data.Level)
	}
	waveID := settings.Data.Wave
	if waveID == "" {
		waveID = level.Wave
	}
	waveData, ok := lib.Wave(waveID)
	if !ok {
		return nil, fmt.Errorf("level %q: unknown wave %q", level.ID, waveID)
	}

	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	scheduler := schedule.New()
	rng := utils.NewPRNGService(settings.Seed)
	graph := level.BuildGraph()

	g := &Game{
		ECS:             ecs,
		EventDispatcher: dispatcher,
		Scheduler:       scheduler,
		Rng:             rng,
		Library:         lib,
		Level:           level,
		Graph:           graph,
		Settings:        settings,
		waveID:          waveID,
	}
	g.PhysicsSystem = system.NewPhysicsSystem(ecs)
	g.PhysicsSystem.AddObstacles(level.Obstacles)
	g.MovementSystem = system.NewMovementSystem(ecs, graph, rng, dispatcher)
	g.AreaAttackSystem = system.NewAreaAttackSystem(ecs, g.PhysicsSystem)
	g.AuraSystem = system.NewAuraSystem(ecs, g.PhysicsSystem)
	g.CombatSystem = system.NewCombatSystem(ecs, g.PhysicsSystem, scheduler)
	g.ProjectileSystem = system.NewProjectileSystem(ecs)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs, scheduler, dispatcher)
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs)
	g.PlayerSystem = system.NewPlayerSystem(ecs, dispatcher)
	g.WaveSystem = system.NewWaveSystem(ecs, scheduler, dispatcher, rng, g.PlayerSystem,
		waveData, settings.Rounds, g.spawnEnemy)

	g.StateSystem = system.NewStateSystem(ecs, g.PlayerSystem, dispatcher, settings.Rounds.AutoStart)

	g.PlayerSystem.Reset(waveData.PlayerLives, waveData.PlayerStartingCurrency)
	log.Printf("game: level %q, wave %q, %d lives, %s currency",
		level.ID, waveID, waveData.PlayerLives, waveData.PlayerStartingCurrency)
	return g, nil
}

// Update runs as many fixed steps as the frame time covers, scaled by the
// play state.
func (g *Game) Update(frameDelta float64) {
	if g.Ended() {
		return
	}
	if frameDelta > config.MaxDeltaTime {
		frameDelta = config.MaxDeltaTime
	}
	g.accumulator += frameDelta * g.ECS.Player.PlayState.TimeScale()
	for g.accumulator >= config.FixedStep {
		g.accumulator -= config.FixedStep
		g.Step(config.FixedStep)
		if g.Ended() {
			g.accumulator = 0
			return
		}
	}
}

// Step advances the simulation by exactly dt seconds.
func (g *Game) Step(dt float64) {
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	g.PhysicsSystem.Update(dt)
	g.MovementSystem.Update(dt)
	g.AreaAttackSystem.Update(dt)
	g.AuraSystem.Update(dt)
	g.CombatSystem.Update(dt)
	g.ProjectileSystem.Update(dt)
	g.StatusEffectSystem.Update(dt)
	g.VisualEffectSystem.Update(dt)
	g.Scheduler.Advance(dt)
	g.cleanupDestroyedEntities()
}

// RunFor steps the simulation for the given number of seconds, ignoring
// the play state. Used by the headless runner and tests.
func (g *Game) RunFor(seconds float64) {
	for t := 0.0; t < seconds && !g.Ended(); t += config.FixedStep {
		g.Step(config.FixedStep)
	}
}

// GameTime returns the simulated seconds since the game started.
func (g *Game) GameTime() float64 { return g.gameTime }

// Ended reports whether the game is over.
func (g *Game) Ended() bool { return g.WaveSystem.Ended() }

// StartRound asks the spawner to begin the next round.
func (g *Game) StartRound() error {
	if g.Ended() {
		return ErrGameEnded
	}
	if !g.WaveSystem.StartRound() {
		return ErrRoundInProgress
	}
	return nil
}

// TogglePlaySpeed switches between normal and double speed.
func (g *Game) TogglePlaySpeed() {
	switch g.ECS.Player.PlayState {
	case component.Play:
		g.PlayerSystem.SetPlayState(component.Play2x)
	case component.Play2x:
		g.PlayerSystem.SetPlayState(component.Play)
	}
}

// WaveID returns the id of the wave data in use.
func (g *Game) WaveID() string { return g.waveID }

// Reload swaps in freshly loaded definitions. Wave changes apply from the
// next round; buildable changes apply to towers placed afterwards.
func (g *Game) Reload(lib *defs.Library) {
	data, ok := lib.Wave(g.waveID)
	if !ok {
		log.Printf("game: reload has no wave %q, keeping the old definitions", g.waveID)
		return
	}
	g.Library = lib
	g.WaveSystem.SetData(data)
	log.Printf("game: reloaded definitions")
}

// ReloadFrom loads a data directory and swaps it in. A broken file keeps
// the old definitions.
func (g *Game) ReloadFrom(dir string) error {
	lib, err := defs.LoadLibrary(dir)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", dir, err)
	}
	g.Reload(lib)
	return nil
}

func (g *Game) spawnEnemy(tmpl *defs.WaveEnemy, round system.RoundParameters) (types.EntityID, bool) {
	id := g.ECS.NewEntity()
	speed := tmpl.Speed
	if speed <= 0 {
		speed = 1
	}
	walker := &component.PathWalker{
		Speed:       config.EnemyBaseSpeed * speed * round.SpeedMultiplier,
		RotateSpeed: config.EnemyRotateSpeed,
	}
	if !g.MovementSystem.Place(id, walker) {
		g.ECS.RemoveEntity(id)
		return 0, false
	}
	holder := component.NewModifierHolder()
	g.ECS.Walkers[id] = walker
	g.ECS.Healths[id] = component.NewHealth(tmpl.Health * round.HealthScale)
	g.ECS.Modifiers[id] = holder
	g.ECS.Enemies[id] = &component.Enemy{
		DefID:          tmpl.ID,
		Reward:         tmpl.Reward,
		AcidMultiplier: tmpl.AcidMultiplier,
		Round:          round.Round,
	}
	g.ECS.Renderables[id] = &component.Renderable{
		Color:     config.EnemyColor,
		Radius:    float32(config.EnemyRadius),
		HasStroke: true,
	}
	g.ECS.Resolve(id)
	g.StatusEffectSystem.Register(id, holder)
	return id, true
}

// cleanupDestroyedEntities removes dead enemies, announcing each one
// before its components go away.
func (g *Game) cleanupDestroyedEntities() {
	for _, id := range entity.SortedIDs(g.ECS.Enemies) {
		health, ok := g.ECS.Healths[id]
		if !ok || !health.Dead() {
			continue
		}
		enemy := g.ECS.Enemies[id]
		reachedEnd := enemy.ReachedEnd || health.Cause == component.CauseReachedEnd
		var killer types.EntityID
		if !reachedEnd {
			killer = health.LastDealer
		}
		g.EventDispatcher.Dispatch(event.Event{
			Type: event.EnemyDestroyed,
			Data: event.EnemyDestroyedData{Enemy: id, Killer: killer, ReachedEnd: reachedEnd},
		})
		g.removeEntity(id)
	}
}

// removeEntity drops an entity with its physics body and scheduled tasks.
func (g *Game) removeEntity(id types.EntityID) {
	g.Scheduler.CancelOwner(id)
	g.PhysicsSystem.Remove(id)
	g.ECS.RemoveEntity(id)
}
