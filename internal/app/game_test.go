package app

import (
	"errors"
	"math"
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/event"
	"go-elemental-td/pkg/currency"
	"go-elemental-td/pkg/utils"
)

const dataDir = "../../assets/data"

func newTestGame(t *testing.T, level string) *Game {
	t.Helper()
	lib, err := defs.LoadLibrary(dataDir)
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	settings := config.DefaultSettings()
	settings.Data.Level = level
	g, err := NewGame(lib, settings)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func TestNewGameUnknownLevel(t *testing.T) {
	lib, err := defs.LoadLibrary(dataDir)
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	settings := config.DefaultSettings()
	settings.Data.Level = "nowhere"
	if _, err := NewGame(lib, settings); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestNewGameStartsWithWaveBudget(t *testing.T) {
	g := newTestGame(t, "meadow")
	if g.WaveID() != "default" {
		t.Fatalf("wave = %q, want the level's own wave", g.WaveID())
	}
	if g.ECS.Player.Lives != 50 || !g.ECS.Player.Currency.Equal(currency.New(150)) {
		t.Fatalf("player = %d lives, %s", g.ECS.Player.Lives, g.ECS.Player.Currency)
	}
	if g.ECS.Player.PlayState != component.Building {
		t.Fatalf("play state = %v, want building", g.ECS.Player.PlayState)
	}
}

func TestPlaceTowerRules(t *testing.T) {
	g := newTestGame(t, "meadow")

	water, err := g.PlaceTower("water_turret", utils.Vec3{X: 10, Z: 40})
	if err != nil {
		t.Fatalf("place water turret: %v", err)
	}
	if !g.ECS.Player.Currency.Equal(currency.New(100)) {
		t.Fatalf("currency = %s, want 100", g.ECS.Player.Currency)
	}
	if _, ok := g.ECS.Turrets[water]; !ok {
		t.Fatal("turret component missing")
	}

	tests := []struct {
		name  string
		defID string
		pos   utils.Vec3
		want  error
	}{
		{"Unknown", "laser", utils.Vec3{X: 10, Z: 45}, ErrUnknownBuildable},
		{"OnPath", "water_turret", utils.Vec3{X: 10, Z: 35}, ErrNotBuildable},
		{"OnBranch", "water_turret", utils.Vec3{X: 20.3, Z: 45}, ErrNotBuildable},
		{"InsideObstacle", "water_turret", utils.Vec3{X: 30, Z: 45}, ErrNotBuildable},
		{"OutOfBounds", "water_turret", utils.Vec3{X: -20, Z: 45}, ErrNotBuildable},
		{"TooCloseToTower", "water_turret", utils.Vec3{X: 10.5, Z: 40}, ErrNotBuildable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.PlaceTower(tt.defID, tt.pos); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := g.PlaceTower("fire_turret", utils.Vec3{X: 10, Z: 45}); err != nil {
		t.Fatalf("place fire turret: %v", err)
	}
	if !g.ECS.Player.Currency.IsZero() {
		t.Fatalf("currency = %s, want 0", g.ECS.Player.Currency)
	}
	if _, err := g.PlaceTower("ice_turret", utils.Vec3{X: 10, Z: 50}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want insufficient funds", err)
	}
	if len(g.ECS.Towers) != 2 {
		t.Fatalf("%d towers, want 2", len(g.ECS.Towers))
	}
}

func TestSellRefundsSellValue(t *testing.T) {
	g := newTestGame(t, "meadow")
	rec := &event.Recorder{}
	g.EventDispatcher.Subscribe(event.TowerRemoved, rec)

	id, err := g.PlaceTower("acid_pool", utils.Vec3{X: 10, Z: 40})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := g.SellTower(id); err != nil {
		t.Fatalf("sell: %v", err)
	}
	// 150 - 80 + 40
	if !g.ECS.Player.Currency.Equal(currency.New(110)) {
		t.Fatalf("currency = %s, want 110", g.ECS.Player.Currency)
	}
	if g.ECS.Exists(id) || rec.Count(event.TowerRemoved) != 1 {
		t.Fatal("sold tower should be gone and announced once")
	}
	if err := g.SellTower(id); !errors.Is(err, ErrNoSuchTower) {
		t.Fatalf("second sell err = %v", err)
	}
}

func TestUpgradeUntilMax(t *testing.T) {
	g := newTestGame(t, "meadow")
	id, err := g.PlaceTower("water_turret", utils.Vec3{X: 10, Z: 40})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	g.PlayerSystem.Earn(currency.New(1000))

	if _, err := g.UpgradeCost(id, defs.UpgradeVisionRadius); !errors.Is(err, ErrNoUpgrade) {
		t.Fatalf("vision cost err = %v, want no upgrade", err)
	}
	for level, want := range []int64{40, 80, 160} {
		cost, err := g.UpgradeCost(id, defs.UpgradeDamageMultiplier)
		if err != nil {
			t.Fatalf("cost of level %d: %v", level+1, err)
		}
		if !cost.Equal(currency.New(want)) {
			t.Fatalf("level %d costs %s, want %d", level+1, cost, want)
		}
		if err := g.TryUpgrade(id, defs.UpgradeDamageMultiplier); err != nil {
			t.Fatalf("upgrade to level %d: %v", level+1, err)
		}
	}
	if err := g.TryUpgrade(id, defs.UpgradeDamageMultiplier); !errors.Is(err, ErrMaxUpgrade) {
		t.Fatalf("err = %v, want max upgrade", err)
	}
	// 1150 - 50 - 40 - 80 - 160
	if !g.ECS.Player.Currency.Equal(currency.New(820)) {
		t.Fatalf("currency = %s, want 820", g.ECS.Player.Currency)
	}
	if got := g.ECS.Towers[id].Value(defs.UpgradeDamageMultiplier, 1); got != 2 {
		t.Fatalf("damage multiplier = %v, want 2", got)
	}
}

func TestVisionUpgradeGrowsZone(t *testing.T) {
	g := newTestGame(t, "meadow")
	g.PlayerSystem.Earn(currency.New(1000))
	id, err := g.PlaceTower("ice_turret", utils.Vec3{X: 10, Z: 40})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	tower := g.ECS.Towers[id]
	before := g.CombatSystem.Radius(tower)
	if err := g.TryUpgrade(id, defs.UpgradeVisionRadius); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if after := g.CombatSystem.Radius(tower); after <= before {
		t.Fatalf("radius %v -> %v, want it to grow", before, after)
	}
}

func TestUnguardedRoundCostsLives(t *testing.T) {
	g := newTestGame(t, "straight")
	rec := &event.Recorder{}
	g.EventDispatcher.SubscribeAll(rec, event.WaveStarted, event.WaveEnded, event.EnemyDestroyed)

	if err := g.StartRound(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if g.ECS.Player.PlayState != component.Play {
		t.Fatalf("play state = %v, want play", g.ECS.Player.PlayState)
	}
	if err := g.StartRound(); !errors.Is(err, ErrRoundInProgress) {
		t.Fatalf("second start err = %v", err)
	}

	g.RunFor(30)

	// Round 0 of the gauntlet spawns its minimum of 8 grunts.
	if rec.Count(event.EnemyDestroyed) != 8 {
		t.Fatalf("%d enemies destroyed, want 8", rec.Count(event.EnemyDestroyed))
	}
	if g.ECS.Player.Lives != 12 {
		t.Fatalf("lives = %d, want 12", g.ECS.Player.Lives)
	}
	if !g.ECS.Player.Currency.Equal(currency.New(300)) {
		t.Fatalf("currency = %s, enemies at the end pay nothing", g.ECS.Player.Currency)
	}
	if rec.Count(event.WaveEnded) != 1 || g.ECS.Wave.Round != 1 {
		t.Fatalf("wave ended %d times, round %d", rec.Count(event.WaveEnded), g.ECS.Wave.Round)
	}
	if g.ECS.Wave.State != component.SpawnerIdle || g.ECS.Player.PlayState != component.Building {
		t.Fatalf("spawner %v, play state %v after the round", g.ECS.Wave.State, g.ECS.Player.PlayState)
	}
	if len(g.ECS.Enemies) != 0 || g.PhysicsSystem.Bodies() != 0 {
		t.Fatal("every enemy should be cleaned up")
	}
}

func TestDefeatFreezesTheGame(t *testing.T) {
	g := newTestGame(t, "straight")
	g.ECS.Player.Lives = 3
	if err := g.StartRound(); err != nil {
		t.Fatalf("start: %v", err)
	}
	g.RunFor(30)

	if !g.Ended() || g.ECS.Wave.Victory {
		t.Fatalf("ended=%v victory=%v, want a defeat", g.Ended(), g.ECS.Wave.Victory)
	}
	if g.ECS.Player.Lives != 0 {
		t.Fatalf("lives = %d", g.ECS.Player.Lives)
	}
	if err := g.StartRound(); !errors.Is(err, ErrGameEnded) {
		t.Fatalf("start err = %v", err)
	}
	if _, err := g.PlaceTower("water_turret", utils.Vec3{X: 10, Z: 5}); !errors.Is(err, ErrGameEnded) {
		t.Fatalf("place err = %v", err)
	}
	if g.Scheduler.PendingFor(g.ECS.Wave.Owner) != 0 {
		t.Fatal("spawner tasks should be cancelled")
	}
	now := g.GameTime()
	g.Update(0.05)
	if g.GameTime() != now {
		t.Fatal("an ended game must not advance")
	}
}

func TestUpdateFollowsPlayState(t *testing.T) {
	g := newTestGame(t, "meadow")
	g.Update(1)
	// Frame time is capped.
	if got, want := g.GameTime(), 3*config.FixedStep; math.Abs(got-want) > 1e-9 {
		t.Fatalf("game time = %v, want %v", got, want)
	}
	g.PlayerSystem.SetPlayState(component.Play2x)
	g.Update(0.06)
	if got, want := g.GameTime(), 10*config.FixedStep; math.Abs(got-want) > 1e-9 {
		t.Fatalf("game time = %v, want %v at double speed", got, want)
	}
	g.TogglePlaySpeed()
	if g.ECS.Player.PlayState != component.Play {
		t.Fatalf("toggle from 2x gave %v", g.ECS.Player.PlayState)
	}
}

func TestReloadWhileIdle(t *testing.T) {
	g := newTestGame(t, "meadow")
	lib, err := defs.LoadLibrary(dataDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g.Reload(lib)
	if g.WaveSystem.Data() != lib.Waves["default"] || g.Library != lib {
		t.Fatal("reload while idle should apply at once")
	}
}

func TestReloadFromBrokenDirKeepsDefinitions(t *testing.T) {
	g := newTestGame(t, "meadow")
	old := g.Library
	if err := g.ReloadFrom(t.TempDir()); err == nil {
		t.Fatal("expected an error for an empty data dir")
	}
	if g.Library != old {
		t.Fatal("a failed reload must keep the old library")
	}
}
