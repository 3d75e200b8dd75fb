package system

import (
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/currency"
	vec "go-elemental-td/pkg/utils"
)

func testWaveData() *defs.WaveData {
	d := defs.DefaultWaveData()
	d.ID = "test"
	d.PotentialEnemies = []defs.WaveEnemy{
		{ID: "brute", Health: 20, Difficulty: 50, Weight: 1, Reward: currency.New(30)},
		{ID: "grunt", Health: 5, Weight: 3, Reward: currency.New(10)},
	}
	return &d
}

type waveFixture struct {
	*testWorld
	player *PlayerSystem
	waves  *WaveSystem
}

func newWaveFixture(settings config.RoundSettings) *waveFixture {
	w := newTestWorld()
	f := &waveFixture{testWorld: w}
	f.player = NewPlayerSystem(w.ecs, w.dispatcher)
	data := testWaveData()
	f.waves = NewWaveSystem(w.ecs, w.scheduler, w.dispatcher, w.rng, f.player, data, settings, f.spawn)
	f.player.Reset(data.PlayerLives, data.PlayerStartingCurrency)
	return f
}

func (f *waveFixture) spawn(tmpl *defs.WaveEnemy, p RoundParameters) (types.EntityID, bool) {
	id := f.addEnemy(vec.Vec3{}, tmpl.Health*p.HealthScale)
	f.ecs.Enemies[id].DefID = tmpl.ID
	f.ecs.Enemies[id].Reward = tmpl.Reward
	return id, true
}

func (f *waveFixture) killAll() {
	for _, id := range entity.SortedIDs(f.ecs.Enemies) {
		f.dispatcher.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyDestroyedData{Enemy: id}})
		f.ecs.RemoveEntity(id)
	}
}

func (f *waveFixture) advance(seconds, step float64) {
	for t := 0.0; t < seconds; t += step {
		f.scheduler.Advance(step)
	}
}

func TestComputeRound(t *testing.T) {
	data := testWaveData()
	tests := []struct {
		name     string
		round    int
		count    int
		interval float64
		speed    float64
		health   float64
	}{
		{"First", 0, 5, 1, 1, 1},
		{"Middle", 5, 18, 0.5, 5.5, 2.25},
		{"Last", 10, 30, 0.1, 10, 3.5},
		{"PastEnd", 20, 55, 0.1, 10, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeRound(data, tt.round)
			if p.Count != tt.count {
				t.Errorf("count = %d, want %d", p.Count, tt.count)
			}
			if !approx(p.SpawnInterval, tt.interval) {
				t.Errorf("interval = %v, want %v", p.SpawnInterval, tt.interval)
			}
			if !approx(p.SpeedMultiplier, tt.speed) {
				t.Errorf("speed = %v, want %v", p.SpeedMultiplier, tt.speed)
			}
			if !approx(p.HealthScale, tt.health) {
				t.Errorf("health = %v, want %v", p.HealthScale, tt.health)
			}
		})
	}
}

func TestRoundZeroSpawnsMinimum(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{})
	if !f.waves.StartRound() {
		t.Fatal("round should start from idle")
	}
	if f.waves.StartRound() {
		t.Fatal("a second start must be refused while spawning")
	}
	f.advance(6, 0.1)

	if n := f.recorder.Count(event.EnemySpawned); n != 5 {
		t.Fatalf("spawned %d, want 5", n)
	}
	if f.ecs.Wave.State != component.SpawnerWaiting || f.ecs.Wave.Alive != 5 {
		t.Fatalf("state %v alive %d, want waiting with 5", f.ecs.Wave.State, f.ecs.Wave.Alive)
	}
	for _, id := range entity.SortedIDs(f.ecs.Enemies) {
		if f.ecs.Enemies[id].DefID != "grunt" {
			t.Fatalf("round 0 may only spawn the easiest enemy, got %q", f.ecs.Enemies[id].DefID)
		}
	}
}

func TestAutoStartWithinOnePoll(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{AutoStart: true})
	f.waves.StartRound()
	f.advance(6, 0.1)
	f.killAll()

	f.scheduler.Advance(config.WavePollInterval)

	if f.ecs.Wave.Round != 1 || f.ecs.Wave.State != component.SpawnerSpawning {
		t.Fatalf("round %d state %v, want round 1 spawning", f.ecs.Wave.Round, f.ecs.Wave.State)
	}
	if f.recorder.Count(event.WaveEnded) != 1 || f.recorder.Count(event.WaveStarted) != 2 {
		t.Fatal("expected one ended and two started rounds")
	}
}

func TestDefaultAutoStartWithinOnePoll(t *testing.T) {
	rounds := config.DefaultSettings().Rounds
	rounds.AutoStart = true
	f := newWaveFixture(rounds)
	f.waves.StartRound()
	f.advance(6, 0.1)
	f.killAll()

	f.scheduler.Advance(config.WavePollInterval)

	if f.ecs.Wave.Round != 1 || f.ecs.Wave.State != component.SpawnerSpawning {
		t.Fatalf("round %d state %v one poll after the last kill, want round 1 spawning", f.ecs.Wave.Round, f.ecs.Wave.State)
	}
}

func TestGameEndedSurvivesLethalSpawn(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{AutoStart: true})
	f.player.Reset(1, currency.New(0))
	// Enemies arrive already at the end, as on a one-node path.
	f.waves.spawn = func(tmpl *defs.WaveEnemy, p RoundParameters) (types.EntityID, bool) {
		id, ok := f.spawn(tmpl, p)
		f.ecs.Walkers[id].Finished = true
		return id, ok
	}

	f.waves.StartRound()
	f.advance(0.1, 0.1)
	if f.ecs.Wave.State != component.SpawnerGameEnded || !f.waves.Ended() {
		t.Fatalf("state %v lives %d, want game ended", f.ecs.Wave.State, f.ecs.Player.Lives)
	}

	f.advance(5, 0.1)
	if f.ecs.Wave.State != component.SpawnerGameEnded || f.ecs.Wave.Victory {
		t.Fatalf("state %v victory %v, want defeat to stick", f.ecs.Wave.State, f.ecs.Wave.Victory)
	}
	if f.ecs.Wave.Round != 0 || f.recorder.Count(event.WaveEnded) != 0 {
		t.Fatalf("round %d, %d rounds ended after defeat", f.ecs.Wave.Round, f.recorder.Count(event.WaveEnded))
	}
	if n := f.recorder.Count(event.GameEnded); n != 1 {
		t.Fatalf("game ended %d times", n)
	}
	if n := f.recorder.Count(event.EnemySpawned); n != 1 {
		t.Fatalf("spawned %d after defeat, want 1", n)
	}
}

func TestWithoutAutoStartReturnsToIdle(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{})
	f.waves.StartRound()
	f.advance(6, 0.1)
	f.killAll()
	f.advance(2, 0.1)

	if f.ecs.Wave.State != component.SpawnerIdle || f.ecs.Wave.Round != 1 {
		t.Fatalf("state %v round %d, want idle round 1", f.ecs.Wave.State, f.ecs.Wave.Round)
	}
	f.advance(10, 0.1)
	if f.recorder.Count(event.WaveStarted) != 1 {
		t.Fatal("next round must wait for the player")
	}
}

func TestLivesRunningOutEndsGame(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{AutoStart: true})
	f.player.Reset(1, currency.New(0))
	f.waves.StartRound()
	f.advance(1.5, 0.1)

	ids := entity.SortedIDs(f.ecs.Enemies)
	if len(ids) == 0 {
		t.Fatal("nothing spawned")
	}
	f.dispatcher.Dispatch(event.Event{Type: event.PathCompleted, Data: ids[0]})

	if f.ecs.Wave.State != component.SpawnerGameEnded || f.ecs.Wave.Victory {
		t.Fatalf("state %v victory %v, want lost game", f.ecs.Wave.State, f.ecs.Wave.Victory)
	}
	if f.ecs.Player.Lives != 0 {
		t.Fatalf("lives = %d", f.ecs.Player.Lives)
	}
	if !f.ecs.Healths[ids[0]].Dead() || !f.ecs.Enemies[ids[0]].ReachedEnd {
		t.Fatal("enemy at the end must die")
	}
	if n := f.scheduler.PendingFor(f.ecs.Wave.Owner); n != 0 {
		t.Fatalf("%d spawner tasks left", n)
	}

	spawned := f.recorder.Count(event.EnemySpawned)
	f.advance(20, 0.1)
	if f.recorder.Count(event.EnemySpawned) != spawned || f.recorder.Count(event.WaveStarted) != 1 {
		t.Fatal("no further spawns or rounds after the game ended")
	}
	if f.recorder.Count(event.GameEnded) != 1 || f.waves.StartRound() {
		t.Fatal("game end is terminal")
	}
}

func TestVictoryAfterLastRound(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{AutoStart: true})
	f.waves.Data().MaxRounds = 1
	f.waves.StartRound()
	for i := 0; i < 200 && !f.waves.Ended(); i++ {
		f.scheduler.Advance(0.5)
		f.killAll()
	}
	if !f.waves.Ended() || !f.ecs.Wave.Victory {
		t.Fatalf("state %v victory %v, want a won game", f.ecs.Wave.State, f.ecs.Wave.Victory)
	}
	if f.ecs.Wave.Round != 2 || f.recorder.Count(event.WaveEnded) != 2 {
		t.Fatalf("round %d, ended %d", f.ecs.Wave.Round, f.recorder.Count(event.WaveEnded))
	}
}

func TestRewardsAndKillCount(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{})
	f.player.Reset(5, currency.New(0))
	tower := f.ecs.NewEntity()
	f.ecs.Towers[tower] = &component.Tower{}

	killed := f.addEnemy(vec.Vec3{}, 1)
	f.ecs.Enemies[killed].Reward = currency.New(10)
	escaped := f.addEnemy(vec.Vec3{}, 1)
	f.ecs.Enemies[escaped].Reward = currency.New(1000)

	f.dispatcher.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyDestroyedData{Enemy: killed, Killer: tower}})
	f.dispatcher.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyDestroyedData{Enemy: escaped, ReachedEnd: true}})

	if got := f.ecs.Player.Currency.String(); got != "10" {
		t.Fatalf("currency = %s, want 10", got)
	}
	if f.ecs.Towers[tower].KillCount != 1 {
		t.Fatal("killer should be credited")
	}
}

func TestReloadedDataWaitsForNextRound(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{})
	f.waves.StartRound()
	other := testWaveData()
	other.ID = "other"
	f.waves.SetData(other)
	if f.waves.Data().ID != "test" {
		t.Fatal("data must not change mid round")
	}
	f.advance(6, 0.1)
	f.killAll()
	f.advance(2, 0.1)
	if f.waves.Data().ID != "other" {
		t.Fatalf("data = %q after the round, want other", f.waves.Data().ID)
	}
}

func TestChooseEnemyRespectsDifficulty(t *testing.T) {
	f := newWaveFixture(config.RoundSettings{})
	for i := 0; i < 50; i++ {
		if e := f.waves.chooseEnemy(0); e.ID != "grunt" {
			t.Fatalf("difficulty 0 chose %q", e.ID)
		}
	}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[f.waves.chooseEnemy(1).ID] = true
	}
	if !seen["brute"] || !seen["grunt"] {
		t.Fatalf("difficulty 1 should allow both, saw %v", seen)
	}
}
