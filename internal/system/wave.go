// internal/system/wave.go
package system

import (
	"log"
	"math"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/schedule"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/utils"
	vec "go-elemental-td/pkg/utils"
)

// SpawnFunc creates one enemy from a template for the given round and
// returns its id. It reports false when nothing could be spawned.
type SpawnFunc func(tmpl *defs.WaveEnemy, round RoundParameters) (types.EntityID, bool)

// RoundParameters are fixed for the whole round when it starts.
type RoundParameters struct {
	Round           int
	Progress        float64
	Difficulty      float64
	Count           int
	SpawnInterval   float64
	SpeedMultiplier float64
	HealthScale     float64
}

// ComputeRound derives a round's parameters from the wave data. Past the
// last authored round the progress itself is used as the difficulty.
func ComputeRound(data *defs.WaveData, round int) RoundParameters {
	p := RoundParameters{Round: round}
	if data.MaxRounds > 0 {
		p.Progress = float64(round) / float64(data.MaxRounds)
	}
	if p.Progress > 1 {
		p.Difficulty = p.Progress
	} else {
		p.Difficulty = data.DifficultyCurve.Evaluate(p.Progress)
	}
	if p.Difficulty < 0 {
		p.Difficulty = 0
	}

	span := float64(data.MaxEnemies - data.MinEnemies)
	p.Count = int(math.RoundToEven(p.Difficulty*span + float64(data.MinEnemies)))
	if p.Count < 0 {
		p.Count = 0
	}
	p.SpawnInterval = math.Max(data.InitialSpawnInterval*(1-p.Progress), data.MinSpawnInterval)
	p.SpeedMultiplier = math.Min(
		vec.Lerp(data.InitialSpeedMultiplier, data.MaxSpeedMultiplier, p.Difficulty),
		data.MaxSpeedMultiplier,
	)
	p.HealthScale = 1 + data.MaxAdditionalHealth*p.Difficulty
	return p
}

// WaveSystem runs the round state machine. Spawns and the end-of-round
// poll are scheduler tasks owned by the spawner's own entity id, so
// cancelling that owner stops every pending round action.
type WaveSystem struct {
	ecs        *entity.ECS
	scheduler  *schedule.Scheduler
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
	player     *PlayerSystem
	settings   config.RoundSettings
	spawn      SpawnFunc

	data    *defs.WaveData
	pending *defs.WaveData
	params  RoundParameters
	spawned map[types.EntityID]struct{}
	total   int
	poll    schedule.TaskID
}

func NewWaveSystem(
	ecs *entity.ECS,
	scheduler *schedule.Scheduler,
	dispatcher *event.Dispatcher,
	rng *utils.PRNGService,
	player *PlayerSystem,
	data *defs.WaveData,
	settings config.RoundSettings,
	spawn SpawnFunc,
) *WaveSystem {
	s := &WaveSystem{
		ecs:        ecs,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		rng:        rng,
		player:     player,
		settings:   settings,
		spawn:      spawn,
		data:       data,
		spawned:    make(map[types.EntityID]struct{}),
	}
	if ecs.Wave.Owner == 0 {
		ecs.Wave.Owner = ecs.NewEntity()
	}
	dispatcher.Subscribe(event.EnemyDestroyed, s)
	dispatcher.Subscribe(event.PathCompleted, s)
	return s
}

// Data returns the wave data the current round uses.
func (s *WaveSystem) Data() *defs.WaveData { return s.data }

// Params returns the parameters of the current or last round.
func (s *WaveSystem) Params() RoundParameters { return s.params }

// SetData queues new wave data. It takes effect when the next round starts
// so a running round keeps consistent parameters.
func (s *WaveSystem) SetData(data *defs.WaveData) {
	if data == nil {
		return
	}
	if s.ecs.Wave.State == component.SpawnerIdle {
		s.data = data
		s.pending = nil
		return
	}
	s.pending = data
}

// StartRound begins the next round. It only starts from Idle.
func (s *WaveSystem) StartRound() bool {
	if s.ecs.Wave.State != component.SpawnerIdle {
		return false
	}
	s.beginRound()
	return true
}

func (s *WaveSystem) beginRound() {
	wave := s.ecs.Wave
	if s.pending != nil {
		s.data = s.pending
		s.pending = nil
		log.Printf("wave: applied reloaded wave data %q", s.data.ID)
	}
	s.params = ComputeRound(s.data, wave.Round)
	s.total = 0

	wave.State = component.SpawnerSpawning
	wave.ToSpawn = s.params.Count
	wave.Difficulty = s.params.Difficulty
	wave.SpawnInterval = s.params.SpawnInterval
	wave.SpeedMultiplier = s.params.SpeedMultiplier
	wave.HealthScale = s.params.HealthScale

	log.Printf("wave: starting round %d/%d, difficulty %d%%, %d enemies",
		wave.Round+1, s.data.MaxRounds+1, int(math.Round(s.params.Difficulty*100)), s.params.Count)
	s.dispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Round: wave.Round, Enemies: s.params.Count}})
	s.scheduler.After(wave.Owner, s.settings.StartDelay, s.spawnNext)
}

func (s *WaveSystem) spawnNext() {
	wave := s.ecs.Wave
	if wave.State != component.SpawnerSpawning {
		return
	}
	if wave.ToSpawn <= 0 {
		s.enterWaiting()
		return
	}
	tmpl := s.chooseEnemy(s.params.Difficulty)
	if id, ok := s.spawn(tmpl, s.params); ok {
		s.spawned[id] = struct{}{}
		wave.Alive++
		s.total++
		s.dispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: id})
		// A one-node path finishes during placement, before the id is tracked.
		if w, ok := s.ecs.Walkers[id]; ok && w.Finished {
			s.reachedEnd(id)
		}
	} else {
		log.Printf("wave: could not spawn %q", tmpl.ID)
	}
	// The spawn may have cost the last life.
	if wave.State != component.SpawnerSpawning {
		return
	}
	wave.ToSpawn--
	if wave.ToSpawn <= 0 {
		s.enterWaiting()
		return
	}
	s.scheduler.After(wave.Owner, s.params.SpawnInterval, s.spawnNext)
}

// chooseEnemy picks a template whose difficulty fits the round, weighted
// by the template weights. The easiest template is always allowed.
func (s *WaveSystem) chooseEnemy(difficulty float64) *defs.WaveEnemy {
	limit := difficulty * 100
	easiest := s.data.Easiest()
	var indices, weights []int
	for i, e := range s.data.PotentialEnemies {
		if i != easiest && float64(e.Difficulty) > limit {
			continue
		}
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		indices = append(indices, i)
		weights = append(weights, w)
	}
	return &s.data.PotentialEnemies[indices[s.rng.ChooseWeighted(weights)]]
}

func (s *WaveSystem) enterWaiting() {
	wave := s.ecs.Wave
	wave.State = component.SpawnerWaiting
	s.poll = s.scheduler.Every(wave.Owner, config.WavePollInterval, s.checkRoundOver)
}

func (s *WaveSystem) checkRoundOver() {
	wave := s.ecs.Wave
	if wave.State != component.SpawnerWaiting || wave.Alive > 0 {
		return
	}
	s.scheduler.Cancel(s.poll)
	s.poll = 0
	s.endRound()
}

func (s *WaveSystem) endRound() {
	wave := s.ecs.Wave
	s.dispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: event.WaveData{Round: wave.Round, Enemies: s.total}})
	wave.Round++

	switch {
	case !s.settings.Endless && wave.Round > s.data.MaxRounds:
		s.endGame(true)
	case s.settings.AutoStart:
		wave.State = component.SpawnerAutoStartDelay
		s.scheduler.After(wave.Owner, s.settings.AutoStartDelay, func() {
			if wave.State == component.SpawnerAutoStartDelay {
				s.beginRound()
			}
		})
	default:
		wave.State = component.SpawnerIdle
		if s.pending != nil {
			s.data = s.pending
			s.pending = nil
		}
	}
}

func (s *WaveSystem) endGame(victory bool) {
	wave := s.ecs.Wave
	if wave.State == component.SpawnerGameEnded {
		return
	}
	wave.State = component.SpawnerGameEnded
	wave.Victory = victory
	wave.ToSpawn = 0
	s.scheduler.CancelOwner(wave.Owner)
	s.poll = 0
	log.Printf("wave: game ended after round %d, victory=%v", wave.Round, victory)
	s.dispatcher.Dispatch(event.Event{Type: event.GameEnded, Data: event.GameEndedData{Victory: victory, Round: wave.Round}})
}

// Ended reports whether the game is over.
func (s *WaveSystem) Ended() bool { return s.ecs.Wave.State == component.SpawnerGameEnded }

func (s *WaveSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyDestroyed:
		data, ok := e.Data.(event.EnemyDestroyedData)
		if !ok {
			return
		}
		if _, tracked := s.spawned[data.Enemy]; !tracked {
			return
		}
		delete(s.spawned, data.Enemy)
		if s.ecs.Wave.Alive > 0 {
			s.ecs.Wave.Alive--
		}
	case event.PathCompleted:
		id, ok := e.Data.(types.EntityID)
		if !ok {
			return
		}
		if _, tracked := s.spawned[id]; !tracked {
			return
		}
		s.reachedEnd(id)
	}
}

// reachedEnd kills an enemy that walked off the path and costs a life.
func (s *WaveSystem) reachedEnd(id types.EntityID) {
	caps, hasCaps := s.ecs.CapabilitiesOf(id)
	if hasCaps && caps.Damageable != nil && caps.Damageable.Current() <= 0 {
		return
	}
	if enemy, ok := s.ecs.Enemies[id]; ok {
		if enemy.ReachedEnd {
			return
		}
		enemy.ReachedEnd = true
	}
	if hasCaps && caps.Damageable != nil {
		caps.Damageable.ApplyDamage(config.ReachedEndDamage, 0, component.CauseReachedEnd)
	}
	if s.ecs.Wave.State == component.SpawnerGameEnded {
		return
	}
	if s.player.LoseLife() <= 0 {
		s.endGame(false)
	}
}
