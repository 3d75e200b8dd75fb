package system

import (
	"go-elemental-td/internal/component"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/schedule"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/utils"
	vec "go-elemental-td/pkg/utils"
)

type testWorld struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
	scheduler  *schedule.Scheduler
	rng        *utils.PRNGService
	recorder   *event.Recorder
}

func newTestWorld() *testWorld {
	w := &testWorld{
		ecs:        entity.NewECS(),
		dispatcher: event.NewDispatcher(),
		scheduler:  schedule.New(),
		rng:        utils.NewPRNGService(7),
		recorder:   &event.Recorder{},
	}
	w.dispatcher.SubscribeAll(w.recorder,
		event.EnemyDestroyed, event.PathCompleted, event.ElementAdded, event.ElementRemoved,
		event.StatusChanged, event.WaveStarted, event.WaveEnded, event.LivesChanged,
		event.CurrencyChanged, event.GameEnded, event.EnemySpawned)
	return w
}

// addEnemy creates an enemy with health, modifiers and a walker at pos.
func (w *testWorld) addEnemy(pos vec.Vec3, health float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{X: pos.X, Y: pos.Y, Z: pos.Z}
	w.ecs.Healths[id] = component.NewHealth(health)
	w.ecs.Modifiers[id] = component.NewModifierHolder()
	w.ecs.Walkers[id] = &component.PathWalker{Speed: 1}
	w.ecs.Enemies[id] = &component.Enemy{AcidMultiplier: 1}
	w.ecs.Resolve(id)
	return id
}
