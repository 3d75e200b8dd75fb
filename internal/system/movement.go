// internal/system/movement.go
package system

import (
	"log"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/config"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/types"
	"go-elemental-td/internal/utils"
	"go-elemental-td/pkg/pathgraph"
	vec "go-elemental-td/pkg/utils"
)

// MovementSystem advances every path walker along the shared graph.
type MovementSystem struct {
	ecs        *entity.ECS
	graph      *pathgraph.Graph
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, graph *pathgraph.Graph, rng *utils.PRNGService, dispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{ecs: ecs, graph: graph, rng: rng, dispatcher: dispatcher}
}

// Place puts a walker at the graph entry, heading for the node after it.
func (s *MovementSystem) Place(id types.EntityID, w *component.PathWalker) bool {
	entry := s.graph.Entry()
	if entry == nil {
		log.Printf("movement: entity %d has no path to walk", id)
		return false
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		pos = &component.Position{}
		s.ecs.Positions[id] = pos
	}
	pos.Set(entry.Position)
	w.Target = entry
	w.SegmentStart = entry.Position
	s.arrive(id, w)
	if w.Target != nil && !w.Finished {
		w.Heading = w.Target.Position.Sub(entry.Position).Yaw()
	}
	return true
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Walkers) {
		w := s.ecs.Walkers[id]
		if w.Finished || w.Target == nil {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		s.step(id, pos, w, deltaTime)
	}
}

func (s *MovementSystem) step(id types.EntityID, pos *component.Position, w *component.PathWalker, dt float64) {
	target := w.Target.Position
	current := pos.Vec()
	dir := target.Sub(w.SegmentStart).Normalized()
	if dir == (vec.Vec3{}) {
		dir = target.Sub(current).Normalized()
	}

	move := w.EffectiveSpeed() * dt
	if move > 0 {
		current = current.Add(dir.Scale(move))
		pos.Set(current)
		w.DistanceFromStart += move
		w.DistanceFromEnd -= move
		if w.DistanceFromEnd < 0 {
			w.DistanceFromEnd = 0
		}
	}
	if dir != (vec.Vec3{}) {
		w.Heading = utils.RotateTowards(w.Heading, dir.Yaw(), w.RotateSpeed*dt)
	}

	segment := vec.Distance(w.SegmentStart, target)
	travelled := vec.Distance(w.SegmentStart, current)
	if travelled >= segment || vec.Distance(current, target) < config.RejoinEpsilon {
		pos.Set(target)
		s.arrive(id, w)
	}
}

// arrive handles reaching w.Target: it picks the next node at random among
// the candidates, or finishes the walk.
func (s *MovementSystem) arrive(id types.EntityID, w *component.PathWalker) {
	reached := w.Target
	if reached == s.graph.Entry() {
		w.DistanceFromStart = 0
	}
	w.SegmentStart = reached.Position

	candidates := s.graph.Candidates(reached)
	if len(candidates) == 0 {
		w.DistanceFromEnd = 0
		s.finish(id, w)
		return
	}
	next := candidates[0]
	if len(candidates) > 1 {
		next = candidates[s.rng.Intn(len(candidates))]
	}
	w.Target = next
	w.DistanceFromEnd = vec.Distance(reached.Position, next.Position) + s.graph.RemainingDistance(next)
}

func (s *MovementSystem) finish(id types.EntityID, w *component.PathWalker) {
	if w.Finished {
		return
	}
	w.Finished = true
	s.dispatcher.Dispatch(event.Event{Type: event.PathCompleted, Data: id})
}
