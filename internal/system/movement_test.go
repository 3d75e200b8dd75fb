package system

import (
	"testing"

	"go-elemental-td/internal/component"
	"go-elemental-td/internal/event"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/pathgraph"
	vec "go-elemental-td/pkg/utils"
)

func straightGraph() *pathgraph.Graph {
	return pathgraph.Build([]*pathgraph.Node{
		{Position: vec.Vec3{X: 0}},
		{Position: vec.Vec3{X: 10}},
		{Position: vec.Vec3{X: 20}},
	})
}

func placeWalker(t *testing.T, w *testWorld, s *MovementSystem, speed float64) (types.EntityID, *component.PathWalker) {
	t.Helper()
	id := w.ecs.NewEntity()
	walker := &component.PathWalker{Speed: speed, RotateSpeed: 6}
	if !s.Place(id, walker) {
		t.Fatal("place failed")
	}
	w.ecs.Walkers[id] = walker
	return id, walker
}

func TestWalkerAdvancesAndTracksDistance(t *testing.T) {
	w := newTestWorld()
	s := NewMovementSystem(w.ecs, straightGraph(), w.rng, w.dispatcher)
	_, walker := placeWalker(t, w, s, 5)

	if walker.DistanceFromEnd != 20 {
		t.Fatalf("DistanceFromEnd = %v, want 20", walker.DistanceFromEnd)
	}
	s.Update(1)
	if walker.DistanceFromStart != 5 || walker.DistanceFromEnd != 15 {
		t.Fatalf("after 1s got start %v end %v", walker.DistanceFromStart, walker.DistanceFromEnd)
	}
	if walker.Target.Position.X != 10 {
		t.Fatalf("target = %v, want second node", walker.Target.Position)
	}
}

func TestWalkerSnapsOnOvershoot(t *testing.T) {
	w := newTestWorld()
	s := NewMovementSystem(w.ecs, straightGraph(), w.rng, w.dispatcher)
	id, walker := placeWalker(t, w, s, 100)

	s.Update(1)
	pos := w.ecs.Positions[id]
	if pos.X != 10 {
		t.Fatalf("position = %v, want snapped to 10", pos.X)
	}
	if walker.Target.Position.X != 20 {
		t.Fatalf("target = %v, want last node", walker.Target.Position)
	}
}

func TestPathCompletedFiresOnce(t *testing.T) {
	w := newTestWorld()
	s := NewMovementSystem(w.ecs, straightGraph(), w.rng, w.dispatcher)
	id, walker := placeWalker(t, w, s, 7)

	for i := 0; i < 20; i++ {
		s.Update(1)
	}
	if !walker.Finished {
		t.Fatal("walker should have finished")
	}
	if n := w.recorder.Count(event.PathCompleted); n != 1 {
		t.Fatalf("PathCompleted fired %d times, want 1", n)
	}
	if got := w.recorder.Events[0].Data; got != id {
		t.Fatalf("event data = %v, want %v", got, id)
	}
	if pos := w.ecs.Positions[id]; pos.X != 20 {
		t.Fatalf("finished at %v, want 20", pos.X)
	}
}

func TestMultipliersStack(t *testing.T) {
	w := newTestWorld()
	s := NewMovementSystem(w.ecs, straightGraph(), w.rng, w.dispatcher)
	_, walker := placeWalker(t, w, s, 4)
	walker.Multipliers.Add("slower", 0.5)
	walker.Multipliers.Add("slower", 0.5)

	s.Update(1)
	if walker.DistanceFromStart != 1 {
		t.Fatalf("moved %v, want 1", walker.DistanceFromStart)
	}
	walker.Multipliers.Remove("slower", 0.5)
	s.Update(1)
	if walker.DistanceFromStart != 3 {
		t.Fatalf("moved %v, want 3", walker.DistanceFromStart)
	}
}

func TestWalkersTakeEveryBranch(t *testing.T) {
	side := &pathgraph.Node{Position: vec.Vec3{X: 10, Z: 10}}
	graph := pathgraph.Build([]*pathgraph.Node{
		{Position: vec.Vec3{X: 0}},
		{Position: vec.Vec3{X: 10}, Branch: []*pathgraph.Node{side}},
		{Position: vec.Vec3{X: 20}},
	})
	w := newTestWorld()
	s := NewMovementSystem(w.ecs, graph, w.rng, w.dispatcher)

	seen := map[*pathgraph.Node]bool{}
	for i := 0; i < 50; i++ {
		_, walker := placeWalker(t, w, s, 10)
		s.Update(1)
		seen[walker.Target] = true
	}
	if len(seen) != 2 || !seen[side] {
		t.Fatalf("walkers chose %d distinct targets, want both branches", len(seen))
	}
}
