// internal/system/physics.go
package system

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"

	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/utils"
)

// Collision categories.
const (
	categoryEnemy    uint = 1 << 0
	categoryObstacle uint = 1 << 1
)

// PhysicsSystem mirrors enemies and obstacles into a chipmunk space laid on
// the XZ plane. Walkers own movement: enemy bodies are kinematic with zero
// velocity, and stepping the space only refreshes their bounding boxes for
// queries.
type PhysicsSystem struct {
	ecs       *entity.ECS
	space     *cp.Space
	bodies    map[types.EntityID]*cp.Body
	shapes    map[*cp.Shape]types.EntityID
	obstacles []*cp.Shape
}

func NewPhysicsSystem(ecs *entity.ECS) *PhysicsSystem {
	return &PhysicsSystem{
		ecs:    ecs,
		space:  cp.NewSpace(),
		bodies: make(map[types.EntityID]*cp.Body),
		shapes: make(map[*cp.Shape]types.EntityID),
	}
}

func toCP(v utils.Vec3) cp.Vector { return cp.Vector{X: v.X, Y: v.Z} }

// AddObstacles adds static boxes that block line of sight.
func (s *PhysicsSystem) AddObstacles(boxes []defs.Box) {
	for _, b := range boxes {
		bb := cp.BB{L: b.Min.X, B: b.Min.Z, R: b.Max.X, T: b.Max.Z}
		shape := cp.NewBox2(s.space.StaticBody, bb, 0)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryObstacle, cp.ALL_CATEGORIES))
		s.space.AddShape(shape)
		s.obstacles = append(s.obstacles, shape)
	}
}

// Update adds bodies for new enemies, moves every body to its entity's
// position and drops bodies whose entity is gone.
func (s *PhysicsSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		body, ok := s.bodies[id]
		if !ok {
			body = s.addEnemy(id)
		}
		body.SetPosition(toCP(pos.Vec()))
	}
	for id := range s.bodies {
		if _, alive := s.ecs.Enemies[id]; !alive {
			s.Remove(id)
		}
	}
	s.space.Step(config.FixedStep)
}

func (s *PhysicsSystem) addEnemy(id types.EntityID) *cp.Body {
	body := cp.NewKinematicBody()
	shape := cp.NewCircle(body, config.EnemyRadius, cp.Vector{})
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryEnemy, cp.ALL_CATEGORIES))
	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.bodies[id] = body
	s.shapes[shape] = id
	return body
}

// Remove drops the body of id, if any.
func (s *PhysicsSystem) Remove(id types.EntityID) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	for shape, owner := range s.shapes {
		if owner == id {
			s.space.RemoveShape(shape)
			delete(s.shapes, shape)
		}
	}
	s.space.RemoveBody(body)
	delete(s.bodies, id)
}

// QueryRadius returns the enemies whose body overlaps the circle, in id
// order.
func (s *PhysicsSystem) QueryRadius(center utils.Vec3, radius float64) []types.EntityID {
	var found []types.EntityID
	p := toCP(center)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryEnemy)
	s.space.BBQuery(cp.NewBBForCircle(p, radius), filter, func(shape *cp.Shape, data interface{}) {
		id, ok := s.shapes[shape]
		if !ok {
			return
		}
		if shape.PointQuery(p).Distance <= radius {
			found = append(found, id)
		}
	}, nil)
	slices.SortFunc(found, func(a, b types.EntityID) int { return cmp.Compare(a, b) })
	return slices.Compact(found)
}

// LineOfSight reports whether no obstacle crosses the segment from a to b.
func (s *PhysicsSystem) LineOfSight(a, b utils.Vec3) bool {
	if len(s.obstacles) == 0 {
		return true
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryObstacle)
	hit := s.space.SegmentQueryFirst(toCP(a), toCP(b), 0, filter)
	return hit.Shape == nil
}

// Bodies returns how many enemy bodies are tracked.
func (s *PhysicsSystem) Bodies() int { return len(s.bodies) }
