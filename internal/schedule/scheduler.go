// Package schedule runs delayed and repeating callbacks on the simulation
// clock. Time only moves when Advance is called.
package schedule

import (
	"container/heap"

	"go-elemental-td/internal/types"
)

// TaskID identifies a scheduled callback. Zero is never issued.
type TaskID uint64

type task struct {
	id       TaskID
	owner    types.EntityID
	due      float64
	interval float64
	seq      uint64
	fn       func()
	index    int
}

// Scheduler is a min-heap of tasks ordered by due time, then by the order
// they were scheduled in.
type Scheduler struct {
	now     float64
	nextID  TaskID
	seq     uint64
	queue   taskQueue
	tasks   map[TaskID]*task
	byOwner map[types.EntityID]map[TaskID]struct{}
}

func New() *Scheduler {
	return &Scheduler{
		tasks:   make(map[TaskID]*task),
		byOwner: make(map[types.EntityID]map[TaskID]struct{}),
	}
}

// Now returns the simulation time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// PendingFor returns the number of live tasks owned by owner.
func (s *Scheduler) PendingFor(owner types.EntityID) int { return len(s.byOwner[owner]) }

// After runs fn once, delay seconds from now.
func (s *Scheduler) After(owner types.EntityID, delay float64, fn func()) TaskID {
	return s.schedule(owner, delay, 0, fn)
}

// Every runs fn each interval seconds, first after one interval. A
// non-positive interval is rejected with a zero id.
func (s *Scheduler) Every(owner types.EntityID, interval float64, fn func()) TaskID {
	if interval <= 0 {
		return 0
	}
	return s.schedule(owner, interval, interval, fn)
}

func (s *Scheduler) schedule(owner types.EntityID, delay, interval float64, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:       s.nextID,
		owner:    owner,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	s.tasks[t.id] = t
	owned, ok := s.byOwner[owner]
	if !ok {
		owned = make(map[TaskID]struct{})
		s.byOwner[owner] = owned
	}
	owned[t.id] = struct{}{}
	heap.Push(&s.queue, t)
	return t.id
}

// Cancel removes a task. Unknown ids are ignored.
func (s *Scheduler) Cancel(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	s.forget(t)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

// CancelOwner removes every task owned by owner.
func (s *Scheduler) CancelOwner(owner types.EntityID) {
	for id := range s.byOwner[owner] {
		s.Cancel(id)
	}
	delete(s.byOwner, owner)
}

func (s *Scheduler) forget(t *task) {
	delete(s.tasks, t.id)
	if owned, ok := s.byOwner[t.owner]; ok {
		delete(owned, t.id)
		if len(owned) == 0 {
			delete(s.byOwner, t.owner)
		}
	}
}

// Advance moves the clock forward by dt, running every task that falls due
// in order. A repeating task fires as many times as its interval fits.
// Callbacks may schedule or cancel tasks, including themselves.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.due
		if next.interval > 0 {
			s.seq++
			next.seq = s.seq
			next.due += next.interval
			heap.Push(&s.queue, next)
		} else {
			s.forget(next)
		}
		next.fn()
	}
	s.now = target
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *taskQueue) Push(x interface{}) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[0 : n-1]
	return t
}
