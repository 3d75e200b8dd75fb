// pkg/pathgraph/distance.go
package pathgraph

import (
	"container/heap"

	"go-elemental-td/pkg/utils"
)

type edge struct {
	from *Node
	cost float64
}

// computeRemaining runs Dijkstra backwards from every terminal node.
func (g *Graph) computeRemaining() map[*Node]float64 {
	reverse := make(map[*Node][]edge)
	dist := make(map[*Node]float64)
	pq := &priorityQueue{}
	heap.Init(pq)

	for _, nodes := range g.branches {
		for _, n := range nodes {
			candidates := g.Candidates(n)
			if len(candidates) == 0 {
				dist[n] = 0
				heap.Push(pq, &queueItem{node: n, cost: 0})
				continue
			}
			for _, c := range candidates {
				reverse[c] = append(reverse[c], edge{from: n, cost: utils.Distance(n.Position, c.Position)})
			}
		}
	}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*queueItem)
		if current.cost > dist[current.node] {
			continue
		}
		for _, e := range reverse[current.node] {
			newCost := current.cost + e.cost
			if old, seen := dist[e.from]; !seen || newCost < old {
				dist[e.from] = newCost
				heap.Push(pq, &queueItem{node: e.from, cost: newCost})
			}
		}
	}
	return dist
}

type queueItem struct {
	node *Node
	cost float64
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].cost < pq[j].cost }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
