// pkg/pathgraph/graph.go
package pathgraph

import (
	"log"
	"math"

	"go-elemental-td/pkg/utils"
)

// BranchID identifies one ordered run of nodes. The main branch is 0.
type BranchID uint16

// RootBranch is the id of the main branch.
const RootBranch BranchID = 0

// Node is one waypoint. Branch and JoinsParent are authored; the branch id
// and index are assigned by Build.
type Node struct {
	Position    utils.Vec3 `yaml:"position"`
	Branch      []*Node    `yaml:"branch,omitempty"`
	JoinsParent bool       `yaml:"joins_parent,omitempty"`

	branchID BranchID
	index    int
}

// BranchID returns the id of the branch that owns this node.
func (n *Node) BranchID() BranchID { return n.branchID }

// Index returns the node's position within its branch.
func (n *Node) Index() int { return n.index }

// Branches reports whether the node splits into a nested branch.
func (n *Node) Branches() bool { return len(n.Branch) > 0 }

// Graph is a tree of branches. It is read-only once built.
type Graph struct {
	root      []*Node
	branches  map[BranchID][]*Node
	parents   map[BranchID]BranchID
	remaining map[*Node]float64
}

// Build assigns branch ids depth-first, starting at 0 for root, and
// records the parent of every nested branch.
func Build(root []*Node) *Graph {
	g := &Graph{
		root:     root,
		branches: make(map[BranchID][]*Node),
		parents:  make(map[BranchID]BranchID),
	}
	if len(root) == 0 {
		g.remaining = map[*Node]float64{}
		return g
	}
	g.assignIDs(root)

	// Rejoining needs a parent branch.
	for _, n := range root {
		if n.JoinsParent {
			log.Printf("pathgraph: node %d of the main branch joins a parent that does not exist, clearing flag", n.index)
			n.JoinsParent = false
		}
	}

	g.remaining = g.computeRemaining()
	return g
}

func (g *Graph) assignIDs(nodes []*Node) BranchID {
	var id BranchID
	for {
		if _, taken := g.branches[id]; !taken {
			break
		}
		id++
	}
	g.branches[id] = nodes
	for i, n := range nodes {
		n.branchID = id
		n.index = i
		if n.Branches() {
			g.parents[g.assignIDs(n.Branch)] = id
		}
	}
	return id
}

// Len returns the number of branches.
func (g *Graph) Len() int { return len(g.branches) }

// Root returns the main branch.
func (g *Graph) Root() []*Node { return g.root }

// Entry returns the first node of the main branch, or nil for an empty graph.
func (g *Graph) Entry() *Node {
	if len(g.root) == 0 {
		return nil
	}
	return g.root[0]
}

// Branch returns the nodes of a branch.
func (g *Graph) Branch(id BranchID) ([]*Node, bool) {
	nodes, ok := g.branches[id]
	return nodes, ok
}

// ParentOf returns the id of the branch's parent. Root has none.
func (g *Graph) ParentOf(id BranchID) (BranchID, bool) {
	p, ok := g.parents[id]
	return p, ok
}

// ParentBranch returns the nodes of the branch's parent.
func (g *Graph) ParentBranch(id BranchID) ([]*Node, bool) {
	p, ok := g.parents[id]
	if !ok {
		return nil, false
	}
	return g.Branch(p)
}

// ParentMap returns a copy of the child → parent id mapping.
func (g *Graph) ParentMap() map[BranchID]BranchID {
	out := make(map[BranchID]BranchID, len(g.parents))
	for k, v := range g.parents {
		out[k] = v
	}
	return out
}

// ClosestInParent returns the node of the parent branch nearest to n.
func (g *Graph) ClosestInParent(n *Node) (*Node, bool) {
	parent, ok := g.ParentBranch(n.branchID)
	if !ok {
		return nil, false
	}
	var closest *Node
	best := math.MaxFloat64
	for _, p := range parent {
		d := utils.Distance(n.Position, p.Position)
		if d >= best {
			continue
		}
		closest, best = p, d
	}
	return closest, closest != nil
}

// Candidates lists every node a walker standing on n may move to next: the
// following node of the same branch, the first node of a nested branch, and
// the closest node of the parent branch when n rejoins.
func (g *Graph) Candidates(n *Node) []*Node {
	var out []*Node
	if nodes, ok := g.branches[n.branchID]; ok && n.index+1 < len(nodes) && nodes[n.index] == n {
		out = append(out, nodes[n.index+1])
	}
	if n.Branches() {
		out = append(out, n.Branch[0])
	}
	if n.JoinsParent {
		if c, ok := g.ClosestInParent(n); ok {
			out = append(out, c)
		}
	}
	return out
}

// RemainingDistance is the shortest path length from n to any node without
// candidates. Unknown nodes report +Inf.
func (g *Graph) RemainingDistance(n *Node) float64 {
	if d, ok := g.remaining[n]; ok {
		return d
	}
	return math.Inf(1)
}

// Edge is one possible move between two nodes.
type Edge struct {
	From, To *Node
}

// Edges lists every move a walker can make, branch by branch in id order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for id := BranchID(0); int(id) < len(g.branches); id++ {
		for _, n := range g.branches[id] {
			for _, c := range g.Candidates(n) {
				out = append(out, Edge{From: n, To: c})
			}
		}
	}
	return out
}

// Exits lists the nodes a walker finishes on, branch by branch in id order.
func (g *Graph) Exits() []*Node {
	var out []*Node
	for id := BranchID(0); int(id) < len(g.branches); id++ {
		for _, n := range g.branches[id] {
			if len(g.Candidates(n)) == 0 {
				out = append(out, n)
			}
		}
	}
	return out
}
