package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrDuplicateNode = errors.New("node already exists")
	ErrNoPath        = errors.New("no path to root")
	ErrNotTree       = errors.New("topology is not a tree")
)

// Node is a topology vertex together with the annotations a dimensioning
// run writes to it.
type Node struct {
	ID       int            `json:"id"`
	Kind     model.NodeKind `json:"type"`
	Position Point          `json:"position"`

	Radio     []model.RadioUnit `json:"radio_equipment"`
	Equipment []model.Deployed  `json:"network_equipment"`

	// Power draw in W.
	OtherConsumption     float64 `json:"other_consumption"`
	SwitchingConsumption float64 `json:"switching_consumption"`
}

// Install appends deployed equipment to the node.
func (n *Node) Install(d ...model.Deployed) {
	n.Equipment = append(n.Equipment, d...)
}

// AddOther accrues non-switching power. Negative values are ignored.
func (n *Node) AddOther(w float64) {
	if w > 0 {
		n.OtherConsumption += w
	}
}

// AddSwitching accrues switching power. Negative values are ignored.
func (n *Node) AddSwitching(w float64) {
	if w > 0 {
		n.SwitchingConsumption += w
	}
}

// Count returns how many deployed instances match the category.
func (n *Node) Count(c model.Category) int {
	total := 0
	for _, e := range n.Equipment {
		if e.Category == c {
			total++
		}
	}
	return total
}

// Edge is an undirected tree edge. A < B always holds.
type Edge struct {
	A        int      `json:"a"`
	B        int      `json:"b"`
	Distance float64  `json:"distance"`
	Fibers   []*Fiber `json:"fibers"`
}

type edgeKey struct{ a, b int }

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Topology is the fronthaul tree. It is not safe for concurrent use; each
// dimensioning run owns its own instance.
type Topology struct {
	fiberSlots int

	nodes map[int]*Node
	edges map[edgeKey]*Edge
	adj   map[int][]int
}

// NewTopology creates an empty tree whose fibres carry fiberSlots
// wavelengths (DefaultFiberSlots when <= 0).
func NewTopology(fiberSlots int) *Topology {
	if fiberSlots <= 0 {
		fiberSlots = DefaultFiberSlots
	}
	return &Topology{
		fiberSlots: fiberSlots,
		nodes:      make(map[int]*Node),
		edges:      make(map[edgeKey]*Edge),
		adj:        make(map[int][]int),
	}
}

// FiberSlots is the slot count of fibres created by the allocator.
func (t *Topology) FiberSlots() int { return t.fiberSlots }

// AddNode inserts n. A second root is rejected.
func (t *Topology) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("node %d: invalid kind %d", n.ID, int(n.Kind))
	}
	if _, exists := t.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
	}
	if n.Kind == model.KindRoot {
		if r, err := t.Root(); err == nil {
			return fmt.Errorf("%w: second root %d (root is %d)", ErrNotTree, n.ID, r.ID)
		}
	}
	t.nodes[n.ID] = n
	return nil
}

// AddEdge connects a and b. Edges that would close a cycle are rejected.
func (t *Topology) AddEdge(a, b int, distance float64) (*Edge, error) {
	if _, ok := t.nodes[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, a)
	}
	if _, ok := t.nodes[b]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, b)
	}
	if a == b {
		return nil, fmt.Errorf("%w: self loop on %d", ErrNotTree, a)
	}
	if t.connected(a, b) {
		return nil, fmt.Errorf("%w: edge %d-%d closes a cycle", ErrNotTree, a, b)
	}

	k := keyOf(a, b)
	e := &Edge{A: k.a, B: k.b, Distance: distance}
	t.edges[k] = e
	t.adj[a] = append(t.adj[a], b)
	t.adj[b] = append(t.adj[b], a)
	return e, nil
}

// RemoveEdge deletes the edge a-b together with its fibres.
func (t *Topology) RemoveEdge(a, b int) error {
	k := keyOf(a, b)
	if _, ok := t.edges[k]; !ok {
		return fmt.Errorf("edge %d-%d not found", a, b)
	}
	delete(t.edges, k)
	t.adj[a] = without(t.adj[a], b)
	t.adj[b] = without(t.adj[b], a)
	return nil
}

func without(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Node returns the node with the given id.
func (t *Topology) Node(id int) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns every node in ascending id order.
func (t *Topology) Nodes() []*Node {
	ids := t.NodeIDs()
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	return out
}

// NodeIDs returns the sorted node ids.
func (t *Topology) NodeIDs() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Edge returns the edge between a and b in either direction.
func (t *Topology) Edge(a, b int) (*Edge, bool) {
	e, ok := t.edges[keyOf(a, b)]
	return e, ok
}

// Edges returns every edge ordered by (A, B).
func (t *Topology) Edges() []*Edge {
	out := make([]*Edge, 0, len(t.edges))
	for _, e := range t.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Neighbours returns the ids adjacent to id, sorted.
func (t *Topology) Neighbours(id int) []int {
	out := append([]int(nil), t.adj[id]...)
	sort.Ints(out)
	return out
}

// Root returns the unique root node.
func (t *Topology) Root() (*Node, error) {
	var root *Node
	for _, n := range t.nodes {
		if n.Kind != model.KindRoot {
			continue
		}
		if root != nil {
			return nil, fmt.Errorf("%w: more than one root", ErrNotTree)
		}
		root = n
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root", ErrNotTree)
	}
	return root, nil
}

// Validate checks that the topology is a single tree with one root.
func (t *Topology) Validate() error {
	root, err := t.Root()
	if err != nil {
		return err
	}
	if len(t.edges) != len(t.nodes)-1 {
		return fmt.Errorf("%w: %d nodes but %d edges", ErrNotTree, len(t.nodes), len(t.edges))
	}
	seen := t.reachable(root.ID)
	if len(seen) != len(t.nodes) {
		return fmt.Errorf("%w: %d of %d nodes reachable from root", ErrNoPath, len(seen), len(t.nodes))
	}
	return nil
}

// PathToRoot returns the unique path from id to the root, both ends
// included. The root's own path is [root].
func (t *Topology) PathToRoot(id int) ([]int, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	root, err := t.Root()
	if err != nil {
		return nil, err
	}

	parent := map[int]int{id: id}
	queue := []int{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == root.ID {
			path := []int{cur}
			for cur != id {
				cur = parent[cur]
				path = append(path, cur)
			}
			// path runs root→id; flip it.
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, nil
		}
		for _, nb := range t.Neighbours(cur) {
			if _, seen := parent[nb]; seen {
				continue
			}
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}
	return nil, fmt.Errorf("%w: node %d", ErrNoPath, id)
}

// InitializeEquipment gives every node empty annotation slices where they
// are nil. Existing annotations and counters are left untouched, so calling
// it twice is harmless.
func (t *Topology) InitializeEquipment() {
	for _, n := range t.nodes {
		if n.Radio == nil {
			n.Radio = []model.RadioUnit{}
		}
		if n.Equipment == nil {
			n.Equipment = []model.Deployed{}
		}
	}
	for _, e := range t.edges {
		if e.Fibers == nil {
			e.Fibers = []*Fiber{}
		}
	}
}

func (t *Topology) connected(a, b int) bool {
	_, ok := t.reachable(a)[b]
	return ok
}

func (t *Topology) reachable(from int) map[int]struct{} {
	seen := map[int]struct{}{from: {}}
	stack := []int{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range t.adj[cur] {
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			stack = append(stack, nb)
		}
	}
	return seen
}
