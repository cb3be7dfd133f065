// Package geotype builds the reference fronthaul trees for the four
// deployment densities.
package geotype

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

var ErrUnknownGeotype = errors.New("unknown geotype")

// Geotype is a built reference topology.
type Geotype struct {
	Scenario model.Scenario
	Tree     *core.Topology
	// AreaKm2 is the square service area in km².
	AreaKm2 float64
}

// LayoutOf returns the fixed site plan of s.
func LayoutOf(s model.Scenario) (Layout, error) {
	l, ok := layouts[s]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %v", ErrUnknownGeotype, s)
	}
	return l, nil
}

// Area returns the service area of s in km².
func Area(s model.Scenario) (float64, error) {
	l, err := LayoutOf(s)
	if err != nil {
		return 0, err
	}
	side := l.SideKm
	return side * side, nil
}

// New builds the minimum spanning tree of the layout for s. Fibres created
// on the tree carry fiberSlots wavelengths.
func New(s model.Scenario, fiberSlots int) (*Geotype, error) {
	l, err := LayoutOf(s)
	if err != nil {
		return nil, err
	}
	tree, err := l.Tree(fiberSlots)
	if err != nil {
		return nil, err
	}
	area, _ := Area(s)
	return &Geotype{Scenario: s, Tree: tree, AreaKm2: area}, nil
}

// Routed builds the layout tree again with corner nodes inserted on every
// diagonal edge, so each edge follows the street grid.
func (g *Geotype) Routed() (*core.Topology, error) {
	l, err := LayoutOf(g.Scenario)
	if err != nil {
		return nil, err
	}
	t, err := l.Tree(g.Tree.FiberSlots())
	if err != nil {
		return nil, err
	}
	if err := InsertCorners(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Tree builds the Manhattan minimum spanning tree over the layout sites.
func (l Layout) Tree(fiberSlots int) (*core.Topology, error) {
	t := core.NewTopology(fiberSlots)
	points := make([]core.Point, len(l.Sites))
	for i, s := range l.Sites {
		points[i] = core.Point{X: s.X, Y: s.Y}
		if err := t.AddNode(&core.Node{ID: i, Kind: s.Kind, Position: points[i]}); err != nil {
			return nil, err
		}
	}
	for _, e := range MinimumSpanningTree(points) {
		if _, err := t.AddEdge(e.A, e.B, e.Weight); err != nil {
			return nil, err
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.InitializeEquipment()
	return t, nil
}

// WeightedEdge is a candidate edge between two sites.
type WeightedEdge struct {
	A, B   int
	Weight float64
}

// MinimumSpanningTree runs Kruskal over the complete graph of points with
// Manhattan weights. Ties keep (i, j) lexicographic order, so co-located
// sites always resolve the same way.
func MinimumSpanningTree(points []core.Point) []WeightedEdge {
	n := len(points)
	candidates := make([]WeightedEdge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			candidates = append(candidates, WeightedEdge{A: i, B: j, Weight: points[i].Manhattan(points[j])})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight < candidates[j].Weight
	})

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	out := make([]WeightedEdge, 0, n)
	for _, e := range candidates {
		ra, rb := find(e.A), find(e.B)
		if ra == rb {
			continue
		}
		parent[rb] = ra
		out = append(out, e)
		if len(out) == n-1 {
			break
		}
	}
	return out
}

// InsertCorners replaces every diagonal edge u-v (u < v) with u-c-v where c
// is a new corner node at (u.X, v.Y). Corner ids continue after the
// highest existing id.
func InsertCorners(t *core.Topology) error {
	next := 0
	for _, id := range t.NodeIDs() {
		if id >= next {
			next = id + 1
		}
	}
	for _, e := range t.Edges() {
		u, _ := t.Node(e.A)
		v, _ := t.Node(e.B)
		if !u.Position.IsDiagonalTo(v.Position) {
			continue
		}
		corner := &core.Node{ID: next, Kind: model.KindCorner, Position: u.Position.Corner(v.Position)}
		next++
		if err := t.RemoveEdge(u.ID, v.ID); err != nil {
			return err
		}
		if err := t.AddNode(corner); err != nil {
			return err
		}
		if _, err := t.AddEdge(u.ID, corner.ID, u.Position.Manhattan(corner.Position)); err != nil {
			return err
		}
		if _, err := t.AddEdge(corner.ID, v.ID, corner.Position.Manhattan(v.Position)); err != nil {
			return err
		}
	}
	t.InitializeEquipment()
	return nil
}
