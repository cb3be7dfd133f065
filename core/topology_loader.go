package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// internal JSON shapes, unexported so the file format can evolve
// independently of the in-memory types.
type topologyJSON struct {
	FiberSlots int        `json:"fiber_slots,omitempty"`
	Nodes      []nodeJSON `json:"nodes"`
	Edges      []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID   int     `json:"id"`
	Type int     `json:"type"` // 0 root, 1 macro, 2 small, 4 corner
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type edgeJSON struct {
	A        int      `json:"a"`
	B        int      `json:"b"`
	Distance *float64 `json:"distance,omitempty"` // defaults to Manhattan
}

// LoadTopology reads a JSON topology from r and checks that it forms a
// single rooted tree.
func LoadTopology(r io.Reader) (*Topology, error) {
	var payload topologyJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadTopology: decode failed: %w", err)
	}

	t := NewTopology(payload.FiberSlots)
	for _, js := range payload.Nodes {
		n := &Node{
			ID:       js.ID,
			Kind:     model.NodeKind(js.Type),
			Position: Point{X: js.X, Y: js.Y},
		}
		if err := t.AddNode(n); err != nil {
			return nil, fmt.Errorf("LoadTopology: %w", err)
		}
	}
	for _, js := range payload.Edges {
		a, okA := t.Node(js.A)
		b, okB := t.Node(js.B)
		if !okA || !okB {
			return nil, fmt.Errorf("LoadTopology: edge %d-%d: %w", js.A, js.B, ErrNodeNotFound)
		}
		dist := a.Position.Manhattan(b.Position)
		if js.Distance != nil {
			dist = *js.Distance
		}
		if _, err := t.AddEdge(js.A, js.B, dist); err != nil {
			return nil, fmt.Errorf("LoadTopology: %w", err)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("LoadTopology: %w", err)
	}
	t.InitializeEquipment()
	return t, nil
}

// WriteTopology writes the structural part of t (no annotations) in the
// format LoadTopology reads.
func WriteTopology(w io.Writer, t *Topology) error {
	payload := topologyJSON{FiberSlots: t.FiberSlots()}
	for _, n := range t.Nodes() {
		payload.Nodes = append(payload.Nodes, nodeJSON{
			ID:   n.ID,
			Type: int(n.Kind),
			X:    n.Position.X,
			Y:    n.Position.Y,
		})
	}
	for _, e := range t.Edges() {
		d := e.Distance
		payload.Edges = append(payload.Edges, edgeJSON{A: e.A, B: e.B, Distance: &d})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
