// Package report writes planning results as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// NodeDetail is one installed unit on one node.
type NodeDetail struct {
	NodeID   int    `json:"node_id" csv:"node_id"`
	NodeType string `json:"node_type" csv:"node_type"`
	Category string `json:"category" csv:"category"`

	Type            model.EquipmentType `json:"equipment" csv:"equipment"`
	DataRate        float64             `json:"data_rate,omitempty" csv:"data_rate,omitempty"`
	NormalizedPrice float64             `json:"normalized_price" csv:"normalized_price"`
	MaxPower        float64             `json:"max_power" csv:"max_power"`

	// Node power totals, repeated on every row of the node.
	OtherConsumption     float64 `json:"other_consumption" csv:"other_consumption"`
	SwitchingConsumption float64 `json:"switching_consumption" csv:"switching_consumption"`
}

// NodeDetails lists every installed unit in node id order.
func NodeDetails(topo *core.Topology) []NodeDetail {
	var rows []NodeDetail
	for _, n := range topo.Nodes() {
		for _, d := range n.Equipment {
			rows = append(rows, NodeDetail{
				NodeID:               n.ID,
				NodeType:             n.Kind.String(),
				Category:             d.Category.String(),
				Type:                 d.Type,
				DataRate:             d.DataRate,
				NormalizedPrice:      d.NormalizedPrice,
				MaxPower:             d.MaxPower,
				OtherConsumption:     n.OtherConsumption,
				SwitchingConsumption: n.SwitchingConsumption,
			})
		}
	}
	return rows
}

// WriteRows writes one CSV line per summary, header first. An empty slice
// still yields the header.
func WriteRows(w io.Writer, rows []aggregate.Summary) error {
	return write(w, aggregate.Summary{}, rows)
}

// WriteNodeDetails writes the per-node equipment listing of topo.
func WriteNodeDetails(w io.Writer, topo *core.Topology) error {
	return write(w, NodeDetail{}, NodeDetails(topo))
}

// WriteFiberCounts writes the fibre count of every edge.
func WriteFiberCounts(w io.Writer, topo *core.Topology) error {
	return write(w, aggregate.EdgeFibers{}, aggregate.FiberCounts(topo))
}

func write[T any](w io.Writer, header T, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for i, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
