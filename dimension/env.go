package dimension

import (
	"context"
	"fmt"
	"math"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// Options tune a dimensioning run.
type Options struct {
	// InterpolatedRootPower prices root switches with the interpolated
	// power curve instead of the step curve.
	InterpolatedRootPower bool `json:"interpolated_root_power" yaml:"interpolated_root_power"`
}

// Tally counts allocation outcomes over a run.
type Tally struct {
	Allocated          int `json:"allocated"`
	PartiallyAllocated int `json:"partially_allocated"`
	EdgeMissing        int `json:"edge_missing"`
	Dropped            int `json:"dropped"`
}

// Add folds allocation results into the tally.
func (t *Tally) Add(allocs ...core.Allocation) {
	for _, a := range allocs {
		switch a.Status {
		case core.Allocated:
			t.Allocated++
		case core.PartiallyAllocated:
			t.PartiallyAllocated++
		case core.EdgeMissing:
			t.EdgeMissing++
		}
		t.Dropped += a.Dropped
	}
}

// ByStatus returns the counts keyed by allocation status name.
func (t Tally) ByStatus() map[string]int {
	return map[string]int{
		core.Allocated.String():          t.Allocated,
		core.PartiallyAllocated.String(): t.PartiallyAllocated,
		core.EdgeMissing.String():        t.EdgeMissing,
	}
}

// Env is everything a strategy reads and writes during one run.
type Env struct {
	Catalog *kb.Catalog
	Topo    *core.Topology
	Term    model.Term
	Logger  logging.Logger
	Options Options

	Tally Tally

	root *core.Node
}

// NewEnv validates the topology and prepares its annotations.
func NewEnv(cat *kb.Catalog, topo *core.Topology, term model.Term, log logging.Logger, opts Options) (*Env, error) {
	if cat == nil || topo == nil {
		return nil, fmt.Errorf("dimension: catalog and topology are required")
	}
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	root, err := topo.Root()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Noop()
	}
	topo.InitializeEquipment()
	return &Env{
		Catalog: cat,
		Topo:    topo,
		Term:    term,
		Logger:  log,
		Options: opts,
		root:    root,
	}, nil
}

// Root is the topology root.
func (e *Env) Root() *core.Node { return e.root }

// branches returns every non-root node in id order.
func (e *Env) branches() []*core.Node {
	nodes := e.Topo.Nodes()
	out := make([]*core.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != e.root.ID {
			out = append(out, n)
		}
	}
	return out
}

func (e *Env) deploy(id model.EquipmentType) (model.Deployed, error) {
	u, err := e.Catalog.Lookup(id)
	if err != nil {
		return model.Deployed{}, err
	}
	return u.Deploy(), nil
}

func (e *Env) deployAll(ids []model.EquipmentType) ([]model.Deployed, error) {
	out := make([]model.Deployed, 0, len(ids))
	for _, id := range ids {
		d, err := e.deploy(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (e *Env) pathToRoot(id int) ([]int, error) {
	path, err := e.Topo.PathToRoot(id)
	if err != nil {
		return nil, fmt.Errorf("node %d: %w", id, err)
	}
	return path, nil
}

// record tallies allocations and warns about hops without an edge.
func (e *Env) record(ctx context.Context, node int, allocs []core.Allocation) {
	e.Tally.Add(allocs...)
	for _, a := range allocs {
		switch a.Status {
		case core.EdgeMissing:
			e.Logger.Warn(ctx, "edge missing, allocation skipped",
				logging.Int("node", node), logging.Int("a", a.A), logging.Int("b", a.B))
		case core.PartiallyAllocated:
			e.Logger.Debug(ctx, "fibre slots exhausted",
				logging.Int("node", node), logging.Int("a", a.A), logging.Int("b", a.B),
				logging.Int("dropped", a.Dropped))
		}
	}
}

func (e *Env) unitCapacities(n *core.Node) []float64 {
	out := make([]float64, len(n.Radio))
	for i, r := range n.Radio {
		out[i] = r.RequiredCapacity(e.Term)
	}
	return out
}

// stage buffers a node's new equipment so sizing decisions see only what
// the current node added. Power is booked immediately.
type stage struct {
	node  *core.Node
	items []model.Deployed
}

func newStage(n *core.Node) *stage { return &stage{node: n} }

// put appends ds and books their combined draw as other consumption.
func (s *stage) put(ds ...model.Deployed) {
	var w float64
	for _, d := range ds {
		w += d.MaxPower
	}
	s.items = append(s.items, ds...)
	s.node.AddOther(w)
}

// place appends ds without booking power.
func (s *stage) place(ds ...model.Deployed) {
	s.items = append(s.items, ds...)
}

// switchLoad sums staged rates, counting each SR optic at half its rate
// since SR optics come in pairs.
func (s *stage) switchLoad() float64 {
	var total float64
	for _, d := range s.items {
		if !d.HasDataRate {
			continue
		}
		if d.Category.IsShortReach() {
			total += d.DataRate / 2
		} else {
			total += d.DataRate
		}
	}
	return total
}

func (s *stage) commit() {
	s.node.Install(s.items...)
	s.items = nil
}

// addNodeSwitch stages one switch sized for traffic and books its step
// power. Zero traffic adds nothing.
func (e *Env) addNodeSwitch(s *stage, traffic float64) error {
	if traffic <= 0 {
		return nil
	}
	class := SwitchClassFor(traffic)
	d, err := e.deploy(class.EquipmentType())
	if err != nil {
		return err
	}
	s.place(d)
	s.node.AddSwitching(SwitchPower(class, traffic))
	return nil
}

// srPair stages a pair of grey SR optics for capacity c on ladder l.
func (e *Env) srPair(s *stage, l ladder, c float64) (model.Deployed, error) {
	d, err := e.deploy(l.pick(c).ids[0])
	if err != nil {
		return model.Deployed{}, err
	}
	s.put(d, d)
	return d, nil
}

// addSwitchesToRoot covers every rated optic at the root with switches.
// Each switch is powered for the root's whole load.
func (e *Env) addSwitchesToRoot(ctx context.Context) error {
	var total float64
	for _, d := range e.root.Equipment {
		if d.HasDataRate {
			total += d.DataRate
		}
	}

	power := SwitchPower
	if e.Options.InterpolatedRootPower {
		power = SwitchPowerInterpolated
	}
	added := 0
	for _, r := range rootSwitches.peel(total) {
		d, err := e.deploy(r.ids[0])
		if err != nil {
			return err
		}
		class, _ := model.SwitchClassOf(d.Type)
		e.root.Install(d)
		e.root.AddSwitching(power(class, total))
		added++
	}
	e.Logger.Debug(ctx, "root switches added",
		logging.Float("load_gbps", total), logging.Int("switches", added))
	return nil
}

// addTransponders serves the node's WDM optics with transponders on the
// node itself.
func (e *Env) addTransponders(n *core.Node) error {
	wdm := n.Count(model.CategoryWDMTransceiver)
	if wdm == 0 {
		return nil
	}
	u, err := e.Catalog.Lookup(model.Transponder)
	if err != nil {
		return err
	}
	ports := u.NumPorts
	if ports <= 0 {
		ports = 1
	}
	count := int(math.Ceil(float64(wdm) / float64(ports)))
	for i := 0; i < count; i++ {
		n.Install(u.Deploy())
		n.AddOther(u.MaxPower)
	}
	return nil
}

func (e *Env) addTranspondersToNode(n *core.Node) error { return e.addTransponders(n) }

func (e *Env) addTranspondersToRoot() error { return e.addTransponders(e.root) }

// addHubsToRoot terminates the aggregated XR capacity at the root.
func (e *Env) addHubsToRoot(total float64) error {
	for _, r := range hubs.peel(total) {
		d, err := e.deploy(r.ids[0])
		if err != nil {
			return err
		}
		e.root.Install(d)
		e.root.AddOther(d.MaxPower)
	}
	return nil
}
