package kb

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

var (
	// ErrUnknownEquipmentType is returned for ids missing from the catalog.
	ErrUnknownEquipmentType = errors.New("unknown equipment type")
	// ErrNoSnapshot is returned by RestoreOriginals before SnapshotOriginals.
	ErrNoSnapshot = errors.New("no catalog snapshot taken")
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventCostsOverridden EventType = iota
	EventCostsRestored
)

func (e EventType) String() string {
	switch e {
	case EventCostsOverridden:
		return "costs_overridden"
	case EventCostsRestored:
		return "costs_restored"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Event is emitted to subscribers after a catalog write. Unit is the row
// as it looks after the change; it is zero for restores.
type Event struct {
	Type EventType
	ID   model.EquipmentType
	Unit model.TransportUnit
}

// CostOverride changes the non-nil fields of a transport row.
type CostOverride struct {
	Price           *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	NormalizedPrice *float64 `json:"normalized_price,omitempty" yaml:"normalized_price,omitempty"`
	MaxPower        *float64 `json:"max_power,omitempty" yaml:"max_power,omitempty"`
}

// Catalog is a thread-safe view over the immutable equipment tables. Cost
// changes live in an override layer; the base tables are never written.
type Catalog struct {
	mu sync.RWMutex

	base  map[model.EquipmentType]model.TransportUnit
	radio map[model.RadioType]model.RadioUnit

	overrides map[model.EquipmentType]model.TransportUnit
	snapshot  map[model.EquipmentType]model.TransportUnit

	subs   map[int]func(Event)
	nextID int
}

// NewCatalog constructs a catalog over the built-in tables.
func NewCatalog() *Catalog {
	return &Catalog{
		base:      baseTransport,
		radio:     baseRadio,
		overrides: make(map[model.EquipmentType]model.TransportUnit),
		subs:      make(map[int]func(Event)),
	}
}

// Overlay returns an isolated child catalog. It starts from the current
// view of c; writes to the child never reach c.
func (c *Catalog) Overlay() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	child := &Catalog{
		base:      c.base,
		radio:     c.radio,
		overrides: make(map[model.EquipmentType]model.TransportUnit, len(c.overrides)),
		subs:      make(map[int]func(Event)),
	}
	for id, u := range c.overrides {
		child.overrides[id] = u
	}
	return child
}

func (c *Catalog) lookupLocked(id model.EquipmentType) (model.TransportUnit, bool) {
	if u, ok := c.overrides[id]; ok {
		return u, true
	}
	u, ok := c.base[id]
	return u, ok
}

// Lookup returns the current row for id.
func (c *Catalog) Lookup(id model.EquipmentType) (model.TransportUnit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.lookupLocked(id)
	if !ok {
		return model.TransportUnit{}, fmt.Errorf("%w: %q", ErrUnknownEquipmentType, id)
	}
	return u, nil
}

// Radio returns the radio spec for id.
func (c *Catalog) Radio(id model.RadioType) (model.RadioUnit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.radio[id]
	if !ok {
		return model.RadioUnit{}, fmt.Errorf("%w: radio %q", ErrUnknownEquipmentType, id)
	}
	return r, nil
}

// OverrideCosts changes the given fields of id and notifies subscribers.
func (c *Catalog) OverrideCosts(id model.EquipmentType, o CostOverride) error {
	c.mu.Lock()
	u, ok := c.lookupLocked(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownEquipmentType, id)
	}
	if o.Price != nil {
		u.Price = *o.Price
	}
	if o.NormalizedPrice != nil {
		u.NormalizedPrice = *o.NormalizedPrice
	}
	if o.MaxPower != nil {
		u.MaxPower = *o.MaxPower
	}
	c.overrides[id] = u
	subs := c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, Event{Type: EventCostsOverridden, ID: id, Unit: u})
	return nil
}

// SnapshotOriginals records the current view of every row. Only the first
// call has an effect.
func (c *Catalog) SnapshotOriginals() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return
	}
	c.snapshot = make(map[model.EquipmentType]model.TransportUnit, len(c.base))
	for id := range c.base {
		u, _ := c.lookupLocked(id)
		c.snapshot[id] = u
	}
}

// RestoreOriginals resets every row to the snapshot.
func (c *Catalog) RestoreOriginals() error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return ErrNoSnapshot
	}
	c.overrides = make(map[model.EquipmentType]model.TransportUnit, len(c.snapshot))
	for id, u := range c.snapshot {
		if u != c.base[id] {
			c.overrides[id] = u
		}
	}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, Event{Type: EventCostsRestored})
	return nil
}

// Types returns every transport equipment id in sorted order.
func (c *Catalog) Types() []model.EquipmentType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]model.EquipmentType, 0, len(c.base))
	for id := range c.base {
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Units returns a snapshot of every transport row, sorted by id.
func (c *Catalog) Units() []model.TransportUnit {
	ids := c.Types()

	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]model.TransportUnit, 0, len(ids))
	for _, id := range ids {
		u, _ := c.lookupLocked(id)
		res = append(res, u)
	}
	return res
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Catalog) subscribersLocked() []func(Event) {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	res := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		res = append(res, c.subs[id])
	}
	return res
}

// notify runs outside the lock so subscribers may call back into the catalog.
func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
