package core

import "fmt"

// AllocationStatus is the outcome of one allocation event on one edge.
type AllocationStatus int

const (
	Allocated AllocationStatus = iota
	PartiallyAllocated
	EdgeMissing
)

func (s AllocationStatus) String() string {
	switch s {
	case Allocated:
		return "allocated"
	case PartiallyAllocated:
		return "partially_allocated"
	case EdgeMissing:
		return "edge_missing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Allocation reports what happened on the hop A→B. Placed and Dropped
// count capacities, not slots: a paired allocation places one capacity on
// two fibres.
type Allocation struct {
	A, B    int
	Status  AllocationStatus
	Placed  int
	Dropped int
}

// AllocatePaired appends two fresh fibres to a-b and writes capacity into
// the first free slot of each.
func (t *Topology) AllocatePaired(a, b int, capacity float64) Allocation {
	return t.AllocateForEach(a, b, []float64{capacity})
}

// AllocateForEach appends two fresh fibres to a-b. On each fibre the
// capacities are written into successive free slots; capacities left over
// once the slots run out are dropped and counted.
func (t *Topology) AllocateForEach(a, b int, capacities []float64) Allocation {
	res := Allocation{A: a, B: b}
	e, ok := t.Edge(a, b)
	if !ok {
		res.Status = EdgeMissing
		res.Dropped = len(capacities)
		return res
	}

	pair := [2]*Fiber{NewFiber(t.fiberSlots), NewFiber(t.fiberSlots)}
	e.Fibers = append(e.Fibers, pair[0], pair[1])

	placed := len(capacities)
	for _, f := range pair {
		n := 0
		for _, c := range capacities {
			if !f.Occupy(c) {
				break
			}
			n++
		}
		if n < placed {
			placed = n
		}
	}
	res.Placed = placed
	res.Dropped = len(capacities) - placed
	if res.Dropped > 0 {
		res.Status = PartiallyAllocated
	}
	return res
}

// AllocatePairedOnPath runs AllocatePaired on every hop of path.
func (t *Topology) AllocatePairedOnPath(path []int, capacity float64) []Allocation {
	return t.AllocateForEachOnPath(path, []float64{capacity})
}

// AllocateForEachOnPath runs AllocateForEach on every hop of path. Each hop
// gets its own pair of fibres.
func (t *Topology) AllocateForEachOnPath(path []int, capacities []float64) []Allocation {
	if len(path) < 2 {
		return nil
	}
	out := make([]Allocation, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, t.AllocateForEach(path[i], path[i+1], capacities))
	}
	return out
}
