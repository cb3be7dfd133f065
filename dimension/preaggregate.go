package dimension

import "github.com/signalsfoundry/fronthaul-planner/model"

const (
	// PreaggregationLimit is the Gbps a bundle of units may share.
	PreaggregationLimit = 25.0
	minBundle           = 2
	maxBundle           = 5
)

// Bundle is the outcome of the pre-aggregation search over a node's units.
// Members and Others are indexes into the unit slice, in unit order.
type Bundle struct {
	Members   []int
	Others    []int
	Capacity  float64
	Qualified bool
}

// Preaggregate marks every unit under the limit that belongs to at least
// one group of 2 to 5 such units whose capacities sum to the limit or less.
func Preaggregate(units []model.RadioUnit, term model.Term) Bundle {
	caps := make([]float64, len(units))
	var candidates []int
	for i, u := range units {
		caps[i] = u.RequiredCapacity(term)
		if caps[i] < PreaggregationLimit {
			candidates = append(candidates, i)
		}
	}

	member := make([]bool, len(units))
	chosen := make([]int, 0, maxBundle)
	var walk func(start int, sum float64)
	walk = func(start int, sum float64) {
		if len(chosen) >= minBundle {
			for _, idx := range chosen {
				member[idx] = true
			}
		}
		if len(chosen) == maxBundle {
			return
		}
		for k := start; k < len(candidates); k++ {
			idx := candidates[k]
			next := sum + caps[idx]
			// capacities are non-negative, so no extension can come back under
			if next > PreaggregationLimit {
				continue
			}
			chosen = append(chosen, idx)
			walk(k+1, next)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0, 0)

	var b Bundle
	for i := range units {
		if member[i] {
			b.Members = append(b.Members, i)
			b.Capacity += caps[i]
		} else {
			b.Others = append(b.Others, i)
		}
	}
	b.Qualified = len(b.Members) > 0
	return b
}
