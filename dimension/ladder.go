package dimension

import (
	"math"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// rung is one step of a ladder: demand up to upTo is served by ids, and a
// greedy peel consumes step of it.
type rung struct {
	upTo float64
	step float64
	ids  []model.EquipmentType
}

// ladder is ordered by ascending upTo; the last rung catches everything.
type ladder []rung

func (l ladder) pick(x float64) rung {
	for _, r := range l {
		if x <= r.upTo {
			return r
		}
	}
	return l[len(l)-1]
}

// peel covers total greedily, largest demand first, until nothing is left.
func (l ladder) peel(total float64) []rung {
	var out []rung
	for remaining := total; remaining > 0; {
		r := l.pick(remaining)
		out = append(out, r)
		remaining -= r.step
	}
	return out
}

func single(upTo, step float64, id model.EquipmentType) rung {
	return rung{upTo: upTo, step: step, ids: []model.EquipmentType{id}}
}

var inf = math.Inf(1)

var (
	fineSR = ladder{
		single(1, 1, model.Grey1GSR),
		single(10, 10, model.Grey10GSR),
		single(25, 25, model.Grey25GSR),
		single(50, 50, model.Grey50GSR),
		single(100, 100, model.Grey100GSR),
		single(inf, 400, model.Grey400GSR),
	}
	coarseSR = ladder{
		single(25, 25, model.Grey25GSR),
		single(50, 50, model.Grey50GSR),
		single(100, 100, model.Grey100GSR),
		single(inf, 400, model.Grey400GSR),
	}
	greyLR = ladder{
		single(1, 1, model.Grey1GLR),
		single(10, 10, model.Grey10GLR),
		single(25, 25, model.Grey25GLR),
		single(50, 50, model.Grey50GLR),
		single(100, 100, model.Grey100GLR),
		single(inf, 400, model.Grey400GLR),
	}
	wdmLR = ladder{
		single(1, 1, model.WDM1GLR),
		single(10, 10, model.WDM10GLR),
		single(25, 25, model.WDM25GLR),
		single(50, 50, model.WDM50GLR),
		single(100, 100, model.WDM100GLR),
		single(inf, 400, model.WDM400GLR),
	}
	// media converter first, XR module second.
	mcXR = ladder{
		{upTo: 25, step: 25, ids: []model.EquipmentType{model.MC100G4x25, model.XR25G}},
		{upTo: 50, step: 50, ids: []model.EquipmentType{model.MC100G4x25, model.XR50G}},
		{upTo: 100, step: 100, ids: []model.EquipmentType{model.MC100G4x25, model.XR100G}},
		{upTo: 200, step: 200, ids: []model.EquipmentType{model.MC200G8x25, model.XR200G}},
		{upTo: inf, step: 400, ids: []model.EquipmentType{model.MC400G, model.XR400G}},
	}
	hubs = ladder{
		single(25, 25, model.XRHub100G),
		single(50, 50, model.XRHub100G),
		single(100, 100, model.XRHub100G),
		single(200, 200, model.XRHub200G),
		single(inf, 400, model.XRHub400G),
	}
	rootSwitches = ladder{
		single(400, 400, model.SwitchSmall),
		single(1600, 1600, model.SwitchMedium),
		single(3200, 3200, model.SwitchBig),
		single(inf, 6400, model.SwitchExtraLarge),
	}
)

// SwitchClassFor is the bracket used to size a single node switch.
func SwitchClassFor(traffic float64) model.SwitchClass {
	switch {
	case traffic <= 400:
		return model.SwitchClassSmall
	case traffic <= 1600:
		return model.SwitchClassMedium
	case traffic <= 3200:
		return model.SwitchClassBig
	default:
		return model.SwitchClassExtraLarge
	}
}
