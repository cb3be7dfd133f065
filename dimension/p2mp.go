package dimension

import (
	"context"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// P2MP aggregates each node's grey SR traffic onto coherent XR optics
// behind media converters; the root terminates all of it on XR hubs. With
// Preaggregate, small units first share 25G SR pairs behind a node switch.
type P2MP struct {
	Preaggregate bool
}

// sr25Step is the capacity of the shared SR pairs behind a bundle.
const sr25Step = 25.0

func (p P2MP) Architecture() model.Architecture {
	if p.Preaggregate {
		return model.ArchP2MPWP
	}
	return model.ArchP2MP
}

func (p P2MP) Dimension(ctx context.Context, env *Env) error {
	var rootTotal float64
	for _, n := range env.branches() {
		if err := ctx.Err(); err != nil {
			return err
		}

		s := newStage(n)
		caps := env.unitCapacities(n)
		var srTotal float64

		coarse := make([]float64, 0, len(caps))
		if p.Preaggregate {
			b := Preaggregate(n.Radio, env.Term)
			if b.Qualified {
				t, err := p.bundle(env, s, caps, b)
				if err != nil {
					return err
				}
				srTotal += t
			}
			for _, i := range b.Others {
				coarse = append(coarse, caps[i])
			}
		} else {
			coarse = append(coarse, caps...)
		}
		for _, c := range coarse {
			sr, err := env.srPair(s, coarseSR, c)
			if err != nil {
				return err
			}
			srTotal += sr.DataRate
		}

		var mcCapacity float64
		for _, r := range mcXR.peel(srTotal) {
			pair, err := env.deployAll(r.ids)
			if err != nil {
				return err
			}
			s.put(pair...)
			mcCapacity += r.step
		}
		s.commit()
		rootTotal += mcCapacity

		path, err := env.pathToRoot(n.ID)
		if err != nil {
			return err
		}
		env.record(ctx, n.ID, env.Topo.AllocatePairedOnPath(path, mcCapacity))
	}

	if err := env.addHubsToRoot(rootTotal); err != nil {
		return err
	}
	return env.addSwitchesToRoot(ctx)
}

// bundle stages the member SR pairs, the shared 25G pairs that carry the
// aggregate, and the node switch. It returns the SR capacity it adds.
func (P2MP) bundle(env *Env, s *stage, caps []float64, b Bundle) (float64, error) {
	for _, i := range b.Members {
		if _, err := env.srPair(s, fineSR, caps[i]); err != nil {
			return 0, err
		}
	}

	var added float64
	for remaining := b.Capacity; remaining > 0; remaining -= sr25Step {
		sr, err := env.deploy(model.Grey25GSR)
		if err != nil {
			return 0, err
		}
		s.put(sr, sr)
		added += sr.DataRate
	}

	if err := env.addNodeSwitch(s, b.Capacity); err != nil {
		return 0, err
	}
	return added, nil
}
