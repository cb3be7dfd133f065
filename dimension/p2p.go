package dimension

import (
	"context"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// P2P runs a grey LR link per capacity tier from every node to the root,
// with a grey SR pair per radio unit and a local switch.
type P2P struct{}

func (P2P) Architecture() model.Architecture { return model.ArchP2P }

func (P2P) Dimension(ctx context.Context, env *Env) error {
	root := env.Root()
	for _, n := range env.branches() {
		if err := ctx.Err(); err != nil {
			return err
		}

		s := newStage(n)
		var total float64
		for _, c := range env.unitCapacities(n) {
			total += c
			if _, err := env.srPair(s, fineSR, c); err != nil {
				return err
			}
		}

		tiers := greyLR.peel(total)
		if len(tiers) > 0 {
			path, err := env.pathToRoot(n.ID)
			if err != nil {
				return err
			}
			for _, r := range tiers {
				lr, err := env.deploy(r.ids[0])
				if err != nil {
					return err
				}
				s.put(lr)
				root.Install(lr)
				root.AddOther(lr.MaxPower)
				env.record(ctx, n.ID, env.Topo.AllocatePairedOnPath(path, lr.DataRate))
			}
		}

		if err := env.addNodeSwitch(s, s.switchLoad()); err != nil {
			return err
		}
		s.commit()
	}
	return env.addSwitchesToRoot(ctx)
}
