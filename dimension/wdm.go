package dimension

import (
	"context"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// WDM gives every radio unit its own wavelength: a grey SR pair and a WDM
// optic at both the node and the root, multiplexed onto one fibre pair.
// With Preaggregate, small units are first bundled onto a shared
// wavelength behind a node switch.
type WDM struct {
	Preaggregate bool
}

func (w WDM) Architecture() model.Architecture {
	if w.Preaggregate {
		return model.ArchWDMWP
	}
	return model.ArchWDM
}

func (w WDM) Dimension(ctx context.Context, env *Env) error {
	root := env.Root()
	for _, n := range env.branches() {
		if err := ctx.Err(); err != nil {
			return err
		}
		// plain WDM leaves corner nodes alone
		if !w.Preaggregate && n.Kind != model.KindMacro && n.Kind != model.KindSmall {
			continue
		}

		ns, rs := newStage(n), newStage(root)
		caps := env.unitCapacities(n)
		others := caps
		if w.Preaggregate {
			b := Preaggregate(n.Radio, env.Term)
			if b.Qualified {
				if err := w.bundle(env, ns, rs, caps, b); err != nil {
					return err
				}
			}
			others = make([]float64, 0, len(b.Others))
			for _, i := range b.Others {
				others = append(others, caps[i])
			}
		}
		for _, c := range others {
			if err := wdmUnit(env, ns, rs, c); err != nil {
				return err
			}
		}

		if len(n.Radio) > 0 {
			mux, err := env.deploy(model.WDMMux)
			if err != nil {
				return err
			}
			ns.put(mux)
			rs.put(mux)
		}
		ns.commit()
		rs.commit()

		if err := env.addTranspondersToNode(n); err != nil {
			return err
		}

		path, err := env.pathToRoot(n.ID)
		if err != nil {
			return err
		}
		env.record(ctx, n.ID, env.Topo.AllocateForEachOnPath(path, caps))
	}

	if err := env.addTranspondersToRoot(); err != nil {
		return err
	}
	return env.addSwitchesToRoot(ctx)
}

// wdmUnit stages the per-unit optics at both ends.
func wdmUnit(env *Env, ns, rs *stage, c float64) error {
	sr, err := env.deploy(fineSR.pick(c).ids[0])
	if err != nil {
		return err
	}
	wdm, err := env.deploy(wdmLR.pick(c).ids[0])
	if err != nil {
		return err
	}
	ns.put(sr, sr)
	ns.put(wdm)
	rs.put(sr, sr)
	rs.put(wdm)
	return nil
}

// bundle serves the pre-aggregated units with one WDM optic. The root
// breaks the aggregate back out onto grey SR pairs.
func (WDM) bundle(env *Env, ns, rs *stage, caps []float64, b Bundle) error {
	for _, i := range b.Members {
		if _, err := env.srPair(ns, fineSR, caps[i]); err != nil {
			return err
		}
	}

	wdm, err := env.deploy(wdmLR.pick(b.Capacity).ids[0])
	if err != nil {
		return err
	}
	ns.place(wdm)
	rs.place(wdm)
	for _, r := range fineSR.peel(b.Capacity) {
		sr, err := env.deploy(r.ids[0])
		if err != nil {
			return err
		}
		rs.put(sr, sr)
	}
	ns.node.AddOther(wdm.MaxPower)
	rs.node.AddOther(wdm.MaxPower)

	return env.addNodeSwitch(ns, b.Capacity)
}
