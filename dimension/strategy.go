// Package dimension sizes the transport equipment of a fronthaul tree for
// one architecture: per node optics and switches, fibre allocation toward
// the root, and root termination.
package dimension

import (
	"context"
	"errors"
	"fmt"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// ErrUnknownArchitecture is returned by For for unregistered names.
var ErrUnknownArchitecture = errors.New("unknown architecture")

// Strategy dimensions a topology for one architecture. Implementations
// write equipment, power and fibre allocations into env.Topo.
type Strategy interface {
	Architecture() model.Architecture
	Dimension(ctx context.Context, env *Env) error
}

var registry = map[model.Architecture]Strategy{
	model.ArchP2P:    P2P{},
	model.ArchWDM:    WDM{},
	model.ArchWDMWP:  WDM{Preaggregate: true},
	model.ArchP2MP:   P2MP{},
	model.ArchP2MPWP: P2MP{Preaggregate: true},
}

// For returns the strategy registered for arch.
func For(arch model.Architecture) (Strategy, error) {
	s, ok := registry[arch]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchitecture, arch)
	}
	return s, nil
}

// All returns every strategy in report order.
func All() []Strategy {
	archs := model.Architectures()
	out := make([]Strategy, 0, len(archs))
	for _, a := range archs {
		out = append(out, registry[a])
	}
	return out
}
