package kb

import (
	"fmt"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

// AlphaValues is the default sweep for ApplyAlpha.
var AlphaValues = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 2.5, 3.0}

type greyRef struct {
	id     model.EquipmentType
	grey   model.EquipmentType
	double bool
}

// XR optics priced against the grey LR optic of matching rate. The 200G
// parts are priced as two 100G optics.
var xrGreyRefs = []greyRef{
	{model.XR25G, model.Grey25GLR, false},
	{model.XR50G, model.Grey50GLR, false},
	{model.XR100G, model.Grey100GLR, false},
	{model.XR200G, model.Grey100GLR, true},
	{model.XR400G, model.Grey400GLR, false},
	{model.XRHub100G, model.Grey100GLR, false},
	{model.XRHub200G, model.Grey100GLR, true},
	{model.XRHub400G, model.Grey400GLR, false},
}

var mcGreyRefs = []greyRef{
	{model.MC100G4x25, model.Grey100GLR, false},
	{model.MC200G8x25, model.Grey100GLR, true},
	{model.MC400G, model.Grey400GLR, false},
}

// ApplyAlpha prices XR optics at alpha times the matching grey LR optic and
// media converters at half of that. The grey reference is read from the
// current view, so call it on a fresh overlay or after RestoreOriginals.
func (c *Catalog) ApplyAlpha(alpha float64) error {
	for _, ref := range xrGreyRefs {
		grey, err := c.Lookup(ref.grey)
		if err != nil {
			return err
		}
		price := grey.NormalizedPrice * alpha
		if ref.double {
			price = 2 * grey.NormalizedPrice * alpha
		}
		if err := c.OverrideCosts(ref.id, CostOverride{NormalizedPrice: &price}); err != nil {
			return err
		}
	}
	for _, ref := range mcGreyRefs {
		grey, err := c.Lookup(ref.grey)
		if err != nil {
			return err
		}
		price := grey.NormalizedPrice * alpha * 0.5
		if ref.double {
			price = 2 * grey.NormalizedPrice * alpha * 0.5
		}
		if err := c.OverrideCosts(ref.id, CostOverride{NormalizedPrice: &price}); err != nil {
			return err
		}
	}
	return nil
}

// xrFigures holds normalized price or power for the 100G, 200G and 400G
// coherent optics.
type xrFigures struct{ g100, g200, g400 float64 }

var (
	xrCosts = map[model.XRCase]xrFigures{
		model.XRBest:  {1.0, 1.2, 1.4},
		model.XRWorst: {1.5, 1.8, 2.1},
	}
	xrPower = map[model.XRCase]xrFigures{
		model.XRBest:  {5.5, 13.5, 22.0},
		model.XRWorst: {7.2, 18.0, 29.0},
	}
)

// ApplyXRCase sets XR modules, hubs and media converters to the best- or
// worst-case price and power assumptions.
func (c *Catalog) ApplyXRCase(xc model.XRCase) error {
	cost, ok := xrCosts[xc]
	if !ok {
		return fmt.Errorf("unknown XR case %q", xc)
	}
	power := xrPower[xc]

	set := func(id model.EquipmentType, price, watts float64) error {
		return c.OverrideCosts(id, CostOverride{NormalizedPrice: &price, MaxPower: &watts})
	}
	steps := []struct {
		id           model.EquipmentType
		price, watts float64
	}{
		{model.XR25G, cost.g100 * 0.25, power.g100 * 0.25},
		{model.XR50G, cost.g100 * 0.5, power.g100 * 0.5},
		{model.XR100G, cost.g100, power.g100},
		{model.XRHub100G, cost.g100, power.g100},
		{model.XR200G, cost.g200, power.g200},
		{model.XRHub200G, cost.g200, power.g200},
		{model.XR400G, cost.g400, power.g400},
		{model.XRHub400G, cost.g400, power.g400},
		{model.MC100G4x25, cost.g100 * 0.5, power.g100 * 0.3},
		{model.MC200G8x25, cost.g200 * 0.5, power.g200 * 0.3},
		{model.MC400G, cost.g400 * 0.5, power.g400 * 0.3},
	}
	for _, s := range steps {
		if err := set(s.id, s.price, s.watts); err != nil {
			return err
		}
	}
	return nil
}
