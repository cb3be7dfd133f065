package dimension

import "github.com/signalsfoundry/fronthaul-planner/model"

// powerCurve samples switch draw (W) at 21 evenly spaced loads from 0 to
// the class capacity.
type powerCurve struct {
	spacing float64
	watts   []float64
}

var powerCurves = map[model.SwitchClass]powerCurve{
	model.SwitchClassSmall: {20, []float64{
		125, 131, 137, 144, 150, 156, 162, 169, 175, 181, 187,
		194, 200, 206, 212, 219, 225, 231, 237, 244, 250}},
	model.SwitchClassMedium: {80, []float64{
		175, 184, 193, 201, 210, 219, 228, 236, 245, 254, 263,
		271, 280, 289, 298, 306, 315, 324, 333, 341, 350}},
	model.SwitchClassBig: {160, []float64{
		230, 242, 253, 265, 276, 288, 299, 311, 322, 334, 345,
		357, 368, 380, 391, 403, 414, 426, 437, 449, 460}},
	model.SwitchClassExtraLarge: {320, []float64{
		310, 326, 341, 357, 372, 388, 403, 419, 434, 450, 465,
		481, 496, 512, 527, 543, 558, 574, 589, 605, 620}},
}

func (c powerCurve) at(i int) float64 { return float64(i) * c.spacing }

// SwitchPower returns the draw at the lower breakpoint of the interval
// holding traffic. Loads outside the table, including negative ones, get
// the last sample.
func SwitchPower(class model.SwitchClass, traffic float64) float64 {
	c, ok := powerCurves[class]
	if !ok {
		return 0
	}
	for i := 0; i+1 < len(c.watts); i++ {
		if c.at(i) <= traffic && traffic < c.at(i+1) {
			return c.watts[i]
		}
	}
	return c.watts[len(c.watts)-1]
}

// SwitchPowerInterpolated interpolates linearly between breakpoints.
func SwitchPowerInterpolated(class model.SwitchClass, traffic float64) float64 {
	c, ok := powerCurves[class]
	if !ok {
		return 0
	}
	for i := 0; i+1 < len(c.watts); i++ {
		t1, t2 := c.at(i), c.at(i+1)
		if t1 <= traffic && traffic <= t2 {
			p1, p2 := c.watts[i], c.watts[i+1]
			return p1 + (p2-p1)*(traffic-t1)/(t2-t1)
		}
	}
	return c.watts[len(c.watts)-1]
}
