package dimension

import (
	"math"
	"testing"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

func TestSwitchPowerStep(t *testing.T) {
	cases := []struct {
		class   model.SwitchClass
		traffic float64
		want    float64
	}{
		{model.SwitchClassSmall, 0, 125},
		{model.SwitchClassSmall, 19.99, 125},
		{model.SwitchClassSmall, 20, 131},
		{model.SwitchClassSmall, 199, 181},
		{model.SwitchClassSmall, 399, 244},
		{model.SwitchClassSmall, 400, 250},
		{model.SwitchClassSmall, 1000, 250},
		{model.SwitchClassSmall, -1, 250},
		{model.SwitchClassMedium, 100, 184},
		{model.SwitchClassBig, 3199, 449},
		{model.SwitchClassExtraLarge, 6400, 620},
	}
	for _, tc := range cases {
		if got := SwitchPower(tc.class, tc.traffic); got != tc.want {
			t.Fatalf("SwitchPower(%v, %v) = %v, want %v", tc.class, tc.traffic, got, tc.want)
		}
	}
}

func TestSwitchPowerInterpolated(t *testing.T) {
	cases := []struct {
		class   model.SwitchClass
		traffic float64
		want    float64
	}{
		{model.SwitchClassSmall, 0, 125},
		{model.SwitchClassSmall, 10, 128},
		{model.SwitchClassSmall, 20, 131},
		{model.SwitchClassMedium, 40, 179.5},
		{model.SwitchClassSmall, 400, 250},
		{model.SwitchClassSmall, 401, 250},
	}
	for _, tc := range cases {
		if got := SwitchPowerInterpolated(tc.class, tc.traffic); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("SwitchPowerInterpolated(%v, %v) = %v, want %v", tc.class, tc.traffic, got, tc.want)
		}
	}
}

func TestSwitchCurvesSpanCapacity(t *testing.T) {
	for _, class := range model.SwitchClasses() {
		c := powerCurves[class]
		if len(c.watts) != 21 {
			t.Fatalf("%v has %d samples, want 21", class, len(c.watts))
		}
		if last := c.at(len(c.watts) - 1); last != class.Capacity() {
			t.Fatalf("%v curve ends at %v, want %v", class, last, class.Capacity())
		}
	}
}

func TestSwitchClassFor(t *testing.T) {
	cases := map[float64]model.SwitchClass{
		1:    model.SwitchClassSmall,
		400:  model.SwitchClassSmall,
		401:  model.SwitchClassMedium,
		1600: model.SwitchClassMedium,
		3200: model.SwitchClassBig,
		3201: model.SwitchClassExtraLarge,
	}
	for traffic, want := range cases {
		if got := SwitchClassFor(traffic); got != want {
			t.Fatalf("SwitchClassFor(%v) = %v, want %v", traffic, got, want)
		}
	}
}
