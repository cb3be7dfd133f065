package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/model"
)

func normalizedPrice(t *testing.T, c *Catalog, id model.EquipmentType) float64 {
	t.Helper()
	u, err := c.Lookup(id)
	require.NoError(t, err)
	return u.NormalizedPrice
}

func TestApplyAlpha(t *testing.T) {
	cat := NewCatalog().Overlay()
	require.NoError(t, cat.ApplyAlpha(2))

	cases := map[model.EquipmentType]float64{
		model.XR25G:      0.08 * 2,
		model.XR50G:      0.20 * 2,
		model.XR100G:     0.30 * 2,
		model.XR200G:     2 * 0.30 * 2,
		model.XR400G:     1.00 * 2,
		model.XRHub100G:  0.30 * 2,
		model.XRHub200G:  2 * 0.30 * 2,
		model.XRHub400G:  1.00 * 2,
		model.MC100G4x25: 0.30 * 2 * 0.5,
		model.MC200G8x25: 2 * 0.30 * 2 * 0.5,
		model.MC400G:     1.00 * 2 * 0.5,
	}
	for id, want := range cases {
		assert.InDelta(t, want, normalizedPrice(t, cat, id), 1e-12, "normalized price of %s", id)
	}

	// Grey references are untouched.
	assert.Equal(t, 0.30, normalizedPrice(t, cat, model.Grey100GLR))
}

func TestApplyAlphaAfterRestoreIsNotCumulative(t *testing.T) {
	cat := NewCatalog()
	cat.SnapshotOriginals()

	require.NoError(t, cat.ApplyAlpha(3))
	require.NoError(t, cat.RestoreOriginals())
	require.NoError(t, cat.ApplyAlpha(0.5))

	assert.InDelta(t, 0.30*0.5, normalizedPrice(t, cat, model.XR100G), 1e-12)
}

func TestApplyXRCase(t *testing.T) {
	for _, tc := range []struct {
		xc         model.XRCase
		price100   float64
		power100   float64
		price400   float64
		power200   float64
		mc200Price float64
		mc400Power float64
	}{
		{model.XRBest, 1.0, 5.5, 1.4, 13.5, 1.2 * 0.5, 22.0 * 0.3},
		{model.XRWorst, 1.5, 7.2, 2.1, 18.0, 1.8 * 0.5, 29.0 * 0.3},
	} {
		t.Run(string(tc.xc), func(t *testing.T) {
			cat := NewCatalog().Overlay()
			require.NoError(t, cat.ApplyXRCase(tc.xc))

			xr25, _ := cat.Lookup(model.XR25G)
			assert.InDelta(t, tc.price100*0.25, xr25.NormalizedPrice, 1e-12)
			assert.InDelta(t, tc.power100*0.25, xr25.MaxPower, 1e-12)

			xr50, _ := cat.Lookup(model.XR50G)
			assert.InDelta(t, tc.price100*0.5, xr50.NormalizedPrice, 1e-12)

			hub100, _ := cat.Lookup(model.XRHub100G)
			assert.Equal(t, tc.price100, hub100.NormalizedPrice)
			assert.Equal(t, tc.power100, hub100.MaxPower)

			xr200, _ := cat.Lookup(model.XR200G)
			assert.Equal(t, tc.power200, xr200.MaxPower)

			xr400, _ := cat.Lookup(model.XR400G)
			assert.Equal(t, tc.price400, xr400.NormalizedPrice)

			mc200, _ := cat.Lookup(model.MC200G8x25)
			assert.InDelta(t, tc.mc200Price, mc200.NormalizedPrice, 1e-12)

			mc400, _ := cat.Lookup(model.MC400G)
			assert.InDelta(t, tc.mc400Power, mc400.MaxPower, 1e-12)
		})
	}
}

func TestApplyXRCaseUnknown(t *testing.T) {
	cat := NewCatalog()
	assert.Error(t, cat.ApplyXRCase("Typical"))
}
