package model

// RadioType identifies a radio-unit catalog row.
type RadioType string

const (
	MacroSubGHz    RadioType = "MACRO_SUB_GHZ"
	Macro1To3GHz   RadioType = "MACRO_1_3_GHZ"
	Macro3To7GHz   RadioType = "MACRO_3_7_GHZ"
	Macro24To46GHz RadioType = "MACRO_24_46_GHZ"
	Small3To7GHz   RadioType = "SMALL_3_7_GHZ"
	Small7To15GHz  RadioType = "SMALL_7_15_GHZ"
	Small24To46GHz RadioType = "SMALL_24_46_GHZ"
)

// Deployment is the cell layer a radio unit belongs to.
type Deployment string

const (
	DeploymentMacro Deployment = "Macro"
	DeploymentSmall Deployment = "Small"
)

// MIMOLayers is the fixed MIMO order of the capacity model.
const MIMOLayers = 4

// capacityFactor is the per-layer, per-10MHz fronthaul rate in Gbps.
const capacityFactor = 0.27

// RadioUnit is an immutable radio equipment instance.
type RadioUnit struct {
	Type            RadioType  `json:"type" yaml:"type"`
	BandsRange      string     `json:"bands_range" yaml:"bands_range"`
	BandsMedium     int        `json:"bands_medium" yaml:"bands_medium"`
	BandsLong       int        `json:"bands_long" yaml:"bands_long"`
	Service         string     `json:"service" yaml:"service"`
	CarrierWidthMHz float64    `json:"carrier_width_mhz" yaml:"carrier_width_mhz"`
	Numerology      int        `json:"numerology" yaml:"numerology"`
	Deployment      Deployment `json:"deployment" yaml:"deployment"`
}

// Bands returns the number of bands deployed for the term, 0 for terms
// outside Medium/Long.
func (r RadioUnit) Bands(term Term) int {
	switch term {
	case TermMedium:
		return r.BandsMedium
	case TermLong:
		return r.BandsLong
	default:
		return 0
	}
}

// RequiredCapacity is the fronthaul capacity (Gbps) the unit needs in the
// given term. Terms other than Medium and Long require nothing.
func (r RadioUnit) RequiredCapacity(term Term) float64 {
	if term != TermMedium && term != TermLong {
		return 0
	}
	multiplier := capacityFactor * float64(MIMOLayers)
	return multiplier * float64(r.Bands(term)) * r.CarrierWidthMHz / 10
}
