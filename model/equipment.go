package model

import "fmt"

// EquipmentType identifies a transport catalog row.
type EquipmentType string

const (
	Grey1GSR   EquipmentType = "GREY_TRANSCEIVERS_1G_SR"
	Grey10GSR  EquipmentType = "GREY_TRANSCEIVERS_10G_SR"
	Grey25GSR  EquipmentType = "GREY_TRANSCEIVERS_25G_SR"
	Grey50GSR  EquipmentType = "GREY_TRANSCEIVERS_50G_SR"
	Grey100GSR EquipmentType = "GREY_TRANSCEIVERS_100G_SR"
	Grey400GSR EquipmentType = "GREY_TRANSCEIVERS_400G_SR"

	Grey1GLR   EquipmentType = "GREY_TRANSCEIVERS_1G_LR"
	Grey10GLR  EquipmentType = "GREY_TRANSCEIVERS_10G_LR"
	Grey25GLR  EquipmentType = "GREY_TRANSCEIVERS_25G_LR"
	Grey50GLR  EquipmentType = "GREY_TRANSCEIVERS_50G_LR"
	Grey100GLR EquipmentType = "GREY_TRANSCEIVERS_100G_LR"
	Grey400GLR EquipmentType = "GREY_TRANSCEIVERS_400G_LR"

	WDM1GLR   EquipmentType = "WDM_TRANSCEIVERS_1G_LR"
	WDM10GLR  EquipmentType = "WDM_TRANSCEIVERS_10G_LR"
	WDM25GLR  EquipmentType = "WDM_TRANSCEIVERS_25G_LR"
	WDM50GLR  EquipmentType = "WDM_TRANSCEIVERS_50G_LR"
	WDM100GLR EquipmentType = "WDM_TRANSCEIVERS_100G_LR"
	WDM400GLR EquipmentType = "WDM_TRANSCEIVERS_400G_LR"

	CWDMMux     EquipmentType = "CWDM_MUX"
	WDMMux      EquipmentType = "WDM_MUX"
	Splitter1x2 EquipmentType = "SPLITTER_1_2"
	Splitter1x4 EquipmentType = "SPLITTER_1_4"

	SwitchSmall      EquipmentType = "SWITCH_SMALL"
	SwitchMedium     EquipmentType = "SWITCH_MEDIUM"
	SwitchBig        EquipmentType = "SWITCH_BIG"
	SwitchExtraLarge EquipmentType = "SWITCH_EXTRA_LARGE"

	XR25G      EquipmentType = "XR_MODULE_25G"
	XR50G      EquipmentType = "XR_MODULE_50G"
	XR100G     EquipmentType = "XR_MODULE_100G"
	XR200G     EquipmentType = "XR_MODULE_200G"
	XR400G     EquipmentType = "XR_MODULE_400G"
	XRHub100G  EquipmentType = "XR_MODULE_HUB_100G"
	XRHub200G  EquipmentType = "XR_MODULE_HUB_200G"
	XRHub400G  EquipmentType = "XR_MODULE_HUB_400G"
	MC100G4x25 EquipmentType = "MEDIA_CONVERTER_100G_4X25G"
	MC200G8x25 EquipmentType = "MEDIA_CONVERTER_200G_8X25G"
	MC400G     EquipmentType = "MEDIA_CONVERTER_400G_400G"

	Transponder EquipmentType = "TRANSPONDER"
)

// Category tags a transport row with its role. Cost and energy reducers
// filter on categories instead of type names.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryGreySR
	CategoryGreyLR
	CategoryWDMTransceiver
	CategoryCWDMMux
	CategoryWDMMux
	CategorySplitter
	CategorySwitch
	CategoryXRModule
	CategoryXRHub
	CategoryMediaConverter
	CategoryTransponder
)

var categoryNames = map[Category]string{
	CategoryGreySR:         "grey_sr",
	CategoryGreyLR:         "grey_lr",
	CategoryWDMTransceiver: "wdm_transceiver",
	CategoryCWDMMux:        "cwdm_mux",
	CategoryWDMMux:         "wdm_mux",
	CategorySplitter:       "splitter",
	CategorySwitch:         "switch",
	CategoryXRModule:       "xr_module",
	CategoryXRHub:          "xr_hub",
	CategoryMediaConverter: "media_converter",
	CategoryTransponder:    "transponder",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// IsShortReach reports whether the category is a duplex-paired SR optic.
func (c Category) IsShortReach() bool { return c == CategoryGreySR }

// TransportUnit is an immutable transport catalog row. DataRate is nil for
// passive or port-count equipment (muxes, splitters, switches, transponders).
type TransportUnit struct {
	Type            EquipmentType `json:"type"`
	Name            string        `json:"name"`
	Category        Category      `json:"category"`
	DataRate        *float64      `json:"data_rate,omitempty"`
	Reach           string        `json:"reach,omitempty"`
	Price           float64       `json:"price"`
	NormalizedPrice float64       `json:"normalized_price"`
	MaxPower        float64       `json:"max_power"`
	FormFactor      string        `json:"form_factor,omitempty"`
	InsertionLoss   float64       `json:"insertion_loss,omitempty"`

	// Capacity is the switching capacity in Gbps (switches only).
	Capacity float64 `json:"capacity,omitempty"`
	// NumPorts is the client port count (transponders only).
	NumPorts int `json:"num_ports,omitempty"`
}

// Rate returns the data rate or 0 when it is not applicable.
func (u TransportUnit) Rate() float64 {
	if u.DataRate == nil {
		return 0
	}
	return *u.DataRate
}

// Deploy records an instance of the row as it looks right now.
func (u TransportUnit) Deploy() Deployed {
	return Deployed{
		Type:            u.Type,
		Category:        u.Category,
		DataRate:        u.Rate(),
		HasDataRate:     u.DataRate != nil,
		Price:           u.Price,
		NormalizedPrice: u.NormalizedPrice,
		MaxPower:        u.MaxPower,
	}
}

// Deployed is a transport instance installed on a node. Cost and power are
// captured at deployment so later catalog overrides do not rewrite it.
type Deployed struct {
	Type            EquipmentType `json:"type" csv:"type"`
	Category        Category      `json:"category" csv:"-"`
	DataRate        float64       `json:"data_rate" csv:"data_rate"`
	HasDataRate     bool          `json:"-" csv:"-"`
	Price           float64       `json:"price" csv:"price"`
	NormalizedPrice float64       `json:"normalized_price" csv:"normalized_price"`
	MaxPower        float64       `json:"max_power" csv:"max_power"`
}

// SwitchClass is one of the four aggregation switch sizes.
type SwitchClass int

const (
	SwitchClassSmall SwitchClass = iota
	SwitchClassMedium
	SwitchClassBig
	SwitchClassExtraLarge
)

// SwitchClasses lists the classes from smallest to largest.
func SwitchClasses() []SwitchClass {
	return []SwitchClass{SwitchClassSmall, SwitchClassMedium, SwitchClassBig, SwitchClassExtraLarge}
}

var switchTypes = [...]EquipmentType{SwitchSmall, SwitchMedium, SwitchBig, SwitchExtraLarge}

// EquipmentType maps the class to its catalog row.
func (c SwitchClass) EquipmentType() EquipmentType { return switchTypes[c] }

// Capacity is the nominal switching capacity in Gbps.
func (c SwitchClass) Capacity() float64 {
	switch c {
	case SwitchClassSmall:
		return 400
	case SwitchClassMedium:
		return 1600
	case SwitchClassBig:
		return 3200
	default:
		return 6400
	}
}

func (c SwitchClass) String() string {
	switch c {
	case SwitchClassSmall:
		return "Small"
	case SwitchClassMedium:
		return "Medium"
	case SwitchClassBig:
		return "Big"
	case SwitchClassExtraLarge:
		return "Extra Large"
	default:
		return fmt.Sprintf("SwitchClass(%d)", int(c))
	}
}

// SwitchClassOf returns the class for a switch equipment type.
func SwitchClassOf(t EquipmentType) (SwitchClass, bool) {
	for i, st := range switchTypes {
		if st == t {
			return SwitchClass(i), true
		}
	}
	return 0, false
}
