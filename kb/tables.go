package kb

import "github.com/signalsfoundry/fronthaul-planner/model"

func rate(v float64) *float64 { return &v }

const (
	reachMMF      = "100m MMF"
	reachSMF      = "30/40 km SMF"
	reachCoherent = "coherent DSCM ≈ 200 km reach"
)

// baseRadio is the radio unit catalog.
var baseRadio = map[model.RadioType]model.RadioUnit{
	model.MacroSubGHz:    {Type: model.MacroSubGHz, BandsRange: "Sub GHz", BandsMedium: 4, BandsLong: 4, Service: "mobile", CarrierWidthMHz: 10, Numerology: 0, Deployment: model.DeploymentMacro},
	model.Macro1To3GHz:   {Type: model.Macro1To3GHz, BandsRange: "1-3 GHz", BandsMedium: 4, BandsLong: 4, Service: "mobile", CarrierWidthMHz: 20, Numerology: 0, Deployment: model.DeploymentMacro},
	model.Macro3To7GHz:   {Type: model.Macro3To7GHz, BandsRange: "3-7 GHz", BandsMedium: 2, BandsLong: 2, Service: "Mob.&FWA", CarrierWidthMHz: 100, Numerology: 1, Deployment: model.DeploymentMacro},
	model.Macro24To46GHz: {Type: model.Macro24To46GHz, BandsRange: "24-46 GHz", BandsMedium: 1, BandsLong: 1, Service: "FWA", CarrierWidthMHz: 200, Numerology: 3, Deployment: model.DeploymentMacro},
	model.Small3To7GHz:   {Type: model.Small3To7GHz, BandsRange: "3-7 GHz", BandsMedium: 2, BandsLong: 3, Service: "mobile", CarrierWidthMHz: 100, Numerology: 1, Deployment: model.DeploymentSmall},
	model.Small7To15GHz:  {Type: model.Small7To15GHz, BandsRange: "7-15 GHz", BandsMedium: 0, BandsLong: 1, Service: "mobile", CarrierWidthMHz: 200, Numerology: 2, Deployment: model.DeploymentSmall},
	model.Small24To46GHz: {Type: model.Small24To46GHz, BandsRange: "24-46 GHz", BandsMedium: 1, BandsLong: 2, Service: "mobile", CarrierWidthMHz: 200, Numerology: 3, Deployment: model.DeploymentSmall},
}

// baseTransport is the transport equipment catalog. Values are normalized
// against the 400G grey LR price (1.0 CU).
var baseTransport = map[model.EquipmentType]model.TransportUnit{
	model.Grey1GSR:   {Name: "1G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(1), Reach: reachMMF, Price: 10, NormalizedPrice: 0.00, MaxPower: 1, FormFactor: "SFP"},
	model.Grey10GSR:  {Name: "10G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(10), Reach: reachMMF, Price: 20, NormalizedPrice: 0.00, MaxPower: 1, FormFactor: "SFP+"},
	model.Grey25GSR:  {Name: "25G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(25), Reach: reachMMF, Price: 40, NormalizedPrice: 0.01, MaxPower: 1, FormFactor: "SFP28"},
	model.Grey50GSR:  {Name: "50G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(50), Reach: reachMMF, Price: 270, NormalizedPrice: 0.05, MaxPower: 1.5, FormFactor: "SFP56"},
	model.Grey100GSR: {Name: "100G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(100), Reach: reachMMF, Price: 100, NormalizedPrice: 0.02, MaxPower: 2.5, FormFactor: "QSFP28"},
	model.Grey400GSR: {Name: "400G SR (100m) MMF", Category: model.CategoryGreySR, DataRate: rate(400), Reach: reachMMF, Price: 400, NormalizedPrice: 0.08, MaxPower: 10, FormFactor: "QSFP-DD"},

	model.Grey1GLR:   {Name: "1G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(1), Reach: reachSMF, Price: 50, NormalizedPrice: 0.01, MaxPower: 1, FormFactor: "SFP"},
	model.Grey10GLR:  {Name: "10G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(10), Reach: reachSMF, Price: 100, NormalizedPrice: 0.02, MaxPower: 1, FormFactor: "SFP+"},
	model.Grey25GLR:  {Name: "25G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(25), Reach: reachSMF, Price: 400, NormalizedPrice: 0.08, MaxPower: 1.5, FormFactor: "SFP28"},
	model.Grey50GLR:  {Name: "50G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(50), Reach: reachSMF, Price: 1000, NormalizedPrice: 0.20, MaxPower: 4, FormFactor: "QSFP27"},
	model.Grey100GLR: {Name: "100G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(100), Reach: reachSMF, Price: 1500, NormalizedPrice: 0.30, MaxPower: 4.5, FormFactor: "QSFP28"},
	model.Grey400GLR: {Name: "400G LR/ER (30/40 km) SMF", Category: model.CategoryGreyLR, DataRate: rate(400), Reach: reachSMF, Price: 5000, NormalizedPrice: 1.00, MaxPower: 10, FormFactor: "QSFP-DD"},

	model.WDM1GLR:   {Name: "WDM 1G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(1), Reach: reachSMF, Price: 100, NormalizedPrice: 0.02, MaxPower: 1, FormFactor: "SFP+"},
	model.WDM10GLR:  {Name: "WDM 10G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(10), Reach: reachSMF, Price: 250, NormalizedPrice: 0.05, MaxPower: 1.6, FormFactor: "SFP+"},
	model.WDM25GLR:  {Name: "WDM 25G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(25), Reach: reachSMF, Price: 800, NormalizedPrice: 0.16, MaxPower: 2, FormFactor: "SFP28"},
	model.WDM50GLR:  {Name: "WDM 50G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(50), Reach: reachSMF, Price: 1800, NormalizedPrice: 0.36, MaxPower: 4.5, FormFactor: "QSFP28"},
	model.WDM100GLR: {Name: "WDM 100G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(100), Reach: reachSMF, Price: 2500, NormalizedPrice: 0.50, MaxPower: 4.5, FormFactor: "QSFP28"},
	model.WDM400GLR: {Name: "WDM 400G LR/ER (30/40 km) SMF", Category: model.CategoryWDMTransceiver, DataRate: rate(400), Reach: reachSMF, Price: 9000, NormalizedPrice: 1.80, MaxPower: 10, FormFactor: "QSFP-DD"},

	model.CWDMMux:     {Name: "CWDM multiplexer/demultiplexer", Category: model.CategoryCWDMMux, Reach: "8 channels", Price: 800, NormalizedPrice: 0.16, MaxPower: 1, InsertionLoss: 5.5},
	model.WDMMux:      {Name: "WDM multiplexer/demultiplexer", Category: model.CategoryWDMMux, Reach: "40 channels", Price: 1200, NormalizedPrice: 0.24, MaxPower: 1, InsertionLoss: 3.2},
	model.Splitter1x2: {Name: "Splitter/combiner 1:2", Category: model.CategorySplitter, Reach: "1:2", Price: 100, NormalizedPrice: 0.02, MaxPower: 0, InsertionLoss: 3.5},
	model.Splitter1x4: {Name: "Splitter/combiner 1:4", Category: model.CategorySplitter, Reach: "1:4", Price: 100, NormalizedPrice: 0.02, MaxPower: 0, InsertionLoss: 7.0},

	model.SwitchSmall:      {Name: "small (2x200G)", Category: model.CategorySwitch, Price: 3000, NormalizedPrice: 0.60 * 4, MaxPower: 100, Capacity: 400},
	model.SwitchMedium:     {Name: "medium (2x800G)", Category: model.CategorySwitch, Price: 8000, NormalizedPrice: 1.60 * 4, MaxPower: 300, Capacity: 1600},
	model.SwitchBig:        {Name: "Large (2x1.6T)", Category: model.CategorySwitch, Price: 14000, NormalizedPrice: 2.80 * 4, MaxPower: 460, Capacity: 3200},
	model.SwitchExtraLarge: {Name: "Extra Large (2x3.2T)", Category: model.CategorySwitch, Price: 14001, NormalizedPrice: 4.0 * 4.0, MaxPower: 620, Capacity: 6400},

	// The 25G and 50G XR modules are 100G hardware run at reduced rate.
	model.XR25G:  {Name: "XR 25 G module", Category: model.CategoryXRModule, DataRate: rate(100), Reach: reachCoherent, Price: 1000, NormalizedPrice: 0.10, MaxPower: 3.5, FormFactor: "pluggable"},
	model.XR50G:  {Name: "XR 50 G module", Category: model.CategoryXRModule, DataRate: rate(100), Reach: reachCoherent, Price: 2000, NormalizedPrice: 0.16, MaxPower: 3.5, FormFactor: "pluggable"},
	model.XR100G: {Name: "XR 100 G module", Category: model.CategoryXRModule, DataRate: rate(100), Reach: reachCoherent, Price: 3000, NormalizedPrice: 0.26, MaxPower: 3.5, FormFactor: "pluggable"},
	model.XR200G: {Name: "XR 200 G module", Category: model.CategoryXRModule, DataRate: rate(200), Reach: reachCoherent, Price: 5000, NormalizedPrice: 0.42, MaxPower: 42, FormFactor: "pluggable"},
	model.XR400G: {Name: "XR 400G module", Category: model.CategoryXRModule, DataRate: rate(400), Reach: reachCoherent, Price: 9000, NormalizedPrice: 0.76, MaxPower: 8, FormFactor: "pluggable"},

	model.XRHub100G: {Name: "XR 100 G HUB module", Category: model.CategoryXRHub, DataRate: rate(100), Reach: reachCoherent, Price: 3000, NormalizedPrice: 0.28, MaxPower: 3.5, FormFactor: "pluggable"},
	model.XRHub200G: {Name: "XR 200 G HUB module", Category: model.CategoryXRHub, DataRate: rate(200), Reach: reachCoherent, Price: 5000, NormalizedPrice: 0.50, MaxPower: 4.5, FormFactor: "pluggable"},
	model.XRHub400G: {Name: "XR 400G HUB module", Category: model.CategoryXRHub, DataRate: rate(400), Reach: reachCoherent, Price: 9000, NormalizedPrice: 0.84, MaxPower: 8, FormFactor: "pluggable"},

	model.MC100G4x25: {Name: "Media Converter 100G (4x25G grey -> 100G XR)", Category: model.CategoryMediaConverter, DataRate: rate(100), Reach: "for client-XR module adaptation", Price: 2000, NormalizedPrice: 0.30, MaxPower: 2},
	model.MC200G8x25: {Name: "Media Converter 200G (8x25G grey -> 200G XR)", Category: model.CategoryMediaConverter, DataRate: rate(200), Reach: "for client-XR module adaptation", Price: 3000, NormalizedPrice: 0.40, MaxPower: 3},
	model.MC400G:     {Name: "Media Converter 400G (400G XR -> 400G grey)", Category: model.CategoryMediaConverter, DataRate: rate(400), Reach: "for client-XR module adaptation", Price: 5000, NormalizedPrice: 0.50, MaxPower: 5},

	model.Transponder: {Name: "Transponder", Category: model.CategoryTransponder, Price: 4500, NormalizedPrice: 0.90, MaxPower: 0, NumPorts: 5},
}

func init() {
	for id, u := range baseTransport {
		u.Type = id
		baseTransport[id] = u
	}
}
