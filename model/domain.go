package model

import (
	"fmt"
	"strings"
)

// Term is the planning horizon. Longer terms carry more radio bands.
type Term string

const (
	TermShort  Term = "short"
	TermMedium Term = "Medium"
	TermLong   Term = "Long"
)

// Terms lists the planning terms the demand table covers, in report order.
func Terms() []Term { return []Term{TermMedium, TermLong} }

// ParseTerm accepts the canonical names case-insensitively.
func ParseTerm(s string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium", "mt":
		return TermMedium, nil
	case "long", "lt":
		return TermLong, nil
	case "short":
		return TermShort, nil
	default:
		return "", fmt.Errorf("unknown term %q", s)
	}
}

// Scenario is a deployment-density class (geotype).
type Scenario int

const (
	DenseUrban Scenario = iota
	Urban
	Suburban
	Rural
)

// Scenarios lists every geotype in report order.
func Scenarios() []Scenario { return []Scenario{DenseUrban, Urban, Suburban, Rural} }

func (s Scenario) String() string {
	switch s {
	case DenseUrban:
		return "Dense Urban"
	case Urban:
		return "Urban"
	case Suburban:
		return "Suburban"
	case Rural:
		return "Rural"
	default:
		return fmt.Sprintf("Scenario(%d)", int(s))
	}
}

// Valid reports whether s is one of the four known geotypes.
func (s Scenario) Valid() bool { return s >= DenseUrban && s <= Rural }

// ParseScenario accepts "Dense Urban", "DenseUrban" and "dense_urban" forms.
func ParseScenario(s string) (Scenario, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "denseurban":
		return DenseUrban, nil
	case "urban":
		return Urban, nil
	case "suburban":
		return Suburban, nil
	case "rural":
		return Rural, nil
	default:
		return 0, fmt.Errorf("unknown scenario %q", s)
	}
}

// MarshalText lets scenarios travel as their display names in JSON/YAML.
func (s Scenario) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid scenario %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Scenario) UnmarshalText(b []byte) error {
	v, err := ParseScenario(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// NodeKind is the role of a topology node. Values match the numeric "type"
// attribute used in persisted topologies.
type NodeKind int

const (
	KindRoot   NodeKind = 0
	KindMacro  NodeKind = 1
	KindSmall  NodeKind = 2
	KindCorner NodeKind = 4
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindMacro:
		return "macro"
	case KindSmall:
		return "small"
	case KindCorner:
		return "corner"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is a known node kind.
func (k NodeKind) Valid() bool {
	switch k {
	case KindRoot, KindMacro, KindSmall, KindCorner:
		return true
	}
	return false
}

// Architecture identifies a fronthaul transport dimensioning strategy.
type Architecture string

const (
	ArchP2P    Architecture = "P2P"
	ArchWDM    Architecture = "WDM"
	ArchWDMWP  Architecture = "WDM-WP"
	ArchP2MP   Architecture = "P2MP"
	ArchP2MPWP Architecture = "P2MP-WP"
)

// Architectures lists every strategy in report order.
func Architectures() []Architecture {
	return []Architecture{ArchP2P, ArchWDM, ArchWDMWP, ArchP2MP, ArchP2MPWP}
}

// ParseArchitecture is case-insensitive and tolerates "_" for "-".
func ParseArchitecture(s string) (Architecture, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for _, a := range Architectures() {
		if string(a) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown architecture %q", s)
}

// UsesXR reports whether the architecture deploys coherent XR optics.
func (a Architecture) UsesXR() bool { return a == ArchP2MP || a == ArchP2MPWP }

// XRCase selects the best- or worst-case XR cost and power assumptions.
type XRCase string

const (
	XRBest  XRCase = "Best"
	XRWorst XRCase = "Worst"
)

// ParseXRCase is case-insensitive.
func ParseXRCase(s string) (XRCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "best":
		return XRBest, nil
	case "worst":
		return XRWorst, nil
	default:
		return "", fmt.Errorf("unknown XR case %q", s)
	}
}
