package factors

import (
	"errors"
	"fmt"

	"Glasschek/internal/interlayer"
)

// ErrUnsupportedCombination covers categorical inputs the selected standard
// defines no behaviour for. Unknown values are rejected, never defaulted.
var ErrUnsupportedCombination = errors.New("unsupported combination")

type Standard string

const (
	StandardIStructE Standard = "istructe"
	StandardEN16612  Standard = "en16612"
)

type GlassType string

const (
	GlassAnnealed         GlassType = "annealed"
	GlassHeatStrength     GlassType = "heat_strengthened"
	GlassToughened        GlassType = "toughened"
	GlassChemStrengthened GlassType = "chemically_strengthened"
)

// Profile is the glass surface profile (k_sp, EN 16612 Table 4).
type Profile string

const (
	ProfileFloat              Profile = "float"
	ProfilePatterned          Profile = "patterned"
	ProfileEnamelledFloat     Profile = "enamelled_float"
	ProfileEnamelledPatterned Profile = "enamelled_patterned"
)

// Finish is the surface treatment (k'_sp).
type Finish string

const (
	FinishNone        Finish = "none"
	FinishAcidEtched  Finish = "acid_etched"
	FinishSandBlasted Finish = "sand_blasted"
)

// Strengthening is the toughening process orientation (k_v, EN 16612
// Table 8). Only meaningful for prestressed glass.
type Strengthening string

const (
	StrengtheningNone       Strengthening = "none"
	StrengtheningHorizontal Strengthening = "horizontal"
	StrengtheningVertical   Strengthening = "vertical"
)

// Edge is the edge finish (k_e).
type Edge string

const (
	EdgePolished Edge = "polished"
	EdgeSeamed   Edge = "seamed"
	EdgeAsCut    Edge = "as_cut"
)

// FgkMPa is the characteristic strength of basic annealed glass
// (EN 572-1).
const FgkMPa = 45.0

// Set is the resolved numeric factor set for one (standard, glass, surface,
// edge, duration) tuple.
type Set struct {
	KMod        float64 `json:"k_mod"`
	Ke          float64 `json:"k_e"`
	Ksp         float64 `json:"k_sp"`
	KspPrime    float64 `json:"k_sp_prime"`
	Kv          float64 `json:"k_v"`
	GammaMA     float64 `json:"gamma_m_a"`
	GammaMV     float64 `json:"gamma_m_v"`
	FgkMPa      float64 `json:"f_gk_mpa"`
	FbkMPa      float64 `json:"f_bk_mpa"`
	Prestressed bool    `json:"prestressed"`
}

type Input struct {
	Standard      Standard            `json:"standard"`
	Glass         GlassType           `json:"glass_type"`
	Profile       Profile             `json:"surface_profile"`
	Finish        Finish              `json:"surface_finish"`
	Strengthening Strengthening       `json:"strengthening"`
	Edge          Edge                `json:"edge"`
	Duration      interlayer.Duration `json:"duration"`
}

// Characteristic bending strengths f_b;k per product standard.
var glassTable = map[GlassType]struct {
	FbkMPa      float64
	Prestressed bool
}{
	GlassAnnealed:         {45, false}, // EN 572-1
	GlassHeatStrength:     {70, true},  // EN 1863-1
	GlassToughened:        {120, true}, // EN 12150-1
	GlassChemStrengthened: {150, true}, // EN 12337-1
}

var profileTable = map[Profile]float64{
	ProfileFloat:              1.0,
	ProfilePatterned:          0.75,
	ProfileEnamelledFloat:     1.0,
	ProfileEnamelledPatterned: 0.75,
}

var finishTable = map[Finish]float64{
	FinishNone:        1.0,
	FinishAcidEtched:  1.0,
	FinishSandBlasted: 0.6,
}

var strengtheningTable = map[Strengthening]float64{
	StrengtheningHorizontal: 1.0,
	StrengtheningVertical:   0.6,
}

var edgeTable = map[Edge]float64{
	EdgePolished: 1.0,
	EdgeSeamed:   0.9,
	EdgeAsCut:    0.8,
}

// kmodTable precomputes k_mod = 0.663 t^(-1/16) (t in hours, capped at 1.0)
// for the discrete duration classes of the dataset.
var kmodTable = map[interlayer.Duration]float64{
	interlayer.Duration1Sec:    1.00,
	interlayer.Duration3Sec:    1.00,
	interlayer.Duration5Sec:    1.00,
	interlayer.Duration10Sec:   0.96,
	interlayer.Duration30Sec:   0.89,
	interlayer.Duration1Min:    0.86,
	interlayer.Duration10Min:   0.74,
	interlayer.Duration30Min:   0.69,
	interlayer.Duration1Hour:   0.66,
	interlayer.Duration1Day:    0.54,
	interlayer.Duration1Month:  0.44,
	interlayer.Duration1Year:   0.38,
	interlayer.Duration50Years: 0.29,
}

// Resolve maps categorical design inputs to the numeric factor set. Pure
// lookup; every axis is discrete and unknown values are an error.
func Resolve(in Input) (Set, error) {
	if in.Standard != StandardIStructE && in.Standard != StandardEN16612 {
		return Set{}, fmt.Errorf("%w: standard %q", ErrUnsupportedCombination, in.Standard)
	}
	glass, ok := glassTable[in.Glass]
	if !ok {
		return Set{}, fmt.Errorf("%w: glass type %q", ErrUnsupportedCombination, in.Glass)
	}
	ksp, ok := profileTable[in.Profile]
	if !ok {
		return Set{}, fmt.Errorf("%w: surface profile %q", ErrUnsupportedCombination, in.Profile)
	}
	kspPrime, ok := finishTable[in.Finish]
	if !ok {
		return Set{}, fmt.Errorf("%w: surface finish %q", ErrUnsupportedCombination, in.Finish)
	}
	ke, ok := edgeTable[in.Edge]
	if !ok {
		return Set{}, fmt.Errorf("%w: edge %q", ErrUnsupportedCombination, in.Edge)
	}
	kmod, ok := kmodTable[in.Duration]
	if !ok {
		return Set{}, fmt.Errorf("%w: duration %q", ErrUnsupportedCombination, in.Duration)
	}

	set := Set{
		KMod:        kmod,
		Ke:          ke,
		Ksp:         ksp,
		KspPrime:    kspPrime,
		Kv:          1.0,
		GammaMA:     1.8, // EN 16612
		FgkMPa:      FgkMPa,
		FbkMPa:      glass.FbkMPa,
		Prestressed: glass.Prestressed,
	}
	if in.Standard == StandardIStructE {
		set.GammaMA = 1.6
	}
	if glass.Prestressed {
		kv, ok := strengtheningTable[in.Strengthening]
		if !ok {
			return Set{}, fmt.Errorf("%w: strengthening %q for prestressed glass", ErrUnsupportedCombination, in.Strengthening)
		}
		set.Kv = kv
		set.GammaMV = 1.2
	}
	return set, nil
}
