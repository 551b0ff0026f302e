package design

import (
	"errors"
	"fmt"

	"Glasschek/internal/calc/factors"
	"Glasschek/internal/calc/thickness"
	"Glasschek/internal/interlayer"
)

var ErrInvalidRequest = errors.New("invalid design request")

// LoadCase is one load situation to check. Either the applied bending
// stress is given directly, or a uniform load is given and converted to a
// stress on the bending-effective thickness over a simply supported span.
type LoadCase struct {
	Name             string              `json:"name"`
	Duration         interlayer.Duration `json:"duration"`
	TemperatureC     float64             `json:"temperature_c"`
	AppliedStressMPa float64             `json:"applied_stress_mpa"`
	AppliedLoadKPa   float64             `json:"applied_load_kpa"`
}

type Request struct {
	Standard      factors.Standard      `json:"standard"`
	Glass         factors.GlassType     `json:"glass_type"`
	Profile       factors.Profile       `json:"surface_profile"`
	Finish        factors.Finish        `json:"surface_finish"`
	Strengthening factors.Strengthening `json:"strengthening"`
	Edge          factors.Edge          `json:"edge"`
	Interlayer    string                `json:"interlayer"`
	Layers        []thickness.Layer     `json:"layers"`
	SpanMM        float64               `json:"span_mm"`
	Cases         []LoadCase            `json:"cases"`
}

type CaseResult struct {
	Name                  string              `json:"name"`
	Duration              interlayer.Duration `json:"duration"`
	TemperatureC          float64             `json:"temperature_c"`
	ShearModulusMPa       float64             `json:"shear_modulus_mpa"`
	Extrapolated          bool                `json:"extrapolated"`
	EffectiveThicknessMM  float64             `json:"effective_thickness_mm"`
	DeflectionThicknessMM float64             `json:"deflection_thickness_mm"`
	KMod                  float64             `json:"k_mod"`
	CharacteristicMPa     float64             `json:"characteristic_mpa"`
	DesignMPa             float64             `json:"design_mpa"`
	AppliedStressMPa      float64             `json:"applied_stress_mpa"`
	Utilization           float64             `json:"utilization"`
}

type Report struct {
	Results   []CaseResult     `json:"results"`
	Governing int              `json:"governing"`
	Factors   factors.Set      `json:"factors"`
	Standard  factors.Standard `json:"standard"`
	Notes     string           `json:"notes"`
}

// Evaluate runs every load case of the request against the material table
// and returns the complete report, or the first fatal error. A report is
// never partial: a governing-case comparison over an incomplete case set
// would be misleading.
func Evaluate(table *interlayer.Table, req Request) (Report, error) {
	if len(req.Cases) == 0 {
		return Report{}, fmt.Errorf("%w: no load cases", ErrInvalidRequest)
	}
	if len(req.Layers) == 0 {
		return Report{}, fmt.Errorf("%w: no layers", ErrInvalidRequest)
	}
	laminated := len(req.Layers) > 1
	if laminated && req.Interlayer == "" {
		return Report{}, fmt.Errorf("%w: laminated build-up without interlayer product", ErrInvalidRequest)
	}

	report := Report{
		Results:  make([]CaseResult, 0, len(req.Cases)),
		Standard: req.Standard,
	}
	best := -1.0
	for _, lc := range req.Cases {
		res, set, err := evaluateCase(table, req, lc, laminated)
		if err != nil {
			return Report{}, err
		}
		report.Results = append(report.Results, res)
		// Strict comparison keeps the earliest case on ties.
		if res.Utilization > best {
			best = res.Utilization
			report.Governing = len(report.Results) - 1
			report.Factors = set
		}
	}
	gov := report.Results[report.Governing]
	report.Notes = fmt.Sprintf("Governing case %q: utilization %.2f.", gov.Name, gov.Utilization)
	return report, nil
}

func evaluateCase(table *interlayer.Table, req Request, lc LoadCase, laminated bool) (CaseResult, factors.Set, error) {
	if lc.AppliedStressMPa < 0 || lc.AppliedLoadKPa < 0 {
		return CaseResult{}, factors.Set{}, fmt.Errorf("%w: case %q has negative load", ErrInvalidRequest, lc.Name)
	}
	if lc.AppliedStressMPa == 0 && lc.AppliedLoadKPa == 0 {
		return CaseResult{}, factors.Set{}, fmt.Errorf("%w: case %q has no applied stress or load", ErrInvalidRequest, lc.Name)
	}
	if lc.AppliedStressMPa > 0 && lc.AppliedLoadKPa > 0 {
		return CaseResult{}, factors.Set{}, fmt.Errorf("%w: case %q gives both stress and load", ErrInvalidRequest, lc.Name)
	}
	if lc.AppliedLoadKPa > 0 && req.SpanMM <= 0 {
		return CaseResult{}, factors.Set{}, fmt.Errorf("%w: case %q needs a span to convert load to stress", ErrInvalidRequest, lc.Name)
	}

	var mod interlayer.Modulus
	if laminated {
		var err error
		mod, err = table.Interpolate(req.Interlayer, lc.TemperatureC, lc.Duration)
		if err != nil {
			return CaseResult{}, factors.Set{}, err
		}
	}

	th, err := thickness.Calculate(thickness.Input{
		Layers:          req.Layers,
		SpanMM:          req.SpanMM,
		ShearModulusMPa: mod.ModulusMPa,
	})
	if err != nil {
		return CaseResult{}, factors.Set{}, err
	}

	set, err := factors.Resolve(factors.Input{
		Standard:      req.Standard,
		Glass:         req.Glass,
		Profile:       req.Profile,
		Finish:        req.Finish,
		Strengthening: req.Strengthening,
		Edge:          req.Edge,
		Duration:      lc.Duration,
	})
	if err != nil {
		return CaseResult{}, factors.Set{}, err
	}

	applied := lc.AppliedStressMPa
	if applied == 0 {
		applied = stressFromLoad(lc.AppliedLoadKPa, req.SpanMM, th.BendingMM)
	}
	fgd := designStrength(set, req.Standard)

	return CaseResult{
		Name:                  lc.Name,
		Duration:              lc.Duration,
		TemperatureC:          lc.TemperatureC,
		ShearModulusMPa:       mod.ModulusMPa,
		Extrapolated:          mod.Extrapolated,
		EffectiveThicknessMM:  th.BendingMM,
		DeflectionThicknessMM: th.DeflectionMM,
		KMod:                  set.KMod,
		CharacteristicMPa:     set.FbkMPa,
		DesignMPa:             fgd,
		AppliedStressMPa:      applied,
		Utilization:           applied / fgd,
	}, set, nil
}

// designStrength applies the factor set in the standard's mandated order.
// Annealed glass uses the basic term only. For prestressed glass EN 16612
// adds the prestress term after the edge factor, while the IStructE method
// applies the edge factor to the whole sum.
func designStrength(set factors.Set, standard factors.Standard) float64 {
	base := set.KMod * set.Ksp * set.KspPrime * set.FgkMPa / set.GammaMA
	if !set.Prestressed {
		return set.Ke * base
	}
	prestress := set.Kv * (set.FbkMPa - set.FgkMPa) / set.GammaMV
	if standard == factors.StandardEN16612 {
		return set.Ke*base + prestress
	}
	return set.Ke * (base + prestress)
}

// stressFromLoad converts a uniform load on a simply supported unit-width
// strip into the extreme-fibre bending stress on the effective section:
// M = q L^2 / 8, W = h^2 / 6.
func stressFromLoad(loadKPa, spanMM, hefMM float64) float64 {
	m := loadKPa * 1e-3 * spanMM * spanMM / 8 // N*mm per mm width
	w := hefMM * hefMM / 6                    // mm^3 per mm width
	return m / w
}
