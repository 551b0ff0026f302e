package interlayer

import "math"

// Interpolated values below this floor are treated as effectively zero
// stiffness; it also keeps the log-space interpolation defined when the
// dataset carries a zero cell.
const minModulusMPa = 1e-6

// Modulus is the outcome of an interpolation query. Extrapolated is a soft
// warning: the query temperature fell outside the sampled range and the
// nearest boundary value was used.
type Modulus struct {
	ModulusMPa   float64 `json:"modulus_mpa"`
	Extrapolated bool    `json:"extrapolated"`
}

// Interpolate returns the interlayer shear modulus for (product,
// temperature, duration). An exact sample is returned as-is. Otherwise the
// modulus is interpolated over temperature among the product's samples of
// that exact duration class, linearly in log-modulus (interlayer polymers
// stiffen roughly log-linearly with falling temperature). Duration classes
// are never interpolated across. Temperatures outside the sampled range
// clamp to the nearest boundary sample and set Extrapolated.
func (t *Table) Interpolate(product string, tempC float64, d Duration) (Modulus, error) {
	if s, err := t.Lookup(product, tempC, d); err == nil {
		return Modulus{ModulusMPa: s.ModulusMPa}, nil
	}
	ss, err := t.samplesAt(product, d)
	if err != nil {
		return Modulus{}, err
	}

	lo := ss[0]
	hi := ss[len(ss)-1]
	if tempC <= lo.TemperatureC {
		return Modulus{ModulusMPa: lo.ModulusMPa, Extrapolated: true}, nil
	}
	if tempC >= hi.TemperatureC {
		return Modulus{ModulusMPa: hi.ModulusMPa, Extrapolated: true}, nil
	}

	// tempC lies strictly inside the sampled range; find the bracketing pair.
	for i := 1; i < len(ss); i++ {
		a, b := ss[i-1], ss[i]
		if tempC >= b.TemperatureC {
			continue
		}
		frac := (tempC - a.TemperatureC) / (b.TemperatureC - a.TemperatureC)
		la := math.Log(math.Max(a.ModulusMPa, minModulusMPa))
		lb := math.Log(math.Max(b.ModulusMPa, minModulusMPa))
		return Modulus{ModulusMPa: math.Exp(la + frac*(lb-la))}, nil
	}
	// Unreachable: the boundary checks above bracket every remaining tempC.
	return Modulus{ModulusMPa: hi.ModulusMPa, Extrapolated: true}, nil
}
