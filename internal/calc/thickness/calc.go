package thickness

import (
	"errors"
	"fmt"
	"math"
)

// EGlassMPa is the Young's modulus of soda-lime glass.
const EGlassMPa = 70000.0

var ErrInvalidStack = errors.New("invalid laminate stack")

type Role string

const (
	RolePly        Role = "ply"
	RoleInterlayer Role = "interlayer"
)

type Layer struct {
	ThicknessMM float64 `json:"thickness_mm"`
	Role        Role    `json:"role"`
}

type Input struct {
	Layers          []Layer `json:"layers"`
	SpanMM          float64 `json:"span_mm"`
	ShearModulusMPa float64 `json:"shear_modulus_mpa"`
}

type Result struct {
	BendingMM         float64 `json:"h_ef_sigma_mm"`
	DeflectionMM      float64 `json:"h_ef_w_mm"`
	ShearTransfer     float64 `json:"shear_transfer"`
	LayeredLimitMM    float64 `json:"layered_limit_mm"`
	MonolithicLimitMM float64 `json:"monolithic_limit_mm"`
	Notes             string  `json:"notes"`
}

// Calculate resolves the effective thicknesses of a glass build-up. A single
// ply passes through at its nominal thickness. Laminates use the
// Wolfel-Bennison shear transfer coefficient (the EN 16612 Annex D form):
// zero interlayer stiffness degrades to the layered limit, infinite
// stiffness approaches the monolithic limit, and the deflection and bending
// variants both grow monotonically in between.
func Calculate(in Input) (Result, error) {
	plies, interTotal, err := splitStack(in.Layers)
	if err != nil {
		return Result{}, err
	}

	if len(plies) == 1 {
		h := plies[0].thickness
		return Result{
			BendingMM:         h,
			DeflectionMM:      h,
			ShearTransfer:     1,
			LayeredLimitMM:    h,
			MonolithicLimitMM: h,
			Notes:             "Monolithic pane: effective thickness equals nominal thickness.",
		}, nil
	}
	if in.SpanMM <= 0 {
		return Result{}, fmt.Errorf("%w: span required for laminated build-up", ErrInvalidStack)
	}

	// Second moment of the ply areas about the common centroid, per unit
	// width, with the cubic self-terms kept separate.
	var sumH, sumH3, moment float64
	for _, p := range plies {
		sumH += p.thickness
		sumH3 += p.thickness * p.thickness * p.thickness
		moment += p.thickness * p.center
	}
	centroid := moment / sumH
	var is float64
	for i := range plies {
		plies[i].offset = math.Abs(plies[i].center - centroid)
		is += plies[i].thickness * plies[i].offset * plies[i].offset
	}
	// Lever arm between the outermost ply centroids.
	hs := plies[len(plies)-1].center - plies[0].center

	gamma := shearTransfer(in.ShearModulusMPa, is, interTotal, hs, in.SpanMM)

	hefW := math.Cbrt(sumH3 + 12*gamma*is)
	// Bending variant: the governing (smallest) value over the plies.
	hefSigma := math.Inf(1)
	for _, p := range plies {
		v := math.Sqrt(hefW * hefW * hefW / (p.thickness + 2*gamma*p.offset))
		if v < hefSigma {
			hefSigma = v
		}
	}

	return Result{
		BendingMM:         hefSigma,
		DeflectionMM:      hefW,
		ShearTransfer:     gamma,
		LayeredLimitMM:    math.Cbrt(sumH3),
		MonolithicLimitMM: math.Cbrt(sumH3 + 12*is),
		Notes:             fmt.Sprintf("Laminated build-up of %d plies, shear transfer %.3f.", len(plies), gamma),
	}, nil
}

type ply struct {
	thickness float64
	center    float64
	offset    float64
}

// splitStack validates the layer sequence and returns the plies with their
// mid-plane positions plus the total interlayer thickness. A valid stack
// starts and ends with a ply and alternates plies and interlayers.
func splitStack(layers []Layer) ([]ply, float64, error) {
	if len(layers) == 0 {
		return nil, 0, fmt.Errorf("%w: no layers", ErrInvalidStack)
	}
	var plies []ply
	var interTotal, z float64
	for i, l := range layers {
		if l.ThicknessMM <= 0 {
			return nil, 0, fmt.Errorf("%w: layer %d has non-positive thickness", ErrInvalidStack, i+1)
		}
		switch l.Role {
		case RolePly:
			if i > 0 && layers[i-1].Role == RolePly {
				return nil, 0, fmt.Errorf("%w: adjacent plies without interlayer", ErrInvalidStack)
			}
			plies = append(plies, ply{thickness: l.ThicknessMM, center: z + l.ThicknessMM/2})
		case RoleInterlayer:
			if i == 0 || i == len(layers)-1 {
				return nil, 0, fmt.Errorf("%w: interlayer at stack boundary", ErrInvalidStack)
			}
			if layers[i-1].Role == RoleInterlayer {
				return nil, 0, fmt.Errorf("%w: adjacent interlayers", ErrInvalidStack)
			}
			interTotal += l.ThicknessMM
		default:
			return nil, 0, fmt.Errorf("%w: unknown layer role %q", ErrInvalidStack, l.Role)
		}
		z += l.ThicknessMM
	}
	if len(plies) == 0 {
		return nil, 0, fmt.Errorf("%w: no structural plies", ErrInvalidStack)
	}
	return plies, interTotal, nil
}

// shearTransfer is the non-dimensional coupling coefficient in [0, 1].
func shearTransfer(gMPa, is, interTotal, hs, spanMM float64) float64 {
	if gMPa <= 0 {
		return 0
	}
	if math.IsInf(gMPa, 1) {
		return 1
	}
	return 1 / (1 + 9.6*EGlassMPa*is*interTotal/(gMPa*hs*hs*spanMM*spanMM))
}
