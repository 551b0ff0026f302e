package modulus

import (
	"fmt"

	"Glasschek/internal/interlayer"
)

type Input struct {
	Product      string              `json:"product"`
	TemperatureC float64             `json:"temperature_c"`
	Duration     interlayer.Duration `json:"duration"`
}

type Result struct {
	Product      string              `json:"product"`
	TemperatureC float64             `json:"temperature_c"`
	Duration     interlayer.Duration `json:"duration"`
	ModulusMPa   float64             `json:"modulus_mpa"`
	Extrapolated bool                `json:"extrapolated"`
	Notes        string              `json:"notes"`
}

// Query resolves one interlayer shear modulus point, interpolating over
// temperature where the dataset has no exact sample.
func Query(table *interlayer.Table, in Input) (Result, error) {
	if in.Product == "" {
		return Result{}, fmt.Errorf("interlayer product required")
	}
	mod, err := table.Interpolate(in.Product, in.TemperatureC, in.Duration)
	if err != nil {
		return Result{}, err
	}
	notes := ""
	if mod.Extrapolated {
		notes = "Temperature outside sampled range; nearest boundary value used."
	}
	return Result{
		Product:      in.Product,
		TemperatureC: in.TemperatureC,
		Duration:     in.Duration,
		ModulusMPa:   mod.ModulusMPa,
		Extrapolated: mod.Extrapolated,
		Notes:        notes,
	}, nil
}
