package compare

import (
	"fmt"

	"Glasschek/internal/interlayer"
)

// Input selects the interlayers and durations to compare at one
// temperature. The result is chart-ready: one point per (product,
// duration), with the duration also given in seconds for a log-time axis.
type Input struct {
	Products     []string              `json:"products"`
	TemperatureC float64               `json:"temperature_c"`
	Durations    []interlayer.Duration `json:"durations"`
}

type Point struct {
	Product      string              `json:"product"`
	Duration     interlayer.Duration `json:"duration"`
	Seconds      float64             `json:"seconds"`
	ModulusMPa   float64             `json:"modulus_mpa"`
	Extrapolated bool                `json:"extrapolated"`
}

type Result struct {
	TemperatureC float64 `json:"temperature_c"`
	Points       []Point `json:"points"`
}

func Build(table *interlayer.Table, in Input) (Result, error) {
	if len(in.Products) == 0 {
		return Result{}, fmt.Errorf("no interlayers selected")
	}
	if len(in.Durations) == 0 {
		return Result{}, fmt.Errorf("no durations selected")
	}
	out := Result{TemperatureC: in.TemperatureC}
	for _, product := range in.Products {
		for _, d := range in.Durations {
			mod, err := table.Interpolate(product, in.TemperatureC, d)
			if err != nil {
				return Result{}, err
			}
			secs, _ := d.Seconds()
			out.Points = append(out.Points, Point{
				Product:      product,
				Duration:     d,
				Seconds:      secs,
				ModulusMPa:   mod.ModulusMPa,
				Extrapolated: mod.Extrapolated,
			})
		}
	}
	return out, nil
}
