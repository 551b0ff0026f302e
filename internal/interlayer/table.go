package interlayer

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownProduct      = errors.New("unknown interlayer product")
	ErrUnsupportedDuration = errors.New("no data for load duration")
	ErrNotFound            = errors.New("no sample at temperature")
)

// Sample is one measured point of the interlayer relaxation modulus surface.
type Sample struct {
	Product      string   `json:"product"`
	TemperatureC float64  `json:"temperature_c"`
	Duration     Duration `json:"duration"`
	ModulusMPa   float64  `json:"modulus_mpa"`
}

// Table holds the interlayer shear modulus dataset. It is built once at
// startup and never mutated afterwards, so concurrent readers need no
// locking.
type Table struct {
	products map[string][]Sample
}

// NewTable builds a table from raw samples. Sampling may be sparse: the
// (temperature, duration) points of a product need not form a full grid,
// but no two samples of one product may share the same point.
func NewTable(samples []Sample) (*Table, error) {
	products := make(map[string][]Sample)
	seen := make(map[string]bool)
	for _, s := range samples {
		if s.Product == "" {
			return nil, fmt.Errorf("sample without product name")
		}
		if !s.Duration.Known() {
			return nil, fmt.Errorf("product %q: unknown duration %q", s.Product, s.Duration)
		}
		if s.ModulusMPa < 0 {
			return nil, fmt.Errorf("product %q: negative modulus at %g C, %s", s.Product, s.TemperatureC, s.Duration)
		}
		key := fmt.Sprintf("%s|%g|%s", s.Product, s.TemperatureC, s.Duration)
		if seen[key] {
			return nil, fmt.Errorf("product %q: duplicate sample at %g C, %s", s.Product, s.TemperatureC, s.Duration)
		}
		seen[key] = true
		products[s.Product] = append(products[s.Product], s)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("empty interlayer dataset")
	}
	for _, ss := range products {
		sort.Slice(ss, func(i, j int) bool {
			if ss[i].Duration != ss[j].Duration {
				return ss[i].Duration < ss[j].Duration
			}
			return ss[i].TemperatureC < ss[j].TemperatureC
		})
	}
	return &Table{products: products}, nil
}

// Products lists the product names in the table, sorted.
func (t *Table) Products() []string {
	names := make([]string, 0, len(t.products))
	for name := range t.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the sample matching (product, temperature, duration)
// exactly. It never interpolates.
func (t *Table) Lookup(product string, tempC float64, d Duration) (Sample, error) {
	ss, ok := t.products[product]
	if !ok {
		return Sample{}, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}
	for _, s := range ss {
		if s.Duration == d && s.TemperatureC == tempC {
			return s, nil
		}
	}
	return Sample{}, fmt.Errorf("%w: %q at %g C, %s", ErrNotFound, product, tempC, d)
}

// samplesAt returns the product's samples for one duration class, sorted by
// temperature.
func (t *Table) samplesAt(product string, d Duration) ([]Sample, error) {
	ss, ok := t.products[product]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}
	var out []Sample
	for _, s := range ss {
		if s.Duration == d {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q has no samples for %s", ErrUnsupportedDuration, product, d)
	}
	return out, nil
}
