package interlayer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultModulusMPa substitutes non-numeric workbook cells (dashes, "glassy"
// notes and the like). 0.05 MPa is the conservative floor the dataset's
// authors use for fully relaxed interlayers.
const DefaultModulusMPa = 0.05

// LoadWorkbook reads the interlayer E(t) database from an xlsx file. One
// sheet per product: the first column holds temperatures in Celsius, the
// remaining column headers are load duration labels.
func LoadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open interlayer workbook: %w", err)
	}
	defer f.Close()
	return tableFromWorkbook(f)
}

// ReadWorkbook is LoadWorkbook over an already-open stream (uploads, tests).
func ReadWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read interlayer workbook: %w", err)
	}
	defer f.Close()
	return tableFromWorkbook(f)
}

func tableFromWorkbook(f *excelize.File) (*Table, error) {
	var samples []Sample
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 || len(rows[0]) < 2 {
			continue
		}
		header := rows[0]
		if !strings.Contains(header[0], "Temperature") {
			continue
		}
		durations := make([]Duration, len(header))
		for c := 1; c < len(header); c++ {
			d := Duration(strings.TrimSpace(header[c]))
			if d.Known() {
				durations[c] = d
			}
		}
		for _, row := range rows[1:] {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			temp, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
			if err != nil {
				continue
			}
			for c := 1; c < len(row) && c < len(durations); c++ {
				if durations[c] == "" {
					continue
				}
				samples = append(samples, Sample{
					Product:      sheet,
					TemperatureC: temp,
					Duration:     durations[c],
					ModulusMPa:   cellModulus(row[c]),
				})
			}
		}
	}
	return NewTable(samples)
}

func cellModulus(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v < 0 {
		return DefaultModulusMPa
	}
	return v
}
