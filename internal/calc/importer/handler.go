package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"Glasschek/internal/calc/design"
	"Glasschek/internal/interlayer"

	"github.com/xuri/excelize/v2"
)

// Handler imports load cases from a spreadsheet. The multipart form carries
// the xlsx under "file" and a design.Request skeleton (everything but the
// cases) as JSON under "request"; each data row becomes one load case.
type Handler struct {
	Table *interlayer.Table
}

func (h *Handler) LoadCases(w http.ResponseWriter, r *http.Request) {
	var req design.Request
	if err := json.Unmarshal([]byte(r.FormValue("request")), &req); err != nil {
		http.Error(w, "Request skeleton required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	req.Cases = req.Cases[:0]
	for i := 1; i < len(rows); i++ {
		lc, err := parseCaseRow(rows[i])
		if err != nil {
			continue
		}
		req.Cases = append(req.Cases, lc)
	}
	if len(req.Cases) == 0 {
		http.Error(w, "No valid load cases in sheet", http.StatusBadRequest)
		return
	}

	report, err := design.Evaluate(h.Table, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// expected columns: name, duration, temperature_c, stress_mpa, load_kpa
func parseCaseRow(row []string) (design.LoadCase, error) {
	if len(row) < 4 {
		return design.LoadCase{}, fmt.Errorf("bad row")
	}
	temp, err := toFloat(row[2])
	if err != nil {
		return design.LoadCase{}, err
	}
	lc := design.LoadCase{
		Name:         strings.TrimSpace(row[0]),
		Duration:     interlayer.Duration(strings.TrimSpace(row[1])),
		TemperatureC: temp,
	}
	if row[3] != "" {
		lc.AppliedStressMPa, _ = toFloat(row[3])
	}
	if len(row) > 4 && row[4] != "" {
		lc.AppliedLoadKPa, _ = toFloat(row[4])
	}
	return lc, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
