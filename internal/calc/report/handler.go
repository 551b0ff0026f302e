package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Glasschek/internal/calc/design"
	"Glasschek/internal/interlayer"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Notes   string         `json:"notes"`
	Request design.Request `json:"request"`
}

type Handler struct {
	Table *interlayer.Table
}

// Generate evaluates the embedded request and streams the design report as
// a PDF. Evaluation errors block the download: a report with a failed case
// must never leave the server.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Glass Design Strength Report"
	}

	rep, err := design.Evaluate(h.Table, input.Request)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Standard: %s   Glass: %s   Interlayer: %s",
		input.Request.Standard, input.Request.Glass, orDash(input.Request.Interlayer)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{36, 22, 18, 22, 22, 22, 24, 22}
	headers := []string{"Case", "Duration", "T (C)", "G (MPa)", "h_ef (mm)", "k_mod", "f_g;d (MPa)", "Util."}
	for i, head := range headers {
		pdf.CellFormat(widths[i], 7, head, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, res := range rep.Results {
		name := res.Name
		if i == rep.Governing {
			pdf.SetFont("Helvetica", "B", 10)
			name = name + " *"
		}
		cells := []string{
			name,
			string(res.Duration),
			fmt.Sprintf("%.0f", res.TemperatureC),
			fmt.Sprintf("%.2f", res.ShearModulusMPa),
			fmt.Sprintf("%.1f", res.EffectiveThicknessMM),
			fmt.Sprintf("%.2f", res.KMod),
			fmt.Sprintf("%.2f", res.DesignMPa),
			fmt.Sprintf("%.2f", res.Utilization),
		}
		for c, cell := range cells {
			pdf.CellFormat(widths[c], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.Ln(4)
	pdf.Cell(0, 6, "* governing load case")
	pdf.Ln(6)

	for _, res := range rep.Results {
		if res.Extrapolated {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 6, fmt.Sprintf(
				"Warning: case %q queried the interlayer outside its sampled temperature range; the nearest boundary modulus was used.",
				res.Name), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
		}
	}
	if input.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"glass-design-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
