package design

import (
	"encoding/json"
	"log"
	"net/http"

	"Glasschek/internal/interlayer"
	"Glasschek/internal/repo"
)

type Handler struct {
	Table *interlayer.Table
	Repo  repo.Repository
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	report, err := Evaluate(h.Table, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.save(r, req, report)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// save records the calculation against the logged-in user. Best effort:
// history must never fail a successful calculation.
func (h *Handler) save(r *http.Request, req Request, report Report) {
	if h.Repo == nil {
		return
	}
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		return
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return
	}
	repJSON, err := json.Marshal(report)
	if err != nil {
		return
	}
	if _, err := h.Repo.SaveCalculation(r.Context(), userID, string(req.Standard), reqJSON, repJSON); err != nil {
		log.Printf("SaveCalculation error: %v", err)
	}
}
