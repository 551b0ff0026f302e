package compare

import (
	"encoding/json"
	"net/http"

	"Glasschek/internal/interlayer"
)

type Handler struct {
	Table *interlayer.Table
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Build(h.Table, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
