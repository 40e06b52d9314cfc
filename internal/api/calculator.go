package api

import (
	"net/http"

	"github.com/sheikh-saqib/udharbook/internal/calculator"
)

// DairyCalculator handles GET /calculator/dairy?weight=&fat=&rate=.
func (h *Handler) DairyCalculator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, ok := calculator.ComputeDairyAmount(q.Get("weight"), q.Get("fat"), q.Get("rate"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_input", "weight, fat and rate must all be positive numbers")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
