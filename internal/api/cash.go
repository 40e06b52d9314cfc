package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

type cashRequest struct {
	Type     string      `json:"type"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Note     string      `json:"note"`
	At       time.Time   `json:"at"`
}

// ListCash handles GET /businesses/{id}/cash.
func (h *Handler) ListCash(w http.ResponseWriter, r *http.Request) {
	businessID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entries, err := h.book.ListCashEntries(r.Context(), businessID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"totals":  reports.CashTotals(entries),
	})
}

// AddCash handles POST /businesses/{id}/cash.
func (h *Handler) AddCash(w http.ResponseWriter, r *http.Request) {
	businessID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req cashRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	amount, err := book.ParseAmount(req.Amount.String())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entry, err := h.book.AddCashEntry(r.Context(), businessID, book.CashInput{
		Amount:   amount,
		Type:     req.Type,
		Category: req.Category,
		Note:     req.Note,
		At:       req.At,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

// DeleteCash handles DELETE /cash/{id}.
func (h *Handler) DeleteCash(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.book.DeleteCashEntry(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
