package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/ledger"
	"github.com/sheikh-saqib/udharbook/internal/models"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

// entryRequest accepts the amount as a JSON number or a numeric string.
// Weight, fat and rate price a new entry with the milk calculator.
type entryRequest struct {
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Note   string      `json:"note"`
	At     time.Time   `json:"at"`

	Weight json.Number `json:"weight"`
	Fat    json.Number `json:"fat"`
	Rate   json.Number `json:"rate"`
}

func (req entryRequest) usesCalculator() bool {
	return req.Weight != "" || req.Fat != "" || req.Rate != ""
}

func (req entryRequest) parse() (models.EntryType, int64, error) {
	typ, err := models.ParseEntryType(req.Type)
	if err != nil {
		return "", 0, err
	}
	amount, err := book.ParseAmount(req.Amount.String())
	if err != nil {
		return "", 0, err
	}
	return typ, amount, nil
}

// parseNew resolves a new entry's type, amount and note. A calculated
// amount and note give way to an explicit amount or note in the request.
func (h *Handler) parseNew(r *http.Request, partyID int64, req entryRequest) (models.EntryType, int64, string, error) {
	if !req.usesCalculator() {
		typ, amount, err := req.parse()
		return typ, amount, req.Note, err
	}

	typ, err := models.ParseEntryType(req.Type)
	if err != nil {
		return "", 0, "", err
	}
	quote, err := h.book.DairyQuote(r.Context(), partyID, req.Weight.String(), req.Fat.String(), req.Rate.String())
	if err != nil {
		return "", 0, "", err
	}
	amount, note := quote.Amount, quote.Note
	if req.Amount != "" {
		if amount, err = book.ParseAmount(req.Amount.String()); err != nil {
			return "", 0, "", err
		}
	}
	if req.Note != "" {
		note = req.Note
	}
	return typ, amount, note, nil
}

// ListEntries handles GET /parties/{id}/entries. With group=day the entries
// come back in day sections. running_balance is folded from the listed
// entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	partyID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entries, err := h.book.ListEntries(r.Context(), partyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entries = reports.WithRunningBalances(entries)

	if r.URL.Query().Get("group") == "day" {
		WriteJSON(w, http.StatusOK, map[string]any{
			"days": reports.GroupEntriesByDay(entries, h.book.Location()),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// AddEntry handles POST /parties/{id}/entries.
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	partyID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	typ, amount, note, err := h.parseNew(r, partyID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entry, err := h.ledger.AddEntry(r.Context(), partyID, typ, amount, note, req.At)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

// EditEntry handles PUT /parties/{id}/entries/{entryID}.
func (h *Handler) EditEntry(w http.ResponseWriter, r *http.Request) {
	partyID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entryID, err := idParam(r, "entryID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.usesCalculator() {
		writeServiceError(w, r, fmt.Errorf("%w: the milk calculator only prices new entries", models.ErrInvalidInput))
		return
	}
	typ, amount, err := req.parse()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entry, err := h.ledger.EditEntry(r.Context(), partyID, entryID, ledger.EntryChange{
		Type:   typ,
		Amount: amount,
		Note:   req.Note,
		At:     req.At,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /parties/{id}/entries/{entryID} and returns
// the party with its updated balance.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	partyID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entryID, err := idParam(r, "entryID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	party, err := h.ledger.DeleteEntry(r.Context(), partyID, entryID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, party)
}
