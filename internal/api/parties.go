package api

import (
	"bytes"
	"net/http"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

type partyRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Role    *string `json:"role"`
	Address *string `json:"address"`
}

func (req partyRequest) overlay(in *book.PartyInput) {
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Phone != nil {
		in.Phone = *req.Phone
	}
	if req.Role != nil {
		in.Role = *req.Role
	}
	if req.Address != nil {
		in.Address = *req.Address
	}
}

// ListParties handles GET /businesses/{id}/parties. The optional q
// parameter filters by name or phone.
func (h *Handler) ListParties(w http.ResponseWriter, r *http.Request) {
	businessID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	parties, err := h.book.SearchParties(r.Context(), businessID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"parties":    parties,
		"receivable": reports.TotalReceivable(parties),
		"payable":    reports.TotalPayable(parties),
	})
}

// CreateParty handles POST /businesses/{id}/parties.
func (h *Handler) CreateParty(w http.ResponseWriter, r *http.Request) {
	businessID, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var in book.PartyInput
	req.overlay(&in)
	p, err := h.book.AddParty(r.Context(), businessID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// GetParty handles GET /parties/{id}.
func (h *Handler) GetParty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.book.GetParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"party": p,
		"label": reports.BalanceLabel(p.Balance),
	})
}

// UpdateParty handles PATCH /parties/{id}. Absent fields are kept and the
// balance cannot be changed here.
func (h *Handler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	current, err := h.book.GetParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	in := book.PartyInput{
		Name:    current.Name,
		Phone:   current.Phone,
		Role:    string(current.Role),
		Address: current.Address,
	}
	req.overlay(&in)

	p, err := h.book.UpdateParty(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// DeleteParty handles DELETE /parties/{id}.
func (h *Handler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.book.DeleteParty(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PartyStatement handles GET /parties/{id}/statement.
func (h *Handler) PartyStatement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.book.Statement(r.Context(), &buf, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// PartyReminder handles GET /parties/{id}/reminder.
func (h *Handler) PartyReminder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.book.GetParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	msg, err := h.book.Reminder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"phone":   p.Phone,
		"message": msg,
	})
}

// VerifyParty handles GET /parties/{id}/verify.
func (h *Handler) VerifyParty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	audit, err := h.ledger.Verify(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"audit":      audit,
		"consistent": audit.Consistent(),
	})
}
