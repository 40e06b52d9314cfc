package api

import (
	"net/http"
)

type businessRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// ListBusinesses handles GET /businesses.
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.book.ListBusinesses(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"businesses": businesses})
}

// CreateBusiness handles POST /businesses.
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var name, category string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Category != nil {
		category = *req.Category
	}
	b, err := h.book.CreateBusiness(r.Context(), name, category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, b)
}

// UpdateBusiness handles PATCH /businesses/{id}. Absent fields are kept.
func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	b, err := h.book.GetBusiness(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.Name != nil {
		if b, err = h.book.RenameBusiness(r.Context(), id, *req.Name); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	if req.Category != nil {
		if b, err = h.book.SetBusinessCategory(r.Context(), id, *req.Category); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	WriteJSON(w, http.StatusOK, b)
}

// DeleteBusiness handles DELETE /businesses/{id}.
func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.book.DeleteBusiness(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetActiveBusiness handles GET /businesses/active.
func (h *Handler) GetActiveBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.book.ActiveBusiness(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

// SetActiveBusiness handles PUT /businesses/active.
func (h *Handler) SetActiveBusiness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	b, err := h.book.SelectBusiness(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

// BusinessSummary handles GET /businesses/{id}/summary.
func (h *Handler) BusinessSummary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	summary, err := h.book.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
