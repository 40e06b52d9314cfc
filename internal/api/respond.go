package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sheikh-saqib/udharbook/internal/logger"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeServiceError maps domain errors to status codes. Unknown errors are
// logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case models.IsInvalid(err):
		WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case models.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "not_found", notFoundMessage(err))
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

func notFoundMessage(err error) string {
	for _, sentinel := range []error{
		models.ErrEntryNotFound,
		models.ErrPartyNotFound,
		models.ErrBusinessNotFound,
		models.ErrCashEntryNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "not found"
}

var errBadBody = fmt.Errorf("%w: malformed JSON body", models.ErrInvalidInput)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrInvalidInput, name)
	}
	return id, nil
}
