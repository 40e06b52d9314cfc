// Package api serves the ledger over HTTP with JSON bodies.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/ledger"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	book   *book.Service
	ledger *ledger.Ledger
	log    zerolog.Logger
}

func NewHandler(b *book.Service, l *ledger.Ledger, log zerolog.Logger) *Handler {
	return &Handler{book: b, ledger: l, log: log}
}

// Router builds the chi router with middleware and every route.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.log))
	r.Use(Recovery(h.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/businesses", func(r chi.Router) {
		r.Get("/", h.ListBusinesses)
		r.Post("/", h.CreateBusiness)
		r.Get("/active", h.GetActiveBusiness)
		r.Put("/active", h.SetActiveBusiness)

		r.Route("/{id}", func(r chi.Router) {
			r.Patch("/", h.UpdateBusiness)
			r.Delete("/", h.DeleteBusiness)
			r.Get("/summary", h.BusinessSummary)
			r.Get("/parties", h.ListParties)
			r.Post("/parties", h.CreateParty)
			r.Get("/cash", h.ListCash)
			r.Post("/cash", h.AddCash)
		})
	})

	r.Route("/parties/{id}", func(r chi.Router) {
		r.Get("/", h.GetParty)
		r.Patch("/", h.UpdateParty)
		r.Delete("/", h.DeleteParty)
		r.Get("/statement", h.PartyStatement)
		r.Get("/reminder", h.PartyReminder)
		r.Get("/verify", h.VerifyParty)

		r.Get("/entries", h.ListEntries)
		r.Post("/entries", h.AddEntry)
		r.Put("/entries/{entryID}", h.EditEntry)
		r.Delete("/entries/{entryID}", h.DeleteEntry)
	})

	r.Delete("/cash/{id}", h.DeleteCash)
	r.Get("/calculator/dairy", h.DairyCalculator)

	return r
}
