// Package book holds the bookkeeping operations that never touch a party
// balance: businesses, party profiles, the cashbook and read-only reports.
// Balance changes go through the ledger package.
package book

import (
	"time"

	"github.com/rs/zerolog"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
)

// Service is safe for concurrent use when its store is.
type Service struct {
	store    interfaces.LedgerStore
	log      zerolog.Logger
	currency string
	loc      *time.Location
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithCurrency sets the ISO 4217 code used in reminders and statements.
func WithCurrency(code string) Option {
	return func(s *Service) { s.currency = code }
}

// WithLocation sets the time zone of statement dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store interfaces.LedgerStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      zerolog.Nop(),
		currency: "INR",
		loc:      time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Currency() string { return s.currency }

func (s *Service) Location() *time.Location { return s.loc }
