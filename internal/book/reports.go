package book

import (
	"context"
	"io"

	"github.com/sheikh-saqib/udharbook/internal/reports"
)

// Summary computes the home screen totals, due list and cash totals of a
// business from its current parties and cashbook.
func (s *Service) Summary(ctx context.Context, businessID int64) (reports.Summary, error) {
	parties, err := s.ListParties(ctx, businessID)
	if err != nil {
		return reports.Summary{}, err
	}
	cash, err := s.ListCashEntries(ctx, businessID)
	if err != nil {
		return reports.Summary{}, err
	}
	return reports.Summarize(parties, cash), nil
}

// Statement writes a Markdown statement of a party's account to w.
func (s *Service) Statement(ctx context.Context, w io.Writer, partyID int64) error {
	p, err := s.store.GetParty(ctx, partyID)
	if err != nil {
		return err
	}
	entries, err := s.ListEntries(ctx, partyID)
	if err != nil {
		return err
	}
	return reports.WriteStatement(w, p, entries, s.currency, s.loc)
}
