package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// CashInput describes a new cashbook entry. A zero At means now.
type CashInput struct {
	Amount   int64     `json:"amount"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
	At       time.Time `json:"at"`
}

func (s *Service) AddCashEntry(ctx context.Context, businessID int64, in CashInput) (models.CashEntry, error) {
	if !models.ValidAmount(in.Amount) {
		return models.CashEntry{}, models.ErrInvalidAmount
	}
	typ, err := models.ParseCashType(in.Type)
	if err != nil {
		return models.CashEntry{}, err
	}

	e := models.CashEntry{
		BusinessID: businessID,
		Amount:     in.Amount,
		Type:       typ,
		Category:   strings.TrimSpace(in.Category),
		Note:       in.Note,
		CreatedAt:  in.At,
	}
	if e.Category == "" {
		e.Category = models.DefaultCashCategory
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	id, err := s.store.InsertCashEntry(ctx, e)
	if err != nil {
		return models.CashEntry{}, fmt.Errorf("failed to add cash entry: %w", err)
	}
	e.ID = id
	return e, nil
}

func (s *Service) DeleteCashEntry(ctx context.Context, id int64) error {
	if err := s.store.DeleteCashEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cash entry %d: %w", id, err)
	}
	return nil
}

// ListCashEntries returns a business's cashbook, newest first.
func (s *Service) ListCashEntries(ctx context.Context, businessID int64) ([]models.CashEntry, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListCashEntriesForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash entries: %w", err)
	}
	if entries == nil {
		entries = []models.CashEntry{}
	}
	return entries, nil
}
