package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheikh-saqib/udharbook/internal/models"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

// PartyInput holds the editable profile of a party.
type PartyInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

func (in PartyInput) apply(p *models.Party) error {
	name, err := requireName(in.Name)
	if err != nil {
		return err
	}
	role, err := models.ParsePartyRole(in.Role)
	if err != nil {
		return err
	}
	p.Name = name
	p.Phone = strings.TrimSpace(in.Phone)
	p.Role = role
	p.Address = strings.TrimSpace(in.Address)
	return nil
}

// AddParty creates a party with a zero balance.
func (s *Service) AddParty(ctx context.Context, businessID int64, in PartyInput) (models.Party, error) {
	p := models.Party{BusinessID: businessID}
	if err := in.apply(&p); err != nil {
		return models.Party{}, err
	}
	id, err := s.store.InsertParty(ctx, p)
	if err != nil {
		return models.Party{}, fmt.Errorf("failed to add party: %w", err)
	}
	p.ID = id
	return p, nil
}

// UpdateParty replaces a party's profile. The balance is not affected.
func (s *Service) UpdateParty(ctx context.Context, id int64, in PartyInput) (models.Party, error) {
	p, err := s.store.GetParty(ctx, id)
	if err != nil {
		return models.Party{}, err
	}
	if err := in.apply(&p); err != nil {
		return models.Party{}, err
	}
	if err := s.store.UpdateParty(ctx, p); err != nil {
		return models.Party{}, fmt.Errorf("failed to update party: %w", err)
	}
	return p, nil
}

// DeleteParty removes a party together with its entries.
func (s *Service) DeleteParty(ctx context.Context, id int64) error {
	if err := s.store.DeleteParty(ctx, id); err != nil {
		return fmt.Errorf("failed to delete party %d: %w", id, err)
	}
	return nil
}

func (s *Service) GetParty(ctx context.Context, id int64) (models.Party, error) {
	return s.store.GetParty(ctx, id)
}

// ListParties returns a business's parties, newest first.
func (s *Service) ListParties(ctx context.Context, businessID int64) ([]models.Party, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	parties, err := s.store.ListPartiesForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if parties == nil {
		parties = []models.Party{}
	}
	return parties, nil
}

func (s *Service) SearchParties(ctx context.Context, businessID int64, query string) ([]models.Party, error) {
	parties, err := s.ListParties(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return reports.SearchParties(parties, query), nil
}

// ListEntries returns a party's entries, newest first.
func (s *Service) ListEntries(ctx context.Context, partyID int64) ([]models.LedgerEntry, error) {
	if _, err := s.store.GetParty(ctx, partyID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntriesForParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	return entries, nil
}

// Reminder returns the payment reminder text for a party.
func (s *Service) Reminder(ctx context.Context, partyID int64) (string, error) {
	p, err := s.store.GetParty(ctx, partyID)
	if err != nil {
		return "", err
	}
	return reports.ReminderMessage(p, s.currency), nil
}
