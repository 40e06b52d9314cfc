package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// PrefActiveBusiness stores the ID of the business the user last selected.
const PrefActiveBusiness = "last_business_id"

// EnsureDefaultBusiness creates the default dairy business when there is
// no business at all, and otherwise returns the first one.
func (s *Service) EnsureDefaultBusiness(ctx context.Context) (models.Business, error) {
	businesses, err := s.store.ListBusinesses(ctx)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to list businesses: %w", err)
	}
	if len(businesses) > 0 {
		return businesses[0], nil
	}

	s.log.Info().Str("name", models.DefaultBusinessName).Msg("creating default business")
	return s.insertBusiness(ctx, models.DefaultBusinessName, models.DefaultBusinessCategory)
}

func (s *Service) CreateBusiness(ctx context.Context, name, category string) (models.Business, error) {
	name, err := requireName(name)
	if err != nil {
		return models.Business{}, err
	}
	cat, err := models.ParseBusinessCategory(category)
	if err != nil {
		return models.Business{}, err
	}
	return s.insertBusiness(ctx, name, cat)
}

func (s *Service) insertBusiness(ctx context.Context, name string, cat models.BusinessCategory) (models.Business, error) {
	b := models.Business{Name: name, Category: cat}
	id, err := s.store.InsertBusiness(ctx, b)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to create business: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) RenameBusiness(ctx context.Context, id int64, name string) (models.Business, error) {
	name, err := requireName(name)
	if err != nil {
		return models.Business{}, err
	}
	return s.updateBusiness(ctx, id, func(b *models.Business) { b.Name = name })
}

func (s *Service) SetBusinessCategory(ctx context.Context, id int64, category string) (models.Business, error) {
	cat, err := models.ParseBusinessCategory(category)
	if err != nil {
		return models.Business{}, err
	}
	return s.updateBusiness(ctx, id, func(b *models.Business) { b.Category = cat })
}

func (s *Service) updateBusiness(ctx context.Context, id int64, change func(*models.Business)) (models.Business, error) {
	b, err := s.store.GetBusiness(ctx, id)
	if err != nil {
		return models.Business{}, err
	}
	change(&b)
	if err := s.store.UpdateBusiness(ctx, b); err != nil {
		return models.Business{}, fmt.Errorf("failed to update business: %w", err)
	}
	return b, nil
}

// DeleteBusiness removes a business with its parties, their entries and
// its cashbook.
func (s *Service) DeleteBusiness(ctx context.Context, id int64) error {
	if err := s.store.DeleteBusiness(ctx, id); err != nil {
		return fmt.Errorf("failed to delete business %d: %w", id, err)
	}
	s.log.Info().Int64("business_id", id).Msg("business deleted")
	return nil
}

func (s *Service) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	return s.store.ListBusinesses(ctx)
}

func (s *Service) GetBusiness(ctx context.Context, id int64) (models.Business, error) {
	return s.store.GetBusiness(ctx, id)
}

// ActiveBusiness returns the business the user last selected. When nothing
// was selected, or the selection no longer exists, the first business is
// selected instead, creating the default one if needed.
func (s *Service) ActiveBusiness(ctx context.Context) (models.Business, error) {
	value, found, err := s.store.GetPreference(ctx, PrefActiveBusiness)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to read active business: %w", err)
	}
	if found {
		if id, perr := strconv.ParseInt(value, 10, 64); perr == nil {
			b, err := s.store.GetBusiness(ctx, id)
			if err == nil {
				return b, nil
			}
			if !errors.Is(err, models.ErrBusinessNotFound) {
				return models.Business{}, err
			}
		}
		s.log.Debug().Str("value", value).Msg("stale active business, falling back")
	}

	b, err := s.EnsureDefaultBusiness(ctx)
	if err != nil {
		return models.Business{}, err
	}
	if err := s.setActive(ctx, b.ID); err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// SelectBusiness makes id the active business.
func (s *Service) SelectBusiness(ctx context.Context, id int64) (models.Business, error) {
	b, err := s.store.GetBusiness(ctx, id)
	if err != nil {
		return models.Business{}, err
	}
	if err := s.setActive(ctx, id); err != nil {
		return models.Business{}, err
	}
	return b, nil
}

func (s *Service) setActive(ctx context.Context, id int64) error {
	if err := s.store.SetPreference(ctx, PrefActiveBusiness, strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to save active business: %w", err)
	}
	return nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	return name, nil
}
