package book

import (
	"context"
	"fmt"

	"github.com/sheikh-saqib/udharbook/internal/calculator"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// DairyQuote prices a milk entry for a party from weight, fat and rate.
// Only parties of a business that offers the dairy calculator may use it.
func (s *Service) DairyQuote(ctx context.Context, partyID int64, weight, fat, rate string) (calculator.DairyResult, error) {
	p, err := s.store.GetParty(ctx, partyID)
	if err != nil {
		return calculator.DairyResult{}, err
	}
	b, err := s.store.GetBusiness(ctx, p.BusinessID)
	if err != nil {
		return calculator.DairyResult{}, err
	}
	if !b.OffersDairyCalculator() {
		return calculator.DairyResult{}, fmt.Errorf("%w: business %q is %s, the milk calculator is for %s businesses",
			models.ErrInvalidInput, b.Name, b.Category, models.CategoryDairy)
	}

	result, ok := calculator.ComputeDairyAmount(weight, fat, rate)
	if !ok {
		return calculator.DairyResult{}, fmt.Errorf("%w: weight, fat and rate must all be positive numbers", models.ErrInvalidInput)
	}
	if !models.ValidAmount(result.Amount) {
		return calculator.DairyResult{}, fmt.Errorf("%w: milk calculator gave %d", models.ErrInvalidAmount, result.Amount)
	}
	return result, nil
}
