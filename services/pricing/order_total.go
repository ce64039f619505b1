package pricing

import (
	"context"
	"fmt"
	"math"

	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
)

// ItemQuote pairs one requested order item with its computed quote. The cost
// and time become the order item's persisted snapshot.
type ItemQuote struct {
	Input models.OrderItemInput
	Quote models.Quote
}

// OrderTotal is the aggregate result of pricing a whole order.
type OrderTotal struct {
	TotalPrice           float64
	TotalDurationMinutes int
	Items                []ItemQuote
}

// Pricer prices whole orders by resolving each item's service and pricing
// blocks from storage.
type Pricer struct {
	Services   serviceRepo.ServiceRepository
	Calculator Calculator
}

// PriceOrder computes the total price and duration for an order. Any unknown
// service reference aborts the whole computation; there are no partial
// totals. The total price is rounded to 2 decimal places; the total duration
// is rounded to the nearest 30-minute multiple (half-up, so 105 rounds to
// 120) and floored at 30 minutes.
func (p *Pricer) PriceOrder(ctx context.Context, items []models.OrderItemInput) (*OrderTotal, error) {
	total := &OrderTotal{}

	for _, item := range items {
		svc, err := p.Services.GetByID(ctx, item.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", item.ServiceID, err)
		}

		blocks := svc.ActiveBlocks()
		selections := BuildSelections(blocks, item.Parameters)
		quote := p.Calculator.Calculate(blocks, selections)

		total.TotalPrice += quote.TotalPrice
		total.TotalDurationMinutes += quote.EstimatedTimeMinutes
		total.Items = append(total.Items, ItemQuote{Input: item, Quote: quote})
	}

	total.TotalPrice = RoundPrice(total.TotalPrice)
	total.TotalDurationMinutes = RoundDuration(total.TotalDurationMinutes)
	return total, nil
}

// QuoteService prices a single published service from explicit selections,
// as used by the public price-preview endpoint. The quote is deliberately
// left unrounded.
func (p *Pricer) QuoteService(ctx context.Context, serviceID string, selections []models.PricingSelection) (*models.Quote, error) {
	svc, err := p.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, err)
	}
	if !svc.Published {
		return nil, serviceRepo.ErrNotFound
	}

	quote := p.Calculator.Calculate(svc.ActiveBlocks(), selections)
	return &quote, nil
}

// RoundPrice rounds a currency amount to 2 decimal places.
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// RoundDuration rounds minutes to the nearest multiple of DurationStepMinutes,
// half-up, with a floor of one step so persisted durations are always a
// positive multiple of 30.
func RoundDuration(minutes int) int {
	rounded := int(math.Round(float64(minutes)/DurationStepMinutes)) * DurationStepMinutes
	if rounded < DurationStepMinutes {
		return DurationStepMinutes
	}
	return rounded
}
