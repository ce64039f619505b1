package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
)

type stubServiceRepo struct {
	services map[string]*models.Service
}

func (r *stubServiceRepo) Create(_ context.Context, svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *stubServiceRepo) Update(_ context.Context, svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *stubServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	if svc, ok := r.services[id]; ok {
		return svc, nil
	}
	return nil, serviceRepo.ErrNotFound
}

func (r *stubServiceRepo) GetAll(_ context.Context, publishedOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if publishedOnly && !svc.Published {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func windowService(published bool) *models.Service {
	return &models.Service{
		ID:        "svc-windows",
		Name:      "Window Cleaning",
		Published: published,
		PricingBlocks: []models.PricingBlock{
			{
				ID: "blk-windows", Name: "Windows", Kind: models.BlockKindQuantity,
				Key: models.KeyWindow, OrderIndex: 1, Active: true,
				Quantity: &models.QuantityOption{Name: "Windows", UnitPrice: 25, MaxQuantity: 50, UnitName: "window"},
			},
			{
				ID: "blk-drying", Name: "Accelerated drying", Kind: models.BlockKindToggle,
				Key: models.KeyAcceleratedDrying, OrderIndex: 2, Active: true,
				Toggle: &models.ToggleOption{Name: "Accelerated drying", PercentageIncrease: 10},
			},
		},
	}
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 10.56, RoundPrice(10.555))
	assert.Equal(t, 10.55, RoundPrice(10.554))
	assert.Equal(t, 0.0, RoundPrice(0))
	assert.Equal(t, 125.0, RoundPrice(125))
}

func TestRoundDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 30},
		{1, 30},
		{30, 30},
		{44, 30},
		{45, 60},
		{105, 120}, // half-points round up
		{120, 120},
		{135, 150},
		{165, 180},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundDuration(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestPriceOrder(t *testing.T) {
	pricer := &Pricer{Services: &stubServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowService(true),
	}}}

	total, err := pricer.PriceOrder(context.Background(), []models.OrderItemInput{{
		ServiceID: "svc-windows",
		Parameters: models.ServiceParameters{
			WindowCount:       5,
			AcceleratedDrying: true,
		},
	}})
	require.NoError(t, err)

	// 5 × $25; the enabled toggle records its percentage but adds nothing.
	assert.Equal(t, 125.0, total.TotalPrice)
	assert.Equal(t, 90, total.TotalDurationMinutes)
	require.Len(t, total.Items, 1)
	assert.Equal(t, 125.0, total.Items[0].Quote.TotalPrice)
}

func TestPriceOrderMultipleItems(t *testing.T) {
	pricer := &Pricer{Services: &stubServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowService(true),
	}}}

	total, err := pricer.PriceOrder(context.Background(), []models.OrderItemInput{
		{ServiceID: "svc-windows", Parameters: models.ServiceParameters{WindowCount: 3}},
		{ServiceID: "svc-windows", Parameters: models.ServiceParameters{WindowCount: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, 175.0, total.TotalPrice)
	// 45 + 60 minutes, rounded half-up onto the 30-minute grid.
	assert.Equal(t, 120, total.TotalDurationMinutes)
}

func TestPriceOrderUnknownServiceAborts(t *testing.T) {
	pricer := &Pricer{Services: &stubServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowService(true),
	}}}

	total, err := pricer.PriceOrder(context.Background(), []models.OrderItemInput{
		{ServiceID: "svc-windows", Parameters: models.ServiceParameters{WindowCount: 3}},
		{ServiceID: "svc-missing"},
	})
	assert.ErrorIs(t, err, serviceRepo.ErrNotFound)
	assert.Nil(t, total, "no partial totals on failure")
}

func TestQuoteService(t *testing.T) {
	pricer := &Pricer{Services: &stubServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowService(true),
	}}}

	quote, err := pricer.QuoteService(context.Background(), "svc-windows", []models.PricingSelection{
		{BlockID: "blk-windows", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, quote.TotalPrice)
}

func TestQuoteServiceUnpublished(t *testing.T) {
	pricer := &Pricer{Services: &stubServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowService(false),
	}}}

	_, err := pricer.QuoteService(context.Background(), "svc-windows", nil)
	assert.ErrorIs(t, err, serviceRepo.ErrNotFound)
}
