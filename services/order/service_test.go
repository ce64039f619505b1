package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cleanerRepo "tidywave/database/repository/cleaner"
	orderRepo "tidywave/database/repository/order"
	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
	"tidywave/services/pricing"
	"tidywave/services/scheduling"
)

type fakeOrderRepo struct {
	orders []models.Order
}

func (r *fakeOrderRepo) CreateIfAvailable(_ context.Context, ord *models.Order, available func([]models.Order) bool) error {
	var sameDay []models.Order
	for _, o := range r.orders {
		if o.ScheduledDate == ord.ScheduledDate {
			sameDay = append(sameDay, o)
		}
	}
	if !available(sameDay) {
		return orderRepo.ErrSlotTaken
	}
	r.orders = append(r.orders, *ord)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, orderRepo.ErrNotFound
}

func (r *fakeOrderRepo) List(_ context.Context, filter orderRepo.ListFilter) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByDate(_ context.Context, date string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.ScheduledDate == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByClient(_ context.Context, clientID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus, notes string) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			if notes != "" {
				r.orders[i].Notes = notes
			}
			return nil
		}
	}
	return orderRepo.ErrNotFound
}

func (r *fakeOrderRepo) AssignCleaner(_ context.Context, id, cleanerID string) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].CleanerID = cleanerID
			return nil
		}
	}
	return orderRepo.ErrNotFound
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	if svc, ok := r.services[id]; ok {
		return svc, nil
	}
	return nil, serviceRepo.ErrNotFound
}

func (r *fakeServiceRepo) GetAll(_ context.Context, publishedOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if publishedOnly && !svc.Published {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

type fakeCleanerRepo struct {
	cleaners map[string]*models.Cleaner
}

func (r *fakeCleanerRepo) Create(_ context.Context, c *models.Cleaner) error {
	r.cleaners[c.ID] = c
	return nil
}

func (r *fakeCleanerRepo) Update(_ context.Context, c *models.Cleaner) error {
	r.cleaners[c.ID] = c
	return nil
}

func (r *fakeCleanerRepo) GetByID(_ context.Context, id string) (*models.Cleaner, error) {
	if c, ok := r.cleaners[id]; ok {
		return c, nil
	}
	return nil, cleanerRepo.ErrNotFound
}

func (r *fakeCleanerRepo) GetAll(_ context.Context) ([]models.Cleaner, error) {
	var out []models.Cleaner
	for _, c := range r.cleaners {
		out = append(out, *c)
	}
	return out, nil
}

func windowCleaningService() *models.Service {
	return &models.Service{
		ID:        "svc-windows",
		Name:      "Window Cleaning",
		Published: true,
		PricingBlocks: []models.PricingBlock{
			{
				ID: "blk-windows", Name: "Windows", Kind: models.BlockKindQuantity,
				Key: models.KeyWindow, OrderIndex: 1, Active: true,
				Quantity: &models.QuantityOption{Name: "Windows", UnitPrice: 25, MaxQuantity: 50, UnitName: "window"},
			},
		},
	}
}

func newTestService(orders *fakeOrderRepo) *Service {
	services := &fakeServiceRepo{services: map[string]*models.Service{
		"svc-windows": windowCleaningService(),
	}}
	cleaners := &fakeCleanerRepo{cleaners: map[string]*models.Cleaner{
		"cleaner-1": {ID: "cleaner-1", FullName: "Dana"},
	}}
	return &Service{
		Orders:   orders,
		Cleaners: cleaners,
		Pricer:   &pricing.Pricer{Services: services},
		Checker:  scheduling.NewChecker(scheduling.Hours{Start: "10:00", End: "19:00", SlotMinutes: 30}),
	}
}

func TestCreateOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo)

	ord, err := svc.CreateOrder(context.Background(), "client-1", CreateOrderRequest{
		Items: []models.OrderItemInput{{
			ServiceID:  "svc-windows",
			Parameters: models.ServiceParameters{WindowCount: 5},
		}},
		ScheduledDate: "2026-09-14",
		ScheduledTime: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingConfirmation, ord.Status)
	assert.Equal(t, 125.0, ord.TotalPrice)
	// 5 windows × 15 minutes, rounded up to the half-hour grid.
	assert.Equal(t, 90, ord.TotalDurationMinutes)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, 125.0, ord.Items[0].CalculatedCost)
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{})

	_, err := svc.CreateOrder(context.Background(), "client-1", CreateOrderRequest{
		ScheduledDate: "2026-09-14",
		ScheduledTime: "11:00",
	})
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeEmptyOrder, bookingErr.Code)
}

func TestCreateOrderUnknownService(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{})

	_, err := svc.CreateOrder(context.Background(), "client-1", CreateOrderRequest{
		Items:         []models.OrderItemInput{{ServiceID: "svc-missing"}},
		ScheduledDate: "2026-09-14",
		ScheduledTime: "11:00",
	})
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeUnknownService, bookingErr.Code)
}

func TestCreateOrderSlotTaken(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID:                   "order-1",
		ScheduledDate:        "2026-09-14",
		ScheduledTime:        "11:00",
		TotalDurationMinutes: 120,
		Status:               models.StatusConfirmed,
	}}}
	svc := newTestService(repo)

	_, err := svc.CreateOrder(context.Background(), "client-1", CreateOrderRequest{
		Items: []models.OrderItemInput{{
			ServiceID:  "svc-windows",
			Parameters: models.ServiceParameters{WindowCount: 5},
		}},
		ScheduledDate: "2026-09-14",
		ScheduledTime: "11:30",
	})
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeSlotUnavailable, bookingErr.Code)
	assert.Len(t, repo.orders, 1)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{"pending to confirmed", models.StatusPendingConfirmation, models.StatusConfirmed, true},
		{"pending to cancelled", models.StatusPendingConfirmation, models.StatusCancelled, true},
		{"pending to completed", models.StatusPendingConfirmation, models.StatusCompleted, false},
		{"confirmed to completed", models.StatusConfirmed, models.StatusCompleted, true},
		{"completed to anything", models.StatusCompleted, models.StatusCancelled, false},
		{"cancelled to confirmed", models.StatusCancelled, models.StatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeOrderRepo{orders: []models.Order{{
				ID: "order-1", ScheduledDate: "2026-09-14", ScheduledTime: "11:00",
				TotalDurationMinutes: 60, Status: tt.from,
			}}}
			svc := newTestService(repo)

			ord, err := svc.UpdateStatus(context.Background(), "order-1", tt.to, "")
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, ord.Status)
				assert.Equal(t, tt.to, repo.orders[0].Status)
			} else {
				var transitionErr *models.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.from, repo.orders[0].Status, "failed transition must not modify the order")
			}
		})
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{})

	_, err := svc.UpdateStatus(context.Background(), "order-1", "in_progress", "")
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeInvalidTransition, bookingErr.Code)
}

func TestCancelOrderScoping(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID: "order-1", ClientID: "client-1", ScheduledDate: "2026-09-14",
		ScheduledTime: "11:00", TotalDurationMinutes: 60,
		Status: models.StatusPendingConfirmation,
	}}}
	svc := newTestService(repo)

	_, err := svc.CancelOrder(context.Background(), "client-2", "order-1")
	assert.ErrorIs(t, err, orderRepo.ErrNotFound)

	ord, err := svc.CancelOrder(context.Background(), "client-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, ord.Status)
}

func TestAssignCleaner(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID: "order-1", ScheduledDate: "2026-09-14", ScheduledTime: "11:00",
		TotalDurationMinutes: 120, Status: models.StatusConfirmed,
	}}}
	svc := newTestService(repo)

	ord, err := svc.AssignCleaner(context.Background(), "order-1", "cleaner-1")
	require.NoError(t, err)
	assert.Equal(t, "cleaner-1", ord.CleanerID)
	assert.Equal(t, "cleaner-1", repo.orders[0].CleanerID)
}

func TestAssignCleanerUnknownCleaner(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID: "order-1", ScheduledDate: "2026-09-14", ScheduledTime: "11:00",
		TotalDurationMinutes: 120, Status: models.StatusConfirmed,
	}}}
	svc := newTestService(repo)

	_, err := svc.AssignCleaner(context.Background(), "order-1", "nobody")
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeUnknownCleaner, bookingErr.Code)
	assert.Empty(t, repo.orders[0].CleanerID)
}

func TestAssignCleanerIgnoresOwnSlot(t *testing.T) {
	// The order's own interval must not count as a conflict during
	// assignment, but a second overlapping order must.
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID: "order-1", ScheduledDate: "2026-09-14", ScheduledTime: "11:00",
		TotalDurationMinutes: 120, Status: models.StatusConfirmed,
	}}}
	svc := newTestService(repo)

	_, err := svc.AssignCleaner(context.Background(), "order-1", "cleaner-1")
	require.NoError(t, err)

	repo.orders = append(repo.orders, models.Order{
		ID: "order-2", ScheduledDate: "2026-09-14", ScheduledTime: "12:00",
		TotalDurationMinutes: 120, Status: models.StatusConfirmed,
	})
	_, err = svc.AssignCleaner(context.Background(), "order-2", "cleaner-1")
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeSlotUnavailable, bookingErr.Code)
}

func TestAvailableSlots(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{{
		ID: "order-1", ScheduledDate: "2026-09-14", ScheduledTime: "14:00",
		TotalDurationMinutes: 120, Status: models.StatusConfirmed,
	}}}
	svc := newTestService(repo)

	slots, err := svc.AvailableSlots(context.Background(), "2026-09-14", 60)
	require.NoError(t, err)
	assert.Contains(t, slots, "13:00")
	assert.NotContains(t, slots, "14:30")
	assert.Contains(t, slots, "16:00")
}
