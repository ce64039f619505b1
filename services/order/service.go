// Package order creates and manages bookings: pricing the requested items,
// guarding the timeslot, and driving the status lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cleanerRepo "tidywave/database/repository/cleaner"
	orderRepo "tidywave/database/repository/order"
	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
	"tidywave/services/pricing"
	"tidywave/services/scheduling"
	"tidywave/utils"
)

// CreateOrderRequest is the client's booking intent: what to clean, when, and
// any free-form notes for the crew.
type CreateOrderRequest struct {
	Items         []models.OrderItemInput `json:"items" binding:"required"`
	ScheduledDate string                  `json:"scheduled_date" binding:"required"`
	ScheduledTime string                  `json:"scheduled_time" binding:"required"`
	Notes         string                  `json:"notes"`
}

// Service wires pricing, availability and order persistence into the booking
// operations exposed over HTTP.
type Service struct {
	Orders   orderRepo.OrderRepository
	Cleaners cleanerRepo.CleanerRepository
	Pricer   *pricing.Pricer
	Checker  *scheduling.Checker
}

// CreateOrder prices the requested items, checks that the timeslot fits, and
// persists the order with status pending_confirmation. Item costs and
// durations are snapshotted at creation. The availability check runs again
// inside the insert transaction, so a losing concurrent request gets
// CodeSlotUnavailable rather than a double booking.
func (s *Service) CreateOrder(ctx context.Context, clientID string, req CreateOrderRequest) (*models.Order, error) {
	logger := utils.GetLogger()

	if len(req.Items) == 0 {
		return nil, &BookingError{Code: CodeEmptyOrder, Message: "an order needs at least one item"}
	}

	total, err := s.Pricer.PriceOrder(ctx, req.Items)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, &BookingError{Code: CodeUnknownService, Message: err.Error()}
		}
		return nil, fmt.Errorf("failed to price order: %w", err)
	}

	// Cheap precheck outside the transaction so obviously bad requests never
	// open one.
	sameDay, err := s.Orders.ListByDate(ctx, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch same-day orders: %w", err)
	}
	if !s.Checker.IsAvailable(req.ScheduledDate, req.ScheduledTime, total.TotalDurationMinutes, sameDay, "") {
		return nil, NewSlotUnavailableError(req.ScheduledDate, req.ScheduledTime)
	}

	now := time.Now().UTC()
	ord := &models.Order{
		ID:                   uuid.New().String(),
		ClientID:             clientID,
		ScheduledDate:        req.ScheduledDate,
		ScheduledTime:        req.ScheduledTime,
		TotalDurationMinutes: total.TotalDurationMinutes,
		TotalPrice:           total.TotalPrice,
		Status:               models.StatusPendingConfirmation,
		Notes:                req.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, item := range total.Items {
		ord.Items = append(ord.Items, models.OrderItem{
			ID:                    uuid.New().String(),
			ServiceID:             item.Input.ServiceID,
			Parameters:            item.Input.Parameters,
			CalculatedCost:        item.Quote.TotalPrice,
			CalculatedTimeMinutes: item.Quote.EstimatedTimeMinutes,
		})
	}

	err = s.Orders.CreateIfAvailable(ctx, ord, func(existing []models.Order) bool {
		return s.Checker.IsAvailable(ord.ScheduledDate, ord.ScheduledTime, ord.TotalDurationMinutes, existing, "")
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrSlotTaken) {
			logger.Info("booking lost the slot race",
				zap.String("date", ord.ScheduledDate), zap.String("time", ord.ScheduledTime))
			return nil, NewSlotUnavailableError(ord.ScheduledDate, ord.ScheduledTime)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info("order created",
		zap.String("orderID", ord.ID),
		zap.String("clientID", clientID),
		zap.Float64("total", ord.TotalPrice),
		zap.Int("durationMinutes", ord.TotalDurationMinutes))
	return ord, nil
}

// PreviewOrder prices the requested items without booking anything.
func (s *Service) PreviewOrder(ctx context.Context, items []models.OrderItemInput) (*pricing.OrderTotal, error) {
	total, err := s.Pricer.PriceOrder(ctx, items)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, &BookingError{Code: CodeUnknownService, Message: err.Error()}
		}
		return nil, err
	}
	return total, nil
}

// AvailableSlots lists the bookable start times on date for a booking of
// durationMinutes (zero means the standard probe duration).
func (s *Service) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]string, error) {
	sameDay, err := s.Orders.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch same-day orders: %w", err)
	}
	return s.Checker.AvailableSlots(date, sameDay, durationMinutes), nil
}

// GetOrder fetches a single order.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.Orders.GetByID(ctx, id)
}

// GetClientOrder fetches a single order and verifies it belongs to clientID.
// Orders of other clients are reported as not found, not forbidden.
func (s *Service) GetClientOrder(ctx context.Context, clientID, id string) (*models.Order, error) {
	ord, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.ClientID != clientID {
		return nil, orderRepo.ErrNotFound
	}
	return ord, nil
}

// ListOrders returns orders matching the admin filter.
func (s *Service) ListOrders(ctx context.Context, filter orderRepo.ListFilter) ([]models.Order, error) {
	return s.Orders.List(ctx, filter)
}

// ListClientOrders returns the client's own orders.
func (s *Service) ListClientOrders(ctx context.Context, clientID string) ([]models.Order, error) {
	return s.Orders.ListByClient(ctx, clientID)
}

// UpdateStatus moves an order along its lifecycle. A transition outside the
// table is rejected with CodeInvalidTransition and the order is left exactly
// as it was.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, notes string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, &BookingError{Code: CodeInvalidTransition, Message: fmt.Sprintf("unknown status %q", status)}
	}

	ord, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(ord.Status, status) {
		return nil, &models.InvalidTransitionError{From: ord.Status, To: status}
	}

	if err := s.Orders.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	utils.GetLogger().Info("order status updated",
		zap.String("orderID", id),
		zap.String("from", string(ord.Status)),
		zap.String("to", string(status)))

	ord.Status = status
	if notes != "" {
		ord.Notes = notes
	}
	return ord, nil
}

// CancelOrder is the client-facing cancellation path. Clients may cancel only
// their own orders, and only while the transition table allows it.
func (s *Service) CancelOrder(ctx context.Context, clientID, id string) (*models.Order, error) {
	ord, err := s.GetClientOrder(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(ord.Status, models.StatusCancelled) {
		return nil, &models.InvalidTransitionError{From: ord.Status, To: models.StatusCancelled}
	}
	if err := s.Orders.UpdateStatus(ctx, id, models.StatusCancelled, ord.Notes); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	ord.Status = models.StatusCancelled
	return ord, nil
}

// AssignCleaner attaches a cleaner to an order after re-validating that the
// order's own timeslot still holds, ignoring the order itself in the overlap
// check. A failed check leaves the order's cleaner unset.
func (s *Service) AssignCleaner(ctx context.Context, orderID, cleanerID string) (*models.Order, error) {
	ord, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	cleaner, err := s.Cleaners.GetByID(ctx, cleanerID)
	if err != nil || cleaner == nil {
		return nil, &BookingError{Code: CodeUnknownCleaner, Message: fmt.Sprintf("cleaner %s not found", cleanerID)}
	}

	sameDay, err := s.Orders.ListByDate(ctx, ord.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch same-day orders: %w", err)
	}
	if !s.Checker.IsAvailable(ord.ScheduledDate, ord.ScheduledTime, ord.TotalDurationMinutes, sameDay, ord.ID) {
		return nil, NewSlotUnavailableError(ord.ScheduledDate, ord.ScheduledTime)
	}

	if err := s.Orders.AssignCleaner(ctx, orderID, cleanerID); err != nil {
		return nil, fmt.Errorf("failed to assign cleaner: %w", err)
	}

	utils.GetLogger().Info("cleaner assigned",
		zap.String("orderID", orderID), zap.String("cleanerID", cleanerID))

	ord.CleanerID = cleanerID
	return ord, nil
}
