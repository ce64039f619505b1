package orderRepo

import (
	"context"
	"errors"

	"tidywave/models"
)

// ErrSlotTaken is returned by CreateIfAvailable when the availability check
// fails inside the booking transaction.
var ErrSlotTaken = errors.New("timeslot no longer available")

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// ListFilter narrows admin order listings.
type ListFilter struct {
	Status   models.OrderStatus
	DateFrom string
	DateTo   string
}

// OrderRepository abstracts persistence of orders. CreateIfAvailable runs the
// supplied availability check against same-date orders and the insert within
// one transaction, so two concurrent requests cannot both pass the check and
// both book the slot.
type OrderRepository interface {
	CreateIfAvailable(ctx context.Context, order *models.Order, available func(existing []models.Order) bool) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	ListByDate(ctx context.Context, date string) ([]models.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, notes string) error
	AssignCleaner(ctx context.Context, id string, cleanerID string) error
}
