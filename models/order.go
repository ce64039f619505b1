package models

import (
	"fmt"
	"time"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	StatusPendingConfirmation OrderStatus = "pending_confirmation"
	StatusConfirmed           OrderStatus = "confirmed"
	StatusCompleted           OrderStatus = "completed"
	StatusCancelled           OrderStatus = "cancelled"
)

// orderTransitions is the allowed status transition table. Completed and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingConfirmation: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:           {StatusCompleted, StatusCancelled},
	StatusCompleted:           {},
	StatusCancelled:           {},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move between the two statuses.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned when an order status change is not in
// the transition table. The order itself is left unmodified.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// OrderItem is one line of an order. Cost and duration are snapshots computed
// at order creation and never recomputed, even if the service's pricing
// configuration changes afterwards.
type OrderItem struct {
	ID                    string            `bson:"id" json:"id"`
	ServiceID             string            `bson:"service_id" json:"service_id"`
	Parameters            ServiceParameters `bson:"parameters" json:"parameters"`
	CalculatedCost        float64           `bson:"calculated_cost" json:"calculated_cost"`
	CalculatedTimeMinutes int               `bson:"calculated_time_minutes" json:"calculated_time_minutes"`
}

// Order is a confirmed or pending booking. TotalDurationMinutes is always a
// positive multiple of 30.
type Order struct {
	ID                   string      `bson:"id" json:"id"`
	ClientID             string      `bson:"client_id" json:"client_id"`
	ScheduledDate        string      `bson:"scheduled_date" json:"scheduled_date"` // "YYYY-MM-DD"
	ScheduledTime        string      `bson:"scheduled_time" json:"scheduled_time"` // "HH:MM"
	TotalDurationMinutes int         `bson:"total_duration_minutes" json:"total_duration_minutes"`
	TotalPrice           float64     `bson:"total_price" json:"total_price"`
	Status               OrderStatus `bson:"status" json:"status"`
	CleanerID            string      `bson:"cleaner_id,omitempty" json:"cleaner_id,omitempty"`
	Notes                string      `bson:"notes,omitempty" json:"notes,omitempty"`
	CalendarEventID      string      `bson:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`
	Items                []OrderItem `bson:"items" json:"items"`
	CreatedAt            time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `bson:"updated_at" json:"updated_at"`
}

// Blocks reports whether this order occupies its timeslot for availability
// purposes. Cancelled and completed orders never block.
func (o *Order) Blocks() bool {
	return o.Status == StatusPendingConfirmation || o.Status == StatusConfirmed
}

// OrderItemInput is one requested line item on order creation or preview.
type OrderItemInput struct {
	ServiceID  string            `json:"service_id" binding:"required"`
	Parameters ServiceParameters `json:"parameters"`
}
