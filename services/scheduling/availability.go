// Package scheduling decides whether candidate booking intervals fit within
// working hours without colliding with existing orders, and enumerates
// bookable timeslots for a date.
package scheduling

import (
	"time"

	"tidywave/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DefaultProbeMinutes is the probe duration used by slot enumeration when the
// caller does not request a specific duration.
const DefaultProbeMinutes = 120

// Hours is the process-wide scheduling configuration: a daily working-hours
// window, identical every day, and the slot granularity offered to clients.
// It is passed in at construction so tests can vary it freely.
type Hours struct {
	Start       string // "HH:MM"
	End         string // "HH:MM"
	SlotMinutes int
}

// Checker answers availability queries. It is a pure query layer: callers
// persist bookings only after a positive answer, and the repository re-checks
// inside the booking transaction.
type Checker struct {
	hours Hours
}

// NewChecker builds a Checker for the given working hours.
func NewChecker(hours Hours) *Checker {
	if hours.SlotMinutes <= 0 {
		hours.SlotMinutes = 30
	}
	return &Checker{hours: hours}
}

// IsAvailable reports whether a booking of durationMinutes starting at the
// given date and time-of-day can be placed. Unparseable inputs mean "not
// available", never an error. Orders whose ID equals excludeOrderID are
// ignored, so a cleaner reassignment can re-check the order's own slot.
func (c *Checker) IsAvailable(date, timeOfDay string, durationMinutes int, existing []models.Order, excludeOrderID string) bool {
	start, ok := parseDateTime(date, timeOfDay)
	if !ok {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	workStart, ok := parseDateTime(date, c.hours.Start)
	if !ok {
		return false
	}
	workEnd, ok := parseDateTime(date, c.hours.End)
	if !ok {
		return false
	}
	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	for _, order := range existing {
		if order.ScheduledDate != date || !order.Blocks() {
			continue
		}
		if excludeOrderID != "" && order.ID == excludeOrderID {
			continue
		}

		orderStart, ok := parseDateTime(order.ScheduledDate, order.ScheduledTime)
		if !ok {
			continue
		}
		orderEnd := orderStart.Add(time.Duration(order.TotalDurationMinutes) * time.Minute)

		// Half-open intervals: back-to-back bookings do not conflict.
		if start.Before(orderEnd) && end.After(orderStart) {
			return false
		}
	}

	return true
}

// AvailableSlots enumerates every slot-granularity start time within working
// hours at which a booking of durationMinutes would be accepted. A
// durationMinutes of zero probes with DefaultProbeMinutes.
func (c *Checker) AvailableSlots(date string, existing []models.Order, durationMinutes int) []string {
	if durationMinutes <= 0 {
		durationMinutes = DefaultProbeMinutes
	}

	workStart, ok := parseDateTime(date, c.hours.Start)
	if !ok {
		return nil
	}
	workEnd, ok := parseDateTime(date, c.hours.End)
	if !ok {
		return nil
	}

	step := time.Duration(c.hours.SlotMinutes) * time.Minute
	var available []string
	for cursor := workStart; cursor.Before(workEnd); cursor = cursor.Add(step) {
		slot := cursor.Format(timeLayout)
		if c.IsAvailable(date, slot, durationMinutes, existing, "") {
			available = append(available, slot)
		}
	}
	return available
}

func parseDateTime(date, timeOfDay string) (time.Time, bool) {
	t, err := time.Parse(dateLayout+" "+timeLayout, date+" "+timeOfDay)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
