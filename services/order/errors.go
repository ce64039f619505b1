package order

import "fmt"

// BookingError carries a stable machine code alongside the human message so
// handlers can map failures to response status without string matching.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeSlotUnavailable   = "slotUnavailable"
	CodeInvalidTransition = "invalidTransition"
	CodeUnknownService    = "unknownService"
	CodeEmptyOrder        = "emptyOrder"
	CodeUnknownCleaner    = "unknownCleaner"
)

func NewSlotUnavailableError(date, timeOfDay string) error {
	return &BookingError{
		Code:    CodeSlotUnavailable,
		Message: fmt.Sprintf("the timeslot %s %s is not available", date, timeOfDay),
	}
}
