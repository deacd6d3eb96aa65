package models

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("date range end must be after start")

// DateRange is a stay interval: check-in at From, check-out at To.
type DateRange struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to"   validate:"required,gtfield=From"`
}

// Nights returns the number of nights covered by the range.
func (d DateRange) Nights() int {
	return int(d.To.Sub(d.From).Hours() / 24)
}

func (d DateRange) Validate() error {
	if d.Nights() <= 0 {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether both ranges share at least one instant.
// Touching endpoints (checkout day equals the next check-in) do not conflict.
func (d DateRange) Overlaps(other DateRange) bool {
	return d.From.Before(other.To) && other.From.Before(d.To)
}

type Booking struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"property_id"`
	Dates      DateRange     `json:"dates"`
	Guests     int64         `json:"guests"      validate:"min=1,max=10"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

type BookingStatus int32

// Cancellation removes the booking from the collection outright, so an
// active booking is the only state that ever persists.
const (
	ACTIVE BookingStatus = 1
)
