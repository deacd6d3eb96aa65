// Package pricing computes booking totals. Totals are never trusted from the
// caller; the store recomputes them on every create and update.
package pricing

import (
	"github.com/staybook/booking-service/models"
)

type Quote struct {
	Nights        int     `json:"nights"`
	Subtotal      float64 `json:"subtotal"`
	ExtraGuests   int64   `json:"extra_guests"`
	ExtraGuestFee float64 `json:"extra_guest_fee"`
	Total         float64 `json:"total"`
}

// Calculate derives the price breakdown for a stay. Guests above the
// property's standard capacity pay feePerExtraGuest each, once per stay.
func Calculate(
	pricePerNight float64,
	dates models.DateRange,
	guests, capacity int64,
	feePerExtraGuest float64,
) (Quote, error) {
	if err := dates.Validate(); err != nil {
		return Quote{}, err
	}
	quote := Quote{Nights: dates.Nights()}
	quote.Subtotal = pricePerNight * float64(quote.Nights)
	if guests > capacity {
		quote.ExtraGuests = guests - capacity
		quote.ExtraGuestFee = float64(quote.ExtraGuests) * feePerExtraGuest
	}
	quote.Total = quote.Subtotal + quote.ExtraGuestFee
	return quote, nil
}
