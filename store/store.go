// Package store owns the booking collection for the session. All mutations
// are validated first and serialized behind one mutex, so two in-flight
// submissions can never both pass the conflict check on a stale snapshot.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/staybook/booking-service/models"
	"github.com/staybook/booking-service/pricing"
	"github.com/staybook/booking-service/utils"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrDateConflict    = errors.New("date range already booked")
)

// PropertyResolver is the catalog lookup the store depends on.
type PropertyResolver interface {
	Get(id string) (models.Property, error)
}

type Store struct {
	logger           log.Logger
	catalog          PropertyResolver
	feePerExtraGuest float64
	snapshotPath     string

	mu       sync.Mutex
	bookings []models.Booking
}

// UpdateParams carries the fields an edit may change; nil means keep.
type UpdateParams struct {
	Dates  *models.DateRange `json:"dates"`
	Guests *int64            `json:"guests"`
}

// New builds a store and loads the snapshot at snapshotPath if one exists.
// An empty snapshotPath disables persistence.
func New(
	logger log.Logger,
	catalog PropertyResolver,
	feePerExtraGuest float64,
	snapshotPath string,
) (*Store, error) {
	s := &Store{
		logger:           logger,
		catalog:          catalog,
		feePerExtraGuest: feePerExtraGuest,
		snapshotPath:     snapshotPath,
	}
	if err := s.loadSnapshot(); err != nil {
		return nil, err
	}
	return s, nil
}

// Create books a stay. The property must exist, the total is derived here,
// and the range must not overlap any active booking for the same property.
// New bookings go to the head of the collection.
func (s *Store) Create(propertyID string, dates models.DateRange, guests int64) (models.Booking, error) {
	property, err := s.catalog.Get(propertyID)
	if err != nil {
		return models.Booking{}, err
	}
	quote, err := pricing.Calculate(property.PricePerNight, dates, guests, property.Guests, s.feePerExtraGuest)
	if err != nil {
		return models.Booking{}, err
	}
	booking := models.Booking{
		PropertyID: propertyID,
		Dates:      dates,
		Guests:     guests,
		TotalPrice: quote.Total,
		Status:     models.ACTIVE,
		CreatedAt:  time.Now().UTC(),
	}
	if err := utils.Validate.Struct(booking); err != nil {
		return models.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conflict := s.findConflict(propertyID, dates, ""); conflict != nil {
		return models.Booking{}, ErrDateConflict
	}
	booking.ID = uuid.NewString()
	s.bookings = append([]models.Booking{booking}, s.bookings...)
	s.persistLocked()
	level.Info(s.logger).Log("msg", "booking created", "id", booking.ID, "property", propertyID)
	return booking, nil
}

// Update merges the provided fields onto an existing booking, recomputes the
// total, and re-runs the conflict check excluding the booking itself. The
// stored booking is untouched on any failure and keeps its position on
// success.
func (s *Store) Update(id string, params UpdateParams) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Booking{}, ErrBookingNotFound
	}
	merged := s.bookings[idx]
	if params.Dates != nil {
		merged.Dates = *params.Dates
	}
	if params.Guests != nil {
		merged.Guests = *params.Guests
	}

	property, err := s.catalog.Get(merged.PropertyID)
	if err != nil {
		return models.Booking{}, err
	}
	quote, err := pricing.Calculate(property.PricePerNight, merged.Dates, merged.Guests, property.Guests, s.feePerExtraGuest)
	if err != nil {
		return models.Booking{}, err
	}
	merged.TotalPrice = quote.Total
	if err := utils.Validate.Struct(merged); err != nil {
		return models.Booking{}, err
	}
	if conflict := s.findConflict(merged.PropertyID, merged.Dates, id); conflict != nil {
		return models.Booking{}, ErrDateConflict
	}

	s.bookings[idx] = merged
	s.persistLocked()
	level.Info(s.logger).Log("msg", "booking updated", "id", id)
	return merged, nil
}

// Cancel removes the booking. Cancellation is final; there is no soft-delete
// state.
func (s *Store) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrBookingNotFound
	}
	s.bookings = append(s.bookings[:idx], s.bookings[idx+1:]...)
	s.persistLocked()
	level.Info(s.logger).Log("msg", "booking cancelled", "id", id)
	return nil
}

// List returns a consistent copy of the collection, most recent first.
func (s *Store) List() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Quote prices a candidate stay without mutating anything.
func (s *Store) Quote(propertyID string, dates models.DateRange, guests int64) (pricing.Quote, error) {
	property, err := s.catalog.Get(propertyID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Calculate(property.PricePerNight, dates, guests, property.Guests, s.feePerExtraGuest)
}

func (s *Store) indexOf(id string) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// findConflict scans active bookings of the same property for a strict
// interval overlap, skipping excludeID so edits never collide with
// themselves.
func (s *Store) findConflict(propertyID string, dates models.DateRange, excludeID string) *models.Booking {
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.ID == excludeID || b.PropertyID != propertyID || b.Status != models.ACTIVE {
			continue
		}
		if b.Dates.Overlaps(dates) {
			return b
		}
	}
	return nil
}
