// Package services is the inbound boundary: it exposes the booking and
// search operations to the presentation layer and spans them for tracing.
package services

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/staybook/booking-service/catalog"
	"github.com/staybook/booking-service/models"
	"github.com/staybook/booking-service/pricing"
	"github.com/staybook/booking-service/store"
	"github.com/staybook/booking-service/utils"
)

type Server struct {
	logger  log.Logger
	tracer  trace.Tracer
	store   *store.Store
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewServer(logger log.Logger, bookings *store.Store, properties *catalog.Catalog) *Server {
	return &Server{
		logger:  logger,
		tracer:  otel.Tracer("booking-service"),
		store:   bookings,
		catalog: properties,
		now:     time.Now,
	}
}

// BookingRequest is a booking intent from the presentation layer. The total
// is never part of it; the store derives the price itself.
type BookingRequest struct {
	PropertyID string           `json:"property_id" validate:"required"`
	Dates      models.DateRange `json:"dates"`
	Guests     int64            `json:"guests"      validate:"min=1,max=10"`
}

// BookingList partitions the collection by stay start relative to now. A
// stay starting this very instant counts as upcoming.
type BookingList struct {
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

func (s *Server) CreateBooking(ctx context.Context, req BookingRequest) (models.Booking, error) {
	_, span := s.tracer.Start(ctx, "CreateBooking")
	defer span.End()

	if err := utils.Validate.Struct(req); err != nil {
		return models.Booking{}, err
	}
	// Check-in must not be in the past; past stays only enter the
	// collection through the snapshot.
	if err := utils.Validate.Var(req.Dates.From, "future-date"); err != nil {
		return models.Booking{}, err
	}
	booking, err := s.store.Create(req.PropertyID, req.Dates, req.Guests)
	if err != nil {
		level.Warn(s.logger).Log("msg", "create booking rejected", "property", req.PropertyID, "err", err)
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *Server) UpdateBooking(ctx context.Context, id string, params store.UpdateParams) (models.Booking, error) {
	_, span := s.tracer.Start(ctx, "UpdateBooking")
	defer span.End()

	if params.Dates != nil {
		if err := utils.Validate.Var(params.Dates.From, "future-date"); err != nil {
			return models.Booking{}, err
		}
	}
	booking, err := s.store.Update(id, params)
	if err != nil {
		level.Warn(s.logger).Log("msg", "update booking rejected", "id", id, "err", err)
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *Server) CancelBooking(ctx context.Context, id string) error {
	_, span := s.tracer.Start(ctx, "CancelBooking")
	defer span.End()

	if err := s.store.Cancel(id); err != nil {
		level.Warn(s.logger).Log("msg", "cancel booking rejected", "id", id, "err", err)
		return err
	}
	return nil
}

func (s *Server) ListBookings(ctx context.Context) BookingList {
	_, span := s.tracer.Start(ctx, "ListBookings")
	defer span.End()

	list := BookingList{
		Upcoming: []models.Booking{},
		Past:     []models.Booking{},
	}
	now := s.now()
	for _, booking := range s.store.List() {
		if booking.Dates.From.Before(now) {
			list.Past = append(list.Past, booking)
		} else {
			list.Upcoming = append(list.Upcoming, booking)
		}
	}
	return list
}

// QuoteBooking prices a stay without committing it, backing the live price
// breakdown on the property page.
func (s *Server) QuoteBooking(ctx context.Context, req BookingRequest) (pricing.Quote, error) {
	_, span := s.tracer.Start(ctx, "QuoteBooking")
	defer span.End()

	if err := utils.Validate.Struct(req); err != nil {
		return pricing.Quote{}, err
	}
	return s.store.Quote(req.PropertyID, req.Dates, req.Guests)
}

func (s *Server) SearchProperties(ctx context.Context, criteria catalog.Criteria) []catalog.SearchResult {
	_, span := s.tracer.Start(ctx, "SearchProperties")
	defer span.End()

	return s.catalog.Search(criteria)
}

func (s *Server) GetProperty(ctx context.Context, id string) (models.Property, error) {
	_, span := s.tracer.Start(ctx, "GetProperty")
	defer span.End()

	return s.catalog.Get(id)
}

func (s *Server) Destinations(ctx context.Context) []string {
	_, span := s.tracer.Start(ctx, "Destinations")
	defer span.End()

	return s.catalog.Destinations()
}
