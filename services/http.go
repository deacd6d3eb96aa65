package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/staybook/booking-service/catalog"
	"github.com/staybook/booking-service/models"
	"github.com/staybook/booking-service/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP surface. Extra middlewares (metrics, recovery) are
// supplied by main so observability wiring stays out of the handlers.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/destinations", s.handleDestinations)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", s.handleSearchProperties)
		r.Get("/{id}", s.handleGetProperty)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.handleListBookings)
		r.Post("/", s.handleCreateBooking)
		r.Post("/quote", s.handleQuoteBooking)
		r.Put("/{id}", s.handleUpdateBooking)
		r.Delete("/{id}", s.handleCancelBooking)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	booking, err := s.CreateBooking(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	var params store.UpdateParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	booking, err := s.UpdateBooking(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.CancelBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ListBookings(r.Context()))
}

func (s *Server) handleQuoteBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	quote, err := s.QuoteBooking(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleSearchProperties(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	results := s.SearchProperties(r.Context(), criteria)
	if results == nil {
		results = []catalog.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := s.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	destinations := s.Destinations(r.Context())
	if destinations == nil {
		destinations = []string{}
	}
	writeJSON(w, http.StatusOK, destinations)
}

func criteriaFromQuery(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()
	criteria := catalog.Criteria{
		City:    q.Get("city"),
		State:   q.Get("state"),
		Country: q.Get("country"),
	}
	if raw := q.Get("guests"); raw != "" {
		guests, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || guests < 0 {
			return catalog.Criteria{}, errors.New("guests must be a non-negative integer")
		}
		criteria.Guests = guests
	}
	fromRaw, toRaw := q.Get("from"), q.Get("to")
	if fromRaw != "" || toRaw != "" {
		from, err := parseDate(fromRaw)
		if err != nil {
			return catalog.Criteria{}, errors.New("from must be a date (2006-01-02 or RFC 3339)")
		}
		to, err := parseDate(toRaw)
		if err != nil {
			return catalog.Criteria{}, errors.New("to must be a date (2006-01-02 or RFC 3339)")
		}
		dates := models.DateRange{From: from, To: to}
		if err := dates.Validate(); err != nil {
			return catalog.Criteria{}, err
		}
		criteria.Dates = &dates
	}
	return criteria, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps domain errors onto HTTP statuses; validation
// failures are client errors, anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrDateConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrBookingNotFound),
		errors.Is(err, catalog.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrs):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
