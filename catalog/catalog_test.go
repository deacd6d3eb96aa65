package catalog

import (
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/staybook/booking-service/models"
)

func testProperties() []models.Property {
	return []models.Property{
		{
			ID:            "loft",
			Title:         "Sunny Loft",
			PricePerNight: 120,
			Guests:        4,
			Location:      models.Location{City: "New York", State: "New York", Country: "United States"},
		},
		{
			ID:            "penthouse",
			Title:         "Harborview Penthouse",
			PricePerNight: 340,
			Guests:        8,
			Location:      models.Location{City: "New York", State: "New York", Country: "United States"},
		},
		{
			ID:            "chalet",
			Title:         "Whistler Chalet",
			PricePerNight: 520,
			Guests:        10,
			Location:      models.Location{City: "Whistler", State: "British Columbia", Country: "Canada"},
		},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(log.NewNopLogger(), testProperties(), time.Minute)
}

func TestGet(t *testing.T) {
	c := newTestCatalog(t)

	property, err := c.Get("chalet")
	require.NoError(t, err)
	require.Equal(t, "Whistler Chalet", property.Title)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestSearchNoCriteriaReturnsAllInCatalogOrder(t *testing.T) {
	c := newTestCatalog(t)

	results := c.Search(Criteria{})
	require.Len(t, results, 3)
	require.Equal(t, "loft", results[0].ID)
	require.Equal(t, "penthouse", results[1].ID)
	require.Equal(t, "chalet", results[2].ID)
}

func TestSearchDestinationIsCaseInsensitive(t *testing.T) {
	c := newTestCatalog(t)

	results := c.Search(Criteria{City: "new york", State: "NEW YORK", Country: "united states"})
	require.Len(t, results, 2)

	results = c.Search(Criteria{City: "Whistler"})
	require.Len(t, results, 1)
	require.Equal(t, "chalet", results[0].ID)
}

func TestSearchUnknownDestinationMatchesNothing(t *testing.T) {
	c := newTestCatalog(t)

	require.Empty(t, c.Search(Criteria{City: "Lisbon"}))
}

func TestSearchFiltersByCapacity(t *testing.T) {
	c := newTestCatalog(t)

	results := c.Search(Criteria{Guests: 8})
	require.Len(t, results, 2)
	require.Equal(t, "penthouse", results[0].ID)
	require.Equal(t, "chalet", results[1].ID)

	require.Empty(t, c.Search(Criteria{Guests: 11}))
}

func TestSearchComputesTotalWhenDatesSupplied(t *testing.T) {
	c := newTestCatalog(t)

	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	dates := models.DateRange{From: from, To: from.AddDate(0, 0, 5)}

	results := c.Search(Criteria{City: "Whistler", Dates: &dates})
	require.Len(t, results, 1)
	require.Equal(t, float64(2600), results[0].TotalPricePerNight)

	// Without dates no total is derived.
	results = c.Search(Criteria{City: "Whistler"})
	require.Equal(t, float64(0), results[0].TotalPricePerNight)
}

func TestSearchCachesResults(t *testing.T) {
	c := newTestCatalog(t)

	criteria := Criteria{City: "New York", Guests: 2}
	first := c.Search(criteria)
	second := c.Search(criteria)
	require.Equal(t, first, second)

	// Distinct criteria must never collide on the same cache entry.
	other := c.Search(Criteria{City: "New York", Guests: 8})
	require.NotEqual(t, len(first), len(other))
}

func TestDestinationsAreDistinct(t *testing.T) {
	c := newTestCatalog(t)

	require.Equal(t, []string{
		"New York, New York, United States",
		"Whistler, British Columbia, Canada",
	}, c.Destinations())
}

func TestLoadEmbeddedFixture(t *testing.T) {
	c, err := Load(log.NewNopLogger(), "", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, c.All())

	for _, p := range c.All() {
		require.NotEmpty(t, p.ID)
		require.NotEmpty(t, p.Title)
		require.Greater(t, p.PricePerNight, float64(0))
		require.Greater(t, p.Guests, int64(0))
	}
}
