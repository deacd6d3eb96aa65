// Package catalog is the read-only property collaborator: a static set of
// rental properties loaded once per process, with structured search on top.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/staybook/booking-service/models"
)

var ErrPropertyNotFound = errors.New("property not found")

//go:embed fixture.json
var fixture []byte

type Catalog struct {
	logger     log.Logger
	properties []models.Property
	byID       map[string]models.Property
	cache      *searchCache
}

// Criteria is a structured search: destination fields are compared
// individually and case-insensitively, empty fields match everything.
type Criteria struct {
	City    string
	State   string
	Country string
	Guests  int64
	Dates   *models.DateRange
}

// SearchResult carries the matched property plus the stay total per the
// requested date range, when one was supplied.
type SearchResult struct {
	models.Property
	TotalPricePerNight float64 `json:"total_price_per_night,omitempty"`
}

// Load builds a catalog from the JSON file at path, or from the embedded
// fixture when path is empty.
func Load(logger log.Logger, path string, cacheTTL time.Duration) (*Catalog, error) {
	data := fixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	var properties []models.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(logger, properties, cacheTTL), nil
}

func New(logger log.Logger, properties []models.Property, cacheTTL time.Duration) *Catalog {
	byID := make(map[string]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	level.Info(logger).Log("msg", "catalog loaded", "properties", len(properties))
	return &Catalog{
		logger:     logger,
		properties: properties,
		byID:       byID,
		cache:      newSearchCache(cacheTTL),
	}
}

func (c *Catalog) Get(id string) (models.Property, error) {
	property, ok := c.byID[id]
	if !ok {
		return models.Property{}, ErrPropertyNotFound
	}
	return property, nil
}

func (c *Catalog) All() []models.Property {
	out := make([]models.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// Destinations returns the distinct "City, State, Country" labels of the
// catalog, in catalog order.
func (c *Catalog) Destinations() []string {
	seen := make(map[string]bool, len(c.properties))
	var out []string
	for _, p := range c.properties {
		label := fmt.Sprintf("%s, %s, %s", p.Location.City, p.Location.State, p.Location.Country)
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}

// Search filters the catalog by destination and minimum guest capacity,
// preserving catalog order. Results are cached per criteria; the catalog is
// static for the session so entries only ever expire.
func (c *Catalog) Search(criteria Criteria) []SearchResult {
	key := criteria.cacheKey()
	if results, ok := c.cache.get(key); ok {
		level.Debug(c.logger).Log("msg", "search cache hit", "key", key)
		return results
	}

	var results []SearchResult
	for _, p := range c.properties {
		if !criteria.matches(p) {
			continue
		}
		result := SearchResult{Property: p}
		if criteria.Dates != nil {
			result.TotalPricePerNight = p.PricePerNight * float64(criteria.Dates.Nights())
		}
		results = append(results, result)
	}

	c.cache.set(key, results)
	level.Debug(c.logger).Log("msg", "search cache miss", "key", key, "results", len(results))
	return results
}

func (cr Criteria) matches(p models.Property) bool {
	if !fieldMatches(cr.City, p.Location.City) ||
		!fieldMatches(cr.State, p.Location.State) ||
		!fieldMatches(cr.Country, p.Location.Country) {
		return false
	}
	return p.Guests >= cr.Guests
}

func fieldMatches(requested, actual string) bool {
	return requested == "" || strings.EqualFold(requested, actual)
}
