package models

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Property is immutable reference data owned by the catalog; bookings hold
// the id, never a copy.
type Property struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	PricePerNight float64         `json:"price_per_night"`
	Guests        int64           `json:"guests"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Amenities     map[string]bool `json:"amenities"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Location      Location        `json:"location"`
}
