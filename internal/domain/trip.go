// Package domain contains the core data types for the Tourvisto backend.
// It is imported by every other internal package (normalize, aggregate, repo,
// service, handler) and holds no I/O.
package domain

// RawTripRecord is a trip exactly as persisted: an identifier, the serialized
// trip-detail blob, and image references. Every field may be missing.
// RawDetailBlob is nil when the column is NULL.
type RawTripRecord struct {
	ID            string
	RawDetailBlob *string
	ImageURLs     []string
}

// TripDetail is the decoded content of a trip-detail blob.
// Slices are never nil once produced by the decoder.
type TripDetail struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	EstimatedPrice  string    `json:"estimatedPrice"` // pre-formatted label, e.g. "$1,200"
	Duration        int       `json:"duration"`       // days, >= 0
	Budget          string    `json:"budget"`
	TravelStyle     string    `json:"travelStyle"`
	Country         string    `json:"country"`
	Interests       string    `json:"interests"`
	GroupType       string    `json:"groupType"`
	BestTimeToVisit []string  `json:"bestTimeToVisit"`
	WeatherInfo     []string  `json:"weatherInfo"`
	Itinerary       []DayPlan `json:"itinerary"`
}

// Trip is the canonical, display-ready trip.
// Values are built fresh per fetch and never mutated after construction.
type Trip struct {
	ID string `json:"id"`
	TripDetail
	ImageURLs []string `json:"imageUrls"`
}

// DayPlan is one day of an itinerary. Day is 1-based.
type DayPlan struct {
	Day        int        `json:"day"`
	Location   string     `json:"location"`
	Activities []Activity `json:"activities"`
}

// Activity is a single timed entry in a DayPlan.
// Time is a free-text label ("Morning", "10:00 AM") and is never parsed.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}
