// Package view maps canonical trips and users onto the display shapes the
// dashboard and public pages render, substituting placeholders for missing
// values so the frontend never has to null-check.
package view

import (
	"strings"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// Placeholders used when a value is missing.
const (
	PlaceholderTripName  = "Unnamed Trip"
	PlaceholderImage     = "/assets/images/placeholder.jpg"
	PlaceholderLocation  = "Unknown Location"
	PlaceholderPrice     = "$0"
	PlaceholderInterest  = "Various"
	PlaceholderAvatar    = "/assets/images/default-avatar.png"
	PlaceholderUserName  = "Unknown User"
	maxLocationsInHeader = 4
)

// TripCard is the summary tile shown in trip grids.
type TripCard struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Location string   `json:"location"`
	Tags     []string `json:"tags"`
	Price    string   `json:"price"`
	Interest string   `json:"interest"`
}

// TripCards maps trips to cards, preserving order.
func TripCards(trips []domain.Trip) []TripCard {
	out := make([]TripCard, 0, len(trips))
	for _, t := range trips {
		out = append(out, NewTripCard(t))
	}
	return out
}

// NewTripCard builds the card for a single trip.
func NewTripCard(t domain.Trip) TripCard {
	card := TripCard{
		ID:       t.ID,
		Name:     orDefault(t.Name, PlaceholderTripName),
		ImageURL: PlaceholderImage,
		Location: PlaceholderLocation,
		Tags:     nonBlank(t.Interests, t.TravelStyle),
		Price:    orDefault(t.EstimatedPrice, PlaceholderPrice),
		Interest: orDefault(t.Interests, PlaceholderInterest),
	}
	if len(t.ImageURLs) > 0 && strings.TrimSpace(t.ImageURLs[0]) != "" {
		card.ImageURL = t.ImageURLs[0]
	}
	if len(t.Itinerary) > 0 && strings.TrimSpace(t.Itinerary[0].Location) != "" {
		card.Location = t.Itinerary[0].Location
	}
	return card
}

// UserSummary is a row of the "latest user signups" grid.
type UserSummary struct {
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// UserSummaries maps users to summaries. A user whose itinerary count was
// never computed shows 0.
func UserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		s := UserSummary{
			ImageURL: orDefault(u.ImageURL, PlaceholderAvatar),
			Name:     orDefault(u.Name, PlaceholderUserName),
		}
		if u.ItineraryCount != nil {
			s.Count = *u.ItineraryCount
		}
		out = append(out, s)
	}
	return out
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// nonBlank returns the values that are not blank, in order. Never nil.
func nonBlank(values ...string) []string {
	out := []string{}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
