package view

import (
	"fmt"
	"strings"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// Pill is a labelled chip on the trip detail header.
type Pill struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// InfoSection is a titled list on the trip detail page.
type InfoSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// TripDetailView is everything the detail page renders besides the trip itself.
type TripDetailView struct {
	Headline  string        `json:"headline"`
	Locations string        `json:"locations"`
	Pills     []Pill        `json:"pills"`
	VisitInfo []InfoSection `json:"visitInfo"`
}

// NewTripDetailView derives header text, pills and visit sections from t.
func NewTripDetailView(t domain.Trip) TripDetailView {
	return TripDetailView{
		Headline:  Headline(t.TripDetail),
		Locations: Locations(t.Itinerary),
		Pills:     Pills(t.TripDetail),
		VisitInfo: VisitSections(t.TripDetail),
	}
}

// Pills returns the non-blank style, group, budget and interest chips.
func Pills(d domain.TripDetail) []Pill {
	candidates := []Pill{
		{Kind: "travelStyle", Text: d.TravelStyle},
		{Kind: "groupType", Text: d.GroupType},
		{Kind: "budget", Text: d.Budget},
		{Kind: "interests", Text: d.Interests},
	}
	out := []Pill{}
	for _, p := range candidates {
		if strings.TrimSpace(p.Text) != "" {
			out = append(out, p)
		}
	}
	return out
}

// VisitSections returns the "best time" and "weather" lists that have items.
func VisitSections(d domain.TripDetail) []InfoSection {
	out := []InfoSection{}
	if len(d.BestTimeToVisit) > 0 {
		out = append(out, InfoSection{Title: "Best Time to Visit:", Items: d.BestTimeToVisit})
	}
	if len(d.WeatherInfo) > 0 {
		out = append(out, InfoSection{Title: "Weather:", Items: d.WeatherInfo})
	}
	return out
}

// Locations joins the first few itinerary locations, or "Locations TBD".
func Locations(days []domain.DayPlan) string {
	var names []string
	for _, d := range days {
		if len(names) == maxLocationsInHeader {
			break
		}
		names = append(names, d.Location)
	}
	if joined := strings.Join(names, ", "); strings.TrimSpace(strings.ReplaceAll(joined, ",", "")) != "" {
		return joined
	}
	return "Locations TBD"
}

// Headline renders e.g. "5-Day Japan Cultural Trip".
func Headline(d domain.TripDetail) string {
	return fmt.Sprintf("%d-Day %s %s Trip", d.Duration, orDefault(d.Country, "Adventure"), orDefault(d.TravelStyle, "Travel"))
}
