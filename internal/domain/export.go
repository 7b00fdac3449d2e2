package domain

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with trip and day
// fields repeated. A day without activities yields one row with empty
// activity fields; a trip without an itinerary yields one row with Day == 0.
type ExportRow struct {
	// Trip fields, repeated for every row of the trip.
	TripID         string
	TripName       string
	Country        string
	TravelStyle    string
	Duration       int
	EstimatedPrice string

	// Day fields. Zero values when the trip has no itinerary.
	Day      int
	Location string

	// Activity fields. Empty when the day has no activities.
	ActivityTime        string
	ActivityDescription string
}
