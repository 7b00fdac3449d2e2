// Package aggregate computes summary views over collections of trips.
// Every function is a pure, total transform: an empty input yields an empty
// (non-nil) output.
package aggregate

import (
	"strings"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// CountByTravelStyle groups trips by their trimmed travel style.
// Trips whose style is empty or whitespace are not counted. Buckets are
// ordered by the first appearance of each style in trips.
func CountByTravelStyle(trips []domain.Trip) []domain.StyleCount {
	out := []domain.StyleCount{}
	index := make(map[string]int)
	for _, t := range trips {
		style := strings.TrimSpace(t.TravelStyle)
		if style == "" {
			continue
		}
		if i, ok := index[style]; ok {
			out[i].Count++
			continue
		}
		index[style] = len(out)
		out = append(out, domain.StyleCount{TravelStyle: style, Count: 1})
	}
	return out
}

// Source names the tier a StyleBreakdown was resolved from.
type Source string

const (
	SourceExternal Source = "external"
	SourceLocal    Source = "local"
	SourceSample   Source = "sample"
)

// StyleBreakdown is the travel-style chart data together with its origin.
type StyleBreakdown struct {
	Source Source              `json:"source"`
	Items  []domain.StyleCount `json:"items"`
}

// sampleStyles is shown when neither the statistics backend nor the loaded
// trips carry any travel style.
var sampleStyles = []domain.StyleCount{
	{TravelStyle: "Adventure", Count: 15},
	{TravelStyle: "Leisure", Count: 22},
	{TravelStyle: "Cultural", Count: 8},
	{TravelStyle: "Business", Count: 12},
	{TravelStyle: "Luxury", Count: 5},
}

// SampleStyleBreakdown returns a fresh copy of the static sample data.
func SampleStyleBreakdown() []domain.StyleCount {
	out := make([]domain.StyleCount, len(sampleStyles))
	copy(out, sampleStyles)
	return out
}

// ResolveStyleBreakdown picks the first non-empty tier: the external
// statistics as given, then CountByTravelStyle over trips, then the sample.
// A non-empty external result is never recomputed or overridden.
func ResolveStyleBreakdown(external []domain.StyleCount, trips []domain.Trip) StyleBreakdown {
	if len(external) > 0 {
		return StyleBreakdown{Source: SourceExternal, Items: external}
	}
	if local := CountByTravelStyle(trips); len(local) > 0 {
		return StyleBreakdown{Source: SourceLocal, Items: local}
	}
	return StyleBreakdown{Source: SourceSample, Items: SampleStyleBreakdown()}
}
