package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "country", "travel_style", "duration", "estimated_price",
	"day", "location", "activity_time", "activity_description",
}

type exportRow struct {
	TripID              string `json:"tripId"`
	TripName            string `json:"tripName"`
	Country             string `json:"country"`
	TravelStyle         string `json:"travelStyle"`
	Duration            int    `json:"duration"`
	EstimatedPrice      string `json:"estimatedPrice"`
	Day                 *int   `json:"day,omitempty"`
	Location            string `json:"location,omitempty"`
	ActivityTime        string `json:"activityTime,omitempty"`
	ActivityDescription string `json:"activityDescription,omitempty"`
}

// GetExport handles GET /api/admin/export.
// It returns one row per itinerary activity. Use ?format=csv to receive CSV
// or ?format=pdf for a printable booklet; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "csv", "pdf":
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "format must be csv, json or pdf")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "export not found")
		return
	}

	switch format {
	case "csv":
		writeCSV(w, rows)
		return
	case "pdf":
		s.writePDF(w, r, rows)
		return
	}

	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV buffers the whole export so a mid-stream encoding problem can
// never leave a half-written 200 behind.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// toExportRow maps a domain row to its JSON shape. Day is omitted for trips
// without an itinerary.
func toExportRow(r domain.ExportRow) exportRow {
	out := exportRow{
		TripID:              r.TripID,
		TripName:            r.TripName,
		Country:             r.Country,
		TravelStyle:         r.TravelStyle,
		Duration:            r.Duration,
		EstimatedPrice:      r.EstimatedPrice,
		Location:            r.Location,
		ActivityTime:        r.ActivityTime,
		ActivityDescription: r.ActivityDescription,
	}
	if r.Day > 0 {
		day := r.Day
		out.Day = &day
	}
	return out
}

// csvRecord encodes a row as CSV fields. A zero day is written as "".
func csvRecord(r domain.ExportRow) []string {
	day := ""
	if r.Day > 0 {
		day = strconv.Itoa(r.Day)
	}
	return []string{
		r.TripID,
		r.TripName,
		r.Country,
		r.TravelStyle,
		strconv.Itoa(r.Duration),
		r.EstimatedPrice,
		day,
		r.Location,
		r.ActivityTime,
		r.ActivityDescription,
	}
}
