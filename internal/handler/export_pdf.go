package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// buildExportPDF renders the export as a printable itinerary booklet: one
// heading per trip followed by its day and activity lines. Rows for the same
// trip are expected to be adjacent, which is how the export service emits them.
func buildExportPDF(rows []domain.ExportRow) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Trip itineraries")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if len(rows) == 0 {
		pdf.Cell(0, 8, "No trips to export.")
		pdf.Ln(8)
	}

	lastTrip := ""
	lastDay := 0
	for i, row := range rows {
		if i == 0 || row.TripID != lastTrip {
			lastTrip, lastDay = row.TripID, 0
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.Cell(0, 8, tr(row.TripName))
			pdf.Ln(8)
			pdf.SetFont("Helvetica", "", 10)
			pdf.Cell(0, 6, tr(tripSummaryLine(row)))
			pdf.Ln(7)
		}
		if row.Day == 0 {
			continue
		}
		if row.Day != lastDay {
			lastDay = row.Day
			pdf.SetFont("Helvetica", "B", 11)
			pdf.Cell(0, 7, tr(dayLine(row)))
			pdf.Ln(7)
			pdf.SetFont("Helvetica", "", 10)
		}
		if row.ActivityTime == "" && row.ActivityDescription == "" {
			continue
		}
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("  %s  %s", row.ActivityTime, row.ActivityDescription)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("handler.buildExportPDF: %w", err)
	}
	return buf.Bytes(), nil
}

func tripSummaryLine(r domain.ExportRow) string {
	line := r.Country
	if r.TravelStyle != "" {
		line += " | " + r.TravelStyle
	}
	if r.Duration > 0 {
		line += " | " + strconv.Itoa(r.Duration) + " days"
	}
	if r.EstimatedPrice != "" {
		line += " | " + r.EstimatedPrice
	}
	return line
}

func dayLine(r domain.ExportRow) string {
	if r.Location == "" {
		return "Day " + strconv.Itoa(r.Day)
	}
	return "Day " + strconv.Itoa(r.Day) + ": " + r.Location
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	body, err := buildExportPDF(rows)
	if err != nil {
		s.writeServiceError(w, r, err, "export not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
