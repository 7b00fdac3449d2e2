package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/normalize"
	"github.com/pkordes/tourvisto/backend/internal/repo"
)

// exportBatchSize is how many records each repo call reads during export.
const exportBatchSize = 200

// ExportService produces a flat export of every decodable trip itinerary.
type ExportService struct {
	trips     repo.TripRepo
	assembler *normalize.Assembler
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo, assembler *normalize.Assembler) *ExportService {
	return &ExportService{trips: trips, assembler: assembler}
}

// Export returns one ExportRow per activity across all trips, newest trip
// first. A day without activities contributes one row with empty activity
// fields; a trip without an itinerary contributes one row with empty day
// fields. Undecodable records are reported and left out.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	for offset := 0; ; offset += exportBatchSize {
		records, _, err := s.trips.ListPaged(ctx, exportBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		for _, trip := range s.assembler.Assemble(records) {
			rows = append(rows, exportRows(trip)...)
		}
		if len(records) < exportBatchSize {
			return rows, nil
		}
	}
}

func exportRows(t domain.Trip) []domain.ExportRow {
	base := domain.ExportRow{
		TripID:         t.ID,
		TripName:       t.Name,
		Country:        t.Country,
		TravelStyle:    t.TravelStyle,
		Duration:       t.Duration,
		EstimatedPrice: t.EstimatedPrice,
	}
	if len(t.Itinerary) == 0 {
		return []domain.ExportRow{base}
	}

	var rows []domain.ExportRow
	for _, day := range t.Itinerary {
		row := base
		row.Day = day.Day
		row.Location = day.Location
		if len(day.Activities) == 0 {
			rows = append(rows, row)
			continue
		}
		for _, a := range day.Activities {
			row.ActivityTime = a.Time
			row.ActivityDescription = a.Description
			rows = append(rows, row)
		}
	}
	return rows
}
