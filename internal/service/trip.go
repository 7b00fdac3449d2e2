// Package service contains the business logic for the Tourvisto API.
// Services validate inputs, orchestrate repo calls, and turn raw trip records
// into domain.Trip values through the normalize package.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/normalize"
	"github.com/pkordes/tourvisto/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo      repo.TripRepo
	assembler *normalize.Assembler
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// Records that fail to decode are reported through assembler.
func NewTripService(r repo.TripRepo, assembler *normalize.Assembler) *TripService {
	return &TripService{repo: r, assembler: assembler}
}

// ListPaged returns the decodable trips in w, newest first, and the total
// number of stored records. Undecodable records are dropped, so a page may
// hold fewer than w.Limit trips.
func (s *TripService) ListPaged(ctx context.Context, w domain.Window) ([]domain.Trip, int64, error) {
	records, total, err := s.repo.ListPaged(ctx, w.Limit, w.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	return s.assembler.Assemble(records), total, nil
}

// GetByID returns a single trip. A stored record whose detail cannot be
// decoded is reported and treated as missing: domain.ErrNotFound.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	trip, ok := s.assembler.AssembleOne(rec)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: undecodable record %s: %w", id, domain.ErrNotFound)
	}
	return trip, nil
}

// GetWithRelated returns the trip with the given id together with the first
// n trips of the listing, fetched concurrently. The listing is not filtered,
// so it may include the trip itself.
func (s *TripService) GetWithRelated(ctx context.Context, id string, n int) (domain.Trip, []domain.Trip, error) {
	var (
		trip    domain.Trip
		related []domain.Trip
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trip, err = s.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		related, _, err = s.ListPaged(gctx, domain.Window{Offset: 0, Limit: n})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.GetWithRelated: %w", err)
	}
	return trip, related, nil
}

// Create validates detail against the trip-detail schema, then stores it
// compacted under a new ID together with imageURLs.
// Returns domain.ErrValidation if detail or imageURLs are unacceptable.
func (s *TripService) Create(ctx context.Context, detail json.RawMessage, imageURLs []string) (domain.Trip, error) {
	blob, err := validateTripDetail(detail)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	urls, err := validateImageURLs(imageURLs)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	decoded, err := normalize.Decode(&blob)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: %w", domain.ErrValidation, err)
	}

	rec := domain.RawTripRecord{ID: uuid.NewString(), RawDetailBlob: &blob, ImageURLs: urls}
	stored, err := s.repo.Create(ctx, rec, strings.TrimSpace(decoded.TravelStyle))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip, ok := s.assembler.AssembleOne(stored)
	if !ok {
		return domain.Trip{}, errors.New("service.TripService.Create: stored record does not decode")
	}
	return trip, nil
}

// validateTripDetail checks detail against the schema and returns it
// compacted, ready to store.
func validateTripDetail(detail json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(detail)) == 0 {
		return "", fmt.Errorf("%w: tripDetail is required", domain.ErrValidation)
	}

	result, err := compiledTripDetailSchema.Validate(gojsonschema.NewBytesLoader(detail))
	if err != nil {
		return "", fmt.Errorf("%w: tripDetail is not valid JSON", domain.ErrValidation)
	}
	if !result.Valid() {
		return "", fmt.Errorf("%w: tripDetail: %s", domain.ErrValidation, schemaErrors(result))
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, detail); err != nil {
		return "", fmt.Errorf("%w: tripDetail is not valid JSON", domain.ErrValidation)
	}
	return buf.String(), nil
}

// validateImageURLs trims each URL and rejects blanks. The result is never nil.
func validateImageURLs(urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for i, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			return nil, fmt.Errorf("%w: imageUrls[%d] is blank", domain.ErrValidation, i)
		}
		out = append(out, u)
	}
	return out, nil
}
