// Package repo contains all database access logic for the Tourvisto API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping. Trip rows are
// returned raw; decoding the detail blob is the normalize package's job.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for trip records.
type TripRepo interface {
	// Create inserts a record. rec.ID must be a UUID string.
	// travelStyle feeds the travel-style statistics; pass "" to leave it NULL.
	Create(ctx context.Context, rec domain.RawTripRecord, travelStyle string) (domain.RawTripRecord, error)

	// GetByID retrieves a single record.
	// Returns domain.ErrNotFound if no record has that ID or the ID is not a UUID.
	GetByID(ctx context.Context, id string) (domain.RawTripRecord, error)

	// ListPaged returns one window of records, newest first, plus the total
	// number of records.
	ListPaged(ctx context.Context, limit, offset int) ([]domain.RawTripRecord, int64, error)
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, rec domain.RawTripRecord, travelStyle string) (domain.RawTripRecord, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.RawTripRecord{}, fmt.Errorf("repo.TripRepo.Create: invalid id %q: %w", rec.ID, err)
	}

	const q = `
		INSERT INTO trips (id, trip_detail, image_urls, travel_style)
		VALUES (@id, @trip_detail, @image_urls, NULLIF(@travel_style, ''))
		RETURNING id, trip_detail, image_urls`

	args := pgx.NamedArgs{
		"id":           id,
		"trip_detail":  rec.RawDetailBlob, // nil becomes NULL
		"image_urls":   rec.ImageURLs,
		"travel_style": travelStyle,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.RawTripRecord{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.RawTripRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.RawTripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}

	const q = `
		SELECT id, trip_detail, image_urls
		FROM trips
		WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": uid}))
	if err != nil {
		return domain.RawTripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, limit, offset int) ([]domain.RawTripRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, trip_detail, image_urls
		FROM trips
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit, "offset": offset})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	records := []domain.RawTripRecord{}
	for rows.Next() {
		rec, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return records, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a (id, trip_detail, image_urls) row. NULL trip_detail stays
// nil and NULL image_urls stays a nil slice; defaults are applied later by
// the assembler.
func scanTrip(s scanner) (domain.RawTripRecord, error) {
	var (
		rec domain.RawTripRecord
		id  pgtype.UUID
	)

	if err := s.Scan(&id, &rec.RawDetailBlob, &rec.ImageURLs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RawTripRecord{}, domain.ErrNotFound
		}
		return domain.RawTripRecord{}, err
	}

	rec.ID = uuid.UUID(id.Bytes).String()
	return rec, nil
}
