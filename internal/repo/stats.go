package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// StatsRepo computes the dashboard statistics in SQL.
type StatsRepo interface {
	// UsersAndTripsStats returns headline counts, comparing the calendar
	// month containing now (UTC) with the month before it.
	UsersAndTripsStats(ctx context.Context, now time.Time) (domain.DashboardStats, error)

	// UserGrowthPerDay returns sign-ups per UTC day, oldest first.
	UserGrowthPerDay(ctx context.Context) ([]domain.GrowthPoint, error)

	// TripsByTravelStyle counts trips per stored travel style, largest first.
	// Trips without a stored style are not counted, so the result may be empty
	// even when trips exist.
	TripsByTravelStyle(ctx context.Context) ([]domain.StyleCount, error)
}

type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// monthBounds returns the first instant of now's month and of the month before.
func monthBounds(now time.Time) (current, previous time.Time) {
	now = now.UTC()
	current = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return current, current.AddDate(0, -1, 0)
}

func (r *pgStatsRepo) UsersAndTripsStats(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	cur, prev := monthBounds(now)
	args := pgx.NamedArgs{"cur": cur, "prev": prev}

	const usersQ = `
		SELECT
			count(*),
			count(*) FILTER (WHERE joined_at >= @cur),
			count(*) FILTER (WHERE joined_at >= @prev AND joined_at < @cur),
			count(*) FILTER (WHERE role = 'user'),
			count(*) FILTER (WHERE role = 'user' AND joined_at >= @cur),
			count(*) FILTER (WHERE role = 'user' AND joined_at >= @prev AND joined_at < @cur)
		FROM users`

	var s domain.DashboardStats
	err := r.db.QueryRow(ctx, usersQ, args).Scan(
		&s.TotalUsers,
		&s.UsersJoined.CurrentMonth,
		&s.UsersJoined.LastMonth,
		&s.UserRole.Total,
		&s.UserRole.CurrentMonth,
		&s.UserRole.LastMonth,
	)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("repo.StatsRepo.UsersAndTripsStats: users: %w", err)
	}

	const tripsQ = `
		SELECT
			count(*),
			count(*) FILTER (WHERE created_at >= @cur),
			count(*) FILTER (WHERE created_at >= @prev AND created_at < @cur)
		FROM trips`

	err = r.db.QueryRow(ctx, tripsQ, args).Scan(
		&s.TotalTrips,
		&s.TripsCreated.CurrentMonth,
		&s.TripsCreated.LastMonth,
	)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("repo.StatsRepo.UsersAndTripsStats: trips: %w", err)
	}

	return s, nil
}

func (r *pgStatsRepo) UserGrowthPerDay(ctx context.Context) ([]domain.GrowthPoint, error) {
	const q = `
		SELECT to_char(joined_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, count(*)
		FROM users
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.UserGrowthPerDay: %w", err)
	}
	defer rows.Close()

	points := []domain.GrowthPoint{}
	for rows.Next() {
		var p domain.GrowthPoint
		if err := rows.Scan(&p.Day, &p.Count); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.UserGrowthPerDay: scan: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.UserGrowthPerDay: rows: %w", err)
	}
	return points, nil
}

func (r *pgStatsRepo) TripsByTravelStyle(ctx context.Context) ([]domain.StyleCount, error) {
	const q = `
		SELECT btrim(travel_style) AS style, count(*) AS n
		FROM trips
		WHERE travel_style IS NOT NULL AND btrim(travel_style) <> ''
		GROUP BY style
		ORDER BY n DESC, style`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.TripsByTravelStyle: %w", err)
	}
	defer rows.Close()

	counts := []domain.StyleCount{}
	for rows.Next() {
		var c domain.StyleCount
		if err := rows.Scan(&c.TravelStyle, &c.Count); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.TripsByTravelStyle: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.TripsByTravelStyle: rows: %w", err)
	}
	return counts, nil
}
