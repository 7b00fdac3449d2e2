package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tourvisto/backend/internal/aggregate"
	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/normalize"
	"github.com/pkordes/tourvisto/backend/internal/repo"
)

const (
	// dashboardTripSample is how many recent trips feed the local
	// travel-style aggregation and the trip cards.
	dashboardTripSample  = 50
	dashboardRecentUsers = 4
)

// StatsCache stores the backend-computed statistics between requests.
// *cache.StatsCache satisfies it.
type StatsCache interface {
	Get(ctx context.Context) (domain.StatsSnapshot, bool, error)
	Set(ctx context.Context, snap domain.StatsSnapshot) error
}

// Dashboard is everything the admin dashboard shows.
type Dashboard struct {
	Stats        domain.DashboardStats
	UserGrowth   []domain.GrowthPoint
	TravelStyles aggregate.StyleBreakdown
	Trips        []domain.Trip
	Users        []domain.User
}

// DashboardService assembles the admin dashboard.
type DashboardService struct {
	stats     repo.StatsRepo
	trips     repo.TripRepo
	users     repo.UserRepo
	assembler *normalize.Assembler
	cache     StatsCache
	log       *slog.Logger
	now       func() time.Time
}

// NewDashboardService constructs a DashboardService without a cache.
func NewDashboardService(stats repo.StatsRepo, trips repo.TripRepo, users repo.UserRepo, assembler *normalize.Assembler, log *slog.Logger) *DashboardService {
	return &DashboardService{
		stats:     stats,
		trips:     trips,
		users:     users,
		assembler: assembler,
		log:       log,
		now:       time.Now,
	}
}

// WithCache makes s read statistics through c.
func (s *DashboardService) WithCache(c StatsCache) *DashboardService {
	s.cache = c
	return s
}

// Dashboard loads statistics, recent trips and recent users concurrently.
// A failing source is logged and rendered empty: zero statistics, no trips
// or no users. The travel-style breakdown prefers the stored statistics, then
// counts over the loaded trips, then sample data. Only a cancelled ctx fails
// the call.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		snap  domain.StatsSnapshot
		trips []domain.Trip
		users []domain.User
	)

	// Plain group: a failed source must not cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if snap, err = s.snapshot(ctx); err != nil {
			s.sourceFailed(ctx, "stats", err)
			snap = domain.StatsSnapshot{}
		}
		return nil
	})
	g.Go(func() error {
		records, _, err := s.trips.ListPaged(ctx, dashboardTripSample, 0)
		if err != nil {
			s.sourceFailed(ctx, "trips", err)
			return nil
		}
		trips = s.assembler.Assemble(records)
		return nil
	})
	g.Go(func() error {
		var err error
		if users, err = s.users.ListRecent(ctx, dashboardRecentUsers, 0); err != nil {
			s.sourceFailed(ctx, "users", err)
			users = nil
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Dashboard: %w", err)
	}

	trips = nonNil(trips)
	return Dashboard{
		Stats:        snap.Stats,
		UserGrowth:   nonNil(snap.UserGrowth),
		TravelStyles: aggregate.ResolveStyleBreakdown(snap.TravelStyles, trips),
		Trips:        trips,
		Users:        nonNil(users),
	}, nil
}

func (s *DashboardService) sourceFailed(ctx context.Context, source string, err error) {
	s.log.ErrorContext(ctx, "dashboard source failed", "source", source, "error", err)
}

// snapshot returns the cached statistics, computing and caching them on a
// miss. Cache failures are logged and never fail the request.
func (s *DashboardService) snapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	if s.cache != nil {
		snap, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "stats cache read failed", "error", err)
		} else if ok {
			return snap, nil
		}
	}

	snap, err := s.computeSnapshot(ctx)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			s.log.WarnContext(ctx, "stats cache write failed", "error", err)
		}
	}
	return snap, nil
}

func (s *DashboardService) computeSnapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	var snap domain.StatsSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Stats, err = s.stats.UsersAndTripsStats(gctx, s.now())
		return err
	})
	g.Go(func() error {
		var err error
		snap.UserGrowth, err = s.stats.UserGrowthPerDay(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.TravelStyles, err = s.stats.TripsByTravelStyle(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.StatsSnapshot{}, err
	}
	return snap, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
