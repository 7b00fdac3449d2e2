package service_test

import (
	"context"
	"time"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/normalize"
	"github.com/pkordes/tourvisto/backend/internal/repo"
	"github.com/pkordes/tourvisto/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockTripRepo struct {
	create    func(ctx context.Context, rec domain.RawTripRecord, travelStyle string) (domain.RawTripRecord, error)
	getByID   func(ctx context.Context, id string) (domain.RawTripRecord, error)
	listPaged func(ctx context.Context, limit, offset int) ([]domain.RawTripRecord, int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, rec domain.RawTripRecord, travelStyle string) (domain.RawTripRecord, error) {
	return m.create(ctx, rec, travelStyle)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.RawTripRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, limit, offset int) ([]domain.RawTripRecord, int64, error) {
	return m.listPaged(ctx, limit, offset)
}

type mockStatsRepo struct {
	usersAndTrips func(ctx context.Context, now time.Time) (domain.DashboardStats, error)
	growth        func(ctx context.Context) ([]domain.GrowthPoint, error)
	byStyle       func(ctx context.Context) ([]domain.StyleCount, error)
}

func (m *mockStatsRepo) UsersAndTripsStats(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	return m.usersAndTrips(ctx, now)
}
func (m *mockStatsRepo) UserGrowthPerDay(ctx context.Context) ([]domain.GrowthPoint, error) {
	return m.growth(ctx)
}
func (m *mockStatsRepo) TripsByTravelStyle(ctx context.Context) ([]domain.StyleCount, error) {
	return m.byStyle(ctx)
}

type mockUserRepo struct {
	listRecent func(ctx context.Context, limit, offset int) ([]domain.User, error)
}

func (m *mockUserRepo) ListRecent(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return m.listRecent(ctx, limit, offset)
}

type mockStatsCache struct {
	get func(ctx context.Context) (domain.StatsSnapshot, bool, error)
	set func(ctx context.Context, snap domain.StatsSnapshot) error
}

func (m *mockStatsCache) Get(ctx context.Context) (domain.StatsSnapshot, bool, error) {
	return m.get(ctx)
}
func (m *mockStatsCache) Set(ctx context.Context, snap domain.StatsSnapshot) error {
	return m.set(ctx, snap)
}

// compile-time checks.
var (
	_ repo.TripRepo      = (*mockTripRepo)(nil)
	_ repo.StatsRepo     = (*mockStatsRepo)(nil)
	_ repo.UserRepo      = (*mockUserRepo)(nil)
	_ service.StatsCache = (*mockStatsCache)(nil)
)

// recordingReporter collects the IDs of dropped records.
type recordingReporter struct {
	failures []string
}

func (r *recordingReporter) Report(f normalize.DecodeFailure) { r.failures = append(r.failures, f.RecordID) }

func ptr(s string) *string { return &s }

func record(id, blob string) domain.RawTripRecord {
	return domain.RawTripRecord{ID: id, RawDetailBlob: ptr(blob)}
}
