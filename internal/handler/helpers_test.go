package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/handler"
	"github.com/pkordes/tourvisto/backend/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	listPaged      func(ctx context.Context, w domain.Window) ([]domain.Trip, int64, error)
	getByID        func(ctx context.Context, id string) (domain.Trip, error)
	getWithRelated func(ctx context.Context, id string, n int) (domain.Trip, []domain.Trip, error)
	create         func(ctx context.Context, detail json.RawMessage, imageURLs []string) (domain.Trip, error)
}

func (m *mockTripServicer) ListPaged(ctx context.Context, w domain.Window) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, w)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) GetWithRelated(ctx context.Context, id string, n int) (domain.Trip, []domain.Trip, error) {
	return m.getWithRelated(ctx, id, n)
}
func (m *mockTripServicer) Create(ctx context.Context, detail json.RawMessage, imageURLs []string) (domain.Trip, error) {
	return m.create(ctx, detail, imageURLs)
}

type mockDashboardServicer struct {
	dashboard func(ctx context.Context) (service.Dashboard, error)
}

func (m *mockDashboardServicer) Dashboard(ctx context.Context) (service.Dashboard, error) {
	return m.dashboard(ctx)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks.
var (
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.DashboardServicer = (*mockDashboardServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
)

// allowAll stands in for the admin auth middleware.
func allowAll(next http.Handler) http.Handler { return next }

// deps holds the services a test wants wired; nil fields stay nil.
type deps struct {
	trips     handler.TripServicer
	dashboard handler.DashboardServicer
	export    handler.ExportServicer
}

func newServer(d deps) *handler.Server {
	return handler.NewServer(d.trips, d.dashboard, d.export, []byte("openapi: 3.0.3\n"), nil)
}

// newHTTPHandler wires a Server into its router the way main.go does,
// without the admin guard.
func newHTTPHandler(d deps) http.Handler {
	return newServer(d).Routes(allowAll)
}

func tripFixture(id string) domain.Trip {
	return domain.Trip{
		ID: id,
		TripDetail: domain.TripDetail{
			Name:            "Kyoto in Autumn",
			EstimatedPrice:  "$2,400",
			Duration:        5,
			TravelStyle:     "Cultural",
			Country:         "Japan",
			Interests:       "Food",
			GroupType:       "Couple",
			Budget:          "Mid-range",
			BestTimeToVisit: []string{"October"},
			WeatherInfo:     []string{},
			Itinerary: []domain.DayPlan{
				{Day: 1, Location: "Gion", Activities: []domain.Activity{{Time: "Morning", Description: "Temple walk"}}},
			},
		},
		ImageURLs: []string{"https://img.example/kyoto.jpg"},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body *bytes.Buffer) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}
