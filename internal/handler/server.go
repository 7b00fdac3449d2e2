// Package handler implements the HTTP handlers for the Tourvisto API.
// All handlers are methods on Server and are split into domain-specific
// files (health.go, trip.go, dashboard.go, export.go). Routes wires them
// into a chi router.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Declared here, in the consumer, so tests can inject a mock.
type TripServicer interface {
	ListPaged(ctx context.Context, w domain.Window) ([]domain.Trip, int64, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	GetWithRelated(ctx context.Context, id string, n int) (domain.Trip, []domain.Trip, error)
	Create(ctx context.Context, detail json.RawMessage, imageURLs []string) (domain.Trip, error)
}

// DashboardServicer builds the admin dashboard.
type DashboardServicer interface {
	Dashboard(ctx context.Context) (service.Dashboard, error)
}

// ExportServicer produces the flat itinerary export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips     TripServicer
	dashboard DashboardServicer
	export    ExportServicer
	openAPI   []byte
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(trips TripServicer, dashboard DashboardServicer, export ExportServicer, openAPI []byte, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, dashboard: dashboard, export: export, openAPI: openAPI, log: log}
}

// Routes returns the API router. requireAdmin guards every /api/admin route.
func (s *Server) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/trips", s.ListTrips)
		r.Get("/trips/{id}", s.GetTrip)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/trips", s.ListAdminTrips)
			r.Post("/trips", s.CreateTrip)
			r.Get("/trips/{id}", s.GetTrip)
			r.Get("/dashboard", s.GetDashboard)
			r.Get("/export", s.GetExport)
		})
	})

	return r
}
