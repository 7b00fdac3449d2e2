package handler

import (
	"net/http"

	"github.com/pkordes/tourvisto/backend/internal/aggregate"
	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/view"
)

type dashboardResponse struct {
	Stats        domain.DashboardStats    `json:"stats"`
	UserGrowth   []domain.GrowthPoint     `json:"userGrowth"`
	TravelStyles aggregate.StyleBreakdown `json:"travelStyles"`
	Trips        []view.TripCard          `json:"trips"`
	Users        []view.UserSummary       `json:"users"`
}

// GetDashboard handles GET /api/admin/dashboard.
// Failed data sources arrive as zeros and empty lists; only a cancelled
// request reaches the error path.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.Dashboard(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "dashboard not found")
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Stats:        d.Stats,
		UserGrowth:   d.UserGrowth,
		TravelStyles: d.TravelStyles,
		Trips:        view.TripCards(d.Trips),
		Users:        view.UserSummaries(d.Users),
	})
}
