package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/view"
)

const (
	// tripPageSize is the page size of both trip grids.
	tripPageSize = 8
	// relatedTrips is how many trips the detail page suggests.
	relatedTrips = 4
)

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type tripListResponse struct {
	Data       []domain.Trip   `json:"data"`
	Cards      []view.TripCard `json:"cards"`
	Pagination pagination      `json:"pagination"`
}

type tripDetailResponse struct {
	Trip domain.Trip `json:"trip"`
	view.TripDetailView
	Related []view.TripCard `json:"related"`
}

type createTripRequest struct {
	TripDetail json.RawMessage `json:"tripDetail"`
	ImageURLs  []string        `json:"imageUrls"`
}

// optionalIntQuery binds an optional integer query parameter. Absent or
// unparseable values yield nil so callers fall back to their default.
func optionalIntQuery(r *http.Request, name string) *int {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil
	}
	return v
}

// ListTrips handles GET /api/trips?page=.
// Pages hold 8 trips; a missing, non-numeric or non-positive page means page 1.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	// The window does not depend on the total, which is only known after the query.
	win := domain.PaginationWindow(tripPageSize, optionalIntQuery(r, "page"))
	s.listTrips(w, r, win)
}

// ListAdminTrips handles GET /api/admin/trips?page=&limit=.
// limit defaults to 8 and is capped at 100.
func (s *Server) ListAdminTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(optionalIntQuery(r, "page"), optionalIntQuery(r, "limit"), tripPageSize)
	s.listTrips(w, r, params.Window())
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request, win domain.Window) {
	trips, total, err := s.trips.ListPaged(r.Context(), win)
	if err != nil {
		s.writeServiceError(w, r, err, "trips not found")
		return
	}

	page := 1
	if win.Limit > 0 {
		page = win.Offset/win.Limit + 1
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:  trips,
		Cards: view.TripCards(trips),
		Pagination: pagination{
			Page:       page,
			Limit:      win.Limit,
			Total:      int(total),
			TotalPages: domain.TotalPages(int(total), win.Limit),
		},
	})
}

// GetTrip handles GET /api/trips/{id} and GET /api/admin/trips/{id}.
// A trip whose stored detail cannot be decoded is reported as not found.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, related, err := s.trips.GetWithRelated(r.Context(), chi.URLParam(r, "id"), relatedTrips)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripDetailResponse{
		Trip:           trip,
		TripDetailView: view.NewTripDetailView(trip),
		Related:        view.TripCards(related),
	})
}

// CreateTrip handles POST /api/admin/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds the size limit")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be a JSON object")
		return
	}

	created, err := s.trips.Create(r.Context(), req.TripDetail, req.ImageURLs)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
