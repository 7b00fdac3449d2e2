package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourvisto/backend/internal/domain"
	"github.com/pkordes/tourvisto/backend/internal/middleware"
)

type listResponse struct {
	Data  []domain.Trip `json:"data"`
	Cards []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		ImageURL string   `json:"imageUrl"`
		Location string   `json:"location"`
		Tags     []string `json:"tags"`
	} `json:"cards"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

// ---- GET /api/trips --------------------------------------------------------

func TestListTrips_PageWindow(t *testing.T) {
	tests := []struct {
		query      string
		wantOffset int
		wantPage   int
	}{
		{"", 0, 1},
		{"?page=1", 0, 1},
		{"?page=3", 16, 3},
		{"?page=0", 0, 1},
		{"?page=-2", 0, 1},
		{"?page=abc", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got domain.Window
			svc := &mockTripServicer{
				listPaged: func(_ context.Context, w domain.Window) ([]domain.Trip, int64, error) {
					got = w
					return []domain.Trip{}, 20, nil
				},
			}

			rec := httptest.NewRecorder()
			newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, domain.Window{Offset: tt.wantOffset, Limit: 8}, got)

			var resp listResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantPage, resp.Pagination.Page)
			assert.Equal(t, 8, resp.Pagination.Limit)
			assert.Equal(t, 20, resp.Pagination.Total)
			assert.Equal(t, 3, resp.Pagination.TotalPages)
		})
	}
}

func TestListTrips_DataAndCards(t *testing.T) {
	bare := domain.Trip{ID: "t2", ImageURLs: []string{}}
	svc := &mockTripServicer{
		listPaged: func(context.Context, domain.Window) ([]domain.Trip, int64, error) {
			return []domain.Trip{tripFixture("t1"), bare}, 2, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Kyoto in Autumn", resp.Data[0].Name)
	require.Len(t, resp.Cards, 2)
	assert.Equal(t, "Gion", resp.Cards[0].Location)
	assert.Equal(t, []string{"Food", "Cultural"}, resp.Cards[0].Tags)
	assert.Equal(t, "Unnamed Trip", resp.Cards[1].Name)
	assert.Equal(t, "/assets/images/placeholder.jpg", resp.Cards[1].ImageURL)
}

func TestListTrips_EmptyIsArray(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(context.Context, domain.Window) ([]domain.Trip, int64, error) {
			return []domain.Trip{}, 0, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.Contains(t, rec.Body.String(), `"cards":[]`)
}

func TestListTrips_ServiceError_500(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(context.Context, domain.Window) ([]domain.Trip, int64, error) {
			return nil, 0, errors.New("connection reset")
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec.Body)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection reset", "causes stay in the log")
}

// ---- GET /api/admin/trips --------------------------------------------------

func TestListAdminTrips_LimitIsCapped(t *testing.T) {
	var got domain.Window
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, w domain.Window) ([]domain.Trip, int64, error) {
			got = w
			return []domain.Trip{}, 0, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/trips?page=2&limit=500", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Window{Offset: 100, Limit: 100}, got)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(context.Context, domain.Window) ([]domain.Trip, int64, error) {
			t.Fatal("service must not be reached without a token")
			return nil, 0, nil
		},
	}
	srv := newServer(deps{trips: svc})
	h := srv.Routes(middleware.NewAuthHandler([]byte("secret"), domain.RoleAdmin))

	for _, path := range []string{"/api/admin/trips", "/api/admin/dashboard", "/api/admin/export"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	// Public routes stay open.
	svc.listPaged = func(context.Context, domain.Window) ([]domain.Trip, int64, error) {
		return []domain.Trip{}, 0, nil
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTrips_HugePage_OffsetNeverNegative(t *testing.T) {
	var got domain.Window
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, w domain.Window) ([]domain.Trip, int64, error) {
			got = w
			return []domain.Trip{}, 5, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips?page=1152921504606846978", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, got.Offset, 0)
	assert.Equal(t, 8, got.Limit)
}

// ---- GET /api/trips/{id} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	var gotID string
	var gotN int
	svc := &mockTripServicer{
		getWithRelated: func(_ context.Context, id string, n int) (domain.Trip, []domain.Trip, error) {
			gotID, gotN = id, n
			return tripFixture(id), []domain.Trip{tripFixture("r1")}, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips/t1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", gotID)
	assert.Equal(t, 4, gotN)

	var resp struct {
		Trip      domain.Trip `json:"trip"`
		Headline  string      `json:"headline"`
		Locations string      `json:"locations"`
		Pills     []struct {
			Text string `json:"text"`
		} `json:"pills"`
		VisitInfo []struct {
			Title string `json:"title"`
		} `json:"visitInfo"`
		Related []struct {
			ID string `json:"id"`
		} `json:"related"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "t1", resp.Trip.ID)
	assert.Equal(t, "5-Day Japan Cultural Trip", resp.Headline)
	assert.Equal(t, "Gion", resp.Locations)
	assert.Len(t, resp.Pills, 4)
	require.Len(t, resp.VisitInfo, 1)
	require.Len(t, resp.Related, 1)
	assert.Equal(t, "r1", resp.Related[0].ID)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getWithRelated: func(context.Context, string, int) (domain.Trip, []domain.Trip, error) {
			return domain.Trip{}, nil, fmt.Errorf("service.TripService.GetWithRelated: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec.Body).Error.Code)
}

// ---- POST /api/admin/trips -------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	var gotDetail json.RawMessage
	var gotURLs []string
	svc := &mockTripServicer{
		create: func(_ context.Context, detail json.RawMessage, urls []string) (domain.Trip, error) {
			gotDetail, gotURLs = detail, urls
			return tripFixture("new-id"), nil
		},
	}

	body := jsonBody(t, map[string]any{
		"tripDetail": map[string]any{"name": "Kyoto in Autumn"},
		"imageUrls":  []string{"a.jpg"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"Kyoto in Autumn"}`, string(gotDetail))
	assert.Equal(t, []string{"a.jpg"}, gotURLs)

	var created domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "new-id", created.ID)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, json.RawMessage, []string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: imageUrls[0] is blank", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/trips", strings.NewReader(`{"tripDetail":{"name":"x"},"imageUrls":[" "]}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec.Body)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "imageUrls[0] is blank", body.Error.Message)
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, json.RawMessage, []string) (domain.Trip, error) {
			t.Fatal("service must not be called")
			return domain.Trip{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/trips", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTrip_413_BodyTooLarge(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, json.RawMessage, []string) (domain.Trip, error) {
			t.Fatal("service must not be called")
			return domain.Trip{}, nil
		},
	}
	h := middleware.NewMaxBodySizeHandler(64)(newHTTPHandler(deps{trips: svc}))

	payload := `{"tripDetail":{"name":"` + strings.Repeat("x", 200) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/trips", strings.NewReader(payload))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "payload_too_large", decodeError(t, rec.Body).Error.Code)
}
