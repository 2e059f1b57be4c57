package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"venuely/internal/reservations/service"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/logger"
	"venuely/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockReservationService struct {
	createFn            func(ctx context.Context, r *model.Reservation) error
	getByIDFn           func(ctx context.Context, id string) (*model.Reservation, error)
	getByCodeFn         func(ctx context.Context, code string) (*model.Reservation, error)
	getByUserFn         func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	searchByResourceFn  func(ctx context.Context, kind model.ResourceKind, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error)
	searchByVenueFn     func(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error)
	checkAvailabilityFn func(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*service.Availability, error)
	updateFn            func(ctx context.Context, id string, updates *model.ReservationUpdate) error
	confirmFn           func(ctx context.Context, id string) (*model.Reservation, error)
	cancelFn            func(ctx context.Context, id string, reason string) (*model.Reservation, error)
	completeFn          func(ctx context.Context, id string) (*model.Reservation, error)
	deleteFn            func(ctx context.Context, id string) error
}

func (m *mockReservationService) Create(ctx context.Context, r *model.Reservation) error {
	return m.createFn(ctx, r)
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReservationService) GetByConfirmationCode(ctx context.Context, code string) (*model.Reservation, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockReservationService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	return m.getByUserFn(ctx, userID, limit, offset)
}

func (m *mockReservationService) SearchByResource(ctx context.Context, kind model.ResourceKind, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error) {
	return m.searchByResourceFn(ctx, kind, resourceID, from, to, limit, offset)
}

func (m *mockReservationService) SearchByVenue(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error) {
	return m.searchByVenueFn(ctx, venueID, from, to, limit, offset)
}

func (m *mockReservationService) CheckAvailability(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*service.Availability, error) {
	return m.checkAvailabilityFn(ctx, kind, resourceID, start, end)
}

func (m *mockReservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) error {
	return m.updateFn(ctx, id, updates)
}

func (m *mockReservationService) Confirm(ctx context.Context, id string) (*model.Reservation, error) {
	return m.confirmFn(ctx, id)
}

func (m *mockReservationService) Cancel(ctx context.Context, id string, reason string) (*model.Reservation, error) {
	return m.cancelFn(ctx, id, reason)
}

func (m *mockReservationService) Complete(ctx context.Context, id string) (*model.Reservation, error) {
	return m.completeFn(ctx, id)
}

func (m *mockReservationService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newTestRouter(svc service.ReservationService) *httprouter.Router {
	cfg := &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
	router := httprouter.New()
	NewReservationHandler(svc, cfg).RegisterRoutes(router)
	return router
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockReservationService{
			createFn: func(ctx context.Context, r *model.Reservation) error {
				r.ID = "65f000000000000000000099"
				r.Status = model.StatusPending
				r.ConfirmationCode = "ABCD2345"
				return nil
			},
		}
		router := newTestRouter(svc)

		body := `{"user_id":"user-42","venue_id":"65f000000000000000000001","resource_kind":"sports_facility","resource_id":"65f000000000000000000002","start_time":"2026-03-02T10:00:00Z","end_time":"2026-03-02T11:00:00Z","number_of_people":2,"customer_details":{"name":"Dana Levi","email":"dana@example.com","phone":"+972501234567"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Data model.Reservation `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.ConfirmationCode != "ABCD2345" {
			t.Errorf("expected confirmation code in response, got %q", resp.Data.ConfirmationCode)
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		svc := &mockReservationService{
			createFn: func(ctx context.Context, r *model.Reservation) error {
				return apperrors.Conflict("Requested interval conflicts with an existing reservation")
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		router := newTestRouter(&mockReservationService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLifecycleHandlers(t *testing.T) {
	t.Run("confirm terminal maps to 412", func(t *testing.T) {
		svc := &mockReservationService{
			confirmFn: func(ctx context.Context, id string) (*model.Reservation, error) {
				return nil, apperrors.PreconditionFailed("Only pending reservations can be confirmed, current status: cancelled")
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/id/65f000000000000000000099/confirm", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusPreconditionFailed {
			t.Fatalf("expected 412, got %d", rec.Code)
		}
	})

	t.Run("cancel passes reason through", func(t *testing.T) {
		var gotReason string
		svc := &mockReservationService{
			cancelFn: func(ctx context.Context, id string, reason string) (*model.Reservation, error) {
				gotReason = reason
				return &model.Reservation{ID: id, Status: model.StatusCancelled}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/id/65f000000000000000000099/cancel", strings.NewReader(`{"reason":"weather"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotReason != "weather" {
			t.Errorf("expected reason passed through, got %q", gotReason)
		}
	})

	t.Run("cancel without body", func(t *testing.T) {
		svc := &mockReservationService{
			cancelFn: func(ctx context.Context, id string, reason string) (*model.Reservation, error) {
				return &model.Reservation{ID: id, Status: model.StatusCancelled}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/id/65f000000000000000000099/cancel", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestAvailabilityHandler(t *testing.T) {
	t.Run("requires start_time", func(t *testing.T) {
		router := newTestRouter(&mockReservationService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/resource/sports_facility/65f000000000000000000002/availability", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns quote", func(t *testing.T) {
		svc := &mockReservationService{
			checkAvailabilityFn: func(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*service.Availability, error) {
				return &service.Availability{Available: true, QuotedPriceCents: 6000}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/resource/sports_facility/65f000000000000000000002/availability?start_time=2026-03-02T10:00:00Z&end_time=2026-03-02T11:30:00Z", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Data service.Availability `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Data.Available || resp.Data.QuotedPriceCents != 6000 {
			t.Errorf("unexpected availability payload: %+v", resp.Data)
		}
	})
}

func TestGetByUserHandler(t *testing.T) {
	svc := &mockReservationService{
		getByUserFn: func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
			return []*model.Reservation{{ID: "65f000000000000000000099", UserID: userID}}, 1, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/user/user-42?limit=10&offset=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []*model.Reservation `json:"data"`
		TotalCount int64                `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Data) != 1 {
		t.Errorf("unexpected paginated payload: total=%d items=%d", resp.TotalCount, len(resp.Data))
	}
}

func TestDeleteHandler(t *testing.T) {
	svc := &mockReservationService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/id/65f000000000000000000099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
