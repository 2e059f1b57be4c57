package service

import (
	"context"
	"io"
	"testing"
	venueserrors "venuely/internal/venues/errors"
	"venuely/internal/venues/validator"
	"venuely/pkg/config"
	mongotx "venuely/pkg/db/mongo"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/logger"
	"venuely/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockVenueRepo struct {
	createFn      func(ctx context.Context, venue *model.Venue) error
	findByIDFn    func(ctx context.Context, id string) (*model.Venue, error)
	findAllFn     func(ctx context.Context, limit int, offset int64) ([]*model.Venue, error)
	findByOwnerFn func(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error)
	searchFn      func(ctx context.Context, cities []string, venueType model.VenueType, limit int, offset int64) ([]*model.Venue, error)
	updateFn      func(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error)
	softDeleteFn  func(ctx context.Context, id string) error
	countFn       func(ctx context.Context) (int64, error)
}

func (m *mockVenueRepo) Create(ctx context.Context, venue *model.Venue) error {
	if m.createFn != nil {
		return m.createFn(ctx, venue)
	}
	venue.ID = "65f000000000000000000001"
	return nil
}

func (m *mockVenueRepo) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, venueserrors.ErrNotFound
}

func (m *mockVenueRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockVenueRepo) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error) {
	if m.findByOwnerFn != nil {
		return m.findByOwnerFn(ctx, ownerID, limit, offset)
	}
	return nil, nil
}

func (m *mockVenueRepo) Search(ctx context.Context, cities []string, venueType model.VenueType, limit int, offset int64) ([]*model.Venue, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, cities, venueType, limit, offset)
	}
	return nil, nil
}

func (m *mockVenueRepo) Update(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, venue)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockVenueRepo) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id)
	}
	return nil
}

func (m *mockVenueRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockVenueRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestVenueService(repo *mockVenueRepo) VenueService {
	cfg := testConfig()
	return NewVenueService(repo, validator.NewVenueValidator(cfg.Log), cfg)
}

func validVenue() *model.Venue {
	return &model.Venue{
		OwnerID: "owner-1",
		Name:    "Harbor Tennis Club",
		Type:    model.VenueSports,
		Address: "12 Marina Rd",
		City:    "tel aviv",
		Phone:   "+972501234567",
		Email:   "Info@Harbor.example",
	}
}

func TestVenueCreate(t *testing.T) {
	t.Run("defaults timezone and country from phone", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})
		venue := validVenue()

		if err := svc.Create(context.Background(), venue); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if venue.TimeZone != "Asia/Jerusalem" {
			t.Errorf("expected inferred timezone Asia/Jerusalem, got %s", venue.TimeZone)
		}
		if venue.Country != "IL" {
			t.Errorf("expected inferred country IL, got %s", venue.Country)
		}
		if !venue.IsActive {
			t.Error("new venue must start active")
		}
		if venue.Email != "info@harbor.example" {
			t.Errorf("expected lowercased email, got %s", venue.Email)
		}
	})

	t.Run("explicit timezone preserved", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})
		venue := validVenue()
		venue.TimeZone = "Europe/London"

		if err := svc.Create(context.Background(), venue); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if venue.TimeZone != "Europe/London" {
			t.Errorf("expected timezone untouched, got %s", venue.TimeZone)
		}
	})

	t.Run("invalid venue rejected", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})
		venue := validVenue()
		venue.Phone = "not-a-phone"

		err := svc.Create(context.Background(), venue)
		if err == nil {
			t.Fatal("expected validation error, got nil")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected VALIDATION_ERROR, got %s", apperrors.AsAppError(err).Code)
		}
	})

	t.Run("bad type rejected", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})
		venue := validVenue()
		venue.Type = "arcade"

		if err := svc.Create(context.Background(), venue); err == nil {
			t.Fatal("expected validation error for unknown venue type")
		}
	})
}

func TestVenueSearch(t *testing.T) {
	t.Run("normalizes cities", func(t *testing.T) {
		var gotCities []string
		repo := &mockVenueRepo{
			searchFn: func(ctx context.Context, cities []string, venueType model.VenueType, limit int, offset int64) ([]*model.Venue, error) {
				gotCities = cities
				return []*model.Venue{{ID: "65f000000000000000000001"}}, nil
			},
		}
		svc := newTestVenueService(repo)

		results, err := svc.Search(context.Background(), []string{"  Tel Aviv ", "HAIFA"}, "sports", 10, 0)
		if err != nil {
			t.Fatalf("Search returned error: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 result, got %d", len(results))
		}
		if len(gotCities) != 2 || gotCities[0] != "tel aviv" || gotCities[1] != "haifa" {
			t.Errorf("expected normalized cities, got %v", gotCities)
		}
	})

	t.Run("rejects empty criteria", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})

		if _, err := svc.Search(context.Background(), nil, "", 10, 0); err == nil {
			t.Fatal("expected error for empty cities")
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})

		if _, err := svc.Search(context.Background(), []string{"haifa"}, "arcade", 10, 0); err == nil {
			t.Fatal("expected error for unknown venue type")
		}
	})
}

func TestVenueUpdate(t *testing.T) {
	existing := func() *model.Venue {
		v := validVenue()
		v.ID = "65f000000000000000000001"
		v.City = "tel aviv"
		v.TimeZone = "Asia/Jerusalem"
		v.Country = "IL"
		v.IsActive = true
		return v
	}

	t.Run("merges partial update", func(t *testing.T) {
		var written *model.Venue
		repo := &mockVenueRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.Venue, error) {
				return existing(), nil
			},
			updateFn: func(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error) {
				written = venue
				return &mongo.UpdateResult{MatchedCount: 1}, nil
			},
		}
		svc := newTestVenueService(repo)

		inactive := false
		err := svc.Update(context.Background(), "65f000000000000000000001", &model.VenueUpdate{
			Name:     "Harbor Padel Club",
			IsActive: &inactive,
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if written.Name != "Harbor Padel Club" {
			t.Errorf("expected name updated, got %s", written.Name)
		}
		if written.IsActive {
			t.Error("expected venue deactivated")
		}
		if written.City != "tel aviv" || written.Phone != "+972501234567" {
			t.Error("expected untouched fields preserved")
		}
		if written.Type != model.VenueSports {
			t.Error("venue type must be immutable")
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestVenueService(&mockVenueRepo{})

		err := svc.Update(context.Background(), "65f000000000000000000001", &model.VenueUpdate{Name: "X Club"})
		if err == nil {
			t.Fatal("expected not found error")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
			t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
		}
	})
}
