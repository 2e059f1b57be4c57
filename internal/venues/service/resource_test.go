package service

import (
	"context"
	"testing"
	venueserrors "venuely/internal/venues/errors"
	"venuely/internal/venues/validator"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type mockResourceRepo struct {
	createFn       func(ctx context.Context, resource model.ReservableResource) (string, error)
	findByIDFn     func(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error)
	findByVenueFn  func(ctx context.Context, kind model.ResourceKind, venueID string, limit int, offset int64) ([]model.ReservableResource, error)
	countByVenueFn func(ctx context.Context, kind model.ResourceKind, venueID string) (int64, error)
	updateFn       func(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error
	deleteFn       func(ctx context.Context, kind model.ResourceKind, id string) error
}

func (m *mockResourceRepo) Create(ctx context.Context, resource model.ReservableResource) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, resource)
	}
	return "65f000000000000000000002", nil
}

func (m *mockResourceRepo) FindByID(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, kind, id)
	}
	return nil, venueserrors.ErrResourceNotFound
}

func (m *mockResourceRepo) FindByVenue(ctx context.Context, kind model.ResourceKind, venueID string, limit int, offset int64) ([]model.ReservableResource, error) {
	if m.findByVenueFn != nil {
		return m.findByVenueFn(ctx, kind, venueID, limit, offset)
	}
	return nil, nil
}

func (m *mockResourceRepo) CountByVenue(ctx context.Context, kind model.ResourceKind, venueID string) (int64, error) {
	if m.countByVenueFn != nil {
		return m.countByVenueFn(ctx, kind, venueID)
	}
	return 0, nil
}

func (m *mockResourceRepo) Update(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, kind, id, fields)
	}
	return nil
}

func (m *mockResourceRepo) Delete(ctx context.Context, kind model.ResourceKind, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, kind, id)
	}
	return nil
}

func sportsVenueRepo() *mockVenueRepo {
	return &mockVenueRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Venue, error) {
			return &model.Venue{
				ID:       id,
				Type:     model.VenueSports,
				IsActive: true,
			}, nil
		},
	}
}

func newTestResourceService(venues *mockVenueRepo, resources *mockResourceRepo) ResourceService {
	cfg := testConfig()
	return NewResourceService(venues, resources, validator.NewVenueValidator(cfg.Log), cfg)
}

func TestResourceCreate(t *testing.T) {
	t.Run("facility under sports venue", func(t *testing.T) {
		svc := newTestResourceService(sportsVenueRepo(), &mockResourceRepo{})

		facility := &model.SportsFacility{
			Name:              "  Court   1 ",
			SportType:         "tennis",
			Capacity:          4,
			PricePerHourCents: 4000,
		}
		if err := svc.Create(context.Background(), "65f000000000000000000001", facility); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if facility.ID != "65f000000000000000000002" {
			t.Errorf("expected assigned ID, got %q", facility.ID)
		}
		if facility.Name != "Court 1" {
			t.Errorf("expected normalized name, got %q", facility.Name)
		}
		if facility.VenueID != "65f000000000000000000001" {
			t.Errorf("expected venue ID stamped, got %q", facility.VenueID)
		}
		if !facility.IsActive {
			t.Error("new resource must start active")
		}
	})

	t.Run("kind must match venue type", func(t *testing.T) {
		svc := newTestResourceService(sportsVenueRepo(), &mockResourceRepo{})

		room := &model.HotelRoom{
			RoomNumber:         "101",
			RoomType:           "double",
			Capacity:           2,
			PricePerNightCents: 30000,
		}
		err := svc.Create(context.Background(), "65f000000000000000000001", room)
		if err == nil {
			t.Fatal("expected validation error for kind/type mismatch")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected VALIDATION_ERROR, got %s", apperrors.AsAppError(err).Code)
		}
	})

	t.Run("table capacity range enforced", func(t *testing.T) {
		venues := &mockVenueRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.Venue, error) {
				return &model.Venue{ID: id, Type: model.VenueRestaurant, IsActive: true}, nil
			},
		}
		svc := newTestResourceService(venues, &mockResourceRepo{})

		table := &model.RestaurantTable{
			TableNumber: "T1",
			Location:    "indoor",
			MinCapacity: 6,
			MaxCapacity: 2,
		}
		err := svc.Create(context.Background(), "65f000000000000000000001", table)
		if err == nil {
			t.Fatal("expected validation error for min > max capacity")
		}
	})

	t.Run("unknown venue", func(t *testing.T) {
		svc := newTestResourceService(&mockVenueRepo{}, &mockResourceRepo{})

		facility := &model.SportsFacility{Name: "Court 1", SportType: "tennis", Capacity: 4}
		err := svc.Create(context.Background(), "65f000000000000000000001", facility)
		if err == nil {
			t.Fatal("expected not found error")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
			t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
		}
	})
}

func TestResourceUpdate(t *testing.T) {
	t.Run("builds field set from payload", func(t *testing.T) {
		var gotFields bson.M
		resources := &mockResourceRepo{
			updateFn: func(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error {
				gotFields = fields
				return nil
			},
			findByIDFn: func(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error) {
				return &model.SportsFacility{ID: id, Capacity: 6, PricePerHourCents: 5000, IsActive: true}, nil
			},
		}
		svc := newTestResourceService(sportsVenueRepo(), resources)

		price := int64(5000)
		capacity := 6
		_, err := svc.Update(context.Background(), model.KindSportsFacility, "65f000000000000000000002", &model.SportsFacilityUpdate{
			PricePerHourCents: &price,
			Capacity:          &capacity,
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if gotFields["price_per_hour_cents"] != int64(5000) {
			t.Errorf("expected price field, got %v", gotFields)
		}
		if gotFields["capacity"] != 6 {
			t.Errorf("expected capacity field, got %v", gotFields)
		}
		if _, ok := gotFields["name"]; ok {
			t.Error("unset fields must not be written")
		}
	})

	t.Run("payload kind mismatch rejected", func(t *testing.T) {
		svc := newTestResourceService(sportsVenueRepo(), &mockResourceRepo{})

		_, err := svc.Update(context.Background(), model.KindSportsFacility, "65f000000000000000000002", &model.HotelRoomUpdate{})
		if err == nil {
			t.Fatal("expected error for mismatched update payload")
		}
	})

	t.Run("crossed capacity bounds rejected", func(t *testing.T) {
		resources := &mockResourceRepo{
			findByIDFn: func(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error) {
				return &model.RestaurantTable{ID: id, MinCapacity: 8, MaxCapacity: 4, IsActive: true}, nil
			},
		}
		svc := newTestResourceService(sportsVenueRepo(), resources)

		minCap := 8
		_, err := svc.Update(context.Background(), model.KindRestaurantTable, "65f000000000000000000002", &model.RestaurantTableUpdate{
			MinCapacity: &minCap,
		})
		if err == nil {
			t.Fatal("expected validation error for crossed bounds")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected VALIDATION_ERROR, got %s", apperrors.AsAppError(err).Code)
		}
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		svc := newTestResourceService(sportsVenueRepo(), &mockResourceRepo{})

		_, err := svc.Update(context.Background(), model.KindSportsFacility, "65f000000000000000000002", &model.SportsFacilityUpdate{})
		if err == nil {
			t.Fatal("expected error for empty update")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
			t.Errorf("expected INVALID_INPUT, got %s", apperrors.AsAppError(err).Code)
		}
	})
}

func TestResourceSetActive(t *testing.T) {
	var gotFields bson.M
	resources := &mockResourceRepo{
		updateFn: func(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error {
			gotFields = fields
			return nil
		},
	}
	svc := newTestResourceService(sportsVenueRepo(), resources)

	if err := svc.SetActive(context.Background(), model.KindSportsFacility, "65f000000000000000000002", false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}
	if gotFields["is_active"] != false {
		t.Errorf("expected is_active=false write, got %v", gotFields)
	}
}
