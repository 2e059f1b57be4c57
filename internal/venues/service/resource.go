package service

import (
	"context"
	"errors"
	"fmt"
	venueserrors "venuely/internal/venues/errors"
	"venuely/internal/venues/repository"
	"venuely/internal/venues/validator"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/model"
	"venuely/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
)

// ResourceService manages the reservable resources under a venue. A venue
// only holds resources of its declared type; the active flag gates new
// bookings without touching existing reservations.
type ResourceService interface {
	Create(ctx context.Context, venueID string, resource model.ReservableResource) error
	GetByID(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error)
	ListByVenue(ctx context.Context, venueID string, kind model.ResourceKind, limit int, offset int64) ([]model.ReservableResource, int64, error)
	Update(ctx context.Context, kind model.ResourceKind, id string, updates any) (model.ReservableResource, error)
	SetActive(ctx context.Context, kind model.ResourceKind, id string, active bool) error
	Delete(ctx context.Context, kind model.ResourceKind, id string) error
}

type resourceService struct {
	venues    repository.VenueRepository
	resources repository.ResourceRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewResourceService(
	venues repository.VenueRepository,
	resources repository.ResourceRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) ResourceService {
	return &resourceService{
		venues:    venues,
		resources: resources,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, venueID string, resource model.ReservableResource) error {
	if venueID == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Venue", venueID)
		}
		if errors.Is(err, venueserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid venue ID format")
		}
		return apperrors.Internal("Failed to load venue", err)
	}

	if model.VenueTypeFor(resource.Kind()) != venue.Type {
		return apperrors.Validation("Resource kind does not match the venue type", map[string]any{
			"venue_type":    venue.Type,
			"resource_kind": resource.Kind(),
		})
	}

	s.sanitize(resource, venueID)

	if err := s.validator.ValidateResource(resource); err != nil {
		s.cfg.Log.Warn("Resource validation failed",
			"venue_id", venueID,
			"kind", resource.Kind(),
			"error", err,
		)
		return apperrors.Validation("Resource validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	id, err := s.resources.Create(ctx, resource)
	if err != nil {
		s.cfg.Log.Error("Failed to create resource", "venue_id", venueID, "kind", resource.Kind(), "error", err)
		return apperrors.Internal("Failed to create resource", err)
	}
	setResourceID(resource, id)

	s.cfg.Log.Info("Resource created successfully",
		"id", id,
		"venue_id", venueID,
		"kind", resource.Kind(),
	)

	return nil
}

func (s *resourceService) GetByID(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if !kind.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	resource, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	return resource, nil
}

func (s *resourceService) ListByVenue(ctx context.Context, venueID string, kind model.ResourceKind, limit int, offset int64) ([]model.ReservableResource, int64, error) {
	if venueID == "" {
		return nil, 0, apperrors.InvalidInput("Venue ID cannot be empty")
	}
	if !kind.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	resources, err := s.resources.FindByVenue(ctx, kind, venueID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list resources", "venue_id", venueID, "kind", kind, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve resources", err)
	}

	count, err := s.resources.CountByVenue(ctx, kind, venueID)
	if err != nil {
		s.cfg.Log.Error("Failed to count resources", "venue_id", venueID, "kind", kind, "error", err)
		return nil, 0, apperrors.Internal("Failed to count resources", err)
	}

	return resources, count, nil
}

// Update applies a per-kind update payload and returns the fresh document.
func (s *resourceService) Update(ctx context.Context, kind model.ResourceKind, id string, updates any) (model.ReservableResource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	fields, err := s.updateFields(kind, updates)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("Update payload contains no fields")
	}

	if err := s.resources.Update(ctx, kind, id, fields); err != nil {
		return nil, s.translateRepoError(err, id)
	}

	resource, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	// bounds may have crossed through a partial update
	minCap, maxCap := resource.CapacityBounds()
	if minCap > maxCap {
		return nil, apperrors.Validation("Capacity bounds are inconsistent after update", map[string]any{
			"min_capacity": minCap,
			"max_capacity": maxCap,
		})
	}

	s.cfg.Log.Info("Resource updated successfully", "id", id, "kind", kind)
	return resource, nil
}

func (s *resourceService) SetActive(ctx context.Context, kind model.ResourceKind, id string, active bool) error {
	if id == "" {
		return apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if !kind.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	if err := s.resources.Update(ctx, kind, id, bson.M{"is_active": active}); err != nil {
		return s.translateRepoError(err, id)
	}

	s.cfg.Log.Info("Resource activation changed", "id", id, "kind", kind, "active", active)
	return nil
}

func (s *resourceService) Delete(ctx context.Context, kind model.ResourceKind, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if !kind.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	if err := s.resources.Delete(ctx, kind, id); err != nil {
		return s.translateRepoError(err, id)
	}

	s.cfg.Log.Info("Resource deleted", "id", id, "kind", kind)
	return nil
}

func (s *resourceService) sanitize(resource model.ReservableResource, venueID string) {
	switch res := resource.(type) {
	case *model.SportsFacility:
		res.VenueID = venueID
		res.Name = sanitizer.NormalizeName(res.Name)
		res.SportType = sanitizer.TrimAndNormalize(res.SportType)
		res.PricePerHourCents = sanitizer.ClampCents(res.PricePerHourCents)
		res.Amenities = sanitizer.NormalizeAmenities(res.Amenities)
		res.IsActive = true
	case *model.HotelRoom:
		res.VenueID = venueID
		res.RoomNumber = sanitizer.TrimAndNormalize(res.RoomNumber)
		res.RoomType = sanitizer.TrimAndNormalize(res.RoomType)
		res.PricePerNightCents = sanitizer.ClampCents(res.PricePerNightCents)
		res.Amenities = sanitizer.NormalizeAmenities(res.Amenities)
		res.IsActive = true
	case *model.RestaurantTable:
		res.VenueID = venueID
		res.TableNumber = sanitizer.TrimAndNormalize(res.TableNumber)
		res.Location = sanitizer.TrimAndNormalize(res.Location)
		res.TableType = sanitizer.TrimAndNormalize(res.TableType)
		res.DepositCents = sanitizer.ClampCents(res.DepositCents)
		res.MinimumSpendCents = sanitizer.ClampCents(res.MinimumSpendCents)
		res.IsActive = true
	}
}

// updateFields validates a per-kind update payload and flattens it into the
// storage field set. Only fields present in the payload are written.
func (s *resourceService) updateFields(kind model.ResourceKind, updates any) (bson.M, error) {
	fields := bson.M{}

	switch u := updates.(type) {
	case *model.SportsFacilityUpdate:
		if kind != model.KindSportsFacility {
			return nil, apperrors.InvalidInput(fmt.Sprintf("update payload does not match resource kind %s", kind))
		}
		if err := s.validator.ValidateUpdatePayload(u); err != nil {
			return nil, apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
		}
		if u.Name != "" {
			fields["name"] = sanitizer.NormalizeName(u.Name)
		}
		if u.SportType != "" {
			fields["sport_type"] = sanitizer.TrimAndNormalize(u.SportType)
		}
		if u.Capacity != nil {
			fields["capacity"] = *u.Capacity
		}
		if u.PricePerHourCents != nil {
			fields["price_per_hour_cents"] = sanitizer.ClampCents(*u.PricePerHourCents)
		}
		if u.DurationMinutes != nil {
			fields["duration_minutes"] = *u.DurationMinutes
		}
		if u.Indoor != nil {
			fields["indoor"] = *u.Indoor
		}
		if u.HasLighting != nil {
			fields["has_lighting"] = *u.HasLighting
		}
		if u.Amenities != nil {
			fields["amenities"] = sanitizer.NormalizeAmenities(u.Amenities)
		}
		if u.IsActive != nil {
			fields["is_active"] = *u.IsActive
		}
	case *model.HotelRoomUpdate:
		if kind != model.KindHotelRoom {
			return nil, apperrors.InvalidInput(fmt.Sprintf("update payload does not match resource kind %s", kind))
		}
		if err := s.validator.ValidateUpdatePayload(u); err != nil {
			return nil, apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
		}
		if u.RoomType != "" {
			fields["room_type"] = sanitizer.TrimAndNormalize(u.RoomType)
		}
		if u.Capacity != nil {
			fields["capacity"] = *u.Capacity
		}
		if u.PricePerNightCents != nil {
			fields["price_per_night_cents"] = sanitizer.ClampCents(*u.PricePerNightCents)
		}
		if u.BedCount != nil {
			fields["bed_count"] = *u.BedCount
		}
		if u.FloorNumber != nil {
			fields["floor_number"] = *u.FloorNumber
		}
		if u.Amenities != nil {
			fields["amenities"] = sanitizer.NormalizeAmenities(u.Amenities)
		}
		if u.IsAccessible != nil {
			fields["is_accessible"] = *u.IsAccessible
		}
		if u.IsActive != nil {
			fields["is_active"] = *u.IsActive
		}
	case *model.RestaurantTableUpdate:
		if kind != model.KindRestaurantTable {
			return nil, apperrors.InvalidInput(fmt.Sprintf("update payload does not match resource kind %s", kind))
		}
		if err := s.validator.ValidateUpdatePayload(u); err != nil {
			return nil, apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
		}
		if u.Location != "" {
			fields["location"] = sanitizer.TrimAndNormalize(u.Location)
		}
		if u.MinCapacity != nil {
			fields["min_capacity"] = *u.MinCapacity
		}
		if u.MaxCapacity != nil {
			fields["max_capacity"] = *u.MaxCapacity
		}
		if u.TableType != "" {
			fields["table_type"] = sanitizer.TrimAndNormalize(u.TableType)
		}
		if u.DurationMinutes != nil {
			fields["duration_minutes"] = *u.DurationMinutes
		}
		if u.RequiresDeposit != nil {
			fields["requires_deposit"] = *u.RequiresDeposit
		}
		if u.DepositCents != nil {
			fields["deposit_cents"] = sanitizer.ClampCents(*u.DepositCents)
		}
		if u.MinimumSpendCents != nil {
			fields["minimum_spend_cents"] = sanitizer.ClampCents(*u.MinimumSpendCents)
		}
		if u.IsAccessible != nil {
			fields["is_accessible"] = *u.IsAccessible
		}
		if u.IsActive != nil {
			fields["is_active"] = *u.IsActive
		}
	default:
		return nil, apperrors.InvalidInput("Unsupported resource update payload")
	}

	return fields, nil
}

func setResourceID(resource model.ReservableResource, id string) {
	switch res := resource.(type) {
	case *model.SportsFacility:
		res.ID = id
	case *model.HotelRoom:
		res.ID = id
	case *model.RestaurantTable:
		res.ID = id
	}
}

func (s *resourceService) translateRepoError(err error, id string) error {
	if errors.Is(err, venueserrors.ErrResourceNotFound) {
		return apperrors.NotFoundWithID("Resource", id)
	}
	if errors.Is(err, venueserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid resource ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	s.cfg.Log.Error("Resource repository error", "id", id, "error", err)
	return apperrors.Internal("Failed to access resource", err)
}
