package service

import (
	"context"
	"errors"
	"sync"
	venueserrors "venuely/internal/venues/errors"
	"venuely/internal/venues/repository"
	"venuely/internal/venues/validator"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/locale"
	"venuely/pkg/model"
	"venuely/pkg/sanitizer"
)

type VenueService interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error)
	GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error)
	Search(ctx context.Context, cities []string, venueType string, limit int, offset int64) ([]*model.Venue, error)
	Update(ctx context.Context, id string, updates *model.VenueUpdate) error
	Delete(ctx context.Context, id string) error
}

type venueService struct {
	repo      repository.VenueRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewVenueService(
	repo repository.VenueRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) Create(ctx context.Context, venue *model.Venue) error {
	s.sanitize(venue)
	s.applyDefaults(venue)

	if err := s.validator.Validate(venue); err != nil {
		s.cfg.Log.Warn("Venue validation failed",
			"name", venue.Name,
			"error", err,
		)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		s.cfg.Log.Error("Failed to create venue", "name", venue.Name, "error", err)
		return apperrors.Internal("Failed to create venue", err)
	}

	s.cfg.Log.Info("Venue created successfully",
		"id", venue.ID,
		"name", venue.Name,
		"type", venue.Type,
		"city", venue.City,
		"timezone", venue.TimeZone,
	)

	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	return venue, nil
}

func (s *venueService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error) {
	var count int64
	var venues []*model.Venue
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count venues", "error", errCount)
			errCount = apperrors.Internal("Failed to count venues", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		venues, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list venues", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve venues", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return venues, count, nil
}

func (s *venueService) GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	venues, err := s.repo.FindByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get venues by owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve venues", err)
	}

	return venues, nil
}

func (s *venueService) Search(ctx context.Context, cities []string, venueType string, limit int, offset int64) ([]*model.Venue, error) {
	if len(cities) == 0 {
		return nil, apperrors.InvalidInput("At least one city must be provided")
	}

	cities = sanitizer.NormalizeStringSlice(cities, sanitizer.NormalizeCity)
	if len(cities) == 0 {
		return nil, apperrors.InvalidInput("Search criteria resulted in no valid cities after normalization")
	}

	vt := model.VenueType(venueType)
	if venueType != "" && vt != model.VenueSports && vt != model.VenueHotel && vt != model.VenueRestaurant {
		return nil, apperrors.InvalidInput("Venue type must be one of: sports, hotel, restaurant")
	}

	venues, err := s.repo.Search(ctx, cities, vt, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to search venues", "cities", cities, "type", venueType, "error", err)
		return nil, apperrors.Internal("Failed to search venues", err)
	}

	s.cfg.Log.Debug("Venue search completed",
		"cities", cities,
		"type", venueType,
		"results_count", len(venues),
	)

	return venues, nil
}

func (s *venueService) Update(ctx context.Context, id string, updates *model.VenueUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateRepoError(err, id)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Venue validation failed", "id", id, "error", err)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Venue", id)
		}
		s.cfg.Log.Error("Failed to update venue", "id", id, "error", err)
		return apperrors.Internal("Failed to update venue", err)
	}

	s.cfg.Log.Info("Venue updated successfully", "id", id, "name", merged.Name)
	return nil
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.translateRepoError(err, id)
	}

	s.cfg.Log.Info("Venue deleted successfully", "id", id)
	return nil
}

func (s *venueService) sanitize(venue *model.Venue) {
	venue.Name = sanitizer.NormalizeName(venue.Name)
	venue.Description = sanitizer.NormalizeFreeText(venue.Description)
	venue.Address = sanitizer.TrimAndNormalize(venue.Address)
	venue.City = sanitizer.NormalizeCity(venue.City)
	venue.Phone = sanitizer.NormalizePhone(venue.Phone)
	venue.Email = sanitizer.NormalizeEmail(venue.Email)
	venue.TimeZone = sanitizer.TrimAndNormalize(venue.TimeZone)
}

func (s *venueService) sanitizeUpdate(updates *model.VenueUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != nil {
		normalized := sanitizer.NormalizeFreeText(*updates.Description)
		updates.Description = &normalized
	}
	if updates.Address != "" {
		updates.Address = sanitizer.TrimAndNormalize(updates.Address)
	}
	if updates.City != "" {
		updates.City = sanitizer.NormalizeCity(updates.City)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Email != nil {
		normalized := sanitizer.NormalizeEmail(*updates.Email)
		updates.Email = &normalized
	}
	if updates.TimeZone != "" {
		updates.TimeZone = sanitizer.TrimAndNormalize(updates.TimeZone)
	}
}

func (s *venueService) applyDefaults(venue *model.Venue) {
	if venue.TimeZone == "" {
		venue.TimeZone = locale.InferTimezoneFromPhone(venue.Phone)
	}
	if venue.Country == "" {
		if country := locale.InferCountryFromPhone(venue.Phone); country != nil {
			venue.Country = country.Code
		}
	}
	venue.IsActive = true
}

func (s *venueService) mergeUpdates(existing *model.Venue, updates *model.VenueUpdate) *model.Venue {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Country != "" {
		merged.Country = updates.Country
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Email != nil {
		merged.Email = *updates.Email
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	merged.ID = existing.ID
	merged.OwnerID = existing.OwnerID
	merged.Type = existing.Type
	merged.CreatedAt = existing.CreatedAt

	return &merged
}

func (s *venueService) translateRepoError(err error, id string) error {
	if errors.Is(err, venueserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Venue", id)
	}
	if errors.Is(err, venueserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid venue ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	s.cfg.Log.Error("Venue repository error", "id", id, "error", err)
	return apperrors.Internal("Failed to access venue", err)
}
