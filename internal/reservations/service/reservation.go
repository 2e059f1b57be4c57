package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	reservationserrors "venuely/internal/reservations/errors"
	"venuely/internal/reservations/repository"
	"venuely/internal/reservations/validator"
	"venuely/pkg/config"
	apperrors "venuely/pkg/errors"
	"venuely/pkg/kafka"
	"venuely/pkg/model"
	"venuely/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Availability is the answer to a pre-booking probe. Advisory only: the
// authoritative check happens inside the create transaction.
type Availability struct {
	Available        bool  `json:"available"`
	ConflictCount    int   `json:"conflict_count"`
	QuotedPriceCents int64 `json:"quoted_price_cents"`
}

type ReservationService interface {
	CheckAvailability(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*Availability, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetByConfirmationCode(ctx context.Context, code string) (*model.Reservation, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	SearchByResource(ctx context.Context, kind model.ResourceKind, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error)
	SearchByVenue(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error)
	Update(ctx context.Context, id string, updates *model.ReservationUpdate) error
	Confirm(ctx context.Context, id string) (*model.Reservation, error)
	Cancel(ctx context.Context, id string, reason string) (*model.Reservation, error)
	Complete(ctx context.Context, id string) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	resolver  ResourceResolver
	validator *validator.ReservationValidator
	events    EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	resolver ResourceResolver,
	validator *validator.ReservationValidator,
	events EventPublisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		resolver:  resolver,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reservationService) CheckAvailability(ctx context.Context, kind model.ResourceKind, resourceID string, start, end time.Time) (*Availability, error) {
	if resourceID == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if !kind.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	resource, err := s.resolver.Resolve(ctx, kind, resourceID)
	if err != nil {
		return nil, err
	}

	if end.IsZero() {
		end = start.Add(resource.DefaultDuration())
	}
	if !end.After(start) {
		return nil, apperrors.InvalidInput("end_time must be after start_time")
	}

	overlapping, err := s.repo.FindOverlapping(ctx, kind, resourceID, start, end, s.cfg.OverlapScanLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	return &Availability{
		Available:        len(overlapping) == 0 && resource.Active(),
		ConflictCount:    len(overlapping),
		QuotedPriceCents: resource.PriceCents(start, end),
	}, nil
}

func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) error {
	s.sanitize(reservation)
	s.applyDefaults(reservation)

	resource, err := s.resolver.Resolve(ctx, reservation.ResourceKind, reservation.ResourceID)
	if err != nil {
		return err
	}

	if reservation.EndTime.IsZero() && !reservation.StartTime.IsZero() {
		reservation.EndTime = reservation.StartTime.Add(resource.DefaultDuration())
	}

	if err := s.validate(reservation); err != nil {
		return err
	}

	if !resource.Active() {
		return apperrors.Validation("Resource is not accepting reservations", map[string]any{
			"resource_id": reservation.ResourceID,
		})
	}

	if resource.VenueRef() != reservation.VenueID {
		return apperrors.Validation("Resource does not belong to the given venue", map[string]any{
			"resource_id": reservation.ResourceID,
			"venue_id":    reservation.VenueID,
		})
	}

	if err := s.validator.ValidateCapacity(reservation, resource); err != nil {
		s.cfg.Log.Warn("Reservation capacity validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	// the engine owns pricing; client-supplied totals are ignored
	reservation.TotalPriceCents = resource.PriceCents(reservation.StartTime, reservation.EndTime)

	// Serialize create attempts per resource. The transaction below is the
	// real guarantee; the lock just keeps concurrent attempts from burning
	// transaction retries against each other.
	lockID, err := s.acquireResourceLock(ctx, reservation.ResourceKind, reservation.ResourceID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseResourceLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.createWithUniqueCode(ctx, reservation)
	if err != nil {
		if apperrors.IsAppError(err) && apperrors.AsAppError(err).Code == apperrors.CodeConflict {
			s.events.PublishConflictRejected(ctx, reservation)
		}
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"venue_id", reservation.VenueID,
		"resource_kind", reservation.ResourceKind,
		"resource_id", reservation.ResourceID,
		"start_time", reservation.StartTime,
		"total_price_cents", reservation.TotalPriceCents,
	)

	s.events.PublishLifecycle(ctx, kafka.EventReservationCreated, reservation)
	return nil
}

// createWithUniqueCode runs the overlap-check-and-insert transaction,
// regenerating the confirmation code when the unique index reports a
// collision.
func (s *reservationService) createWithUniqueCode(ctx context.Context, reservation *model.Reservation) error {
	for attempt := 0; attempt < s.cfg.ConfirmationCodeMaxRetries; attempt++ {
		code, err := generateConfirmationCode(s.cfg.ConfirmationCodeLength)
		if err != nil {
			return apperrors.Internal("Failed to generate confirmation code", err)
		}
		reservation.ConfirmationCode = code

		err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if err := s.verifyNoOverlap(sessCtx, reservation); err != nil {
				return err
			}
			if err := s.repo.Create(sessCtx, reservation); err != nil {
				return err
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if apperrors.IsAppError(err) {
			return err
		}
		if mongo.IsDuplicateKeyError(err) {
			s.cfg.Log.Warn("Confirmation code collision, regenerating",
				"attempt", attempt+1,
				"code", reservation.ConfirmationCode,
			)
			reservation.ID = ""
			continue
		}
		return apperrors.Internal("Failed to create reservation", err)
	}

	return apperrors.Internal("Could not generate a unique confirmation code", reservationserrors.ErrCodeCollision)
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	return reservation, nil
}

func (s *reservationService) GetByConfirmationCode(ctx context.Context, code string) (*model.Reservation, error) {
	if code == "" {
		return nil, apperrors.InvalidInput("Confirmation code cannot be empty")
	}

	reservation, err := s.repo.FindByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Reservation")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations by user", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations by user", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) SearchByResource(ctx context.Context, kind model.ResourceKind, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if resourceID == "" {
		return nil, 0, apperrors.InvalidInput("Resource ID cannot be empty")
	}
	if !kind.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByResource(ctx, kind, resourceID, from, to)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations by resource", "resource_id", resourceID, "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByResource(ctx, kind, resourceID, from, to, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search reservations", "resource_id", resourceID, "error", errFind)
			errFind = apperrors.Internal("Failed to search reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) SearchByVenue(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if venueID == "" {
		return nil, 0, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByVenue(ctx, venueID, from, to)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations by venue", "venue_id", venueID, "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByVenue(ctx, venueID, from, to, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search reservations by venue", "venue_id", venueID, "error", errFind)
			errFind = apperrors.Internal("Failed to search reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateRepoError(err, id)
	}

	if existing.Status.Terminal() {
		return apperrors.PreconditionFailed(fmt.Sprintf("Cannot update a %s reservation", existing.Status))
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		return apperrors.Internal("Failed to update reservation", err)
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return nil
}

func (s *reservationService) Confirm(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != model.StatusPending {
		return nil, apperrors.PreconditionFailed(
			fmt.Sprintf("Only pending reservations can be confirmed, current status: %s", reservation.Status),
		)
	}

	paymentStatus := model.PaymentPartiallyPaid
	if reservation.DepositPaidCents >= reservation.TotalPriceCents {
		paymentStatus = model.PaymentPaid
	}

	if err := s.repo.UpdateStatus(ctx, id, bson.M{
		"status":         model.StatusConfirmed,
		"payment_status": paymentStatus,
	}); err != nil {
		return nil, s.translateRepoError(err, id)
	}

	reservation.Status = model.StatusConfirmed
	reservation.PaymentStatus = paymentStatus
	s.cfg.Log.Info("Reservation confirmed", "id", id, "balance_due_cents", reservation.BalanceDueCents())
	s.events.PublishLifecycle(ctx, kafka.EventReservationConfirmed, reservation)
	return reservation, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string, reason string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status.Terminal() {
		return nil, apperrors.PreconditionFailed(
			fmt.Sprintf("Cannot cancel a %s reservation", reservation.Status),
		)
	}

	reason = sanitizer.NormalizeFreeText(reason)
	if reason == "" {
		return nil, apperrors.InvalidInput("Cancellation reason is required")
	}
	now := s.now().UTC().Truncate(time.Millisecond)

	if err := s.repo.UpdateStatus(ctx, id, bson.M{
		"status":              model.StatusCancelled,
		"cancellation_reason": reason,
		"cancelled_at":        now,
	}); err != nil {
		return nil, s.translateRepoError(err, id)
	}

	reservation.Status = model.StatusCancelled
	reservation.CancellationReason = &reason
	reservation.CancelledAt = &now

	s.cfg.Log.Info("Reservation cancelled", "id", id, "reason", reason)
	s.events.PublishLifecycle(ctx, kafka.EventReservationCancelled, reservation)
	return reservation, nil
}

func (s *reservationService) Complete(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != model.StatusConfirmed {
		return nil, apperrors.PreconditionFailed(
			fmt.Sprintf("Only confirmed reservations can be completed, current status: %s", reservation.Status),
		)
	}

	if !reservation.Elapsed(s.now()) {
		return nil, apperrors.PreconditionFailed("Reservation cannot be completed before its end time")
	}

	if err := s.repo.UpdateStatus(ctx, id, bson.M{"status": model.StatusCompleted}); err != nil {
		return nil, s.translateRepoError(err, id)
	}

	reservation.Status = model.StatusCompleted
	s.cfg.Log.Info("Reservation completed", "id", id)
	s.events.PublishLifecycle(ctx, kafka.EventReservationCompleted, reservation)
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateRepoError(err, id)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.translateRepoError(err, id)
	}

	s.cfg.Log.Info("Reservation deleted", "id", id)
	s.events.PublishLifecycle(ctx, kafka.EventReservationDeleted, reservation)
	return nil
}

// --- Helpers ---

func (s *reservationService) sanitize(r *model.Reservation) {
	r.CustomerDetails.Name = sanitizer.NormalizeName(r.CustomerDetails.Name)
	r.CustomerDetails.Email = sanitizer.NormalizeEmail(r.CustomerDetails.Email)
	r.CustomerDetails.Phone = sanitizer.NormalizePhone(r.CustomerDetails.Phone)
	r.SpecialRequests = sanitizer.NormalizeFreeText(r.SpecialRequests)
	r.DepositPaidCents = sanitizer.ClampCents(r.DepositPaidCents)
}

func (s *reservationService) applyDefaults(r *model.Reservation) {
	// new reservations always enter the lifecycle at pending; the engine
	// owns status transitions, so anything the client sent is discarded
	r.Status = model.StatusPending
	r.PaymentStatus = model.PaymentPending
	if r.NumberOfPeople == 0 {
		r.NumberOfPeople = 1
	}
}

func (s *reservationService) mergeUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.SpecialRequests != nil {
		merged.SpecialRequests = sanitizer.NormalizeFreeText(*updates.SpecialRequests)
	}
	if updates.DepositPaidCents != nil {
		merged.DepositPaidCents = sanitizer.ClampCents(*updates.DepositPaidCents)
		if merged.DepositPaidCents >= merged.TotalPriceCents && merged.TotalPriceCents > 0 {
			merged.PaymentStatus = model.PaymentPaid
		} else if merged.DepositPaidCents > 0 {
			merged.PaymentStatus = model.PaymentPartiallyPaid
		}
	}
	if updates.PaymentMethod != "" {
		merged.PaymentMethod = updates.PaymentMethod
	}
	if updates.TransactionID != "" {
		merged.TransactionID = updates.TransactionID
	}

	return &merged
}

func (s *reservationService) validate(reservation *model.Reservation) error {
	if err := s.validator.Validate(reservation, s.now()); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoOverlap enforces the boundary-inclusive conflict rule against all
// active reservations for the resource. Runs inside the create transaction.
func (s *reservationService) verifyNoOverlap(ctx context.Context, reservation *model.Reservation) error {
	existing, err := s.repo.FindOverlapping(
		ctx,
		reservation.ResourceKind,
		reservation.ResourceID,
		reservation.StartTime,
		reservation.EndTime,
		s.cfg.OverlapScanLimit,
	)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	for _, r := range existing {
		if r.ID == reservation.ID {
			continue
		}
		if r.ConflictsWith(reservation.StartTime, reservation.EndTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Requested interval conflicts with an existing reservation (%s - %s)",
				r.StartTime.Format(time.RFC3339),
				r.EndTime.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// acquireResourceLock takes the per-resource advisory lock. Held only for
// the duration of one create attempt; the TTL index reclaims it if we die.
func (s *reservationService) acquireResourceLock(ctx context.Context, kind model.ResourceKind, resourceID string) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s_%s", kind, resourceID)

	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.ReservationLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This resource is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire reservation lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseResourceLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *reservationService) translateRepoError(err error, id string) error {
	if errors.Is(err, reservationserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reservationserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to access reservation", err)
}
