package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"venuely/pkg/logger"
	"venuely/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate     *validator.Validate
	logger       *logger.Logger
	maxPartySize int
}

func NewReservationValidator(log *logger.Logger, maxPartySize int) *ReservationValidator {
	return &ReservationValidator{
		validate:     validator.New(),
		logger:       log,
		maxPartySize: maxPartySize,
	}
}

func (v *ReservationValidator) Validate(reservation *model.Reservation, now time.Time) error {
	if err := v.validate.Struct(reservation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !reservation.EndTime.After(reservation.StartTime) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	if reservation.StartTime.Before(now) {
		return ValidationErrors{
			ValidationError{
				Field:   "StartTime",
				Message: "start_time cannot be in the past",
			},
		}
	}

	if reservation.NumberOfPeople > v.maxPartySize {
		return ValidationErrors{
			ValidationError{
				Field:   "NumberOfPeople",
				Message: fmt.Sprintf("party size (%d) exceeds the platform maximum (%d)", reservation.NumberOfPeople, v.maxPartySize),
			},
		}
	}

	return nil
}

// ValidateCapacity checks the party size against the resource's declared
// bounds. Kept out of Validate because it needs the resolved resource.
func (v *ReservationValidator) ValidateCapacity(reservation *model.Reservation, resource model.ReservableResource) error {
	minCap, maxCap := resource.CapacityBounds()

	if reservation.NumberOfPeople < minCap {
		return ValidationErrors{
			ValidationError{
				Field:   "NumberOfPeople",
				Message: fmt.Sprintf("party size (%d) is below the minimum (%d) for this resource", reservation.NumberOfPeople, minCap),
			},
		}
	}

	if reservation.NumberOfPeople > maxCap {
		return ValidationErrors{
			ValidationError{
				Field:   "NumberOfPeople",
				Message: fmt.Sprintf("party size (%d) exceeds the capacity (%d) of this resource", reservation.NumberOfPeople, maxCap),
			},
		}
	}

	return nil
}

func (v *ReservationValidator) ValidateUpdate(update *model.ReservationUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +972501234567)", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
