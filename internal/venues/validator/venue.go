package validator

import (
	"errors"
	"fmt"
	"strings"
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

type VenueValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVenueValidator(log *logger.Logger) *VenueValidator {
	return &VenueValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *VenueValidator) Validate(venue *model.Venue) error {
	return v.validateStruct(venue)
}

func (v *VenueValidator) ValidateUpdate(updates *model.VenueUpdate) error {
	return v.validateStruct(updates)
}

// ValidateUpdatePayload checks the struct tags of a per-kind resource update.
func (v *VenueValidator) ValidateUpdatePayload(updates any) error {
	return v.validateStruct(updates)
}

// ValidateResource checks the struct tags of any resource variant and the
// cross-field rules the tags cannot express.
func (v *VenueValidator) ValidateResource(resource model.ReservableResource) error {
	if err := v.validateStruct(resource); err != nil {
		return err
	}

	minCap, maxCap := resource.CapacityBounds()
	if minCap > maxCap {
		return ValidationErrors{
			ValidationError{
				Field:   "MinCapacity",
				Message: fmt.Sprintf("minimum capacity (%d) cannot exceed maximum (%d)", minCap, maxCap),
			},
		}
	}

	return nil
}

func (v *VenueValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *VenueValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "gtefield":
			message = fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA timezone", err.Field())
		case "iso3166_1_alpha2":
			message = fmt.Sprintf("%s must be a two-letter ISO country code", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
