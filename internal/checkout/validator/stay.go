package validator

import (
	"errors"
	"fmt"
	"math"
	checkouterrors "stayhub/internal/checkout/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

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

// StayValidator normalizes a check-in/check-out pair into a whole-night
// count.
type StayValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewStayValidator(log *logger.Logger) *StayValidator {
	return &StayValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Nights parses both dates and returns the whole-night count for the stay.
//
// The count is the ceiling of the absolute day difference, so a check-out
// earlier than check-in still yields a positive count. That tolerance is
// carried over from the web checkout this replaces; rejecting reversed
// ranges outright is a product decision, not ours to make here.
func (v *StayValidator) Nights(r model.DateRange) (int, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		v.logger.Warn("Unparseable check-in date", "check_in", r.CheckIn)
		return 0, checkouterrors.ErrUnparseableDates
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		v.logger.Warn("Unparseable check-out date", "check_out", r.CheckOut)
		return 0, checkouterrors.ErrUnparseableDates
	}

	nights := int(math.Ceil(math.Abs(checkOut.Sub(checkIn).Hours()) / 24))
	if nights < 1 {
		return 0, checkouterrors.ErrZeroNights
	}

	return nights, nil
}

// ValidateRequest checks the full checkout request shape before any pricing
// work happens. Date strings only have to be present here; whether they
// parse as calendar dates is Nights's concern, so malformed dates surface
// as a date-range error rather than a shape error.
func (v *StayValidator) ValidateRequest(req *model.CheckoutRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *StayValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid property ID", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
