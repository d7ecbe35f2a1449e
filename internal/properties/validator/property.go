package validator

import (
	"errors"
	"fmt"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"strings"

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

type PropertyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPropertyValidator(log *logger.Logger) *PropertyValidator {
	return &PropertyValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *PropertyValidator) Validate(p *model.Property) error {
	if err := v.validate.Struct(p); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PropertyValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must contain valid URLs", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
