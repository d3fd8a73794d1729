package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts validator/v10 to echo's Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator reading `validate` struct tags
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks i against its struct tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidationMessage turns a validation error into a client message.
// Missing required fields use fallback; other failures name the field.
func ValidationMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fallback
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
