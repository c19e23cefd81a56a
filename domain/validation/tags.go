package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lb-conn/ekaer/domain"
)

var predicates = map[string]func(string) bool{
	"ekaer_vat": IsValidVatNumber,
}

// New returns a struct validator with the EKAER field predicates
// registered as tags (ekaer_vat).
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	for tag, predicate := range predicates {
		// Registration only fails for an empty tag or a nil func.
		_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return predicate(fl.Field().String())
		})
	}
	return validate
}

// Struct validates s with the tag validator and converts the first failure
// into a ConfigurationError naming the offending field.
func Struct(validate *validator.Validate, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return fmt.Errorf("failed to validate %T: %w", s, err)
	}
	first := fieldErrors[0]
	return &domain.ConfigurationError{
		Field:   strings.ToLower(first.Namespace()),
		Message: describe(first),
	}
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return "must be one of the following: " + fieldErr.Param()
	case "gte":
		return "must be greater than or equal to " + fieldErr.Param()
	default:
		if strings.HasPrefix(fieldErr.Tag(), "ekaer_") {
			return fmt.Sprintf("%q is not a valid %s", fieldErr.Value(), strings.TrimPrefix(fieldErr.Tag(), "ekaer_"))
		}
		return "is invalid"
	}
}
