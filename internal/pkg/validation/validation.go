package validation

import (
	"errors"
	"reflect"
	"strings"

	"stayhub-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("listing_type", func(fl validator.FieldLevel) bool {
		return IsListingType(fl.Field().String())
	})
	return v
}

// Struct validates s and returns a *domain.ValidationError carrying message when it fails.
func Struct(message string, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = reason(fe)
	}
	return &domain.ValidationError{Message: message, Fields: fields}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "listing_type":
		return "must be one of " + strings.Join(domain.ListingTypes, ", ")
	case "oneof":
		return "must be one of " + fe.Param()
	case "url", "http_url":
		return "must be a URL"
	case "latitude", "longitude":
		return "must be a valid coordinate"
	default:
		return "is invalid"
	}
}

// IsListingType reports whether t is a known property type (case-insensitive).
func IsListingType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, known := range domain.ListingTypes {
		if t == known {
			return true
		}
	}
	return false
}
