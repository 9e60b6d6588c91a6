package queries

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

var (
	bundleValidator     *validator.Validate
	bundleValidatorOnce sync.Once
)

func getBundleValidator() *validator.Validate {
	bundleValidatorOnce.Do(func() {
		bundleValidator = validator.New()
	})
	return bundleValidator
}

// ValidateBundle checks tier names, boost ranges and efficiencies of a bundle.
// The first failing field is reported as ErrInvalidBundle.
func ValidateBundle(bundle production.ConfigurationBundle) error {
	err := getBundleValidator().Struct(bundle)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &production.ErrInvalidBundle{
			Field:  fe.Namespace(),
			Reason: describeTag(fe),
		}
	}
	return &production.ErrInvalidBundle{Field: "bundle", Reason: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", fe.Tag())
	}
}
