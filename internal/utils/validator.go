// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/outfit-backend/internal/outfit"
)

var validate *validator.Validate

var occasionPattern = regexp.MustCompile(`^[\p{L}0-9][\p{L}0-9 _'&/-]*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("occasion", validateOccasion)
	validate.RegisterValidation("category", validateCategory)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// Occasions are free text from the style quiz ("date night", "business-casual").
func validateOccasion(fl validator.FieldLevel) bool {
	occasion := strings.TrimSpace(fl.Field().String())

	if len(occasion) < 2 || len(occasion) > 60 {
		return false
	}

	return occasionPattern.MatchString(occasion)
}

func validateCategory(fl validator.FieldLevel) bool {
	_, ok := outfit.ParseCategory(fl.Field().String())
	return ok
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "occasion":
		return "Occasion must be 2-60 characters of letters, numbers, spaces or dashes"
	case "category":
		return "Category must be one of top, bottom or shoes"
	default:
		return e.Field() + " is invalid"
	}
}
