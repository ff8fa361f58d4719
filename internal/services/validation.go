package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("animaltype", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseAnimalType(fl.Field().String())
		return ok
	})
	return v
}

// validateStruct runs the struct's validate tags and converts failures into a
// ValidationError keyed by JSON field name.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &ValidationError{Message: "Validation failed"}
	for _, fe := range fieldErrs {
		ve.add(fe.Field(), fieldMessage(fe))
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "animaltype":
		return "must be one of DOG, CAT, BIRD, REPTILE, FISH, RODENT, OTHER"
	default:
		return "is invalid"
	}
}

// dateField parses an already validated YYYY-MM-DD field.
func dateField(ve *ValidationError, field, value string) time.Time {
	t, err := models.ParseDay(value)
	if err != nil {
		ve.add(field, "must be a date in YYYY-MM-DD format")
	}
	return t
}

func notAfterToday(ve *ValidationError, field string, day, today time.Time) {
	if day.After(models.Midnight(today)) {
		ve.add(field, "must not be in the future")
	}
}
