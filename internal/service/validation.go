package service

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"pickupgames/signup/internal/model"
)

// maxPhoneDigits matches the phone_digits column.
const maxPhoneDigits = 30

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			digits := model.DigitsOnly(fl.Field().String())
			return digits != "" && len(digits) <= maxPhoneDigits
		})
	})
	return validate
}

// validateInput checks a service input struct against its validate tags and reports the first
// failure as ErrValidation.
func validateInput(in interface{}) error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}
	return validationError("%s", describeFieldError(fieldErrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return "invalid email address"
	case "phone":
		return fmt.Sprintf("phone must contain between 1 and %d digits", maxPhoneDigits)
	case "gt":
		return field + " must be a positive number"
	case "gtfield":
		return "end time must be after start time"
	}
	return field + " is invalid"
}
