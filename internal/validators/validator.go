// Package validators runs struct-tag validation over form inputs and reports
// failures keyed by form field name.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return v
}

// Struct validates in and returns every failing field. The result is never nil,
// so callers can keep adding their own checks before calling OrNil.
func Struct(in any) *httperr.ValidationError {
	out := httperr.NewValidation()

	err := validate.Struct(in)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("form", "Invalid input.")
		return out
	}

	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof", "number":
		return "Select a valid choice."
	case "datetime":
		if fe.Param() == DateTimeLayout {
			return "Enter a valid date and time."
		}
		return "Enter a valid date (YYYY-MM-DD)."
	default:
		return "Invalid value."
	}
}
