package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// min/max count runes; bcrypt's limit is in bytes
	if err := v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

func validateStruct(s interface{}) error {
	return toValidationError("", validate.Struct(s))
}

func validateVar(field string, value interface{}, tag string) error {
	return toValidationError(field, validate.Var(value, tag))
}

// toValidationError reports the first failed constraint as a
// *ValidationError. field overrides the name validator reports.
func toValidationError(field string, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	if field == "" {
		field = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "bcryptmax":
		msg = fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)
	default:
		msg = "is invalid"
	}
	return &ValidationError{Field: field, Msg: msg}
}
