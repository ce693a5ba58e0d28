// Package validation wires go-playground/validator into Echo's validation
// interface and maps tag failures onto domain field errors.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fieldsafe/safecheck"
)

// Validator validates request structs using their validate tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate implements echo.Validator. Tag failures become an EINVALID domain
// error carrying a field -> message map.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return safecheck.Invalid("%s", err.Error())
	}
	return safecheck.ErrorWithFields(formatValidationErrors(validationErrors))
}

// formatValidationErrors converts validator errors to user-friendly messages
// keyed by lower-cased field name.
func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(validationErrors))

	for _, fieldErr := range validationErrors {
		fieldName := strings.ToLower(fieldErr.Field())

		switch fieldErr.Tag() {
		case "required":
			fields[fieldName] = "is required"
		case "email":
			fields[fieldName] = "must be a valid email address"
		case "min":
			if fieldErr.Type().Kind() == reflect.String {
				fields[fieldName] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
			} else {
				fields[fieldName] = fmt.Sprintf("must be at least %s", fieldErr.Param())
			}
		case "max":
			if fieldErr.Type().Kind() == reflect.String {
				fields[fieldName] = fmt.Sprintf("must be no more than %s characters", fieldErr.Param())
			} else {
				fields[fieldName] = fmt.Sprintf("must be no more than %s", fieldErr.Param())
			}
		case "uuid":
			fields[fieldName] = "must be a valid UUID"
		case "oneof":
			fields[fieldName] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "dive":
			fields[fieldName] = "contains an invalid entry"
		default:
			fields[fieldName] = fmt.Sprintf("failed validation: %s", fieldErr.Tag())
		}
	}

	return fields
}
