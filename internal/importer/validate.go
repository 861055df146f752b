package importer

// validate.go bridges ozzo-validation's field-keyed errors into the
// pipeline's ImportError taxonomy, and holds the small closed enums shared
// by every entity's validation rules.

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContactMethods is the closed set of preferred contact methods.
var ContactMethods = []string{"email", "phone", "sms"}

// DefaultContactMethod is what unrecognized or absent input folds to.
const DefaultContactMethod = "phone"

// NormalizeContactMethod folds freeform input onto the closed enum.
func NormalizeContactMethod(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range ContactMethods {
		if s == m {
			return m
		}
	}
	return DefaultContactMethod
}

// ValidationErrors converts an error returned by a ValidateFunc into
// row-attributed ImportErrors, one per violated rule. ozzo's
// validation.Errors is a map keyed by field name; output is sorted by field
// so reports are reproducible.
func ValidationErrors(row int, err error) []ImportError {
	if err == nil {
		return nil
	}

	ve, ok := err.(validation.Errors)
	if !ok {
		return []ImportError{{Row: row, Message: err.Error()}}
	}

	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errs := make([]ImportError, 0, len(fields))
	for _, field := range fields {
		errs = append(errs, ImportError{
			Row:     row,
			Field:   field,
			Message: ve[field].Error(),
		})
	}
	return errs
}
