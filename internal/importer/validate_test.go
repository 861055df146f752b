package importer

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContactMethod(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"email", "email"},
		{"PHONE", "phone"},
		{" Sms ", "sms"},
		{"", "phone"},
		{"whatsapp", "phone"},
		{"carrier pigeon", "phone"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeContactMethod(tt.input), "input %q", tt.input)
	}
}

func TestValidationErrors_Nil(t *testing.T) {
	assert.Nil(t, ValidationErrors(1, nil))
}

func TestValidationErrors_PlainError(t *testing.T) {
	errs := ValidationErrors(4, errors.New("something broke"))
	require.Len(t, errs, 1)
	assert.Equal(t, ImportError{Row: 4, Message: "something broke"}, errs[0])
}

func TestValidationErrors_FieldKeyed(t *testing.T) {
	ve := validation.Errors{
		"phone_number": errors.New("phone number is not in +254XXXXXXXXX form"),
		"email":        errors.New("email address is malformed"),
	}

	errs := ValidationErrors(9, ve)
	require.Len(t, errs, 2)

	// Sorted by field for reproducible reports.
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "phone_number", errs[1].Field)
	for _, e := range errs {
		assert.Equal(t, 9, e.Row)
	}
}
