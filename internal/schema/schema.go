// Package schema defines the per-entity import specifications: which header
// spellings resolve to which canonical fields, which fields are mandatory,
// how payloads are assembled, and the business rules they must satisfy.
//
// Each entity file registers its spec with the importer registry in init,
// mirroring how tables self-register; cmd/server imports this package for
// its side effects.
package schema

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shulebus/shulebus/internal/importer"
)

// Canonical field names shared across entity types.
const (
	FieldName          = "name"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhoneNumber   = "phone_number"
	FieldPassword      = "password"
	FieldAddress       = "address"
	FieldContactMethod = "preferred_contact_method"
)

// nameAliases are the header spellings accepted for a person's full name.
// First-name spellings are included so a file that splits names across two
// columns still satisfies the mandatory name check.
var nameAliases = []string{
	"name", "full name", "full_name", "fullname",
	"first_name", "first name", "firstname", "fname",
}

var firstNameAliases = []string{
	"first_name", "first name", "firstname", "fname", "first",
}

var lastNameAliases = []string{
	"last_name", "last name", "lastname", "lname", "surname", "last",
}

var emailAliases = []string{
	"email", "email address", "email_address", "e-mail", "mail",
}

var phoneAliases = []string{
	"phone_number", "phone number", "phone", "mobile", "mobile number",
	"mobile_number", "contact", "contact number", "contact_number",
	"telephone", "tel",
}

var passwordAliases = []string{
	"password", "pass",
}

// personName extracts first and last name from the resolved fields.
// Explicit first/last columns win; otherwise the full name is split on
// whitespace, first token as first name and the remainder as last name.
func personName(fields map[string]string) (first, last string) {
	first = fields[FieldFirstName]
	last = fields[FieldLastName]
	if first != "" {
		return first, last
	}

	parts := strings.Fields(fields[FieldName])
	if len(parts) == 0 {
		return "", last
	}
	first = parts[0]
	if last == "" && len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return first, last
}

// orDefault returns v, or def when v is empty.
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// phoneRule validates the canonical +254XXXXXXXXX shape.
var phoneRule = validation.Match(importer.PhonePattern).Error("phone number is not in +254XXXXXXXXX form")

// emailRule applies the pipeline's own email validator, so records carrying
// synthesized addresses are held to the same standard as user input.
var emailRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !importer.ValidEmail(s) {
		return validation.NewError("invalid_email", "email address is malformed")
	}
	return nil
})

// contactMethodRule confirms folding onto the closed enum happened.
var contactMethodRule = validation.In("email", "phone", "sms").Error("preferred contact method must be email, phone or sms")
