package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shulebus/shulebus/internal/importer"
)

// DefaultParentPassword is assigned when the source file carries no
// password column; parents are prompted to change it on first login.
const DefaultParentPassword = "Parent@2024"

// ParentRecord is the normalized payload for one parent account.
type ParentRecord struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Email                  string `json:"email"`
	PhoneNumber            string `json:"phone_number"`
	Password               string `json:"password"`
	Address                string `json:"address,omitempty"`
	PreferredContactMethod string `json:"preferred_contact_method"`
}

func (ParentRecord) EntityType() importer.EntityType { return importer.EntityParents }

// ParentAliases maps canonical parent fields to accepted header spellings,
// most specific first.
var ParentAliases = importer.AliasTable{
	FieldName:        append([]string{"parent name", "parent_name", "guardian name", "guardian_name"}, nameAliases...),
	FieldFirstName:   firstNameAliases,
	FieldLastName:    lastNameAliases,
	FieldEmail:       append([]string{"parent email", "parent_email"}, emailAliases...),
	FieldPhoneNumber: append([]string{"parent phone", "parent_phone"}, phoneAliases...),
	FieldPassword:    passwordAliases,
	FieldAddress: []string{
		"address", "home address", "home_address", "residence", "location", "estate",
	},
	FieldContactMethod: []string{
		"preferred_contact_method", "preferred contact method",
		"contact_method", "contact method", "preferred contact",
	},
}

// parentMandatory lists the fields that are never synthesized: a parent
// with no name or no contact number at all is not a usable record.
var parentMandatory = []string{FieldName, FieldPhoneNumber}

func assembleParent(fields map[string]string, syn *importer.Synthesizer) (importer.Record, error) {
	first, last := personName(fields)

	email, err := syn.ResolveEmail(fields[FieldEmail], first, last)
	if err != nil {
		return nil, importer.FieldError(FieldEmail, "%v", err)
	}

	return ParentRecord{
		FirstName:              first,
		LastName:               last,
		Email:                  email,
		PhoneNumber:            syn.NormalizePhone(fields[FieldPhoneNumber]),
		Password:               orDefault(fields[FieldPassword], DefaultParentPassword),
		Address:                fields[FieldAddress],
		PreferredContactMethod: importer.NormalizeContactMethod(fields[FieldContactMethod]),
	}, nil
}

func validateParent(rec importer.Record) error {
	p, ok := rec.(ParentRecord)
	if !ok {
		return validation.NewError("wrong_record_type", "not a parent record")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&p.PhoneNumber, validation.Required, phoneRule),
		validation.Field(&p.Email, validation.Required, emailRule),
		validation.Field(&p.Password, validation.Required.Error("password is required")),
		validation.Field(&p.PreferredContactMethod, validation.Required, contactMethodRule),
	)
}

func init() {
	importer.Register(importer.EntitySpec{
		Type:      importer.EntityParents,
		Label:     "Parents",
		Aliases:   ParentAliases,
		Mandatory: parentMandatory,
		Assemble:  assembleParent,
		Validate:  validateParent,
	})
}
