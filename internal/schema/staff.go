package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shulebus/shulebus/internal/importer"
)

// DefaultStaffPassword is assigned when the source file carries no
// password column.
const DefaultStaffPassword = "Staff@2024"

// FieldRole is the canonical field for a staff member's role.
const FieldRole = "role"

// DefaultStaffRole is used when the source file does not say what the
// person does.
const DefaultStaffRole = "attendant"

// StaffRecord is the normalized payload for one staff account.
type StaffRecord struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

func (StaffRecord) EntityType() importer.EntityType { return importer.EntityStaff }

// StaffAliases maps canonical staff fields to accepted header spellings.
var StaffAliases = importer.AliasTable{
	FieldName:        append([]string{"staff name", "staff_name", "employee name", "employee_name"}, nameAliases...),
	FieldFirstName:   firstNameAliases,
	FieldLastName:    lastNameAliases,
	FieldEmail:       append([]string{"staff email", "staff_email", "work email", "work_email"}, emailAliases...),
	FieldPhoneNumber: append([]string{"staff phone", "staff_phone", "work phone", "work_phone"}, phoneAliases...),
	FieldPassword:    passwordAliases,
	FieldRole: []string{
		"role", "position", "job_title", "job title", "title", "designation",
	},
}

var staffMandatory = []string{FieldName, FieldPhoneNumber}

func assembleStaff(fields map[string]string, syn *importer.Synthesizer) (importer.Record, error) {
	first, last := personName(fields)

	email, err := syn.ResolveEmail(fields[FieldEmail], first, last)
	if err != nil {
		return nil, importer.FieldError(FieldEmail, "%v", err)
	}

	return StaffRecord{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		PhoneNumber: syn.NormalizePhone(fields[FieldPhoneNumber]),
		Role:        orDefault(fields[FieldRole], DefaultStaffRole),
		Password:    orDefault(fields[FieldPassword], DefaultStaffPassword),
	}, nil
}

func validateStaff(rec importer.Record) error {
	s, ok := rec.(StaffRecord)
	if !ok {
		return validation.NewError("wrong_record_type", "not a staff record")
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&s.PhoneNumber, validation.Required, phoneRule),
		validation.Field(&s.Email, validation.Required, emailRule),
		validation.Field(&s.Role, validation.Required.Error("role is required")),
		validation.Field(&s.Password, validation.Required.Error("password is required")),
	)
}

func init() {
	importer.Register(importer.EntitySpec{
		Type:      importer.EntityStaff,
		Label:     "Staff",
		Aliases:   StaffAliases,
		Mandatory: staffMandatory,
		Assemble:  assembleStaff,
		Validate:  validateStaff,
	})
}
