package schema

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shulebus/shulebus/internal/importer"
)

// DefaultDriverPassword is assigned when the source file carries no
// password column.
const DefaultDriverPassword = "Driver@2024"

// FieldLicenseNumber is the canonical field for a driving licence.
const FieldLicenseNumber = "license_number"

// DriverRecord is the normalized payload for one driver account.
type DriverRecord struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
	Password      string `json:"password"`
}

func (DriverRecord) EntityType() importer.EntityType { return importer.EntityDrivers }

// DriverAliases maps canonical driver fields to accepted header spellings.
var DriverAliases = importer.AliasTable{
	FieldName:        append([]string{"driver name", "driver_name"}, nameAliases...),
	FieldFirstName:   firstNameAliases,
	FieldLastName:    lastNameAliases,
	FieldEmail:       append([]string{"driver email", "driver_email"}, emailAliases...),
	FieldPhoneNumber: append([]string{"driver phone", "driver_phone"}, phoneAliases...),
	FieldPassword:    passwordAliases,
	FieldLicenseNumber: []string{
		"license_number", "license number", "licence_number", "licence number",
		"license no", "licence no", "driving license", "driving_license",
		"driving licence", "dl number", "dl_number", "license", "licence",
	},
}

// driverMandatory: a driver must arrive with a name, a contact number and a
// licence; none of the three can be invented.
var driverMandatory = []string{FieldName, FieldPhoneNumber, FieldLicenseNumber}

func assembleDriver(fields map[string]string, syn *importer.Synthesizer) (importer.Record, error) {
	first, last := personName(fields)

	email, err := syn.ResolveEmail(fields[FieldEmail], first, last)
	if err != nil {
		return nil, importer.FieldError(FieldEmail, "%v", err)
	}

	return DriverRecord{
		FirstName:     first,
		LastName:      last,
		Email:         email,
		PhoneNumber:   syn.NormalizePhone(fields[FieldPhoneNumber]),
		LicenseNumber: strings.ToUpper(strings.Join(strings.Fields(fields[FieldLicenseNumber]), " ")),
		Password:      orDefault(fields[FieldPassword], DefaultDriverPassword),
	}, nil
}

func validateDriver(rec importer.Record) error {
	d, ok := rec.(DriverRecord)
	if !ok {
		return validation.NewError("wrong_record_type", "not a driver record")
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&d.PhoneNumber, validation.Required, phoneRule),
		validation.Field(&d.Email, validation.Required, emailRule),
		validation.Field(&d.LicenseNumber,
			validation.Required.Error("licence number is required"),
			validation.Length(4, 20).Error("licence number must be 4-20 characters"),
		),
		validation.Field(&d.Password, validation.Required.Error("password is required")),
	)
}

func init() {
	importer.Register(importer.EntitySpec{
		Type:      importer.EntityDrivers,
		Label:     "Drivers",
		Aliases:   DriverAliases,
		Mandatory: driverMandatory,
		Assemble:  assembleDriver,
		Validate:  validateDriver,
	})
}
