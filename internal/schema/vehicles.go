package schema

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shulebus/shulebus/internal/importer"
)

// Canonical vehicle fields.
const (
	FieldRegistration = "registration_number"
	FieldMake         = "make"
	FieldModel        = "model"
	FieldCapacity     = "capacity"
	FieldDriverPhone  = "driver_phone"
)

// DefaultVehicleCapacity is used when the source file has no usable
// capacity column: the 14-seater is the operator's most common vehicle.
const DefaultVehicleCapacity = 14

// VehicleRecord is the normalized payload for one vehicle.
type VehicleRecord struct {
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make,omitempty"`
	Model              string `json:"model,omitempty"`
	Capacity           int    `json:"capacity"`
	DriverPhone        string `json:"driver_phone,omitempty"`
}

func (VehicleRecord) EntityType() importer.EntityType { return importer.EntityVehicles }

// VehicleAliases maps canonical vehicle fields to accepted header
// spellings.
var VehicleAliases = importer.AliasTable{
	FieldRegistration: []string{
		"registration_number", "registration number", "registration",
		"reg_number", "reg number", "reg_no", "reg no", "reg",
		"number_plate", "number plate", "plate_number", "plate number", "plate",
		"vehicle_registration", "vehicle registration",
	},
	FieldMake: []string{
		"make", "vehicle make", "vehicle_make", "manufacturer",
	},
	FieldModel: []string{
		"model", "vehicle model", "vehicle_model",
	},
	FieldCapacity: []string{
		"capacity", "seating_capacity", "seating capacity", "seats",
		"passenger_capacity", "passenger capacity", "no of seats", "no_of_seats",
	},
	FieldDriverPhone: []string{
		"driver_phone", "driver phone", "driver phone number",
		"driver_phone_number", "driver contact", "driver_contact",
	},
}

// vehicleMandatory: the registration plate is the vehicle's identity and
// cannot be invented.
var vehicleMandatory = []string{FieldRegistration}

// normalizeRegistration uppercases a plate and collapses internal
// whitespace: "kbz 123a" -> "KBZ 123A".
func normalizeRegistration(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func assembleVehicle(fields map[string]string, syn *importer.Synthesizer) (importer.Record, error) {
	capacity := DefaultVehicleCapacity
	if raw := fields[FieldCapacity]; raw != "" {
		n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return nil, importer.FieldError(FieldCapacity, "invalid number: %q", raw)
		}
		capacity = n
	}

	rec := VehicleRecord{
		RegistrationNumber: normalizeRegistration(fields[FieldRegistration]),
		Make:               fields[FieldMake],
		Model:              fields[FieldModel],
		Capacity:           capacity,
	}

	// Driver phone is optional and, unlike account phones, never
	// synthesized: a placeholder number on a vehicle would point dispatch
	// at nobody.
	if raw := fields[FieldDriverPhone]; raw != "" {
		rec.DriverPhone = syn.NormalizePhone(raw)
	}

	return rec, nil
}

// capacityRule bounds the seat count inline: threshold rules treat the int
// zero value as empty and skip it, so an explicit "0" capacity would pass
// Min(1) unchecked.
var capacityRule = validation.By(func(value interface{}) error {
	n, _ := value.(int)
	if n < 1 {
		return validation.NewError("capacity_too_small", "capacity must be at least 1")
	}
	if n > 100 {
		return validation.NewError("capacity_too_large", "capacity must be at most 100")
	}
	return nil
})

func validateVehicle(rec importer.Record) error {
	v, ok := rec.(VehicleRecord)
	if !ok {
		return validation.NewError("wrong_record_type", "not a vehicle record")
	}
	return validation.ValidateStruct(&v,
		validation.Field(&v.RegistrationNumber,
			validation.Required.Error("registration number is required"),
			validation.Length(4, 16).Error("registration number must be 4-16 characters"),
		),
		validation.Field(&v.Capacity, capacityRule),
	)
}

func init() {
	importer.Register(importer.EntitySpec{
		Type:      importer.EntityVehicles,
		Label:     "Vehicles",
		Aliases:   VehicleAliases,
		Mandatory: vehicleMandatory,
		Assemble:  assembleVehicle,
		Validate:  validateVehicle,
	})
}
