package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebus/shulebus/internal/importer"
)

func TestVehicleImport_HappyPath(t *testing.T) {
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Number Plate", Value: "kbz 123a"},
		{Header: "Make", Value: "Toyota"},
		{Header: "Model", Value: "Hiace"},
		{Header: "Seats", Value: "33"},
		{Header: "Driver Phone", Value: "0711222333"},
	})
	require.Empty(t, errs)

	v, ok := rec.(VehicleRecord)
	require.True(t, ok)

	assert.Equal(t, "KBZ 123A", v.RegistrationNumber)
	assert.Equal(t, "Toyota", v.Make)
	assert.Equal(t, "Hiace", v.Model)
	assert.Equal(t, 33, v.Capacity)
	assert.Equal(t, "+254711222333", v.DriverPhone)
}

func TestVehicleImport_DefaultCapacity(t *testing.T) {
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Registration", Value: "KCA 456B"},
	})
	require.Empty(t, errs)

	v := rec.(VehicleRecord)
	assert.Equal(t, DefaultVehicleCapacity, v.Capacity)
}

func TestVehicleImport_CapacityWithThousandsComma(t *testing.T) {
	// Excel sometimes formats plain integers with separators.
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Registration", Value: "KCA 456B"},
		{Header: "Capacity", Value: "14"},
	})
	require.Empty(t, errs)
	assert.Equal(t, 14, rec.(VehicleRecord).Capacity)
}

func TestVehicleImport_BadCapacityRejected(t *testing.T) {
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Registration", Value: "KCA 456B"},
		{Header: "Capacity", Value: "fourteen"},
	})
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldCapacity, errs[0].Field)
	assert.Contains(t, errs[0].Message, "invalid number")
}

func TestVehicleImport_CapacityOutOfRange(t *testing.T) {
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Registration", Value: "KCA 456B"},
		{Header: "Capacity", Value: "500"},
	})
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldCapacity, errs[0].Field)
}

func TestVehicleImport_ZeroCapacityRejected(t *testing.T) {
	// An explicit "0" is not the same as an absent column and must not
	// produce a zero-seat vehicle.
	for _, capacity := range []string{"0", "-3"} {
		rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
			{Header: "Registration", Value: "KCA 456B"},
			{Header: "Capacity", Value: capacity},
		})
		assert.Nil(t, rec)
		require.Len(t, errs, 1)
		assert.Equal(t, FieldCapacity, errs[0].Field)
		assert.Contains(t, errs[0].Message, "at least 1")
	}
}

func TestVehicleImport_MissingRegistrationRejected(t *testing.T) {
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Make", Value: "Toyota"},
	})
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldRegistration, errs[0].Field)
}

func TestVehicleImport_DriverPhoneNeverSynthesized(t *testing.T) {
	// Absent driver phone stays absent rather than becoming a placeholder.
	rec, errs := normalize(t, importer.EntityVehicles, importer.RawRow{
		{Header: "Registration", Value: "KCA 456B"},
	})
	require.Empty(t, errs)
	assert.Empty(t, rec.(VehicleRecord).DriverPhone)
}

func TestNormalizeRegistration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kbz 123a", "KBZ 123A"},
		{"  KBZ   123A  ", "KBZ 123A"},
		{"kbz123a", "KBZ123A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeRegistration(tt.input))
	}
}
