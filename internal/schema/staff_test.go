package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebus/shulebus/internal/importer"
)

func TestStaffImport_HappyPath(t *testing.T) {
	rec, errs := normalize(t, importer.EntityStaff, importer.RawRow{
		{Header: "Employee Name", Value: "Peter Kamau"},
		{Header: "Work Phone", Value: "0755666777"},
		{Header: "Designation", Value: "Route Supervisor"},
	})
	require.Empty(t, errs)

	s, ok := rec.(StaffRecord)
	require.True(t, ok)

	assert.Equal(t, "Peter", s.FirstName)
	assert.Equal(t, "Kamau", s.LastName)
	assert.Equal(t, "+254755666777", s.PhoneNumber)
	assert.Equal(t, "Route Supervisor", s.Role)
	assert.Equal(t, DefaultStaffPassword, s.Password)
	assert.True(t, importer.ValidEmail(s.Email))
}

func TestStaffImport_DefaultRole(t *testing.T) {
	rec, errs := normalize(t, importer.EntityStaff, importer.RawRow{
		{Header: "Name", Value: "Peter Kamau"},
		{Header: "Phone", Value: "0755666777"},
	})
	require.Empty(t, errs)
	assert.Equal(t, DefaultStaffRole, rec.(StaffRecord).Role)
}

func TestStaffImport_MissingNameRejected(t *testing.T) {
	rec, errs := normalize(t, importer.EntityStaff, importer.RawRow{
		{Header: "Phone", Value: "0755666777"},
	})
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldName, errs[0].Field)
}

func TestAllEntityTypesRegistered(t *testing.T) {
	for _, et := range []importer.EntityType{
		importer.EntityParents,
		importer.EntityDrivers,
		importer.EntityVehicles,
		importer.EntityStaff,
	} {
		_, ok := importer.Spec(et)
		assert.True(t, ok, "entity type %s must be registered", et)
	}
	assert.Len(t, importer.Specs(), 4)
}
