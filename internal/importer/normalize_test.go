package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contactRecord is a minimal Record for exercising the generic pipeline
// without pulling in a full entity definition.
type contactRecord struct {
	Name  string
	Phone string
	Email string
}

func (contactRecord) EntityType() EntityType { return EntityParents }

func contactSpec() EntitySpec {
	return EntitySpec{
		Type:  EntityParents,
		Label: "Contacts",
		Aliases: AliasTable{
			"name":         {"name", "full name"},
			"phone_number": {"phone_number", "phone", "mobile"},
			"email":        {"email", "mail"},
		},
		Mandatory: []string{"name", "phone_number"},
		Assemble: func(fields map[string]string, syn *Synthesizer) (Record, error) {
			email, err := syn.ResolveEmail(fields["email"], fields["name"], "")
			if err != nil {
				return nil, FieldError("email", "%v", err)
			}
			return contactRecord{
				Name:  fields["name"],
				Phone: syn.NormalizePhone(fields["phone_number"]),
				Email: email,
			}, nil
		},
	}
}

func TestNormalizeRow_HappyPath(t *testing.T) {
	pipe := NewPipeline(contactSpec(), newStubSource())

	row := Row{
		Index: 1,
		Cells: RawRow{
			{Header: "Name", Value: "'Mary Wanjiku'"},
			{Header: "Phone", Value: "0722858508"},
		},
	}

	rec, errs := pipe.NormalizeRow(row)
	require.Empty(t, errs)

	contact, ok := rec.(contactRecord)
	require.True(t, ok)
	assert.Equal(t, "Mary Wanjiku", contact.Name)
	assert.Equal(t, "+254722858508", contact.Phone)
	assert.True(t, ValidEmail(contact.Email), "synthesized email %q", contact.Email)
}

func TestNormalizeRow_MissingMandatory(t *testing.T) {
	pipe := NewPipeline(contactSpec(), newStubSource())

	row := Row{
		Index: 3,
		Cells: RawRow{
			{Header: "Email", Value: "mary@example.com"},
		},
	}

	rec, errs := pipe.NormalizeRow(row)
	assert.Nil(t, rec)
	require.Len(t, errs, 2)

	for _, e := range errs {
		assert.Equal(t, 3, e.Row)
		assert.Contains(t, e.Message, "missing required field")
	}
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "phone_number", errs[1].Field)
}

func TestNormalizeRow_MandatoryNotSynthesized(t *testing.T) {
	// A row with a name but no phone at all must be rejected, not patched
	// with a placeholder.
	pipe := NewPipeline(contactSpec(), newStubSource())

	row := Row{
		Index: 2,
		Cells: RawRow{{Header: "Name", Value: "Mary"}},
	}

	rec, errs := pipe.NormalizeRow(row)
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "phone_number", errs[0].Field)
}

func TestNormalizeRow_AssembleFieldError(t *testing.T) {
	spec := contactSpec()
	spec.Assemble = func(fields map[string]string, syn *Synthesizer) (Record, error) {
		return nil, FieldError("capacity", "invalid number: %q", "abc")
	}
	pipe := NewPipeline(spec, newStubSource())

	row := Row{
		Index: 7,
		Cells: RawRow{
			{Header: "Name", Value: "Mary"},
			{Header: "Phone", Value: "0722858508"},
		},
	}

	_, errs := pipe.NormalizeRow(row)
	require.Len(t, errs, 1)
	assert.Equal(t, 7, errs[0].Row)
	assert.Equal(t, "capacity", errs[0].Field)
	assert.Equal(t, `Row 7, capacity: invalid number: "abc"`, errs[0].String())
}

func TestNormalizeRow_AssemblePlainError(t *testing.T) {
	spec := contactSpec()
	spec.Assemble = func(fields map[string]string, syn *Synthesizer) (Record, error) {
		return nil, errors.New("assembly exploded")
	}
	pipe := NewPipeline(spec, newStubSource())

	row := Row{
		Index: 4,
		Cells: RawRow{
			{Header: "Name", Value: "Mary"},
			{Header: "Phone", Value: "0722858508"},
		},
	}

	_, errs := pipe.NormalizeRow(row)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Row)
	assert.Empty(t, errs[0].Field)
	assert.Equal(t, "assembly exploded", errs[0].Message)
}

func TestNormalizeRow_ValidateFailure(t *testing.T) {
	spec := contactSpec()
	spec.Validate = func(rec Record) error {
		return fmt.Errorf("record rejected")
	}
	pipe := NewPipeline(spec, newStubSource())

	row := Row{
		Index: 5,
		Cells: RawRow{
			{Header: "Name", Value: "Mary"},
			{Header: "Phone", Value: "0722858508"},
		},
	}

	_, errs := pipe.NormalizeRow(row)
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Row)
	assert.Equal(t, "record rejected", errs[0].Message)
}

func TestImportErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  ImportError
		want string
	}{
		{"row and field", ImportError{Row: 2, Field: "email", Message: "bad"}, "Row 2, email: bad"},
		{"row only", ImportError{Row: 2, Message: "bad"}, "Row 2: bad"},
		{"file level", ImportError{Message: "unreadable"}, "unreadable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.String())
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
