package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain value", "hello", "hello"},
		{"surrounding whitespace", "  hello  ", "hello"},
		{"double quotes", `"hello"`, "hello"},
		{"single quotes", "'hello'", "hello"},
		{"nested quotes", `"'hello'"`, "hello"},
		{"excel formula prefix", `="0722858508"`, "0722858508"},
		{"bare equals prefix", "=0722858508", "0722858508"},
		{"doubled formula prefix", `=="x"`, "x"},
		{"formula prefix inside single quotes", `'="a"'`, "a"},
		{"formula prefix inside double quotes", `"="b""`, "b"},
		{"quotes around whitespace", `" hello "`, "hello"},
		{"empty string", "", ""},
		{"only whitespace", "   ", ""},
		{"only quotes", `""`, ""},
		{"lone quote preserved", `"`, `"`},
		{"interior quotes preserved", `say "hi" now`, `say "hi" now`},
		{"apostrophe name", "'Mary Wanjiku'", "Mary Wanjiku"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanValue(tt.input))
		})
	}
}

func TestCleanValue_Idempotent(t *testing.T) {
	inputs := []string{
		"hello", "  hello  ", `"hello"`, "'hello'", `="0722"`,
		`"'nested'"`, "", "  ", `"`, "=x",
		`=="x"`, `'="a"'`, `"="b""`, "===y", `=" ="z" "`,
	}
	for _, in := range inputs {
		once := CleanValue(in)
		assert.Equal(t, once, CleanValue(once), "CleanValue not idempotent for %q", in)
	}
}

func TestAliasTable_Resolve(t *testing.T) {
	table := AliasTable{
		"phone_number": {"phone_number", "phone number", "phone", "mobile"},
	}

	t.Run("case insensitive header match", func(t *testing.T) {
		row := RawRow{{Header: "Phone Number", Value: "0722858508"}}
		got, ok := table.Resolve(row, "phone_number")
		require.True(t, ok)
		assert.Equal(t, "0722858508", got)
	})

	t.Run("alias order beats row order", func(t *testing.T) {
		// "mobile" comes first in the row but "phone" outranks it in the
		// alias list.
		row := RawRow{
			{Header: "Mobile", Value: "111"},
			{Header: "Phone", Value: "222"},
		}
		got, ok := table.Resolve(row, "phone_number")
		require.True(t, ok)
		assert.Equal(t, "222", got)
	})

	t.Run("empty value falls through to next alias", func(t *testing.T) {
		row := RawRow{
			{Header: "Phone", Value: "  "},
			{Header: "Mobile", Value: "0722000000"},
		}
		got, ok := table.Resolve(row, "phone_number")
		require.True(t, ok)
		assert.Equal(t, "0722000000", got)
	})

	t.Run("value is cleaned", func(t *testing.T) {
		row := RawRow{{Header: "phone", Value: `="0722858508"`}}
		got, ok := table.Resolve(row, "phone_number")
		require.True(t, ok)
		assert.Equal(t, "0722858508", got)
	})

	t.Run("unknown field", func(t *testing.T) {
		row := RawRow{{Header: "phone", Value: "0722"}}
		_, ok := table.Resolve(row, "email")
		assert.False(t, ok)
	})

	t.Run("no matching header", func(t *testing.T) {
		row := RawRow{{Header: "fax", Value: "0722"}}
		_, ok := table.Resolve(row, "phone_number")
		assert.False(t, ok)
	})
}

func TestAliasTable_ResolveAll(t *testing.T) {
	table := AliasTable{
		"name":  {"name", "full name"},
		"email": {"email", "mail"},
		"phone": {"phone"},
	}
	row := RawRow{
		{Header: "Full Name", Value: "Mary Wanjiku"},
		{Header: "MAIL", Value: "mary@example.com"},
	}

	fields := table.ResolveAll(row)
	assert.Equal(t, map[string]string{
		"name":  "Mary Wanjiku",
		"email": "mary@example.com",
	}, fields)
}
