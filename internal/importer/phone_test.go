package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a frozen-clock SuffixSource with a fixed suffix, so
// synthesized values are fully deterministic.
type stubSource struct {
	now    time.Time
	suffix int
}

func (s stubSource) Now() time.Time { return s.now }
func (s stubSource) Suffix() int    { return s.suffix }

func newStubSource() stubSource {
	return stubSource{
		now:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		suffix: 42,
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local with trunk zero", "0722858508", "+254722858508"},
		{"already international with plus", "+254722858508", "+254722858508"},
		{"international without plus", "254722858508", "+254722858508"},
		{"bare nine digits", "722858508", "+254722858508"},
		{"formatted with spaces", "0722 858 508", "+254722858508"},
		{"formatted with dashes", "0722-858-508", "+254722858508"},
		{"eleven digits starting with seven", "72285850812", "+254722858508"},
		{"long garbage keeps last nine", "999722858508", "+254722858508"},
		{"excel artifact digits", "(0722) 858508", "+254722858508"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syn := NewSynthesizer(newStubSource())
			got := syn.NormalizePhone(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, PhonePattern, got)
		})
	}
}

func TestNormalizePhone_SynthesizesWhenUnusable(t *testing.T) {
	inputs := []string{"", "   ", "n/a", "12345", "call me"}

	for _, in := range inputs {
		syn := NewSynthesizer(newStubSource())
		got := syn.NormalizePhone(in)
		require.Regexp(t, PhonePattern, got, "input %q", in)
		assert.Len(t, got, 13, "input %q", in)
	}
}

func TestNormalizePhone_AlwaysCanonicalLength(t *testing.T) {
	// Every output is exactly "+254" plus nine digits regardless of input
	// shape.
	syn := NewSynthesizer(newStubSource())
	inputs := []string{
		"0722858508", "+254722858508", "722858508", "72285850812",
		"1234567890123456", "", "abc",
	}
	for _, in := range inputs {
		got := syn.NormalizePhone(in)
		assert.Len(t, got, 13, "input %q", in)
		assert.Regexp(t, PhonePattern, got, "input %q", in)
	}
}

func TestSynthesizePhone_UniqueWithinBatch(t *testing.T) {
	// The clock is frozen and the suffix constant, so uniqueness must come
	// from the synthesizer's own bookkeeping.
	syn := NewSynthesizer(newStubSource())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		phone := syn.SynthesizePhone()
		require.Regexp(t, PhonePattern, phone)
		require.False(t, seen[phone], "duplicate synthesized phone %q", phone)
		seen[phone] = true
	}
}

func TestSynthesizePhone_Deterministic(t *testing.T) {
	a := NewSynthesizer(newStubSource()).SynthesizePhone()
	b := NewSynthesizer(newStubSource()).SynthesizePhone()
	assert.Equal(t, a, b)
}
