package importer

// phone.go canonicalizes freeform phone numbers into the single-country
// +254XXXXXXXXX shape (13 characters) used throughout the system.
//
// Upstream data entry is uncontrolled, so this stage never fails: when the
// source value is unusable it synthesizes a structurally valid placeholder
// instead of blocking the import. Synthesized numbers are tracked per batch
// so no two placeholders collide within one upload.

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// CountryCallingCode is the only calling code the pipeline emits.
const CountryCallingCode = "254"

// PhonePattern is the canonical output shape callers may rely on.
var PhonePattern = regexp.MustCompile(`^\+254\d{9}$`)

// SuffixSource supplies the timestamp and random suffix used when
// synthesizing placeholder values. Injectable so tests can supply
// deterministic sequences.
type SuffixSource interface {
	// Now returns the current time.
	Now() time.Time
	// Suffix returns a value in [0, 1000) used as a 3-digit disambiguator.
	Suffix() int
}

type clockSuffixSource struct{}

func (clockSuffixSource) Now() time.Time { return time.Now() }
func (clockSuffixSource) Suffix() int    { return rand.IntN(1000) }

// SystemSuffixSource is the production SuffixSource: real clock, real
// randomness.
var SystemSuffixSource SuffixSource = clockSuffixSource{}

// Synthesizer generates placeholder phone numbers and emails for one batch.
// It remembers what it has handed out so synthesized values are unique
// within the batch. Not safe for concurrent use; each batch owns its own.
type Synthesizer struct {
	src  SuffixSource
	seen map[string]struct{}
}

// NewSynthesizer creates a Synthesizer backed by the given suffix source.
func NewSynthesizer(src SuffixSource) *Synthesizer {
	if src == nil {
		src = SystemSuffixSource
	}
	return &Synthesizer{
		src:  src,
		seen: make(map[string]struct{}),
	}
}

// digitsOnly projects a string onto its decimal digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone converts a freeform phone string into canonical form.
// It always returns a value matching PhonePattern; unusable input yields a
// synthesized placeholder.
//
// Rules, applied in order to the digit-only projection of the input:
//  1. empty -> synthesize
//  2. 12 digits with the 254 calling code -> prefix "+"
//  3. 10 digits with the 0 trunk prefix -> drop the 0, prefix +254
//  4. exactly 9 digits -> prefix +254
//  5. 11 digits beginning with 7 -> keep the first 9, prefix +254
//  6. anything else with >= 9 digits -> keep the last 9, prefix +254
//  7. anything shorter -> synthesize
func (s *Synthesizer) NormalizePhone(raw string) string {
	digits := digitsOnly(raw)

	switch {
	case digits == "":
		return s.SynthesizePhone()
	case len(digits) == 12 && strings.HasPrefix(digits, CountryCallingCode):
		return "+" + digits
	case len(digits) == 10 && digits[0] == '0':
		return "+" + CountryCallingCode + digits[1:]
	case len(digits) == 9:
		return "+" + CountryCallingCode + digits
	case len(digits) == 11 && digits[0] == '7':
		return "+" + CountryCallingCode + digits[:9]
	case len(digits) >= 9:
		return "+" + CountryCallingCode + digits[len(digits)-9:]
	default:
		return s.SynthesizePhone()
	}
}

// SynthesizePhone builds a placeholder from the current timestamp plus a
// random 3-digit suffix, shaped into a 9-digit local number beginning with
// 7. It retries until the value is unique within the batch; the attempt
// counter perturbs the timestamp so even a frozen clock terminates.
func (s *Synthesizer) SynthesizePhone() string {
	for attempt := int64(0); ; attempt++ {
		ts := (s.src.Now().UnixMilli() + attempt) % 100000
		phone := fmt.Sprintf("+%s7%05d%03d", CountryCallingCode, ts, s.src.Suffix())
		if _, dup := s.seen[phone]; dup {
			continue
		}
		s.seen[phone] = struct{}{}
		return phone
	}
}
