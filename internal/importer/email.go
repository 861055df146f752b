package importer

// email.go validates emails and derives placeholder addresses from name
// fields when the source value is absent or malformed.

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxEmailLength mirrors the historical wire-protocol limit on address
// length.
const MaxEmailLength = 254

// SynthDomain is the domain synthesized addresses are minted under.
const SynthDomain = "school.com"

// emailPattern is a conservative local@domain.tld shape. Anything fancier
// (quoted locals, IP domains) is rejected and synthesized instead.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s is an acceptable address: pattern-shaped,
// within the length limit, no surrounding whitespace.
func ValidEmail(s string) bool {
	if s == "" || len(s) > MaxEmailLength {
		return false
	}
	if s != strings.TrimSpace(s) {
		return false
	}
	return emailPattern.MatchString(s)
}

// alphaOnly lowercases s and keeps only ASCII letters.
func alphaOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveEmail returns rawEmail verbatim when it passes validation after
// cleaning, and otherwise synthesizes a unique address from the name
// fields.
func (s *Synthesizer) ResolveEmail(rawEmail, firstName, lastName string) (string, error) {
	if cleaned := CleanValue(rawEmail); ValidEmail(cleaned) {
		return cleaned, nil
	}
	return s.SynthesizeEmail(firstName, lastName)
}

// SynthesizeEmail derives firstname.lastname<timestamp>@school.com from the
// name fields, falling back to the literal words "parent"/"user" when a
// name filters down to nothing. The result is checked against the same
// validator accepted input must pass; a failure here is an internal
// invariant violation, not user error.
func (s *Synthesizer) SynthesizeEmail(firstName, lastName string) (string, error) {
	first := alphaOnly(firstName)
	if first == "" {
		first = "parent"
	}
	last := alphaOnly(lastName)
	if last == "" {
		last = "user"
	}

	for attempt := int64(0); ; attempt++ {
		email := fmt.Sprintf("%s.%s%d@%s", first, last, s.src.Now().UnixMilli()+attempt, SynthDomain)
		if !ValidEmail(email) {
			return "", fmt.Errorf("synthesized email %q failed validation", email)
		}
		if _, dup := s.seen[email]; dup {
			continue
		}
		s.seen[email] = struct{}{}
		return email, nil
	}
}
