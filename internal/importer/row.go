package importer

// row.go provides field resolution against untrusted headers and cell
// cleaning.
//
// Resolution is deterministic by design: the alias table enumerates every
// accepted spelling of a field in priority order (most specific first), and
// matching is limited to case folding plus trimming. No runtime fuzzy
// matching, so "what spellings are accepted" is data, not code.

import "strings"

// AliasTable maps a canonical field name to the ordered list of header
// spellings to probe, most specific first. Both snake_case and
// "Title Case With Spaces" variants are listed explicitly.
type AliasTable map[string][]string

// foldHeader normalizes a header for comparison: trimmed and lowercased.
// Spacing and punctuation are left alone; the alias table enumerates those
// variants itself.
func foldHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Resolve probes row for the canonical field's aliases in table order and
// returns the first value that is present and non-empty after cleaning.
// The boolean reports whether any usable value was found.
func (t AliasTable) Resolve(row RawRow, field string) (string, bool) {
	aliases, ok := t[field]
	if !ok {
		return "", false
	}

	for _, alias := range aliases {
		want := foldHeader(alias)
		for _, cell := range row {
			if foldHeader(cell.Header) != want {
				continue
			}
			if v := CleanValue(cell.Value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// ResolveAll resolves every canonical field in the table, returning the
// subset that produced a usable value.
func (t AliasTable) ResolveAll(row RawRow) map[string]string {
	fields := make(map[string]string, len(t))
	for field := range t {
		if v, ok := t.Resolve(row, field); ok {
			fields[field] = v
		}
	}
	return fields
}

// CleanValue removes common export artifacts from a cell value:
//   - surrounding whitespace
//   - Excel formula prefix (="value")
//   - one layer of wrapping single or double quotes
//
// Idempotent: CleanValue(CleanValue(s)) == CleanValue(s). Stripping runs to
// a fixed point, since peeling one artifact layer can expose another
// (`=="x"` hides a second formula prefix under the first).
func CleanValue(s string) string {
	s = strings.TrimSpace(s)
	for {
		prev := s

		if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
			s = s[2 : len(s)-1]
		} else if strings.HasPrefix(s, "=") {
			s = s[1:]
		}

		for len(s) >= 2 {
			first, last := s[0], s[len(s)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				s = s[1 : len(s)-1]
				continue
			}
			break
		}

		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}
