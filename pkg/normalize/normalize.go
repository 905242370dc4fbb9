// Package normalize derives canonical join keys from raw entity labels and
// canonical family names from technical identifiers. These two pure functions
// are the sole basis for cross-source identity in the reconciliation: there
// is no secondary matching pass and no similarity threshold.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// labelSeparators are the decorative separators found in source labels.
// Only the segment after the last separator names the entity.
const labelSeparators = "|·"

// stripMarks removes diacritics by decomposing to NFD, dropping combining
// marks, and recomposing.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Identity maps a raw entity label to its canonical join key.
//
// The empty label yields the empty key (sources scan SQL NULL to blank).
// Otherwise the label is lower-cased, reduced to the trimmed segment after
// the last decorative separator, stripped of diacritics, and canonicalized:
// every non-alphanumeric rune becomes a space and runs of spaces collapse.
// Identity is idempotent: applying it to its own output is a no-op.
func Identity(label string) string {
	s := strings.ToLower(label)
	if i := strings.LastIndexAny(s, labelSeparators); i >= 0 {
		_, width := utf8.DecodeRuneInString(s[i:])
		s = strings.TrimSpace(s[i+width:])
	}
	return canonicalize(s)
}

// Family maps a technical identifier to its product-family name under the
// given policy. The identifier is upper-cased and split into tokens on every
// non-alphanumeric rune; tokens named by the policy's region, prefix, or
// qualifier lists are dropped whole (never as substrings); the remaining
// tokens are joined with single spaces and lower-cased. Many SKU-like
// identifiers collapse onto one family, which is what makes the volume
// aggregation meaningful.
func Family(identifier string, p Policy) string {
	if identifier == "" {
		return ""
	}
	tokens := strings.FieldsFunc(strings.ToUpper(identifier), isNotAlphanumeric)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if p.strips(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// canonicalize strips diacritics, maps every non-alphanumeric rune to a
// space, collapses whitespace runs, and trims.
func canonicalize(s string) string {
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			pending = false
		} else {
			pending = true
		}
	}
	return b.String()
}

func isNotAlphanumeric(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
