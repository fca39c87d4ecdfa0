package directory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPhoneRegion is the country calling code assumed for numbers written
// with a leading trunk zero.
const DefaultPhoneRegion = "+233"

// NormalizePhone canonicalizes a raw phone string: every rune except digits
// and one leading "+" is dropped, an international "00" prefix becomes "+",
// and a leading trunk zero is replaced with the region calling code, so
// "050 123 4567" and "+233501234567" normalize to the same value.
func NormalizePhone(raw, region string) string {
	if region == "" {
		region = DefaultPhoneRegion
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	if strings.HasPrefix(s, "0") {
		s = region + s[1:]
	}
	return s
}

// nameFolder strips combining marks so accented and plain spellings of a
// business name compare equal.
var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldName canonicalizes a business name for comparison: diacritics removed,
// lowercased, whitespace collapsed.
func FoldName(name string) string {
	folded, _, err := transform.String(nameFolder, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
