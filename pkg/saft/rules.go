// =============================================================================
// SAF-T (PT) - Field Rules
// =============================================================================
//
// The XSD restricts simple types with minLength/maxLength, pattern and
// numeric bounds. Each restriction used by the schema is expressed here once
// and shared by every element that uses the same simple type.
//
// STORE-INVALID POLICY:
//   A value that fails its rule is still stored exactly as given; the setter
//   returns false and the caller registers the code. A value that is only
//   too long is truncated to the maximum and accepted.
//
// =============================================================================

package saft

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TEXT RULES
// =============================================================================

// Text is a string restriction.
type Text struct {
	// Min is the minimum length in characters. Zero allows the empty string.
	Min int

	// Max is the maximum length in characters. Longer values are truncated.
	// Zero means unbounded.
	Max int

	// Pattern, when set, must match the untruncated value.
	Pattern *regexp.Regexp
}

// Check returns the value to store and whether it satisfies the rule.
// Length and pattern are evaluated on the value as given.
func (t Text) Check(value string) (string, bool) {
	n := utf8.RuneCountInString(value)
	if n < t.Min {
		return value, false
	}
	if t.Pattern != nil && !t.Pattern.MatchString(value) {
		return value, false
	}
	if t.Max > 0 && n > t.Max {
		return Truncate(value, t.Max), true
	}
	return value, true
}

// Truncate cuts s to at most max characters.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// Commonly used restrictions of the SAF-T (PT) 1.04_01 schema.
var (
	TextMax10     = Text{Min: 1, Max: 10}
	TextMax20     = Text{Min: 1, Max: 20}
	TextMax21     = Text{Min: 1, Max: 21}
	TextMax30     = Text{Min: 1, Max: 30}
	TextMax50     = Text{Min: 1, Max: 50}
	TextMax60     = Text{Min: 1, Max: 60}
	TextMax70     = Text{Min: 1, Max: 70}
	TextMax100    = Text{Min: 1, Max: 100}
	TextMax172    = Text{Min: 1, Max: 172}
	TextMax200    = Text{Min: 1, Max: 200}
	TextMax210    = Text{Min: 1, Max: 210}
	TextMax254    = Text{Min: 1, Max: 254}
	TextMax255    = Text{Min: 1, Max: 255}
	TextMin2      = Text{Min: 2, Max: 200}
	TextOptMax200 = Text{Min: 0, Max: 200}
)

// Patterns of the schema.
var (
	// DocumentNumberPattern matches "<type> <series>/<number>".
	DocumentNumberPattern = regexp.MustCompile(`^[^ ]+ [^/^ ]+/[0-9]+$`)

	// HashControlPattern matches the key version, optionally followed by
	// the reference of the manual document it duplicates.
	HashControlPattern = regexp.MustCompile(`^[0-9]+(-[A-Z]{2,4}M [^ /]+/[0-9]+)?$`)

	// TransactionIDPattern matches "<date> <journal> <document>".
	TransactionIDPattern = regexp.MustCompile(`^[1-9][0-9]{3}-[0-1][0-9]-[0-3][0-9] [^ ]{1,30} [^ ]{1,20}$`)

	// ATCUDPattern matches "0" or "<validation code>-<sequence>".
	ATCUDPattern = regexp.MustCompile(`^(0|[^ ]+-[0-9]+)$`)

	// EACCodePattern matches a five digit economic activity code.
	EACCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

	// TaxCodePattern matches the codes allowed in Tax/TaxCode.
	TaxCodePattern = regexp.MustCompile(`^(RED|INT|NOR|ISE|OUT|NS|NA|[a-zA-Z0-9.]{1,10})$`)

	// ProductIDPattern matches "<product name>/<company name>".
	ProductIDPattern = regexp.MustCompile(`^[^/]+/[^/]+$`)

	// CompanyIDPattern matches a registry office number or a tax number.
	CompanyIDPattern = regexp.MustCompile(`^([0-9]{1,9}|[^ ]+ [0-9]{1,9})$`)

	// EmailPattern is a loose address check.
	EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// PostalCodePTPattern matches the Portuguese "NNNN-NNN" format.
	PostalCodePTPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}$`)
)

// =============================================================================
// NUMERIC RULES
// =============================================================================

var hundred = decimal.NewFromInt(100)

// NonNegative reports whether d >= 0.
func NonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// Positive reports whether d > 0.
func Positive(d decimal.Decimal) bool {
	return d.IsPositive()
}

// Percentage reports whether 0 <= d <= 100.
func Percentage(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// ValidNIF reports whether nif is a Portuguese tax registration number with a
// correct check digit.
func ValidNIF(nif int) bool {
	if nif < 100000000 || nif > 999999999 {
		return false
	}
	digits := make([]int, 9)
	for i := 8; i >= 0; i-- {
		digits[i] = nif % 10
		nif /= 10
	}
	sum := 0
	for i := 0; i < 8; i++ {
		sum += digits[i] * (9 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == digits[8]
}
