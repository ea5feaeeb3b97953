// Package builtin contains the reusable transformers and field normalizers
// the entity transforms are assembled from.
package builtin

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultCategory is substituted for absent or empty category values.
const defaultCategory = "Uncategorized"

// dateLayouts are tried in this exact order; the first successful parse wins.
// The order is load-bearing: day-first layouts come before their US month-first
// counterparts, so an ambiguous string like "01-02-2024" resolves as 1 February,
// not January 2. Do not reorder.
var dateLayouts = []string{
	"2006-01-02", // ISO
	"02/01/2006", // day-first, slash
	"02-01-2006", // day-first, dash
	"01-02-2006", // month-first, dash (US)
	"2006/01/02",
	"2006.01.02",
	"01/02/2006", // month-first, slash (US)
}

var titleCaser = cases.Title(language.English)

// NormalizePhone standardizes a phone number to "+91-XXXXXXXXXX".
//
// All non-digit characters are stripped, then leading zeros. A 10-digit
// remainder is prefixed with +91-; a 12-digit remainder starting with the 91
// country code has the prefix stripped and re-added. Anything else, including
// absent input, yields nil.
func NormalizePhone(v any) any {
	s, ok := asString(v)
	if !ok {
		return nil
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")

	switch {
	case len(digits) == 10:
		return "+91-" + digits
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+91-" + digits[2:]
	default:
		return nil
	}
}

// NormalizeDate converts a date in any of the admissible layouts to the
// canonical YYYY-MM-DD form, or nil when the value is absent or unparseable.
func NormalizeDate(v any) any {
	s, ok := asString(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return nil
}

// NormalizeCategory trims and title-cases a category name, substituting
// "Uncategorized" for absent or empty values.
func NormalizeCategory(v any) any {
	s, ok := asString(v)
	if !ok {
		return defaultCategory
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultCategory
	}
	return titleCaser.String(s)
}

// TitleCase trims and title-cases a string value; non-string values pass
// through unchanged.
func TitleCase(v any) any {
	s, ok := asString(v)
	if !ok {
		return v
	}
	return titleCaser.String(strings.TrimSpace(s))
}

// Trim strips surrounding whitespace from a string value; non-string values
// pass through unchanged.
func Trim(v any) any {
	s, ok := asString(v)
	if !ok {
		return v
	}
	return strings.TrimSpace(s)
}

// asString unwraps v to a non-empty string. nil and "" report false.
func asString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
