package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects the canonical form a captured value must take.
type Kind string

const (
	KindDate       Kind = "date"
	KindCurrency   Kind = "currency"
	KindIdentifier Kind = "identifier"
	KindText       Kind = "text"
)

// Error reports a captured value that could not be converted to its
// canonical form. Extraction recovers from it per field; it never
// surfaces as a pipeline failure.
type Error struct {
	Kind  Kind
	Value string
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalize %s: unrecognized value %q", e.Kind, e.Value)
}

// CanonicalDateLayout is the single representation all date fields take.
const CanonicalDateLayout = "2006-01-02"

// dateLayouts are attempted in order. Two-digit-year layouts are
// re-pivoted after parsing (see pivotYear).
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"1/2/2006",
	"1-2-2006",
	"01/02/06",
	"01-02-06",
	"1/2/06",
	"1-2-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Date converts a raw date string to YYYY-MM-DD. Two-digit years resolve
// by a fixed pivot: 00-49 -> 2000s, 50-99 -> 1900s. Canonical input is
// returned unchanged.
func Date(raw string) (string, error) {
	s := Text(raw)
	if s == "" {
		return "", &Error{Kind: KindDate, Value: raw}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if twoDigitYear(layout) {
			t = pivotYear(t)
		}
		return t.Format(CanonicalDateLayout), nil
	}
	return "", &Error{Kind: KindDate, Value: raw}
}

func twoDigitYear(layout string) bool {
	return !strings.Contains(layout, "2006")
}

// pivotYear overrides Go's built-in 69..68 window for two-digit years
// with the fixed 00-49 -> 2000s, 50-99 -> 1900s pivot.
func pivotYear(t time.Time) time.Time {
	yy := t.Year() % 100
	century := 1900
	if yy < 50 {
		century = 2000
	}
	return time.Date(century+yy, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// currencySymbols are stripped before numeric parsing.
const currencySymbols = "$€£¥"

// Currency converts a raw amount to a decimal string with two fractional
// digits, e.g. "$1,250.5" -> "1250.50". Sign is preserved; the validator
// decides whether negative amounts are acceptable.
func Currency(raw string) (string, error) {
	s := Text(raw)
	s = strings.ReplaceAll(s, ",", "")
	for _, r := range currencySymbols {
		s = strings.ReplaceAll(s, string(r), "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &Error{Kind: KindCurrency, Value: raw}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", &Error{Kind: KindCurrency, Value: raw}
	}
	return d.StringFixed(2), nil
}

// Identifier canonicalizes member IDs, claim numbers, NPIs: trimmed,
// case preserved, internal whitespace removed. Empty input yields ""
// (caller treats the field as absent); there is no failure mode.
func Identifier(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// Text trims and collapses internal whitespace runs to single spaces.
func Text(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Apply dispatches raw to the normalizer for kind. An empty result means
// the field should be treated as absent.
func Apply(kind Kind, raw string) (string, error) {
	switch kind {
	case KindDate:
		return Date(raw)
	case KindCurrency:
		return Currency(raw)
	case KindIdentifier:
		return Identifier(raw), nil
	case KindText:
		return Text(raw), nil
	default:
		return "", &Error{Kind: kind, Value: raw}
	}
}
