// Package parse holds the locale-specific number and date parsing the
// bank pages use. Estonian bank sites mix conventions: some use "," as
// the decimal separator, others use it as a thousands separator, and
// dates are always day-first.
package parse

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

const (
	// DateFormat is the day-first date used across statement pages.
	DateFormat = "02.01.2006"
	// DateTimeFormat adds the time component seen on reservation rows.
	DateTimeFormat = "02.01.2006 15:04:05"
	// ShortDateTimeFormat is the two-digit-year variant embedded in
	// card debit detail strings.
	ShortDateTimeFormat = "02.01.06 15:04:05"
)

// DecimalComma parses a number using "," as the decimal separator and
// optional spaces as thousands separators, e.g. "1 234,56" -> 1234.56.
func DecimalComma(text string) (decimal.Decimal, error) {
	s := stripSpaces(text)
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, bankerr.Parsef("invalid amount %q", text)
	}
	return d, nil
}

// DecimalDot parses a number using "." as the decimal separator and
// "," or spaces as thousands separators, e.g. "1,234.56" -> 1234.56.
func DecimalDot(text string) (decimal.Decimal, error) {
	s := stripSpaces(text)
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, bankerr.Parsef("invalid amount %q", text)
	}
	return d, nil
}

// Date parses a day-first date, with or without a time component.
func Date(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	for _, layout := range []string{DateTimeFormat, DateFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, bankerr.Parsef("invalid date %q", text)
}

func stripSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(text))
}
