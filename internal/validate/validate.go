// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package validate provides pure predicate functions over user-supplied input.
// All predicates are side-effect free and never panic on malformed input.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxYearsAhead bounds how far in the future a date may lie.
const DefaultMaxYearsAhead = 10

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Phone number formats:
// - international: '+' followed by 11-15 digits
// - national: leading '0' followed by exactly 9 digits
var (
	intlPhoneRegex     = regexp.MustCompile(`^\+[0-9]{11,15}$`)
	nationalPhoneRegex = regexp.MustCompile(`^0[0-9]{9}$`)
)

// NonBlank reports whether s contains at least one non-whitespace character.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Email reports whether s is a single syntactically valid mailbox address.
// The parsed canonical form must equal the trimmed input exactly, which
// rejects display-name-decorated addresses ("Bob <bob@example.com>") and
// multi-address strings.
func Email(s string) bool {
	if !NonBlank(s) {
		return false
	}
	trimmed := strings.TrimSpace(s)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	return addr.Address == trimmed
}

// Password reports whether s meets the password policy: at least
// MinPasswordLength characters, with at least one uppercase letter, one
// lowercase letter, one digit, and one symbol (anything that is none of
// the former three).
func Password(s string) bool {
	// Length is counted in runes so multibyte characters are not worth
	// more than one.
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// PhoneNumber reports whether s is a valid phone number in either
// international or national format.
func PhoneNumber(s string) bool {
	return intlPhoneRegex.MatchString(s) || nationalPhoneRegex.MatchString(s)
}

// FutureDate reports whether d is on or after today and at most
// maxYearsAhead calendar years ahead. A maxYearsAhead of zero or less
// falls back to DefaultMaxYearsAhead.
func FutureDate(d time.Time, maxYearsAhead int) bool {
	if maxYearsAhead <= 0 {
		maxYearsAhead = DefaultMaxYearsAhead
	}
	today := truncateToDay(time.Now())
	return DateRange(d, today, today.AddDate(maxYearsAhead, 0, 0))
}

// DateRange reports whether min <= d <= max, comparing calendar dates only.
func DateRange(d, min, max time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(min)) && !day.After(truncateToDay(max))
}

// IntRange reports whether min <= n <= max.
func IntRange(n, min, max int) bool {
	return n >= min && n <= max
}

// Past reports whether the calendar date of d is strictly before today.
func Past(d time.Time) bool {
	return truncateToDay(d).Before(truncateToDay(time.Now()))
}

// truncateToDay drops the time-of-day component in local time.
// Comparisons are calendar-date based with no timezone normalization.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
