// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package isbn classifies International Standard Book Numbers and converts between
the 10 and 13 character forms.

Everything here is pure string arithmetic with no I/O.

Forms:

  - ISBN-10: nine digits followed by a check character (0-9 or X), mod 11.
  - ISBN-13: twelve digits followed by an EAN-13 check digit, mod 10.

Only ISBN-13 values in the "978" Bookland range have an ISBN-10 equivalent.
*/
package isbn

import "strings"

// Kind is the result of [Classify].
type Kind int

const (
	// Invalid is any input that is neither form.
	Invalid Kind = iota
	// Ten is a 10 character ISBN.
	Ten
	// Thirteen is a 13 character ISBN.
	Thirteen
)

// String implements fmt.Stringer for logs and span attributes.
func (k Kind) String() string {
	switch k {
	case Ten:
		return "isbn10"
	case Thirteen:
		return "isbn13"
	default:
		return "invalid"
	}
}

// BooklandPrefix is the only ISBN-13 prefix that maps back onto ISBN-10.
const BooklandPrefix = "978"

// Normalize strips the separators people paste along with an ISBN (spaces and
// hyphens) and upper-cases a trailing x.
func Normalize(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r == '-' || r == ' ' || r == '\t':
			continue
		case r == 'x':
			builder.WriteRune('X')
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// Classify decides the form of s by length and character set only.
//
// A 10 character input must be nine digits plus a digit or 'X'. A 13 character
// input must be all digits. Check digits are not verified here.
func Classify(s string) Kind {
	switch len(s) {
	case 10:
		if !allDigits(s[:9]) {
			return Invalid
		}
		if last := s[9]; isDigit(last) || last == 'X' {
			return Ten
		}
		return Invalid
	case 13:
		if allDigits(s) {
			return Thirteen
		}
		return Invalid
	default:
		return Invalid
	}
}

// ValidTen reports whether s is an ISBN-10 with a correct check character.
func ValidTen(s string) bool {
	if Classify(s) != Ten {
		return false
	}

	sum := 0
	for i := 0; i < 10; i++ {
		value := 10
		if s[i] != 'X' {
			value = int(s[i] - '0')
		}
		sum += value * (10 - i)
	}
	return sum%11 == 0
}

// ValidThirteen reports whether s is an ISBN-13 with a correct EAN check digit.
func ValidThirteen(s string) bool {
	if Classify(s) != Thirteen {
		return false
	}
	return eanCheckDigit(s[:12]) == s[12]
}

// Valid reports whether s is a checksum-valid ISBN of either form.
func Valid(s string) bool {
	return ValidTen(s) || ValidThirteen(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
