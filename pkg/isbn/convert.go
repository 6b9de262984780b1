// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package isbn

import "fmt"

// To10 derives the ISBN-10 form of an ISBN-13.
//
// # Algorithm
//
//  1. The input must start with [BooklandPrefix].
//  2. Take the nine digits after the prefix.
//  3. Weight them 10, 9, ..., 2 and sum the products.
//  4. Check value is (11 - sum mod 11) mod 11, written as 'X' when it is 10.
//  5. The candidate must pass [ValidTen].
//
// The boolean is false when no ISBN-10 exists for the input. That is an
// expected outcome for 979 numbers, not an error.
func To10(isbn13 string) (string, bool) {
	if Classify(isbn13) != Thirteen || isbn13[:3] != BooklandPrefix {
		return "", false
	}

	body := isbn13[3:12]

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(body[i]-'0') * (10 - i)
	}

	check := (11 - sum%11) % 11
	checkChar := byte('0' + check)
	if check == 10 {
		checkChar = 'X'
	}

	candidate := body + string(checkChar)
	if !ValidTen(candidate) {
		return "", false
	}
	return candidate, true
}

// To13 converts an ISBN-10 to its canonical 978-prefixed ISBN-13 form.
//
// The input must classify as [Ten]; its own check character is dropped and a
// fresh EAN-13 check digit is computed.
func To13(isbn10 string) (string, error) {
	if Classify(isbn10) != Ten {
		return "", fmt.Errorf("isbn: %q is not an ISBN-10", isbn10)
	}

	body := BooklandPrefix + isbn10[:9]
	return body + string(eanCheckDigit(body)), nil
}

// eanCheckDigit computes the EAN-13 check digit of twelve digits
// (weights alternate 1 and 3).
func eanCheckDigit(twelve string) byte {
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(twelve[i] - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return byte('0' + (10-sum%10)%10)
}
