// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold derives comparison keys for free-text names.
//
// # Usage
//
// Author and category names arrive from the metadata source in whatever case
// and spacing the publisher used ("J.K. Rowling", "J.K. ROWLING "). Two names
// denote the same entity when their keys are equal.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Clean trims a name and collapses internal whitespace runs to a single space.
// It is the display form that gets persisted.
func Clean(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Key returns the case-insensitive comparison key of a name.
//
// # Transformation Pipeline
//
// 1. Collapses whitespace via [Clean].
// 2. Normalizes to NFC so precomposed and decomposed accents compare equal.
// 3. Applies full Unicode case folding (ß and SS fold alike).
//
// Accents are kept: "Gödel" and "Godel" are different names.
func Key(name string) string {
	// A fresh Caser per call; cases.Caser is stateful and not safe for concurrent use.
	folder := cases.Fold()
	return folder.String(norm.NFC.String(Clean(name)))
}

// Equal reports whether two names share a key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Truncate cuts s to at most n runes without splitting a multi-byte character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for index := range s {
		if count == n {
			return s[:index]
		}
		count++
	}
	return s
}
