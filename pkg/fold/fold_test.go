// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libris/pkg/fold"
)

/*
TestKey covers the variants the metadata source actually produces.
*/
func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		equal bool
	}{
		{"case_only", "J.K. Rowling", "j.k. ROWLING", true},
		{"extra_spaces", "  J.K.   Rowling ", "J.K. Rowling", true},
		{"decomposed_accent", "G\u00f6del", "Go\u0308del", true},
		{"sharp_s", "Straße", "STRASSE", true},
		{"accent_kept", "Gödel", "Godel", false},
		{"different_names", "Juvenile Fiction", "Fiction", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, fold.Equal(tt.a, tt.b))
		})
	}
}

/*
TestKey_Expands covers ligatures that fold to several runes. A key can be
three times longer than its 80-rune name, so the key column has no length cap.
*/
func TestKey_Expands(t *testing.T) {
	name := strings.Repeat("\ufb03", 80)

	key := fold.Key(name)

	assert.Equal(t, strings.Repeat("ffi", 80), key)
	assert.Equal(t, 240, utf8.RuneCountInString(key))
}

/*
TestClean keeps the original casing while normalizing whitespace.
*/
func TestClean(t *testing.T) {
	assert.Equal(t, "J.K. Rowling", fold.Clean("  J.K.\tRowling\n"))
	assert.Empty(t, fold.Clean("   "))
}

/*
TestTruncate counts runes, not bytes.
*/
func TestTruncate(t *testing.T) {
	assert.Equal(t, "Harry", fold.Truncate("Harry Potter", 5))
	assert.Equal(t, "Gö", fold.Truncate("Gödel", 2))
	assert.Equal(t, "short", fold.Truncate("short", 80))
	assert.Empty(t, fold.Truncate("anything", 0))
}
