// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libris/pkg/query"
)

/*
TestContains escapes LIKE metacharacters.
*/
func TestContains(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "azkaban", "%azkaban%"},
		{"trimmed", "  potter ", "%potter%"},
		{"percent", "100%", `%100\%%`},
		{"underscore", "a_b", `%a\_b%`},
		{"backslash", `a\b`, `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Contains(tt.in))
		})
	}
}
