// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
		err   bool
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}, false},
		{"explicit", "?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}, false},
		{"capped", "?limit=500", pagination.Params{Page: 1, Limit: 100}, false},
		{"zero_page", "?page=0", pagination.Params{}, true},
		{"negative_limit", "?limit=-1", pagination.Params{}, true},
		{"not_a_number", "?page=two", pagination.Params{}, true},
		{"last_page", "?page=10000&limit=100", pagination.Params{Page: 10000, Limit: 100}, false},
		{"page_too_deep", "?page=10001", pagination.Params{}, true},
		{"page_overflows_int", "?page=9223372036854775807", pagination.Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := pagination.FromRequest(httptest.NewRequest("GET", "/authors"+tt.query, nil))
			if tt.err {
				require.ErrorIs(t, err, pagination.ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 10}
	assert.Equal(t, 10, params.Offset())

	meta := pagination.NewMeta(params, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	last := pagination.NewMeta(pagination.Params{Page: 3, Limit: 10}, 25)
	assert.False(t, last.HasMore)

	deepest := pagination.Params{Page: pagination.MaxPage, Limit: pagination.MaxLimit}
	assert.Equal(t, 999900, deepest.Offset())

	empty := pagination.NewMeta(pagination.Params{Page: 1, Limit: 10}, 0)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasMore)
}
