// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/core/reference"
)

func newRouter(t *testing.T, kind reference.Kind, names ...string) http.Handler {
	t.Helper()

	service := newService(newMemoryRepository())
	_, err := service.Resolve(context.Background(), kind, names)
	require.NoError(t, err)

	router := chi.NewRouter()
	reference.NewHandler(service, kind).RegisterRoutes(router)
	return router
}

/*
TestHandler_List returns a paginated envelope filtered by q.
*/
func TestHandler_List(t *testing.T) {
	router := newRouter(t, reference.KindAuthor, "J.K. Rowling", "Mary GrandPré", "Rowan Atkinson")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?q=row&limit=10", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []reference.Entity `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Meta.Total)
	assert.Equal(t, 10, body.Meta.Limit)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "J.K. Rowling", body.Data[0].Name)
}

/*
TestHandler_Get covers found, unknown, malformed and out-of-range IDs.
*/
func TestHandler_Get(t *testing.T) {
	router := newRouter(t, reference.KindCategory, "Juvenile Fiction")

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/1", http.StatusOK},
		{"unknown", "/99", http.StatusNotFound},
		{"malformed", "/abc", http.StatusNotFound},
		{"beyond_int4", "/4294967296", http.StatusNotFound},
		{"negative_beyond_int4", "/-2147483649", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
