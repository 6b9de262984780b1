// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/core/volume"
	"github.com/taibuivan/libris/internal/metadata"
	"github.com/taibuivan/libris/internal/platform/ctxutil"
	"github.com/taibuivan/libris/internal/platform/sec"
)

func newVolumeRouter() http.Handler {
	volumes := newMemoryVolumes()
	entities := newMemoryEntities()
	source := newStubSource(map[string]*metadata.Record{"9780439554930": azkaban()})

	handler := volume.NewHandler(
		volume.NewService(volumes, entities, discardLogger()),
		volume.NewRegistrar(volumes, source, entities, time.Second, discardLogger()),
	)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func as(role sec.UserRole, request *http.Request) *http.Request {
	claims := &sec.AuthClaims{UserID: "user-1", Role: string(role)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func authenticated(request *http.Request) *http.Request {
	return as(sec.RoleLibrarian, request)
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Code       string          `json:"code"`
	ResourceID string          `json:"resource_id"`
}

func serve(t *testing.T, router http.Handler, request *http.Request) (int, envelope) {
	t.Helper()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

/*
TestHandler_RegisterFlow checks the role gate, registers, conflicts, then reads back by ID and ISBN.
*/
func TestHandler_RegisterFlow(t *testing.T) {
	router := newVolumeRouter()

	// 1. Anonymous registration is refused
	status, body := serve(t, router, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"isbn":"9780439554930"}`)))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	// 2. Members may not register
	status, body = serve(t, router, as(sec.RoleMember, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"isbn":"9780439554930"}`))))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)

	// 3. A librarian's registration succeeds
	status, body = serve(t, router, authenticated(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"isbn":"978-0-439-55493-0"}`))))
	require.Equal(t, http.StatusCreated, status)

	var created volume.Volume
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "0439554934", *created.ISBN10)

	// 4. Second registration reports the existing volume
	status, body = serve(t, router, authenticated(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"isbn":"0439554934"}`))))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "VOLUME_ALREADY_REGISTERED", body.Code)
	assert.Equal(t, created.ID, body.ResourceID)

	// 5. Reads
	status, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, status)

	status, body = serve(t, router, httptest.NewRequest(http.MethodGet, "/isbn/0439554934", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), created.ID)
}

func TestHandler_RegisterErrors(t *testing.T) {
	router := newVolumeRouter()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid_isbn", `{"isbn":"0012"}`, http.StatusBadRequest, "INVALID_ISBN"},
		{"unknown_isbn", `{"isbn":"9780306406157"}`, http.StatusNotFound, "EMPTY_API_RESPONSE"},
		{"unknown_field", `{"isbn":"9780439554930","title":"x"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, router, authenticated(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandler_Lookups(t *testing.T) {
	router := newVolumeRouter()

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"malformed_id", "/not-a-uuid", http.StatusNotFound, "NOT_FOUND"},
		{"unknown_id", "/01920e5c-7a8b-7c3d-9e4f-0a1b2c3d4e5f", http.StatusNotFound, "NOT_FOUND"},
		{"invalid_isbn", "/isbn/12345", http.StatusBadRequest, "INVALID_ISBN"},
		{"no_criterion", "/", http.StatusBadRequest, "INVALID_USER_INPUT"},
		{"two_criteria", "/?title=harry&author=rowling", http.StatusBadRequest, "INVALID_USER_INPUT"},
		{"empty_title", "/?title=%20", http.StatusBadRequest, "INVALID_USER_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, router, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandler_SearchReturnsEmptyArray(t *testing.T) {
	router := newVolumeRouter()

	status, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/?author=Tolkien", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body.Data))
}
