// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/metadata"
)

const azkabanResponse = `{
  "totalItems": 1,
  "items": [{
    "volumeInfo": {
      "title": "Harry Potter and the Prisoner of Azkaban",
      "authors": ["J. K. Rowling"],
      "categories": ["Juvenile Fiction"],
      "publishedDate": "2004-06",
      "language": "en",
      "industryIdentifiers": [
        {"type": "ISBN_10", "identifier": "0439554934"},
        {"type": "ISBN_13", "identifier": "9780439554930"}
      ]
    },
    "saleInfo": {"isEbook": false}
  }]
}`

func newServer(t *testing.T, handler http.HandlerFunc) *metadata.GoogleBooks {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return metadata.NewGoogleBooks(metadata.GoogleBooksOptions{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
	})
}

/*
TestGoogleBooks_Lookup maps the first search hit into a Record.
*/
func TestGoogleBooks_Lookup(t *testing.T) {
	var gotQuery, gotKey string
	books := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(azkabanResponse))
	})

	record, err := books.Lookup(context.Background(), "9780439554930")
	require.NoError(t, err)

	assert.Equal(t, "isbn:9780439554930", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Harry Potter and the Prisoner of Azkaban", record.Title)
	assert.Equal(t, []string{"J. K. Rowling"}, record.Authors)
	assert.Equal(t, []string{"Juvenile Fiction"}, record.Categories)
	assert.Equal(t, "2004-06", record.PublishedDate)
	assert.Equal(t, "en", record.Language)
	assert.Equal(t, "0439554934", record.ISBN10)
	assert.Equal(t, "9780439554930", record.ISBN13)
	assert.False(t, record.IsEbook)
}

func TestGoogleBooks_Lookup_Ebook(t *testing.T) {
	books := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"volumeInfo":{"title":"Digital"},"saleInfo":{"isEbook":true}}]}`))
	})

	record, err := books.Lookup(context.Background(), "9780306406157")
	require.NoError(t, err)
	assert.True(t, record.IsEbook)
	assert.Empty(t, record.ISBN10)
}

func TestGoogleBooks_Lookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"zero_total", http.StatusOK, `{"totalItems":0}`, metadata.ErrNotFound},
		{"no_items", http.StatusOK, `{"totalItems":3,"items":[]}`, metadata.ErrNotFound},
		{"server_error", http.StatusInternalServerError, `oops`, metadata.ErrUnavailable},
		{"throttled", http.StatusTooManyRequests, `{}`, metadata.ErrUnavailable},
		{"malformed_json", http.StatusOK, `{"totalItems":`, metadata.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			record, err := books.Lookup(context.Background(), "0439554934")
			assert.Nil(t, record)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

/*
TestGoogleBooks_Lookup_Deadline surfaces the context error, not ErrUnavailable,
so the caller can report a timeout.
*/
func TestGoogleBooks_Lookup_Deadline(t *testing.T) {
	release := make(chan struct{})
	books := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := books.Lookup(ctx, "0439554934")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, metadata.ErrUnavailable))
}

func TestGoogleBooks_Lookup_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	books := metadata.NewGoogleBooks(metadata.GoogleBooksOptions{BaseURL: url})

	_, err := books.Lookup(context.Background(), "0439554934")
	assert.ErrorIs(t, err, metadata.ErrUnavailable)
}
