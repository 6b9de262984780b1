// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// DefaultGoogleBooksURL is the public Books API v1 endpoint.
const DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1"

// Identifier types listed under volumeInfo.industryIdentifiers.
const (
	identifierISBN10 = "ISBN_10"
	identifierISBN13 = "ISBN_13"
)

// GoogleBooksOptions configures a [GoogleBooks] client.
type GoogleBooksOptions struct {
	BaseURL string
	APIKey  string

	// RequestsPerSecond and Burst shape outbound traffic. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the default client (tests use httptest servers).
	HTTPClient *http.Client
}

// GoogleBooks is a [Source] backed by the Google Books volumes endpoint.
type GoogleBooks struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
}

var _ Source = (*GoogleBooks)(nil)

// NewGoogleBooks builds a client from options, filling in defaults.
func NewGoogleBooks(options GoogleBooksOptions) *GoogleBooks {
	baseURL := strings.TrimRight(options.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultGoogleBooksURL
	}

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if options.RequestsPerSecond > 0 {
		burst := options.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), burst)
	}

	return &GoogleBooks{
		baseURL: baseURL,
		apiKey:  options.APIKey,
		client:  client,
		limiter: limiter,
		tracer:  otel.Tracer("libris/metadata"),
	}
}

// googleBooksResponse mirrors the fields of the volumes search we read.
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Categories          []string `json:"categories"`
			PublishedDate       string   `json:"publishedDate"`
			Language            string   `json:"language"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
		SaleInfo struct {
			IsEbook bool `json:"isEbook"`
		} `json:"saleInfo"`
	} `json:"items"`
}

/*
Lookup fetches the first volume matching isbn.

Parameters:
  - ctx: context.Context (its deadline bounds the whole call, limiter wait included)
  - isbn: string (normalized ISBN-10 or ISBN-13)

Returns:
  - *Record: The first search hit
  - error: ErrNotFound, ErrUnavailable (wrapped) or a context error
*/
func (books *GoogleBooks) Lookup(ctx context.Context, isbn string) (*Record, error) {
	ctx, span := books.tracer.Start(ctx, "metadata.lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("isbn", isbn)),
	)
	defer span.End()

	record, err := books.lookup(ctx, isbn)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	span.SetAttributes(attribute.Bool("metadata.ebook", record.IsEbook))
	return record, nil
}

func (books *GoogleBooks) lookup(ctx context.Context, isbn string) (*Record, error) {

	// 1. Respect the outbound budget. A deadline hit while waiting is a timeout.
	if err := books.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Wait also fails when the deadline is shorter than the expected delay.
		return nil, fmt.Errorf("%w: rate limit: %v", ErrUnavailable, err)
	}

	// 2. Query the volumes endpoint
	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	if books.apiKey != "" {
		query.Set("key", books.apiKey)
	}
	endpoint := books.baseURL + "/volumes?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("metadata: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := books.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: google books returned status %d", ErrUnavailable, resp.StatusCode)
	}

	// 3. Decode and keep the best match
	var result googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		return nil, ErrNotFound
	}

	item := result.Items[0]
	record := &Record{
		Title:         item.VolumeInfo.Title,
		Authors:       item.VolumeInfo.Authors,
		Categories:    item.VolumeInfo.Categories,
		PublishedDate: item.VolumeInfo.PublishedDate,
		Language:      item.VolumeInfo.Language,
		IsEbook:       item.SaleInfo.IsEbook,
	}

	for _, identifier := range item.VolumeInfo.IndustryIdentifiers {
		switch identifier.Type {
		case identifierISBN10:
			record.ISBN10 = identifier.Identifier
		case identifierISBN13:
			record.ISBN13 = identifier.Identifier
		}
	}

	return record, nil
}
