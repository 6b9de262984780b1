// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page windows for the author and category
// listings and builds the [Meta] block of the response envelope.
package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1

	// MaxPage keeps Offset far from integer overflow.
	MaxPage = 10000
)

// ErrInvalid reports a non-numeric, non-positive or out-of-range page parameter.
var ErrInvalid = errors.New("pagination: invalid parameter")

// Params is a 1-indexed page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewMeta derives the page count for total items seen through p.
func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    p.Page < totalPages,
	}
}

/*
FromRequest reads "page" and "limit" from the query string.

Missing values take the defaults and a limit above [MaxLimit] is lowered to
it. Anything that is not a positive integer, or a page above [MaxPage], is
rejected with [ErrInvalid].
*/
func FromRequest(r *http.Request) (Params, error) {
	page, err := positive(r, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}
	if page > MaxPage {
		return Params{}, fmt.Errorf("%w: \"page\" must not exceed %d", ErrInvalid, MaxPage)
	}

	limit, err := positive(r, "limit", DefaultLimit)
	if err != nil {
		return Params{}, err
	}

	return Params{Page: page, Limit: min(limit, MaxLimit)}, nil
}

func positive(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q must be a positive integer", ErrInvalid, key)
	}
	return n, nil
}
