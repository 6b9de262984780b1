// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metadata fetches bibliographic records from an external source.

The registration pipeline depends only on the [Source] contract. The production
implementation is [GoogleBooks], optionally wrapped by [Quota] so every API
instance draws from one shared daily allowance.

Failure Taxonomy:

  - [ErrNotFound]: The source answered and knows nothing about the ISBN.
  - [ErrUnavailable]: Transport failure, non-2xx answer or exhausted quota. Transient.
  - Context errors: Propagated untouched so callers can tell a timeout apart.
*/
package metadata

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports that the source has no record for the ISBN.
	ErrNotFound = errors.New("metadata: no record for isbn")

	// ErrUnavailable reports a transient failure talking to the source.
	ErrUnavailable = errors.New("metadata: source unavailable")
)

// Record is the subset of a bibliographic entry the catalog persists.
type Record struct {
	Title         string
	Authors       []string
	Categories    []string
	PublishedDate string
	Language      string

	// ISBN10 and ISBN13 are empty when the source does not list that form.
	ISBN10 string
	ISBN13 string

	IsEbook bool
}

// Source looks up a single ISBN.
//
// Implementations must honour context cancellation and must return
// [ErrNotFound] or an error wrapping [ErrUnavailable] for the outcomes above.
type Source interface {
	Lookup(ctx context.Context, isbn string) (*Record, error)
}
