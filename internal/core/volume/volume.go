// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package volume manages the catalog's aggregate root: a physical volume known by
its ISBN.

# Core Responsibility

  - Registration: [Registrar] turns a raw ISBN into a persisted [Volume] enriched
    by the metadata source, with its authors and categories resolved.
  - Discovery: [Service] is the read façade (by ID, by ISBN, substring searches).

A volume is never partially persisted. The row and its author and category
links are written in one transaction, and the store's unique indexes on both
ISBN forms are the final word on duplicates.
*/
package volume

import (
	"time"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/pkg/pointer"
)

// # Domain Entities

// Volume is a registered physical volume.
type Volume struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// At least one ISBN form is always set. When both are, they name the same work.
	ISBN10 *string `json:"isbn10"`
	ISBN13 *string `json:"isbn13"`

	// PublishedDate is the four character publication year, or empty.
	PublishedDate string `json:"published_date"`
	Language      string `json:"language"`
	Units         *int   `json:"units"`

	Authors    []reference.Entity `json:"authors"`
	Categories []reference.Entity `json:"categories"`

	// FavoriteCount is only populated by the favorites ranking.
	FavoriteCount int `json:"favorite_count,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ISBN returns the preferred identifier for logs and messages: the ISBN-13
// when known, the ISBN-10 otherwise.
func (volume *Volume) ISBN() string {
	if volume.ISBN13 != nil {
		return *volume.ISBN13
	}
	return pointer.Val(volume.ISBN10)
}

// # Request Payloads

// RegisterRequest is the body of POST /volumes.
type RegisterRequest struct {
	ISBN string `json:"isbn"`
}

// Global field names for validation
const (
	FieldISBN     = "isbn"
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldCategory = "category"
)
