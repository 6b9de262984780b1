// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for catalog volumes.

Volume IDs are Version 7 values: they sort by creation time, which keeps the
primary key B-tree append-only, and they fit the Postgres 'uuid' type.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
//
// Handlers use it to answer 404 for malformed IDs instead of letting Postgres
// reject the cast.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
