// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations bundles the catalog schema into the binary.
package migrations

import "embed"

// FS holds every numbered up/down migration.
//
//go:embed *.sql
var FS embed.FS
