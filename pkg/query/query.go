// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query builds SQL pattern arguments from user search input.
package query

import "strings"

// likeEscaper escapes the LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns an ILIKE pattern matching any value that contains term.
//
// The pattern uses backslash as the escape character, which is the Postgres
// default, so "100%" matches the literal text and not everything.
func Contains(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}
