// Package migrations holds the catalog schema as ordered SQL files.
package migrations

import "embed"

// FS is every *.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS
