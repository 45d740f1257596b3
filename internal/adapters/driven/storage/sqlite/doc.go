// Package sqlite keeps the document catalog in a modernc.org/sqlite
// database at ~/.folio/data/catalog.db unless another data directory is
// configured.
//
// The schema lives in migrations/ as NNN_name.up.sql files applied in
// order at open. The database runs in WAL mode so a watcher can ingest
// while searches read.
package sqlite
