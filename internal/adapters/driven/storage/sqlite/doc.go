// Package sqlite persists analysis runs in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each completed run is stored as one row holding its header
// columns and the full results encoded as JSON.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.notegraph/data/analysis.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite runs in WAL mode.
package sqlite
