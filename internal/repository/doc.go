// Package repository defines where network snapshots are persisted.
//
// # Repository Interface
//
// A Repository saves and loads a complete domain.Snapshot. Saving replaces
// whatever was stored before; loading returns records in the order they were
// saved. Snapshots are exchanged whole: there is no per-record access.
//
// # Implementations
//
// The file subpackage stores the snapshot as a single flat file through a
// codec (CSV, JSON or YAML). The sqlite subpackage stores it in SQLite
// tables, keeping unset pipeline endpoints as NULL.
//
// # Testing
//
// The file repository is tested against temporary directories, the sqlite
// repository against in-memory databases.
package repository
